package vo

import (
	"errors"
	"strings"
)

type City struct {
	value string
}

var ErrInvalidCity = errors.New("invalid city")

func NewCity(value string) (City, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return City{}, ErrInvalidCity
	}
	return City{value: name}, nil
}

func (c City) Value() string {
	return c.value
}

func (c City) String() string {
	return c.value
}
