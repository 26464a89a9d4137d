package vo

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// TimezoneAuto lets the forecast API resolve the zone from the coordinates.
const TimezoneAuto = "auto"

type Timezone struct {
	value string
}

var ErrInvalidTimezone = errors.New("invalid timezone")

func NewTimezone(value string) (Timezone, error) {
	if value == "" {
		return Timezone{}, ErrInvalidTimezone
	}
	if value == TimezoneAuto {
		return Timezone{value: value}, nil
	}
	if _, err := time.LoadLocation(value); err != nil {
		return Timezone{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, value)
	}
	return Timezone{value: value}, nil
}

func (t Timezone) Value() string {
	return t.value
}
