package vo

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxDays is the longest daily forecast Open-Meteo serves.
const MaxDays = 16

type Days struct {
	value int
}

var ErrInvalidDays = errors.New("invalid forecast days")

func NewDays(value int) (Days, error) {
	if value < 1 || value > MaxDays {
		return Days{}, fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidDays, value, MaxDays)
	}
	return Days{value: value}, nil
}

// ParseDays accepts the decimal form used by query strings.
func ParseDays(raw string) (Days, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Days{}, fmt.Errorf("%w: %q", ErrInvalidDays, raw)
	}
	return NewDays(n)
}

func (d Days) Value() int {
	return d.value
}
