package vo

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

type Language struct {
	tag language.Tag
}

var ErrInvalidLanguage = errors.New("invalid language")

// NewLanguage parses a BCP 47 tag such as "ja" or "en-US".
func NewLanguage(value string) (Language, error) {
	if value == "" {
		return Language{}, ErrInvalidLanguage
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, value)
	}
	return Language{tag: tag}, nil
}

// Code is the two or three letter base language sent to the geocoding API.
func (l Language) Code() string {
	if l.tag == language.Und {
		return "en"
	}
	base, _ := l.tag.Base()
	return base.String()
}

func (l Language) IsJapanese() bool {
	return l.Code() == "ja"
}

func (l Language) String() string {
	return l.tag.String()
}
