package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGender is returned when a gender string is not recognised.
var ErrInvalidGender = errors.New("invalid gender")

// Gender selects which expectancy figure of a LifespanRecord applies.
type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

// ParseGender accepts "", "m", "male", "f" and "female" in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return GenderUnspecified, nil
	case "m", "male":
		return GenderMale, nil
	case "f", "female":
		return GenderFemale, nil
	default:
		return GenderUnspecified, fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unspecified"
	}
}

func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "unspecified" {
		*g = GenderUnspecified
		return nil
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
