package textutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoNumbers is returned by FindNumbers when the input holds no numeric
// literal.
var ErrNoNumbers = errors.New("no number in string")

// numberPattern prefers a decimal literal and falls back to an integer.
var numberPattern = regexp.MustCompile(`[-+]?\d*\.\d+|[-+]?\d+`)

// Kind tells integer and floating point literals apart.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Number is a numeric literal found in text.
type Number struct {
	Kind Kind

	// Int holds the value of a KindInt literal.
	Int int64

	// Float holds the value of a KindFloat literal.
	Float float64
}

// IntNumber returns a KindInt Number.
func IntNumber(v int64) Number {
	return Number{Kind: KindInt, Int: v}
}

// FloatNumber returns a KindFloat Number.
func FloatNumber(v float64) Number {
	return Number{Kind: KindFloat, Float: v}
}

// Value returns the number as a float64 regardless of its kind.
func (n Number) Value() float64 {
	if n.Kind == KindFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n Number) String() string {
	if n.Kind == KindFloat {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}

// FindNumbers returns the numbers in s in order of appearance.
//
// A literal is an optional sign followed by either digits around a decimal
// point (".5", "3.25") or plain digits ("42"). Literals with a decimal point
// are KindFloat, the rest KindInt. Text without any literal, including the empty
// string, returns ErrNoNumbers. An integer literal that does not fit in
// int64 returns the strconv range error.
func FindNumbers(s string) ([]Number, error) {
	matches := numberPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoNumbers, s)
	}

	numbers := make([]Number, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(m, ".") {
			v, err := strconv.ParseFloat(m, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", m, err)
			}
			numbers = append(numbers, FloatNumber(v))
			continue
		}
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", m, err)
		}
		numbers = append(numbers, IntNumber(v))
	}
	return numbers, nil
}
