package fitness

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNotNumeric is returned when the input cannot be parsed as a number.
	ErrNotNumeric = errors.New("value is not a number")
	// ErrOutOfRange is returned when a parsed value lies outside its plausible range.
	ErrOutOfRange = errors.New("value is out of range")
	// ErrMeasurementCount is returned when a measurement list does not hold exactly four values.
	ErrMeasurementCount = errors.New("exactly four measurements are required")
	// ErrMissingMeasurement is returned when a measurement mapping lacks one of the four keys.
	ErrMissingMeasurement = errors.New("measurement is missing")
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within r. NaN is never contained.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	AgeRange    = Range{Min: 16, Max: 80}
	HeightRange = Range{Min: 140, Max: 220}
	WeightRange = Range{Min: 40, Max: 200}
)

// ParseAge parses a whole number of years and checks it against AgeRange.
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if !AgeRange.Contains(float64(age)) {
		return 0, fmt.Errorf("%w: age %d", ErrOutOfRange, age)
	}
	return age, nil
}

// ParseHeight parses a height in centimetres and checks it against HeightRange.
func ParseHeight(s string) (float64, error) {
	return parseInRange(s, "height", HeightRange)
}

// ParseWeight parses a weight in kilograms and checks it against WeightRange.
func ParseWeight(s string) (float64, error) {
	return parseInRange(s, "weight", WeightRange)
}

func parseInRange(s, field string, r Range) (float64, error) {
	// A single value may use a decimal comma.
	v, err := parseReal(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return 0, err
	}
	if !r.Contains(v) {
		return 0, fmt.Errorf("%w: %s %g", ErrOutOfRange, field, v)
	}
	return v, nil
}

func parseReal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return v, nil
}
