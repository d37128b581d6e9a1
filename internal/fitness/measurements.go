package fitness

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Measurements are body circumferences in centimetres.
type Measurements struct {
	Chest float64 `json:"chest" validate:"gte=60,lte=150"`
	Waist float64 `json:"waist" validate:"gte=50,lte=120"`
	Hips  float64 `json:"hips" validate:"gte=60,lte=150"`
	Bicep float64 `json:"bicep" validate:"gte=20,lte=60"`
}

// Measurement keys in input order.
const (
	KeyChest = "chest"
	KeyWaist = "waist"
	KeyHips  = "hips"
	KeyBicep = "bicep"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// ParseMeasurements parses "chest, waist, hips, bicep". Only the count and the
// numeric format are checked; ranges are checked by ValidateMeasurements.
func ParseMeasurements(s string) (Measurements, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return Measurements{}, fmt.Errorf("%w: got %d", ErrMeasurementCount, len(fields))
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := parseReal(f)
		if err != nil {
			return Measurements{}, err
		}
		vals[i] = v
	}
	return Measurements{Chest: vals[0], Waist: vals[1], Hips: vals[2], Bicep: vals[3]}, nil
}

// ValidateMeasurements checks every circumference against its plausible range.
func ValidateMeasurements(m Measurements) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("%w: %s", ErrOutOfRange, strings.Join(fields, ", "))
	}
	return fmt.Errorf("validate measurements: %w", err)
}

// ValidMeasurementMap reports whether m holds all four keys with in-range values.
func ValidMeasurementMap(m map[string]float64) bool {
	meas, err := MeasurementsFromMap(m)
	if err != nil {
		return false
	}
	return ValidateMeasurements(meas) == nil
}

// MeasurementsFromMap converts a keyed mapping, requiring all four keys.
func MeasurementsFromMap(m map[string]float64) (Measurements, error) {
	var out Measurements
	for _, k := range []string{KeyChest, KeyWaist, KeyHips, KeyBicep} {
		v, ok := m[k]
		if !ok {
			return Measurements{}, fmt.Errorf("%w: %s", ErrMissingMeasurement, k)
		}
		switch k {
		case KeyChest:
			out.Chest = v
		case KeyWaist:
			out.Waist = v
		case KeyHips:
			out.Hips = v
		case KeyBicep:
			out.Bicep = v
		}
	}
	return out, nil
}

// Value stores the measurements as a JSON object.
func (m Measurements) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal measurements: %w", err)
	}
	return string(b), nil
}

// Scan reads measurements stored by Value.
func (m *Measurements) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Measurements{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported measurements column type %T", src)
	}
	if err := json.Unmarshal(raw, m); err != nil {
		return fmt.Errorf("unmarshal measurements: %w", err)
	}
	return nil
}
