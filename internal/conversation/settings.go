package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultTemperature is the sampling temperature used until the user saves another one.
	DefaultTemperature = 0.7
	// DefaultMaxLength is the default number of tokens the model may generate.
	DefaultMaxLength = 1000
)

// ErrSettingsMalformed is returned when a stored settings document cannot be parsed.
var ErrSettingsMalformed = errors.New("settings malformed")

// Settings holds the user-tunable sampling parameters.
type Settings struct {
	Temperature float64 `json:"temperature"`
	MaxLength   int     `json:"maxLength"`
}

// DefaultSettings returns the settings used when nothing has been saved.
func DefaultSettings() Settings {
	return Settings{
		Temperature: DefaultTemperature,
		MaxLength:   DefaultMaxLength,
	}
}

// SettingsPatch is a partial settings update. Nil fields keep their prior value.
type SettingsPatch struct {
	Temperature *float64
	MaxLength   *int
}

// Apply merges the patch onto s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.MaxLength != nil {
		s.MaxLength = *p.MaxLength
	}
	return s
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Temperature == nil && p.MaxLength == nil
}

// ParsePatch decodes a JSON settings document into a patch.
// Fields may be JSON numbers or numeric strings. Unknown keys are ignored.
// A field that cannot be coerced is left out of the patch and reported in the
// returned error; the valid fields are still returned.
func ParsePatch(data []byte) (SettingsPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return SettingsPatch{}, fmt.Errorf("%w: %v", ErrSettingsMalformed, err)
	}

	var patch SettingsPatch
	var bad []string

	if v, ok := raw["temperature"]; ok {
		if f, err := coerceFloat(v); err == nil {
			patch.Temperature = &f
		} else {
			bad = append(bad, "temperature")
		}
	}
	if v, ok := raw["maxLength"]; ok {
		if n, err := coerceInt(v); err == nil {
			patch.MaxLength = &n
		} else {
			bad = append(bad, "maxLength")
		}
	}

	if len(bad) > 0 {
		return patch, fmt.Errorf("%w: invalid fields %s", ErrSettingsMalformed, strings.Join(bad, ", "))
	}
	return patch, nil
}

// ParseSettings coerces a stored settings document onto base.
// On error the returned settings still carry every field that could be read.
func ParseSettings(data []byte, base Settings) (Settings, error) {
	patch, err := ParsePatch(data)
	return patch.Apply(base), err
}

// errNotFinite rejects NaN and infinities, which cannot be encoded as JSON.
var errNotFinite = errors.New("value is not a finite number")

// errOutOfRange rejects integers that do not fit in an int.
var errOutOfRange = errors.New("value out of range")

func coerceFloat(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, err
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

func coerceInt(raw json.RawMessage) (int, error) {
	f, err := coerceFloat(raw)
	if err != nil {
		return 0, err
	}
	// parseInt semantics: fractional parts are dropped
	f = math.Trunc(f)
	if f < math.MinInt || f >= math.MaxInt {
		return 0, errOutOfRange
	}
	return int(f), nil
}
