// Package timex contains time helpers for configuration decoding.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration decodes from either a Go duration string ("15s") or an integer
// count of nanoseconds, and always encodes as a string.
type Duration struct {
	time.Duration
}

var ErrInvalidDuration = errors.New("invalid duration")

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDuration, err)
		}
		d.Duration = parsed
		return nil
	default:
		return ErrInvalidDuration
	}
}

// UnmarshalYAML accepts the same two forms for YAML config files.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch value := v.(type) {
	case int:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDuration, err)
		}
		d.Duration = parsed
		return nil
	default:
		return ErrInvalidDuration
	}
}
