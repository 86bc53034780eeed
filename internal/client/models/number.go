package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a float that also accepts numeric strings ("19.99") and null.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: number %q", ErrMalformed, s)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

// String renders the number without trailing zeros, as prices are shown.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
