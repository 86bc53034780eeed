// Package common defines shared constants and sentinel errors used across
// client layers of TrustCart. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session errors.
	ErrTokenExpired = errors.New("token expired")
)
