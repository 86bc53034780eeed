package models

import "errors"

var (
	ErrMalformed = errors.New("malformed record")
	ErrMissingID = errors.New("missing identifier")
)
