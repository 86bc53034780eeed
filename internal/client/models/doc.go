// Package models defines the records exchanged with the TrustCart REST API.
//
// Records are decoded verbatim from the API's JSON and then checked with
// Validate: an identifier must be present and numeric fields must have been
// parseable. A record failing validation is reported as ErrMalformed, and
// the HTTP layer turns that into a malformed-response error for the whole
// payload instead of handing half-decoded data to the caller.
package models
