// Package client contains the client-side building blocks for talking to the
// TrustCart REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication, catalog browsing, profile management, admin product and
//     user CRUD, and product reviews.
//  2. A concrete net/http implementation (see HTTPClient) whose transport
//     reads the bearer token from a TokenSource before every request and
//     otherwise leaves requests and responses alone.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError carrying the status and the
// server's message. APIError unwraps to ErrUnauthorized, ErrNotFound or
// ErrServer so callers can branch with errors.Is. Transport failures match
// ErrUnavailable and keep the underlying error in the chain. Payloads that
// do not match the expected shape are reported as ErrMalformedResponse.
//
// Nothing is retried.
package client
