// Package cli provides the interactive TrustCart shell.
//
// It turns the storefront and the user and admin dashboards into REPL
// commands: browsing listings with URL-backed filters, signing in and
// managing the account, reviews, and the admin product and user tables.
// Commands that need a session redirect to the login flow when the current
// user may not run them.
//
// The shell is started via App.Run(ctx), which blocks until the user exits.
// See App, Deps and runREPL for details.
package cli
