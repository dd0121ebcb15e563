// Package exitcode defines exit codes for the CLI.
package exitcode

// Exit codes returned by ltodo.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a storage, API or network error.
	BackendError = 3
)
