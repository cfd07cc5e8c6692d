// Package apierror provides error inspection capabilities for Backlog API errors.
// It centralizes the logic for identifying different types of errors returned by
// the Backlog REST API, eliminating the need for string-based error checking
// throughout the codebase.
package apierror
