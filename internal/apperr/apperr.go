// Package apperr defines the typed failures of the analytics pipeline.
// Each kind carries its own retry-vs-surface policy: validation and
// symbol-not-found failures are never retried and go to the user as-is,
// data-source failures are produced by the market client only after its
// internal retries are exhausted, anything else is treated as unexpected.
package apperr

import "fmt"

// ValidationError reports malformed or out-of-range user input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidation builds a ValidationError with a formatted reason.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// SymbolNotFoundError reports that no market segment recognizes any candidate
// form of the normalized ticker.
type SymbolNotFoundError struct {
	Ticker string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("ticker '%s' was not found on Bybit (linear, inverse or spot)", e.Ticker)
}

// DataSourceError reports a sustained upstream failure: transport errors,
// malformed payloads, non-zero Bybit retCode or insufficient history.
type DataSourceError struct {
	Reason string
	Cause  error
}

func (e *DataSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *DataSourceError) Unwrap() error { return e.Cause }
