// Package tx error types.
package tx

import "fmt"

// BuildError is returned when envelope construction fails before signing.
// No partially-signed data is ever produced: parameter validation happens
// first, and only a fully valid field set reaches the wallet.
type BuildError struct {
	Kind    Kind   // Transaction kind being built
	Message string // Human-readable description
	Cause   error  // Underlying error (if any)
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("build %s: %s", e.Kind, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// EnvelopeError is returned when a wire envelope cannot be decoded or its
// embedded signature does not verify.
type EnvelopeError struct {
	Kind    Kind   // Transaction kind being decoded
	Message string // Human-readable description
	Cause   error  // Underlying decode error (if any)
}

func (e *EnvelopeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode %s envelope: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode %s envelope: %s", e.Kind, e.Message)
}

func (e *EnvelopeError) Unwrap() error {
	return e.Cause
}
