// Package wallet error types.
package wallet

import "fmt"

// KeyLengthError is returned when a raw private key is not exactly 32 bytes.
type KeyLengthError struct {
	Got int // Length of the key that was supplied
}

func (e *KeyLengthError) Error() string {
	return fmt.Sprintf("invalid key length: private key must be %d bytes, got %d", PrivateKeySize, e.Got)
}

// KeyFormatError is returned when an encoded private key (hex or base58check)
// cannot be decoded.
type KeyFormatError struct {
	Message string // Human-readable description
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("invalid key format: %s", e.Message)
}

// RandomSourceError is returned when no cryptographically secure random
// source is available or the source fails mid-read. Callers must treat this
// as non-recoverable; there is no weak-randomness fallback.
type RandomSourceError struct {
	Message string
	Cause   error
}

func (e *RandomSourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("secure random source error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("secure random source error: %s", e.Message)
}

func (e *RandomSourceError) Unwrap() error {
	return e.Cause
}
