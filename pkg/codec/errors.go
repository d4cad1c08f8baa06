// Package codec error types.
//
// Decoding failures are reported as structured errors rather than silent
// truncation: a reader that runs out of bytes mid-field must say which field
// it was reading and how many bytes were missing.
package codec

import "fmt"

// DecodeError is returned when a Reader cannot satisfy a field read.
//
// Offset is the position in the input buffer where the read started,
// Need is the number of bytes the field required, and Have is the number
// of bytes that were actually available.
type DecodeError struct {
	Field  string // Name of the field being decoded (e.g. "u64", "string length")
	Offset int    // Byte offset where the read started
	Need   int    // Bytes required by the field
	Have   int    // Bytes remaining in the buffer
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s at offset %d: need %d bytes, have %d",
		e.Field, e.Offset, e.Need, e.Have)
}

// ValueError is returned when a decoded value is structurally invalid,
// e.g. an option discriminant that is neither 0x00 nor 0x01.
type ValueError struct {
	Field   string // Name of the field being decoded
	Offset  int    // Byte offset of the offending value
	Message string // Human-readable description
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("decode error: %s at offset %d: %s", e.Field, e.Offset, e.Message)
}
