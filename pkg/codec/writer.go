// Package codec implements the deterministic binary wire encoding.
//
// Every value that crosses the wire or enters a signing payload goes through
// this package: fixed-width little-endian integers, verbatim fixed-length
// byte arrays, length-prefixed UTF-8 strings, and optional byte blobs with a
// one-byte discriminant. The encoding has no padding and no length ambiguity;
// the byte layout produced here is what consensus hashes and signs, so any
// deviation silently breaks signature verification network-wide.
//
// Layout summary:
//
//	u8/u16/u64     little-endian fixed width
//	u128           two u64 little-endian halves, low half first
//	fixed bytes    verbatim, width validated by the caller
//	string         u32le byte length || UTF-8 bytes
//	option bytes   0x00, or 0x01 || u32le length || bytes
package codec

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates the wire encoding of a message.
//
// Writes cannot fail; the underlying buffer grows as needed. The zero value
// is not usable, construct with NewWriter.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: new(bytes.Buffer)}
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteU16 writes a little-endian 16-bit integer.
func (w *Writer) WriteU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf.Write(tmp[:])
}

// WriteU64 writes a little-endian 64-bit integer.
func (w *Writer) WriteU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf.Write(tmp[:])
}

// WriteU128 writes a 128-bit integer as two little-endian halves, low first.
func (w *Writer) WriteU128(v Uint128) {
	tmp := v.Bytes()
	w.buf.Write(tmp[:])
}

// WriteFixedBytes writes b verbatim with no length prefix.
//
// The caller guarantees b has the width the field demands (20 for addresses,
// 32 for hashes and token ids, 64 for signatures). Width validation belongs
// at the call site assembling the message, not here.
func (w *Writer) WriteFixedBytes(b []byte) {
	w.buf.Write(b)
}

// WriteString writes a u32le byte-length prefix followed by the UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(s)))
	w.buf.Write(tmp[:])
	w.buf.WriteString(s)
}

// WriteOptionBytes writes a one-byte discriminant (0x00 absent, 0x01 present)
// followed, if present, by a u32le length prefix and the bytes. A nil slice
// encodes as absent; an empty non-nil slice encodes as present with length 0.
func (w *Writer) WriteOptionBytes(b []byte) {
	if b == nil {
		w.buf.WriteByte(0x00)
		return
	}
	w.buf.WriteByte(0x01)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(b)))
	w.buf.Write(tmp[:])
	w.buf.Write(b)
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}
