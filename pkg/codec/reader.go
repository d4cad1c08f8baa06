package codec

import "encoding/binary"

// Reader consumes the wire encoding produced by Writer.
//
// Reads mirror writes exactly: same field order, same widths. A read past
// the end of the buffer fails with a DecodeError rather than silently
// truncating, which is a hard requirement for anything fed untrusted input.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) take(field string, n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, &DecodeError{Field: field, Offset: r.off, Need: n, Have: r.Remaining()}
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take("u8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take("u16", 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU64 reads a little-endian 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take("u64", 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadU128 reads a 128-bit integer written as two little-endian halves.
func (r *Reader) ReadU128() (Uint128, error) {
	b, err := r.take("u128", 16)
	if err != nil {
		return Uint128{}, err
	}
	var tmp [16]byte
	copy(tmp[:], b)
	return U128FromBytes(tmp), nil
}

// ReadFixedBytes reads exactly n verbatim bytes. The returned slice is a
// copy, safe to retain.
func (r *Reader) ReadFixedBytes(n int) ([]byte, error) {
	b, err := r.take("fixed bytes", n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads a u32le length prefix followed by that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	b, err := r.take("string length", 4)
	if err != nil {
		return "", err
	}
	n := int(binary.LittleEndian.Uint32(b))
	s, err := r.take("string bytes", n)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// ReadOptionBytes reads a one-byte discriminant and, if present, a u32le
// length prefix and the bytes. Absent decodes as nil.
func (r *Reader) ReadOptionBytes() ([]byte, error) {
	tagOff := r.off
	tag, err := r.ReadU8()
	if err != nil {
		return nil, &DecodeError{Field: "option discriminant", Offset: tagOff, Need: 1, Have: 0}
	}
	switch tag {
	case 0x00:
		return nil, nil
	case 0x01:
		b, err := r.take("option length", 4)
		if err != nil {
			return nil, err
		}
		n := int(binary.LittleEndian.Uint32(b))
		v, err := r.take("option bytes", n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, v)
		return out, nil
	default:
		return nil, &ValueError{
			Field:   "option discriminant",
			Offset:  tagOff,
			Message: "must be 0x00 or 0x01",
		}
	}
}
