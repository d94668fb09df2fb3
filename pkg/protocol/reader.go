package protocol

import (
	"errors"
	"io"
)

// Limits guarding decode paths against hostile length prefixes.
const (
	// MaxAllocation is the largest single string or byte blob (4MB).
	MaxAllocation = 4 * 1024 * 1024

	// MaxCollectionCount bounds attribute and child counts.
	MaxCollectionCount = 100_000

	// MaxDocumentDepth bounds element nesting during document decode.
	MaxDocumentDepth = 1000
)

// Common decoding errors.
var (
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrAllocationTooLarge = errors.New("protocol: allocation size exceeds limit")
	ErrCollectionTooLarge = errors.New("protocol: collection count exceeds limit")
	ErrTooDeep            = errors.New("protocol: document nesting exceeds limit")
)

// Reader is a bounds-checked binary decoder over a byte buffer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// EOF reports whether all bytes have been read.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.buf)
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadUvarint reads an unsigned varint.
func (r *Reader) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		if r.pos >= len(r.buf) {
			return 0, io.ErrUnexpectedEOF
		}
		b := r.buf[r.pos]
		r.pos++
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, ErrVarintOverflow
		}
	}
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	if length > uint64(r.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	if length > MaxAllocation {
		return "", ErrAllocationTooLarge
	}
	n := int(length)
	s := string(r.buf[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// ReadLenBytes reads length-prefixed bytes as a copy safe to retain.
func (r *Reader) ReadLenBytes() ([]byte, error) {
	length, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if length > uint64(r.Remaining()) {
		return nil, io.ErrUnexpectedEOF
	}
	if length > MaxAllocation {
		return nil, ErrAllocationTooLarge
	}
	n := int(length)
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// ReadBool reads a boolean byte; any non-zero value counts as true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(r.buf[r.pos])<<8 | uint16(r.buf[r.pos+1])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint32(r.buf[r.pos])<<24 | uint32(r.buf[r.pos+1])<<16 |
		uint32(r.buf[r.pos+2])<<8 | uint32(r.buf[r.pos+3])
	r.pos += 4
	return v, nil
}

// ReadCount reads a collection count and validates it against both the
// hard limit and the remaining buffer (at least one byte per item).
func (r *Reader) ReadCount() (int, error) {
	count, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if count > MaxCollectionCount {
		return 0, ErrCollectionTooLarge
	}
	if count > uint64(r.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(count), nil
}
