package protocol

// Writer is a binary encoder appending to an internal buffer. All
// writes are infallible; the buffer grows as needed.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with a small initial capacity.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// Reset empties the writer, keeping the underlying buffer.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Bytes returns the encoded bytes. The slice is valid until the next
// write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteUvarint appends an unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteString appends a length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteUvarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteLenBytes appends length-prefixed bytes.
func (w *Writer) WriteLenBytes(b []byte) {
	w.WriteUvarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteBool appends a boolean as one byte.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.buf = append(w.buf, 0x01)
	} else {
		w.buf = append(w.buf, 0x00)
	}
}

// WriteUint16 appends a uint16 in big-endian order.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

// WriteUint32 appends a uint32 in big-endian order.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
