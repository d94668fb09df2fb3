package protocol

import (
	"errors"
	"io"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 6

	// MaxFramePayload is the maximum payload size accepted on read.
	MaxFramePayload = 16 * 1024 * 1024
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello    FrameType = 0x00 // Subscription handshake
	FrameDocument FrameType = 0x01 // Encoded document tree
	FrameControl  FrameType = 0x02 // Ping, pong, resync
	FrameError    FrameType = 0x03 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameDocument:
		return "Document"
	case FrameControl:
		return "Control"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags are optional flags for frame processing.
type FrameFlags uint8

const (
	FlagCompressed FrameFlags = 0x01 // Payload is gzip compressed
	FlagFinal      FrameFlags = 0x02 // Last frame in a batch
)

// Has returns true if the flags contain the specified flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is one transport unit: a typed header plus payload.
//
// Wire format (6-byte header + variable payload):
//
//	type (1 byte) | flags (1 byte) | payload length (4 bytes, big-endian)
//	payload (length bytes)
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// Encode returns the frame as bytes, header included.
func (f *Frame) Encode() []byte {
	w := NewWriter()
	w.WriteByte(byte(f.Type))
	w.WriteByte(byte(f.Flags))
	w.WriteUint32(uint32(len(f.Payload)))
	w.buf = append(w.buf, f.Payload...)
	return w.Bytes()
}

// DecodeFrame parses one frame from data, which must contain the whole
// frame.
func DecodeFrame(data []byte) (*Frame, error) {
	r := NewReader(data)
	typ, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if typ > byte(FrameError) {
		return nil, ErrInvalidFrameType
	}
	flags, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if length > MaxFramePayload {
		return nil, ErrFrameTooLarge
	}
	if int(length) > r.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+int(length)])
	return &Frame{
		Type:    FrameType(typ),
		Flags:   FrameFlags(flags),
		Payload: payload,
	}, nil
}

// ControlCode identifies a control frame payload.
type ControlCode uint8

const (
	ControlPing   ControlCode = 0x00
	ControlPong   ControlCode = 0x01
	ControlResync ControlCode = 0x02 // Client asks for a full document
)

// EncodeControl builds a control frame.
func EncodeControl(code ControlCode) *Frame {
	return &Frame{Type: FrameControl, Payload: []byte{byte(code)}}
}

// DecodeControl extracts the control code from a control frame payload.
func DecodeControl(payload []byte) (ControlCode, error) {
	r := NewReader(payload)
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	return ControlCode(b), nil
}
