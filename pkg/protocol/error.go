package protocol

// ErrorCode identifies the type of error carried in an Error frame.
type ErrorCode uint16

const (
	ErrUnknown          ErrorCode = 0x0000 // Unknown error
	ErrInvalidFrame     ErrorCode = 0x0001 // Malformed frame
	ErrInvalidDocument  ErrorCode = 0x0002 // Document failed to decode
	ErrDocumentNotFound ErrorCode = 0x0003 // No such document
	ErrVersionMismatch  ErrorCode = 0x0004 // Protocol version not supported
	ErrServerError      ErrorCode = 0x0100 // Internal server error
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrUnknown:
		return "Unknown"
	case ErrInvalidFrame:
		return "InvalidFrame"
	case ErrInvalidDocument:
		return "InvalidDocument"
	case ErrDocumentNotFound:
		return "DocumentNotFound"
	case ErrVersionMismatch:
		return "VersionMismatch"
	case ErrServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// ErrorMessage is sent when the peer must be told something went wrong.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool // If true, the connection should be closed
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Code.String() + ": " + em.Message
	}
	return em.Code.String() + ": " + em.Message
}

// EncodeErrorMessage encodes an ErrorMessage into a frame.
func EncodeErrorMessage(em *ErrorMessage) *Frame {
	w := NewWriter()
	w.WriteUint16(uint16(em.Code))
	w.WriteString(em.Message)
	w.WriteBool(em.Fatal)
	return &Frame{Type: FrameError, Payload: w.Bytes()}
}

// DecodeErrorMessage decodes an ErrorMessage from a frame payload.
func DecodeErrorMessage(payload []byte) (*ErrorMessage, error) {
	r := NewReader(payload)
	code, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	message, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: message, Fatal: fatal}, nil
}
