package protocol

// ProtocolVersion is negotiated during the hello exchange.
const ProtocolVersion = 1

// Hello is the subscription handshake. The client sends its protocol
// version and the document name it wants; the server answers with its
// version and whether the subscription was accepted.
type Hello struct {
	Version  uint16
	Document string
	Accepted bool
	Reason   string // Set when Accepted is false
}

// NewClientHello builds the client side of the handshake.
func NewClientHello(document string) *Hello {
	return &Hello{Version: ProtocolVersion, Document: document}
}

// NewServerHello builds the server side of the handshake.
func NewServerHello(document string, accepted bool, reason string) *Hello {
	return &Hello{
		Version:  ProtocolVersion,
		Document: document,
		Accepted: accepted,
		Reason:   reason,
	}
}

// EncodeHello encodes a Hello into a frame.
func EncodeHello(h *Hello) *Frame {
	w := NewWriter()
	w.WriteUint16(h.Version)
	w.WriteString(h.Document)
	w.WriteBool(h.Accepted)
	w.WriteString(h.Reason)
	return &Frame{Type: FrameHello, Payload: w.Bytes()}
}

// DecodeHello decodes a Hello from a frame payload.
func DecodeHello(payload []byte) (*Hello, error) {
	r := NewReader(payload)
	version, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	document, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	accepted, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	reason, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &Hello{
		Version:  version,
		Document: document,
		Accepted: accepted,
		Reason:   reason,
	}, nil
}
