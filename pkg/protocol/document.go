package protocol

import (
	"errors"
	"fmt"

	"github.com/domkit-dev/domkit/pkg/dom"
)

// DocumentVersion is the current document encoding version.
const DocumentVersion = 1

// Node kind markers on the wire.
const (
	wireElement byte = 0x00
	wireLeaf    byte = 0x01
)

// Document decoding errors.
var (
	ErrBadVersion  = errors.New("protocol: unsupported document version")
	ErrBadNodeKind = errors.New("protocol: invalid node kind")
)

// EncodeDocument serializes a tree. The synthetic root is implicit: the
// payload is a version byte, the root's child count, then each child
// subtree pre-order.
func EncodeDocument(t *dom.Tree) []byte {
	w := NewWriter()
	w.WriteByte(DocumentVersion)
	encodeChildren(w, t, dom.RootRef)
	return w.Bytes()
}

// DocumentFrame wraps an encoded document payload in a Document frame.
func DocumentFrame(payload []byte) *Frame {
	return &Frame{Type: FrameDocument, Flags: FlagFinal, Payload: payload}
}

func encodeChildren(w *Writer, t *dom.Tree, ref dom.NodeRef) {
	children := t.Children(ref).Collect()
	w.WriteUvarint(uint64(len(children)))
	for _, child := range children {
		encodeNode(w, t, child)
	}
}

func encodeNode(w *Writer, t *dom.Tree, ref dom.NodeRef) {
	n := t.Node(ref)
	if text, ok := n.Text(); ok {
		w.WriteByte(wireLeaf)
		w.WriteString(text)
		return
	}
	data, _ := n.Element()
	w.WriteByte(wireElement)
	w.WriteString(data.Name.Space)
	w.WriteString(data.Name.Local)
	w.WriteUvarint(uint64(len(data.Attrs)))
	for _, a := range data.Attrs {
		w.WriteString(a.Name.Space)
		w.WriteString(a.Name.Local)
		if v, ok := a.Val(); ok {
			w.WriteBool(true)
			w.WriteString(v)
		} else {
			w.WriteBool(false)
		}
	}
	encodeChildren(w, t, ref)
}

// DecodeDocument rebuilds a tree from an encoded document payload.
func DecodeDocument(payload []byte) (*dom.Tree, error) {
	r := NewReader(payload)
	version, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != DocumentVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	b := dom.NewTreeBuilder()
	if err := decodeChildren(r, b, b.Root(), 0); err != nil {
		return nil, err
	}
	if !r.EOF() {
		return nil, fmt.Errorf("protocol: %d trailing bytes after document", r.Remaining())
	}
	return b.Build(), nil
}

func decodeChildren(r *Reader, b *dom.TreeBuilder, parent dom.NodeRef, depth int) error {
	if depth > MaxDocumentDepth {
		return ErrTooDeep
	}
	count, err := r.ReadCount()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := decodeNode(r, b, parent, depth); err != nil {
			return err
		}
	}
	return nil
}

func decodeNode(r *Reader, b *dom.TreeBuilder, parent dom.NodeRef, depth int) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	switch kind {
	case wireLeaf:
		text, err := r.ReadString()
		if err != nil {
			return err
		}
		b.AppendLeaf(parent, text)
		return nil

	case wireElement:
		space, err := r.ReadString()
		if err != nil {
			return err
		}
		local, err := r.ReadString()
		if err != nil {
			return err
		}
		attrCount, err := r.ReadCount()
		if err != nil {
			return err
		}
		var attrs []dom.Attribute
		if attrCount > 0 {
			attrs = make([]dom.Attribute, 0, attrCount)
		}
		for i := 0; i < attrCount; i++ {
			a, err := decodeAttribute(r)
			if err != nil {
				return err
			}
			attrs = append(attrs, a)
		}
		ref := b.AppendElement(parent, dom.QName{Space: space, Local: local}, attrs...)
		return decodeChildren(r, b, ref, depth+1)

	default:
		return fmt.Errorf("%w: 0x%02x", ErrBadNodeKind, kind)
	}
}

func decodeAttribute(r *Reader) (dom.Attribute, error) {
	space, err := r.ReadString()
	if err != nil {
		return dom.Attribute{}, err
	}
	local, err := r.ReadString()
	if err != nil {
		return dom.Attribute{}, err
	}
	hasValue, err := r.ReadBool()
	if err != nil {
		return dom.Attribute{}, err
	}
	a := dom.Attribute{Name: dom.QName{Space: space, Local: local}}
	if hasValue {
		v, err := r.ReadString()
		if err != nil {
			return dom.Attribute{}, err
		}
		a.Value = &v
	}
	return a, nil
}
