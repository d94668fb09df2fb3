package dom

import "strings"

// ValuePrefix is the attribute prefix collected by ValuePayload.
const ValuePrefix = "phx-value-"

// ElementNode is the element-only view of a node: the wrapped ref plus
// the element payload. It holds no tree data itself and is freely
// copyable; it stays valid as long as its Tree does (caller contract,
// no defensive check).
type ElementNode struct {
	tree *Tree
	ref  NodeRef
	data *ElementData
}

// AsElement wraps a node as an ElementNode, or returns false for root
// and leaf nodes.
func AsElement(n Node) (ElementNode, bool) {
	data, ok := n.Element()
	if !ok {
		return ElementNode{}, false
	}
	return ElementNode{tree: n.tree, ref: n.ref, data: data}, true
}

// Ref returns the identity of the wrapped node.
func (e ElementNode) Ref() NodeRef {
	return e.ref
}

// Node returns the plain node handle for the wrapped element.
func (e ElementNode) Node() Node {
	return Node{tree: e.tree, ref: e.ref}
}

// Tag returns the local tag name.
func (e ElementNode) Tag() string {
	return e.data.Name.Local
}

// Namespace returns the tag namespace, or false for unqualified tags.
func (e ElementNode) Namespace() (string, bool) {
	if e.data.Name.Space == "" {
		return "", false
	}
	return e.data.Name.Space, true
}

// Attributes returns the attribute list in document order, duplicates
// preserved. The slice is shared with the tree; do not modify.
func (e ElementNode) Attributes() []Attribute {
	return e.data.Attrs
}

// Attribute returns the first attribute in document order whose name
// equals the given one. Both namespace and local name must match; no
// namespace is a distinct value from any namespace string.
func (e ElementNode) Attribute(name QName) (Attribute, bool) {
	for _, a := range e.data.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// AttributeValue returns the value of the named attribute. The second
// result is false when the attribute is absent or present with no value.
func (e ElementNode) AttributeValue(name QName) (string, bool) {
	a, ok := e.Attribute(name)
	if !ok {
		return "", false
	}
	return a.Val()
}

// AttributeBoolean implements boolean-attribute semantics: false only
// when the attribute is entirely absent. Any presence counts as true,
// including the explicit value "false" — matching how markup boolean
// attributes behave, where <input disabled="false"> is still disabled.
func (e ElementNode) AttributeBoolean(name QName) bool {
	_, ok := e.Attribute(name)
	return ok
}

// Children returns a fresh iterator over the element's direct children,
// elements and leaves interleaved.
func (e ElementNode) Children() *ChildIterator {
	return e.tree.Children(e.ref)
}

// DepthFirstChildren returns a fresh pre-order iterator over all
// descendants, excluding the element itself.
func (e ElementNode) DepthFirstChildren() *DepthFirstIterator {
	return e.tree.DepthFirst(e.ref)
}

// ElementChildren returns the direct children of element kind, in
// document order. Leaf children are skipped silently.
func (e ElementNode) ElementChildren() []ElementNode {
	var out []ElementNode
	it := e.Children()
	for ref, ok := it.Next(); ok; ref, ok = it.Next() {
		if el, ok := AsElement(e.tree.Node(ref)); ok {
			out = append(out, el)
		}
	}
	return out
}

// InnerText concatenates the text of every direct leaf child in document
// order, joined with a single space. Nested elements contribute nothing
// and leaf text is taken verbatim; no markup whitespace normalization
// is applied.
func (e ElementNode) InnerText() string {
	var sb strings.Builder
	first := true
	it := e.Children()
	for ref, ok := it.Next(); ok; ref, ok = it.Next() {
		text, ok := e.tree.Node(ref).Text()
		if !ok {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		first = false
	}
	return sb.String()
}

// ValuePayload collects the unqualified attributes whose name starts
// with ValuePrefix into a map keyed by the name with the prefix
// stripped. Later attributes overwrite earlier ones on a key collision.
// Attributes present without a value are skipped.
func (e ElementNode) ValuePayload() map[string]string {
	payload := make(map[string]string)
	for _, a := range e.data.Attrs {
		if a.Name.Space != "" || !strings.HasPrefix(a.Name.Local, ValuePrefix) {
			continue
		}
		v, ok := a.Val()
		if !ok {
			continue
		}
		payload[strings.TrimPrefix(a.Name.Local, ValuePrefix)] = v
	}
	return payload
}
