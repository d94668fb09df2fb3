package dom

import "fmt"

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindRoot    NodeKind = iota // Synthetic document root
	KindElement                 // Tagged element with attributes
	KindLeaf                    // Plain text, never has children
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindElement:
		return "Element"
	case KindLeaf:
		return "Leaf"
	default:
		return "Unknown"
	}
}

// NodeRef is a stable opaque identifier for a node within one Tree.
// It is freely copyable and remains valid for the lifetime of the Tree.
// The root of every Tree is RootRef.
type NodeRef uint32

// RootRef is the NodeRef of the synthetic root node.
const RootRef NodeRef = 0

// noRef marks the absence of a link in the arena.
const noRef NodeRef = ^NodeRef(0)

// nodeRecord is one arena slot. Links use noRef for absence.
type nodeRecord struct {
	kind        NodeKind
	parent      NodeRef
	firstChild  NodeRef
	lastChild   NodeRef
	nextSibling NodeRef
	elem        *ElementData // KindElement only
	text        string       // KindLeaf only
}

// Tree owns the full node arena and the parent/child/sibling links.
// It is built once via TreeBuilder and read-only afterwards, which makes
// it safe for any number of concurrent readers.
type Tree struct {
	nodes []nodeRecord
}

// Len returns the number of nodes in the tree, including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the handle of the synthetic root node.
func (t *Tree) Root() Node {
	return Node{tree: t, ref: RootRef}
}

// Node resolves a NodeRef to a handle in O(1). Resolving a ref that does
// not belong to this tree is a contract violation and panics.
func (t *Tree) Node(ref NodeRef) Node {
	t.check(ref)
	return Node{tree: t, ref: ref}
}

// check panics when ref is outside the arena. Refs are never handed out
// for slots that don't exist, so hitting this means a ref from another
// tree (or a torn-down one) leaked in.
func (t *Tree) check(ref NodeRef) {
	if int(ref) >= len(t.nodes) {
		panic(fmt.Sprintf("dom: NodeRef %d out of range for tree of %d nodes", ref, len(t.nodes)))
	}
}

func (t *Tree) record(ref NodeRef) *nodeRecord {
	t.check(ref)
	return &t.nodes[ref]
}

// Node is a lightweight handle pairing a Tree with a NodeRef.
// It holds no node data of its own.
type Node struct {
	tree *Tree
	ref  NodeRef
}

// Ref returns the node's identifier.
func (n Node) Ref() NodeRef {
	return n.ref
}

// Tree returns the owning tree.
func (n Node) Tree() *Tree {
	return n.tree
}

// Kind returns the node's kind.
func (n Node) Kind() NodeKind {
	return n.tree.record(n.ref).kind
}

// Element returns the element payload, or false for non-element nodes.
func (n Node) Element() (*ElementData, bool) {
	rec := n.tree.record(n.ref)
	if rec.kind != KindElement {
		return nil, false
	}
	return rec.elem, true
}

// Text returns the leaf text, or false for non-leaf nodes.
func (n Node) Text() (string, bool) {
	rec := n.tree.record(n.ref)
	if rec.kind != KindLeaf {
		return "", false
	}
	return rec.text, true
}

// Parent returns the parent handle, or false for the root.
func (n Node) Parent() (Node, bool) {
	if n.ref == RootRef {
		return Node{}, false
	}
	return Node{tree: n.tree, ref: n.tree.record(n.ref).parent}, true
}

// Children returns a fresh iterator over the node's direct children.
func (n Node) Children() *ChildIterator {
	return n.tree.Children(n.ref)
}

// DepthFirst returns a fresh pre-order iterator over all descendants.
func (n Node) DepthFirst() *DepthFirstIterator {
	return n.tree.DepthFirst(n.ref)
}
