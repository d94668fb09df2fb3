package dom

// TreeBuilder constructs a Tree in document order. It is the only way to
// create nodes; once Build is called the tree is frozen and the builder
// must not be reused.
//
// Builders are used by the markup parser and the wire decoder. Appends
// keep sibling order, so attribute and child order on the finished tree
// match the source document.
type TreeBuilder struct {
	tree  *Tree
	built bool
}

// NewTreeBuilder creates a builder holding a tree with just the root.
func NewTreeBuilder() *TreeBuilder {
	t := &Tree{nodes: make([]nodeRecord, 1, 16)}
	t.nodes[0] = nodeRecord{
		kind:        KindRoot,
		parent:      noRef,
		firstChild:  noRef,
		lastChild:   noRef,
		nextSibling: noRef,
	}
	return &TreeBuilder{tree: t}
}

// Root returns the ref of the root node, the parent for top-level appends.
func (b *TreeBuilder) Root() NodeRef {
	return RootRef
}

// AppendElement appends an element as the last child of parent and
// returns its ref. The attribute slice is retained as given, preserving
// document order and duplicates. Panics if parent is a leaf.
func (b *TreeBuilder) AppendElement(parent NodeRef, name QName, attrs ...Attribute) NodeRef {
	return b.append(parent, nodeRecord{
		kind: KindElement,
		elem: &ElementData{Name: name, Attrs: attrs},
	})
}

// AppendLeaf appends a text leaf as the last child of parent and returns
// its ref. Panics if parent is a leaf.
func (b *TreeBuilder) AppendLeaf(parent NodeRef, text string) NodeRef {
	return b.append(parent, nodeRecord{kind: KindLeaf, text: text})
}

func (b *TreeBuilder) append(parent NodeRef, rec nodeRecord) NodeRef {
	if b.built {
		panic("dom: TreeBuilder used after Build")
	}
	p := b.tree.record(parent)
	if p.kind == KindLeaf {
		panic("dom: cannot append child to a leaf node")
	}

	ref := NodeRef(len(b.tree.nodes))
	rec.parent = parent
	rec.firstChild = noRef
	rec.lastChild = noRef
	rec.nextSibling = noRef
	b.tree.nodes = append(b.tree.nodes, rec)

	// record pointer may be stale after append; re-resolve.
	p = b.tree.record(parent)
	if p.firstChild == noRef {
		p.firstChild = ref
	} else {
		b.tree.record(p.lastChild).nextSibling = ref
	}
	p.lastChild = ref
	return ref
}

// Build freezes and returns the tree.
func (b *TreeBuilder) Build() *Tree {
	b.built = true
	return b.tree
}
