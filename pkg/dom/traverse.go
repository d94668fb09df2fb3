package dom

// ChildIterator walks the direct children of one node in document order.
// It is a cursor over the sibling links: construction and each advance
// are O(1), and nothing is materialized up front.
type ChildIterator struct {
	tree *Tree
	next NodeRef
}

// Children returns a fresh iterator over ref's direct children. Calling
// it again from the same ref yields an independent, equivalent iterator.
func (t *Tree) Children(ref NodeRef) *ChildIterator {
	return &ChildIterator{tree: t, next: t.record(ref).firstChild}
}

// Next returns the next child ref, or false when exhausted.
func (it *ChildIterator) Next() (NodeRef, bool) {
	if it.next == noRef {
		return 0, false
	}
	ref := it.next
	it.next = it.tree.record(ref).nextSibling
	return ref, true
}

// Collect drains the iterator into a slice. Mostly useful in tests.
func (it *ChildIterator) Collect() []NodeRef {
	var refs []NodeRef
	for ref, ok := it.Next(); ok; ref, ok = it.Next() {
		refs = append(refs, ref)
	}
	return refs
}

// DepthFirstIterator walks all descendants of one node pre-order: a node
// is yielded before its children, children before later siblings. The
// start node itself is not yielded.
//
// The iterator keeps an explicit stack instead of recursing, so memory
// is bounded by tree depth and traversal needs no suspension machinery.
type DepthFirstIterator struct {
	tree  *Tree
	stack []NodeRef
}

// DepthFirst returns a fresh pre-order iterator over ref's descendants.
// Calling it again from the same ref yields an independent, equivalent
// iterator.
func (t *Tree) DepthFirst(ref NodeRef) *DepthFirstIterator {
	it := &DepthFirstIterator{tree: t}
	if first := t.record(ref).firstChild; first != noRef {
		it.stack = append(it.stack, first)
	}
	return it
}

// Next returns the next descendant ref, or false when exhausted.
func (it *DepthFirstIterator) Next() (NodeRef, bool) {
	if len(it.stack) == 0 {
		return 0, false
	}
	ref := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]

	rec := it.tree.record(ref)
	// Sibling below child so the child's subtree is visited first.
	if rec.nextSibling != noRef {
		it.stack = append(it.stack, rec.nextSibling)
	}
	if rec.firstChild != noRef {
		it.stack = append(it.stack, rec.firstChild)
	}
	return ref, true
}

// Collect drains the iterator into a slice. Mostly useful in tests.
func (it *DepthFirstIterator) Collect() []NodeRef {
	var refs []NodeRef
	for ref, ok := it.Next(); ok; ref, ok = it.Next() {
		refs = append(refs, ref)
	}
	return refs
}
