package dom

import (
	"reflect"
	"testing"
)

// buildNested returns the tree A{ B{ C }, D } rooted under the synthetic
// root, along with the refs in creation order.
func buildNested(t *testing.T) (*Tree, []NodeRef) {
	t.Helper()
	b := NewTreeBuilder()
	a := b.AppendElement(b.Root(), Name("a"))
	bb := b.AppendElement(a, Name("b"))
	c := b.AppendElement(bb, Name("c"))
	d := b.AppendElement(a, Name("d"))
	return b.Build(), []NodeRef{a, bb, c, d}
}

func TestChildrenOrder(t *testing.T) {
	b := NewTreeBuilder()
	parent := b.AppendElement(b.Root(), Name("div"))
	a := b.AppendLeaf(parent, "a")
	el := b.AppendElement(parent, Name("b"))
	c := b.AppendLeaf(parent, "c")
	tree := b.Build()

	got := tree.Children(parent).Collect()
	want := []NodeRef{a, el, c}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Children() = %v, want %v", got, want)
	}
}

func TestChildrenEmpty(t *testing.T) {
	b := NewTreeBuilder()
	div := b.AppendElement(b.Root(), Name("div"))
	tree := b.Build()

	if got := tree.Children(div).Collect(); got != nil {
		t.Errorf("Children() of empty element = %v, want nil", got)
	}
}

func TestDepthFirstPreOrder(t *testing.T) {
	tree, refs := buildNested(t)
	a, bb, c, d := refs[0], refs[1], refs[2], refs[3]

	got := tree.DepthFirst(a).Collect()
	want := []NodeRef{bb, c, d}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DepthFirst(a) = %v, want %v", got, want)
	}
}

func TestDepthFirstFromRoot(t *testing.T) {
	tree, refs := buildNested(t)

	got := tree.DepthFirst(RootRef).Collect()
	want := refs // a, b, c, d — pre-order from the root
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DepthFirst(root) = %v, want %v", got, want)
	}
}

func TestDepthFirstLeafIsEmpty(t *testing.T) {
	b := NewTreeBuilder()
	leaf := b.AppendLeaf(b.Root(), "text")
	tree := b.Build()

	if got := tree.DepthFirst(leaf).Collect(); got != nil {
		t.Errorf("DepthFirst(leaf) = %v, want nil", got)
	}
}

func TestTraversalRestartable(t *testing.T) {
	tree, refs := buildNested(t)
	a := refs[0]

	first := tree.DepthFirst(a).Collect()
	second := tree.DepthFirst(a).Collect()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("restarted DepthFirst = %v, want %v", second, first)
	}

	c1 := tree.Children(a).Collect()
	c2 := tree.Children(a).Collect()
	if !reflect.DeepEqual(c1, c2) {
		t.Errorf("restarted Children = %v, want %v", c2, c1)
	}
}

func TestTraversalIteratorsIndependent(t *testing.T) {
	tree, refs := buildNested(t)
	a := refs[0]

	it1 := tree.DepthFirst(a)
	it2 := tree.DepthFirst(a)

	// Advancing it1 must not disturb it2.
	it1.Next()
	it1.Next()
	got, ok := it2.Next()
	if !ok || got != refs[1] {
		t.Errorf("second iterator first item = %v, %v; want %v, true", got, ok, refs[1])
	}
}

func TestNextAfterExhaustion(t *testing.T) {
	b := NewTreeBuilder()
	div := b.AppendElement(b.Root(), Name("div"))
	tree := b.Build()

	it := tree.Children(div)
	if _, ok := it.Next(); ok {
		t.Fatal("Next() ok on empty iterator")
	}
	if _, ok := it.Next(); ok {
		t.Error("Next() ok after exhaustion")
	}
}

func TestDepthFirstWideTree(t *testing.T) {
	// A deliberately deep chain: traversal must not depend on call-stack
	// recursion.
	b := NewTreeBuilder()
	parent := b.Root()
	const depth = 10000
	var want []NodeRef
	for i := 0; i < depth; i++ {
		parent = b.AppendElement(parent, Name("n"))
		want = append(want, parent)
	}
	tree := b.Build()

	got := tree.DepthFirst(RootRef).Collect()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("deep chain traversal yielded %d nodes, want %d", len(got), len(want))
	}
}
