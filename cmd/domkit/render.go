package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/domkit-dev/domkit/pkg/dom"
)

// renderTree prints a document tree in treeprint form, one branch per
// element, with attribute summaries and quoted text leaves.
func renderTree(t *dom.Tree) string {
	root := treeprint.NewWithRoot("document")
	renderChildren(t, dom.RootRef, root)
	return root.String()
}

func renderChildren(t *dom.Tree, ref dom.NodeRef, branch treeprint.Tree) {
	it := t.Children(ref)
	for child, ok := it.Next(); ok; child, ok = it.Next() {
		n := t.Node(child)
		if text, ok := n.Text(); ok {
			branch.AddNode(strconv.Quote(text))
			continue
		}
		el, _ := dom.AsElement(n)
		renderChildren(t, child, branch.AddBranch(elementLabel(el)))
	}
}

func elementLabel(el dom.ElementNode) string {
	var sb strings.Builder
	sb.WriteByte('<')
	if ns, ok := el.Namespace(); ok {
		sb.WriteString(ns)
		sb.WriteByte(':')
	}
	sb.WriteString(el.Tag())
	for _, a := range el.Attributes() {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// treeStats summarizes a tree for the inspect footer.
func treeStats(t *dom.Tree) string {
	elements, leaves := 0, 0
	it := t.DepthFirst(dom.RootRef)
	for ref, ok := it.Next(); ok; ref, ok = it.Next() {
		if t.Node(ref).Kind() == dom.KindElement {
			elements++
		} else {
			leaves++
		}
	}
	return fmt.Sprintf("%d elements, %d text leaves", elements, leaves)
}
