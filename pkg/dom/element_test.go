package dom

import (
	"reflect"
	"testing"
)

// buildElement builds a single element under the root and returns its view.
func buildElement(t *testing.T, name QName, attrs ...Attribute) ElementNode {
	t.Helper()
	b := NewTreeBuilder()
	ref := b.AppendElement(b.Root(), name, attrs...)
	tree := b.Build()
	el, ok := AsElement(tree.Node(ref))
	if !ok {
		t.Fatal("AsElement failed for element node")
	}
	return el
}

func TestAsElementRejectsNonElements(t *testing.T) {
	b := NewTreeBuilder()
	leaf := b.AppendLeaf(b.Root(), "text")
	tree := b.Build()

	if _, ok := AsElement(tree.Root()); ok {
		t.Error("AsElement ok for root")
	}
	if _, ok := AsElement(tree.Node(leaf)); ok {
		t.Error("AsElement ok for leaf")
	}
}

func TestTagAndNamespace(t *testing.T) {
	el := buildElement(t, Name("button"))
	if got := el.Tag(); got != "button" {
		t.Errorf("Tag() = %q, want %q", got, "button")
	}
	if ns, ok := el.Namespace(); ok {
		t.Errorf("Namespace() = %q, true; want false", ns)
	}

	el = buildElement(t, SpacedName("svg", "path"))
	if got := el.Tag(); got != "path" {
		t.Errorf("Tag() = %q, want %q", got, "path")
	}
	ns, ok := el.Namespace()
	if !ok || ns != "svg" {
		t.Errorf("Namespace() = %q, %v; want %q, true", ns, ok, "svg")
	}
}

func TestAttributeLookup(t *testing.T) {
	el := buildElement(t, Name("div"),
		Attr("class", "card"),
		AttrNS("data", "k", "spaced"),
		MarkerAttr("disabled"),
	)

	tests := []struct {
		name    string
		lookup  QName
		wantVal string
		wantOK  bool
	}{
		{"present", Name("class"), "card", true},
		{"absent", Name("missing"), "", false},
		{"qualified hit", SpacedName("data", "k"), "spaced", true},
		{"unqualified misses qualified", Name("k"), "", false},
		{"qualified misses unqualified", SpacedName("data", "class"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := el.Attribute(tt.lookup)
			if ok != tt.wantOK {
				t.Fatalf("Attribute(%v) ok = %v, want %v", tt.lookup, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got, _ := a.Val(); got != tt.wantVal {
				t.Errorf("Attribute(%v) value = %q, want %q", tt.lookup, got, tt.wantVal)
			}
		})
	}

	// Present without a value: lookup succeeds, value does not.
	a, ok := el.Attribute(Name("disabled"))
	if !ok {
		t.Fatal("Attribute(disabled) not found")
	}
	if _, ok := a.Val(); ok {
		t.Error("Val() ok for valueless attribute")
	}
	if _, ok := el.AttributeValue(Name("disabled")); ok {
		t.Error("AttributeValue() ok for valueless attribute")
	}
}

func TestAttributeFirstMatchWins(t *testing.T) {
	el := buildElement(t, Name("div"), Attr("k", "1"), Attr("k", "2"))

	got, ok := el.AttributeValue(Name("k"))
	if !ok || got != "1" {
		t.Errorf("AttributeValue(k) = %q, %v; want %q, true", got, ok, "1")
	}
	if got := len(el.Attributes()); got != 2 {
		t.Errorf("Attributes() len = %d, want 2 (duplicates preserved)", got)
	}
}

func TestAttributeBoolean(t *testing.T) {
	el := buildElement(t, Name("input"),
		Attr("checked", "true"),
		Attr("readonly", "false"),
		MarkerAttr("disabled"),
	)

	tests := []struct {
		name string
		attr QName
		want bool
	}{
		{"absent", Name("missing"), false},
		{"value true", Name("checked"), true},
		// Presence wins even with an explicit "false": markup boolean
		// semantics, kept on purpose.
		{"value false", Name("readonly"), true},
		{"no value", Name("disabled"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := el.AttributeBoolean(tt.attr); got != tt.want {
				t.Errorf("AttributeBoolean(%v) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestElementChildrenAndInnerText(t *testing.T) {
	b := NewTreeBuilder()
	parent := b.AppendElement(b.Root(), Name("div"))
	b.AppendLeaf(parent, "a")
	el := b.AppendElement(parent, Name("b"))
	b.AppendLeaf(el, "nested") // inside <b>, must not leak into parent's text
	b.AppendLeaf(parent, "c")
	tree := b.Build()

	div, _ := AsElement(tree.Node(parent))

	kids := div.ElementChildren()
	if len(kids) != 1 || kids[0].Tag() != "b" {
		t.Fatalf("ElementChildren() = %v, want single <b>", kids)
	}
	if kids[0].Ref() != el {
		t.Errorf("ElementChildren()[0].Ref() = %v, want %v", kids[0].Ref(), el)
	}

	if got := div.InnerText(); got != "a c" {
		t.Errorf("InnerText() = %q, want %q", got, "a c")
	}

	// Unfiltered traversal yields all three direct children.
	if got := len(div.Children().Collect()); got != 3 {
		t.Errorf("Children() yielded %d refs, want 3", got)
	}
}

func TestInnerTextVerbatim(t *testing.T) {
	b := NewTreeBuilder()
	parent := b.AppendElement(b.Root(), Name("p"))
	b.AppendLeaf(parent, "  spaced  ")
	b.AppendLeaf(parent, "\ttabbed")
	tree := b.Build()

	div, _ := AsElement(tree.Node(parent))
	if got, want := div.InnerText(), "  spaced   \ttabbed"; got != want {
		t.Errorf("InnerText() = %q, want %q", got, want)
	}
}

func TestInnerTextEmpty(t *testing.T) {
	el := buildElement(t, Name("div"))
	if got := el.InnerText(); got != "" {
		t.Errorf("InnerText() = %q, want empty", got)
	}
}

func TestValuePayload(t *testing.T) {
	el := buildElement(t, Name("button"),
		Attr("phx-value-x", "1"),
		Attr("phx-value-y", "2"),
		Attr("other", "3"),
		AttrNS("ns", "phx-value-z", "qualified, ignored"),
		MarkerAttr("phx-value-empty"),
	)

	got := el.ValuePayload()
	want := map[string]string{"x": "1", "y": "2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValuePayload() = %v, want %v", got, want)
	}
}

func TestValuePayloadLastWriteWins(t *testing.T) {
	el := buildElement(t, Name("button"),
		Attr("phx-value-x", "1"),
		Attr("phx-value-x", "2"),
	)

	got := el.ValuePayload()
	if got["x"] != "2" {
		t.Errorf(`ValuePayload()["x"] = %q, want "2" (fold into map, last wins)`, got["x"])
	}
}

func TestElementNodeIsCopyable(t *testing.T) {
	el := buildElement(t, Name("div"), Attr("k", "v"))
	cp := el
	if cp.Ref() != el.Ref() || cp.Tag() != el.Tag() {
		t.Error("copied ElementNode differs from original")
	}
}
