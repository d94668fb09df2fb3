package server

import (
	"errors"
	"testing"

	"github.com/domkit-dev/domkit/pkg/dom"
	"github.com/domkit-dev/domkit/pkg/protocol"
)

func testTree(text string) *dom.Tree {
	b := dom.NewTreeBuilder()
	div := b.AppendElement(b.Root(), dom.Name("div"))
	b.AppendLeaf(div, text)
	return b.Build()
}

func TestStorePublishAndGet(t *testing.T) {
	s := NewStore()

	doc := s.Publish("home", testTree("v1"))
	if doc.Version != 1 {
		t.Errorf("first version = %d, want 1", doc.Version)
	}
	if doc.Nodes != 3 {
		t.Errorf("node count = %d, want 3", doc.Nodes)
	}

	doc = s.Publish("home", testTree("v2"))
	if doc.Version != 2 {
		t.Errorf("second version = %d, want 2", doc.Version)
	}

	got, err := s.Get("home")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	tree, err := protocol.DecodeDocument(got.Payload)
	if err != nil {
		t.Fatalf("decode stored payload: %v", err)
	}
	el, _ := dom.AsElement(tree.Node(tree.Children(dom.RootRef).Collect()[0]))
	if text := el.InnerText(); text != "v2" {
		t.Errorf("stored document text = %q, want v2", text)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	s := NewStore()
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) = %v, want ErrNotFound", err)
	}
}

func TestStoreList(t *testing.T) {
	s := NewStore()
	s.Publish("b", testTree("b"))
	s.Publish("a", testTree("a"))
	s.Publish("a", testTree("a2"))

	docs := s.List()
	if len(docs) != 2 {
		t.Fatalf("List() len = %d, want 2", len(docs))
	}
	if docs[0].Name != "a" || docs[1].Name != "b" {
		t.Errorf("List() order = %s, %s; want a, b", docs[0].Name, docs[1].Name)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStorePublishEncoded(t *testing.T) {
	s := NewStore()
	payload := protocol.EncodeDocument(testTree("x"))

	doc, err := s.PublishEncoded("enc", payload)
	if err != nil {
		t.Fatalf("PublishEncoded error: %v", err)
	}
	if doc.Nodes != 3 {
		t.Errorf("node count = %d, want 3", doc.Nodes)
	}

	if _, err := s.PublishEncoded("bad", []byte{0xFF, 0x00}); err == nil {
		t.Error("PublishEncoded accepted a garbage payload")
	}
}

func TestStorePublishNotifies(t *testing.T) {
	s := NewStore()
	var got []string
	s.setOnPublish(func(doc *Document) { got = append(got, doc.Name) })

	s.Publish("x", testTree("1"))
	s.Publish("y", testTree("2"))
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("publish notifications = %v, want [x y]", got)
	}
}
