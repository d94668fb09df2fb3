package server

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/domkit-dev/domkit/pkg/dom"
	"github.com/domkit-dev/domkit/pkg/protocol"
)

// ErrNotFound is returned when a document name is unknown.
var ErrNotFound = errors.New("server: document not found")

// Document is one named, versioned document held in its encoded form.
type Document struct {
	Name      string
	Payload   []byte // Encoded wire form (protocol.EncodeDocument)
	Nodes     int    // Node count of the decoded tree, root included
	Version   uint64 // Monotonic per name, starting at 1
	UpdatedAt time.Time
}

// Store holds documents by name. Publishing replaces the whole
// document — trees are immutable, so an update is a new tree, not a
// mutation of the old one. All methods are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document

	// onPublish is notified after every successful publish; wired to
	// the hub broadcast by the server.
	onPublish func(doc *Document)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Publish encodes tree and stores it under name, bumping the version.
func (s *Store) Publish(name string, tree *dom.Tree) *Document {
	return s.publish(name, protocol.EncodeDocument(tree), tree.Len())
}

// PublishEncoded stores an already-encoded payload under name. The
// payload is decoded once to validate it and count nodes.
func (s *Store) PublishEncoded(name string, payload []byte) (*Document, error) {
	tree, err := protocol.DecodeDocument(payload)
	if err != nil {
		return nil, err
	}
	return s.publish(name, payload, tree.Len()), nil
}

func (s *Store) publish(name string, payload []byte, nodes int) *Document {
	s.mu.Lock()
	version := uint64(1)
	if prev, ok := s.docs[name]; ok {
		version = prev.Version + 1
	}
	doc := &Document{
		Name:      name,
		Payload:   payload,
		Nodes:     nodes,
		Version:   version,
		UpdatedAt: time.Now(),
	}
	s.docs[name] = doc
	notify := s.onPublish
	s.mu.Unlock()

	if notify != nil {
		notify(doc)
	}
	return doc
}

// Get returns the current version of the named document.
func (s *Store) Get(name string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// List returns all documents sorted by name.
func (s *Store) List() []*Document {
	s.mu.RLock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) setOnPublish(fn func(doc *Document)) {
	s.mu.Lock()
	s.onPublish = fn
	s.mu.Unlock()
}
