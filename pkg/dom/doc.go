// Package dom provides the parsed document tree for Domkit.
//
// A Tree is an immutable arena of nodes built once by a collaborator
// (the markup parser or the wire decoder) and then queried. Nodes are
// addressed by NodeRef, a stable opaque identifier, and come in three
// kinds: the synthetic root, elements, and text leaves.
//
// # Core Types
//
// Tree owns all node storage. Node is a lightweight handle resolving a
// NodeRef against its Tree. ElementNode is the element-only view used by
// consumers: it exposes the tag, namespace, the ordered attribute list,
// attribute lookup and decoding, child traversal, and text extraction.
//
// # Traversal
//
// Children and DepthFirst return cursor-based iterators over NodeRefs.
// Both are lazy, cheap to construct, and restartable: calling the
// producing method again yields an independent iterator with the same
// order. DepthFirst visits descendants pre-order and excludes the start
// node itself.
//
// # Attribute Decoding
//
// Decode parses a typed value out of an attribute. Any type with a
// pointer-receiver DecodeAttribute method can participate; the resolved
// attribute (nil when absent) and the owning ElementNode are passed as
// context, so decoders may consult sibling attributes.
//
// The tree is read-only after Build and safe for concurrent readers.
package dom
