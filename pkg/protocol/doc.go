// Package protocol implements the binary wire format for Domkit
// documents.
//
// A document is a dom.Tree serialized pre-order: one kind byte per
// node, qualified names and attributes as length-prefixed strings, and
// child counts as uvarints. Decoding rebuilds the tree through
// dom.TreeBuilder, so node identity, attribute order, duplicates and
// valueless attributes all survive a round trip.
//
// Frames wrap payloads for transport: a 6-byte header (type, flags,
// big-endian length) followed by the payload. Hello frames carry the
// subscription handshake, Document frames carry encoded trees, Control
// frames carry ping/pong/resync, Error frames carry ErrorMessage.
//
// All decoding paths are bounds-checked and enforce allocation,
// collection and depth limits, since frames arrive from the network.
package protocol
