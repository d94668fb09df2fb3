// Package server serves Domkit documents over HTTP and WebSocket.
//
// A Store holds named, versioned documents in their encoded wire form.
// Publishing a new version broadcasts a Document frame to every live
// subscriber of that name. The HTTP surface is a chi router: fetch and
// list endpoints, a WebSocket subscription endpoint speaking the
// protocol package's frames, a health check, and Prometheus metrics.
//
// Documents can be seeded from a directory of markup files or pulled
// from an S3 bucket via S3Source.
package server
