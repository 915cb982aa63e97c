// Package connection is the diorite-server client used by diorite-cli
// when --server is set.
//
// HTTPClient speaks the raw API and unwraps the response envelope.
// Client exposes the same lookup operations as the local service, so
// commands can use either.
package connection
