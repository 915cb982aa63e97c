// Package httpserver serves the diorite lookup API over HTTP or HTTPS.
//
// NewRouter wires handler.Handler behind the middleware chain
// (Recover, RequestID, RateLimit, Audit) and exposes /metrics.
package httpserver
