// Package main provides the entry point for diorite-server.
//
// diorite-server serves the Minecraft 1.8 material registry over HTTP.
// It keeps a runtime palette of looked-up materials, exposes Prometheus
// metrics, and can check the compiled-in registry against a snapshot kept
// in a Badger store.
//
// Usage:
//
//	diorite-server -config /etc/diorite/server.yaml
//	DIORITE_SERVER_HTTP_ADDR=0.0.0.0:5090 diorite-server
//
// The log level is re-read when the config file changes.
package main
