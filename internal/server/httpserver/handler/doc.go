// Package handler implements the diorite-server HTTP API.
//
// Every JSON response uses the Response envelope. Errors carry the
// DomainError code both in the body and in the X-Error-Code header.
package handler
