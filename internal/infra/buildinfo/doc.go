// Package buildinfo reports the version of the running binary.
//
// Release builds inject values with ldflags:
//
//	go build -ldflags "-X github.com/dioritemc/diorite-go/internal/infra/buildinfo.Version=v0.3.0"
//
// Values left unset fall back to the module and VCS data the Go toolchain
// embeds in every binary.
package buildinfo
