// Package repl implements the interactive shell of diorite-cli.
//
// Each line is split into arguments and handed to an Executor, normally
// the CLI application itself. The shell keeps a persistent history and
// offers prefix completion over the known command names.
package repl
