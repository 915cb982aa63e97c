// Package output renders diorite-cli results as tables, JSON, YAML or
// big-endian NBT.
package output
