package material

import "errors"

var (
	// ErrMissingReference is returned by property constructors when a
	// required enum reference is nil.
	ErrMissingReference = errors.New("material: missing reference")

	// ErrInvalidDurability is returned for a non-positive durability.
	ErrInvalidDurability = errors.New("material: durability must be positive")

	// ErrUnknownMaterial is returned by Parse when nothing matches.
	ErrUnknownMaterial = errors.New("material: unknown material")

	// ErrInvalidSyntax is returned by Parse for malformed references.
	ErrInvalidSyntax = errors.New("material: invalid syntax")
)
