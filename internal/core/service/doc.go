// Package service provides the domain services of Diorite.
//
// LookupService resolves material references, lists the registry and
// records every resolved material in a runtime palette. It has no IO
// dependencies and is safe for concurrent use.
//
// Errors are domain errors:
//
//   - domain.ErrMaterialNotFound when no id or name matches
//   - domain.ErrVariantNotFound when the id exists but the sub-type does not
//   - domain.ErrInvalidArgument for malformed references and filters
package service
