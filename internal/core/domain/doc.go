// Package domain defines the core domain models for Diorite.
//
// Domain models are plain values without IO dependencies:
//
//   - MaterialRecord: a flattened, serialisable view of one material sub-type
//   - Query and Filter: lookup requests accepted by the service layer
//   - Errors: coded domain errors shared by the HTTP and CLI surfaces
package domain
