// Package types defines the Item entity, the Backend key-value interface,
// backend configuration, and the standard error values for dryrack.
//
// The Item Store in internal/rack owns the collection; backends in
// internal/storage implement Backend.
package types
