// Package memory provides in-process implementations of the store interfaces.
// They enforce the same uniqueness and ownership rules as the PostgreSQL schema,
// and back the service when the database driver is "memory" and in tests.
package memory
