// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles query execution, constraint error mapping, and the mapping between
// domain entities and database records. The schema lives in the migrations
// subpackage.
package postgres
