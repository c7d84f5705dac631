// Package store defines the persistence contracts of the restaurant catalog.
// The interfaces here keep the service layer independent of the storage engine;
// implementations live under internal/platform (PostgreSQL and in-memory).
package store
