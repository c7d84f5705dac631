// Package service contains the catalog and voting use cases. It orchestrates
// validation, the restaurant and meal stores (defined in internal/store) and the
// list cache policy, and reports failures in the domain error taxonomy.
//
// Every operation follows the same shape: check the input, resolve the
// referenced entities, mutate, persist, and invalidate the list cache after the
// write succeeded. Input shape is always checked before any store access.
//
// The service layer depends on domain entities and store interfaces, never on a
// specific storage implementation.
package service
