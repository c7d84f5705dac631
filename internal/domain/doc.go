// Package domain contains the core business entities of the restaurant catalog:
// restaurants, the meals they own, and the value objects used to page and sort
// them. It also holds the validation rules and the error taxonomy shared by every
// layer above it. The package is independent of any storage or delivery mechanism.
package domain
