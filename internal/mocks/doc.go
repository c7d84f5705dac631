// Package mocks provides test doubles for the store and service interfaces.
//
// Store mocks are built on testify/mock and are meant for expectation-driven
// service tests. Service mocks use function fields with call tracking, which
// keeps HTTP handler tests free of expectation setup.
package mocks
