// Package api handles incoming HTTP requests, request decoding and validation,
// and response formatting. It adapts the catalog and voting services to HTTP:
// handlers translate the domain error taxonomy into status codes and never
// expose internal error details to clients.
package api
