// Package cache holds the restaurant list cache and the policy deciding which
// mutations invalidate it.
//
// Only paginated list results are cached. Every successful mutation clears the
// whole cache before it returns, so a list read that follows a write always
// observes that write.
package cache
