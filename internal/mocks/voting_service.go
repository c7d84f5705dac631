package mocks

import (
	"context"
	"sync"
)

// MockVotingService implements service.VotingService for testing
type MockVotingService struct {
	VoteFn       func(ctx context.Context, id int64) (int, error)
	ClearVotesFn func(ctx context.Context) error

	// Default response values
	Votes int
	Err   error

	// Call tracking for verification
	VoteCalls struct {
		mu  sync.Mutex
		IDs []int64
	}
	ClearCalls int
}

// VoteForRestaurantByID implements service.VotingService
func (m *MockVotingService) VoteForRestaurantByID(ctx context.Context, id int64) (int, error) {
	m.VoteCalls.mu.Lock()
	m.VoteCalls.IDs = append(m.VoteCalls.IDs, id)
	m.VoteCalls.mu.Unlock()

	if m.VoteFn != nil {
		return m.VoteFn(ctx, id)
	}
	return m.Votes, m.Err
}

// ClearAllVotes implements service.VotingService
func (m *MockVotingService) ClearAllVotes(ctx context.Context) error {
	m.ClearCalls++
	if m.ClearVotesFn != nil {
		return m.ClearVotesFn(ctx)
	}
	return m.Err
}

// VotedIDs returns the restaurant ids passed to VoteForRestaurantByID.
func (m *MockVotingService) VotedIDs() []int64 {
	m.VoteCalls.mu.Lock()
	defer m.VoteCalls.mu.Unlock()
	return append([]int64(nil), m.VoteCalls.IDs...)
}
