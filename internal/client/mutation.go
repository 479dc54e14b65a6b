package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MutationState is where an optimistic mutation stands
type MutationState int

const (
	MutationIdle MutationState = iota
	MutationPending
	MutationConfirmed
	MutationRejected
)

func (s MutationState) String() string {
	switch s {
	case MutationIdle:
		return "idle"
	case MutationPending:
		return "pending"
	case MutationConfirmed:
		return "confirmed"
	case MutationRejected:
		return "rejected"
	}
	return "unknown"
}

// ErrMutationPending is returned by Run while an earlier run is in flight
var ErrMutationPending = errors.New("mutation already pending")

// Mutation applies a local edit to one cache entry before the server confirms it.
// If the server rejects the change the entry is rolled back to its snapshot.
type Mutation struct {
	cache *Cache
	key   Key

	mu    sync.Mutex
	state MutationState
	err   error
}

func NewMutation(cache *Cache, key Key) *Mutation {
	return &Mutation{cache: cache, key: key}
}

func (m *Mutation) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err is the error of the last rejected run
func (m *Mutation) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Run applies the edit to the cache before returning, then calls send in a
// goroutine. The returned channel yields send's result once the state has
// moved to confirmed or rejected, and is then closed.
func (m *Mutation) Run(
	ctx context.Context,
	apply func(json.RawMessage) (json.RawMessage, error),
	send func(context.Context) error,
) (<-chan error, error) {
	m.mu.Lock()
	if m.state == MutationPending {
		m.mu.Unlock()
		return nil, ErrMutationPending
	}

	var snapshot, applied json.RawMessage
	err := m.cache.Mutate(m.key, func(current json.RawMessage) (json.RawMessage, error) {
		next, err := apply(current)
		if err != nil {
			return nil, err
		}
		snapshot, applied = current, next
		return next, nil
	})
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	m.state = MutationPending
	m.err = nil
	m.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)

		sendErr := send(ctx)

		m.mu.Lock()
		if sendErr != nil {
			m.rollback(snapshot, applied)
			m.state = MutationRejected
			m.err = sendErr
		} else {
			m.state = MutationConfirmed
		}
		m.mu.Unlock()

		done <- sendErr
	}()

	return done, nil
}

// rollback restores the snapshot unless the entry changed since the edit
func (m *Mutation) rollback(snapshot, applied json.RawMessage) {
	_ = m.cache.Mutate(m.key, func(current json.RawMessage) (json.RawMessage, error) {
		if !bytes.Equal(current, applied) {
			return current, nil
		}
		return snapshot, nil
	})
}
