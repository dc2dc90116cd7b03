package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"words-of-healing/internal/domain"
)

// DefaultSyncPoll is the fallback poll cadence for the shared unlock state.
const DefaultSyncPoll = 500 * time.Millisecond

// UnlockSync keeps a local copy of the host-controlled unlock state current
// against the external store. It listens on the store's push channel and
// independently polls at a fixed interval, so a silently dropped push channel
// still converges within one poll interval plus a round trip. Both channels
// apply into the same cache idempotently.
type UnlockSync struct {
	store        GameStateStore
	pollInterval time.Duration

	mu          sync.RWMutex
	state       domain.UnlockState
	subscribers map[chan domain.UnlockState]struct{}
}

func NewUnlockSync(store GameStateStore, pollInterval time.Duration) *UnlockSync {
	if pollInterval <= 0 {
		pollInterval = DefaultSyncPoll
	}
	return &UnlockSync{
		store:        store,
		pollInterval: pollInterval,
		state:        domain.NewUnlockState(),
		subscribers:  make(map[chan domain.UnlockState]struct{}),
	}
}

// Run keeps the cache synchronized until ctx is cancelled. Call it in its
// own goroutine.
func (s *UnlockSync) Run(ctx context.Context) {
	s.poll(ctx)

	pushed, cancel, err := s.store.SubscribeUnlockState(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSubscribeUnsupported) {
			log.Printf("unlock sync: subscribe failed, poll-only: %v", err)
		}
		pushed = nil
	} else {
		defer cancel()
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-pushed:
			if !ok {
				pushed = nil
				continue
			}
			s.apply(state)
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *UnlockSync) poll(ctx context.Context) {
	state, err := s.store.ReadUnlockState(ctx)
	if err != nil {
		// Keep the previous cache; a failed read never corrupts it.
		log.Printf("unlock sync: read state: %v", err)
		return
	}
	s.apply(state)
}

// apply installs an authoritative state. Applying an identical state is a
// no-op and produces no notification.
func (s *UnlockSync) apply(state domain.UnlockState) {
	if state == nil {
		return
	}
	s.mu.Lock()
	if s.state.Equal(state) {
		s.mu.Unlock()
		return
	}
	s.state = state.Clone()
	snapshot := s.state.Clone()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale update so a slow listener never blocks sync.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
	s.mu.Unlock()
}

// Current returns a copy of the cached unlock state.
func (s *UnlockSync) Current() domain.UnlockState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe returns a channel receiving unlock-state changes. The caller
// must invoke the cancel function to unsubscribe.
func (s *UnlockSync) Subscribe() (<-chan domain.UnlockState, func()) {
	ch := make(chan domain.UnlockState, 8)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// SetOpen is the host-side write: it persists the updated full state
// (last-writer-wins) and applies it locally on success.
func (s *UnlockSync) SetOpen(ctx context.Context, level int, open bool) (domain.UnlockState, error) {
	if level < 1 || level > domain.LevelCount {
		return nil, domain.ErrLevelOutOfRange
	}
	next := s.Current().WithOpen(level, open)
	if err := s.store.WriteUnlockState(ctx, next); err != nil {
		return nil, err
	}
	s.apply(next)
	return next, nil
}
