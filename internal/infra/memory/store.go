// Package memory is the in-process store used by tests and the standalone
// (no redis, no postgres) server mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"words-of-healing/internal/domain"
)

// Store implements both app.GameStateStore and app.ParticipantStore in
// memory, including a push channel so the dual-channel sync path is
// exercised without redis.
type Store struct {
	mu           sync.RWMutex
	state        domain.UnlockState
	participants map[string]domain.ParticipantRecord
	subscribers  map[chan domain.UnlockState]struct{}
	clock        func() time.Time
}

func NewStore() *Store {
	return &Store{
		state:        domain.NewUnlockState(),
		participants: make(map[string]domain.ParticipantRecord),
		subscribers:  make(map[chan domain.UnlockState]struct{}),
		clock:        time.Now,
	}
}

func (s *Store) ReadUnlockState(_ context.Context) (domain.UnlockState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

func (s *Store) WriteUnlockState(_ context.Context, state domain.UnlockState) error {
	s.mu.Lock()
	s.state = state.Clone()
	snapshot := s.state.Clone()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) SubscribeUnlockState(_ context.Context) (<-chan domain.UnlockState, func(), error) {
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
	return ch, cancel, nil
}

func (s *Store) UpsertParticipant(_ context.Context, record domain.ParticipantRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.UpdatedAt = s.clock()
	s.participants[record.SecurityCode] = record
	return nil
}

func (s *Store) ListParticipants(_ context.Context) ([]domain.ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.ParticipantRecord, 0, len(s.participants))
	for _, record := range s.participants {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].FinalScore != records[j].FinalScore {
			return records[i].FinalScore > records[j].FinalScore
		}
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (s *Store) DeleteAllParticipants(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = make(map[string]domain.ParticipantRecord)
	return nil
}
