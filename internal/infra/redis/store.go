// Package redis backs the shared game state with Redis: the unlock document
// as a JSON value with pub/sub fan-out for the push channel, and the
// leaderboard as a sorted set over per-participant JSON rows.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"words-of-healing/internal/domain"
)

const (
	stateKey       = "game:state"
	stateChannel   = "game:state:events"
	leaderboardKey = "game:leaderboard"
	playerKeyFmt   = "game:player:%s"
)

// Store implements app.GameStateStore and app.ParticipantStore.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) ReadUnlockState(ctx context.Context) (domain.UnlockState, error) {
	raw, err := s.client.Get(ctx, stateKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// No host write yet: everything locked.
		return domain.NewUnlockState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read unlock state: %w", err)
	}
	return decodeState(raw)
}

func (s *Store) WriteUnlockState(ctx context.Context, state domain.UnlockState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode unlock state: %w", err)
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, stateKey, raw, 0)
	pipe.Publish(ctx, stateChannel, raw)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write unlock state: %w", err)
	}
	return nil
}

// SubscribeUnlockState is the push channel: every host write is published on
// stateChannel and forwarded to the returned channel. The cancel function
// closes the subscription.
func (s *Store) SubscribeUnlockState(ctx context.Context) (<-chan domain.UnlockState, func(), error) {
	pubsub := s.client.Subscribe(ctx, stateChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe unlock state: %w", err)
	}

	out := make(chan domain.UnlockState, 8)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			state, err := decodeState([]byte(msg.Payload))
			if err != nil {
				log.Printf("redis: bad unlock payload: %v", err)
				continue
			}
			out <- state
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}

func decodeState(raw []byte) (domain.UnlockState, error) {
	state := domain.NewUnlockState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode unlock state: %w", err)
	}
	return state, nil
}

func (s *Store) UpsertParticipant(ctx context.Context, record domain.ParticipantRecord) error {
	record.UpdatedAt = time.Now()
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode participant: %w", err)
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(record.SecurityCode), raw, 0)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(record.FinalScore),
		Member: record.SecurityCode,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert participant: %w", err)
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]domain.ParticipantRecord, error) {
	codes, err := s.client.ZRevRange(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if len(codes) == 0 {
		return nil, nil
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = playerKey(code)
	}
	rows, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}

	records := make([]domain.ParticipantRecord, 0, len(rows))
	for _, row := range rows {
		raw, ok := row.(string)
		if !ok {
			continue // row expired between ZREVRANGE and MGET
		}
		var record domain.ParticipantRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			log.Printf("redis: bad participant row: %v", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Store) DeleteAllParticipants(ctx context.Context) error {
	codes, err := s.client.ZRange(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("wipe participants: %w", err)
	}
	keys := make([]string, 0, len(codes)+1)
	for _, code := range codes {
		keys = append(keys, playerKey(code))
	}
	keys = append(keys, leaderboardKey)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("wipe participants: %w", err)
	}
	return nil
}

func playerKey(code string) string {
	return fmt.Sprintf(playerKeyFmt, code)
}
