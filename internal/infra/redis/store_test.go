package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"words-of-healing/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestReadUnlockStateMissingKey(t *testing.T) {
	store, _ := newTestStore(t)
	state, err := store.ReadUnlockState(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for level := 1; level <= domain.LevelCount; level++ {
		if state.Open(level) {
			t.Fatalf("level %d open before any host write", level)
		}
	}
}

func TestUnlockStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	written := domain.NewUnlockState().WithOpen(1, true).WithOpen(6, true)
	if err := store.WriteUnlockState(ctx, written); err != nil {
		t.Fatalf("write: %v", err)
	}
	read, err := store.ReadUnlockState(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !read.Equal(written) {
		t.Fatalf("round trip mismatch: %v vs %v", read, written)
	}
}

func TestReadUnlockStateBadPayload(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set(stateKey, "not json")
	if _, err := store.ReadUnlockState(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSubscribeReceivesPublishedWrites(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	updates, cancel, err := store.SubscribeUnlockState(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if err := store.WriteUnlockState(ctx, domain.NewUnlockState().WithOpen(3, true)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case state := <-updates:
		if !state.Open(3) {
			t.Fatalf("pushed state missing write: %v", state)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no pub/sub message received")
	}
}

func TestUpsertAndListOrderedByScore(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	records := []domain.ParticipantRecord{
		{SecurityCode: "111111", Name: "Cara", FinalScore: 120},
		{SecurityCode: "222222", Name: "Alice", FinalScore: 640},
		{SecurityCode: "333333", Name: "Bob", FinalScore: 310},
	}
	for _, record := range records {
		if err := store.UpsertParticipant(ctx, record); err != nil {
			t.Fatalf("upsert %s: %v", record.Name, err)
		}
	}

	listed, err := store.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(listed))
	}
	want := []string{"Alice", "Bob", "Cara"}
	for i, name := range want {
		if listed[i].Name != name {
			t.Fatalf("position %d = %s, want %s", i, listed[i].Name, name)
		}
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if err := store.UpsertParticipant(ctx, domain.ParticipantRecord{SecurityCode: "111111", Name: "Alice", FinalScore: 100}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertParticipant(ctx, domain.ParticipantRecord{SecurityCode: "111111", Name: "Alice", FinalScore: 420}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	listed, err := store.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].FinalScore != 420 {
		t.Fatalf("expected one row at 420, got %+v", listed)
	}
}

func TestListSkipsMissingRows(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	if err := store.UpsertParticipant(ctx, domain.ParticipantRecord{SecurityCode: "111111", Name: "Alice", FinalScore: 100}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertParticipant(ctx, domain.ParticipantRecord{SecurityCode: "222222", Name: "Bob", FinalScore: 200}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Simulate a row expiring while still listed in the sorted set.
	mr.Del(playerKey("222222"))

	listed, err := store.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Alice" {
		t.Fatalf("expected Alice only, got %+v", listed)
	}
}

func TestDeleteAllParticipants(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	if err := store.UpsertParticipant(ctx, domain.ParticipantRecord{SecurityCode: "111111", Name: "Alice", FinalScore: 100}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.DeleteAllParticipants(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	listed, err := store.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("rows survived wipe: %+v", listed)
	}
	if mr.Exists(playerKey("111111")) {
		t.Fatalf("player row key survived wipe")
	}
}
