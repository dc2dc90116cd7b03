package app

import (
	"context"

	"words-of-healing/internal/domain"
)

// GameStateStore is the external-store contract for the shared unlock state.
// Writes are last-writer-wins upserts of the singleton document. Stores
// without a push channel return domain.ErrSubscribeUnsupported from
// SubscribeUnlockState and rely on the poll fallback.
type GameStateStore interface {
	ReadUnlockState(ctx context.Context) (domain.UnlockState, error)
	WriteUnlockState(ctx context.Context, state domain.UnlockState) error
	SubscribeUnlockState(ctx context.Context) (<-chan domain.UnlockState, func(), error)
}

// ParticipantStore is the external-store contract for leaderboard rows.
// Upserts conflict on the security code, which makes retries idempotent.
// ListParticipants returns rows ordered by final score descending.
type ParticipantStore interface {
	UpsertParticipant(ctx context.Context, record domain.ParticipantRecord) error
	ListParticipants(ctx context.Context) ([]domain.ParticipantRecord, error)
	DeleteAllParticipants(ctx context.Context) error
}
