package app

import (
	"context"

	"words-of-healing/internal/domain"
)

// HostService is the host control surface: per-level unlock toggles, the
// live leaderboard, and the administrative wipe.
type HostService struct {
	sync          *UnlockSync
	store         ParticipantStore
	adminPassword string
}

func NewHostService(unlockSync *UnlockSync, store ParticipantStore, adminPassword string) *HostService {
	return &HostService{sync: unlockSync, store: store, adminPassword: adminPassword}
}

// SetLevelOpen toggles one level's flag and returns the resulting state.
func (h *HostService) SetLevelOpen(ctx context.Context, level int, open bool) (domain.UnlockState, error) {
	return h.sync.SetOpen(ctx, level, open)
}

// UnlockState returns the current cached state for the host view.
func (h *HostService) UnlockState() domain.UnlockState {
	return h.sync.Current()
}

// Leaderboard lists all persisted participants, best score first.
func (h *HostService) Leaderboard(ctx context.Context) ([]domain.ParticipantRecord, error) {
	return h.store.ListParticipants(ctx)
}

// Wipe deletes every leaderboard row. The password is checked before any
// delete is attempted; a failed delete means no row may be assumed removed.
func (h *HostService) Wipe(ctx context.Context, password string) error {
	if password != h.adminPassword {
		return domain.ErrWrongPassword
	}
	return h.store.DeleteAllParticipants(ctx)
}

// ResetEvent locks every level again for a fresh run. Participant rows are
// untouched; use Wipe for those.
func (h *HostService) ResetEvent(ctx context.Context) (domain.UnlockState, error) {
	state := domain.NewUnlockState()
	if err := h.sync.store.WriteUnlockState(ctx, state); err != nil {
		return nil, err
	}
	h.sync.apply(state)
	return state, nil
}
