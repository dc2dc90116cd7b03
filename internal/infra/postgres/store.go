// Package postgres persists leaderboard rows and the unlock document in
// Postgres. It has no push channel; the sync layer polls it.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"words-of-healing/internal/domain"
)

// gameStateID is the singleton row id of the unlock document.
const gameStateID = 1

// Store implements app.GameStateStore and app.ParticipantStore over pgxpool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ReadUnlockState(ctx context.Context) (domain.UnlockState, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT levels_unlocked FROM game_state WHERE id=$1`, gameStateID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewUnlockState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read unlock state: %w", err)
	}
	state := domain.NewUnlockState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode unlock state: %w", err)
	}
	return state, nil
}

func (s *Store) WriteUnlockState(ctx context.Context, state domain.UnlockState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode unlock state: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO game_state (id, levels_unlocked, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET levels_unlocked = EXCLUDED.levels_unlocked, updated_at = now()`,
		gameStateID, raw)
	if err != nil {
		return fmt.Errorf("write unlock state: %w", err)
	}
	return nil
}

// SubscribeUnlockState reports no push support; callers fall back to the
// poll loop.
func (s *Store) SubscribeUnlockState(context.Context) (<-chan domain.UnlockState, func(), error) {
	return nil, nil, domain.ErrSubscribeUnsupported
}

func (s *Store) UpsertParticipant(ctx context.Context, record domain.ParticipantRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO players (
			security_code, name, region, final_score,
			intro_score, mcq_score, image_score, easy_score,
			medium2_score, medium_score, image2_score, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now())
		ON CONFLICT (security_code) DO UPDATE SET
			name = EXCLUDED.name,
			region = EXCLUDED.region,
			final_score = EXCLUDED.final_score,
			intro_score = EXCLUDED.intro_score,
			mcq_score = EXCLUDED.mcq_score,
			image_score = EXCLUDED.image_score,
			easy_score = EXCLUDED.easy_score,
			medium2_score = EXCLUDED.medium2_score,
			medium_score = EXCLUDED.medium_score,
			image2_score = EXCLUDED.image2_score,
			updated_at = now()`,
		record.SecurityCode, record.Name, record.Region, record.FinalScore,
		record.IntroScore, record.MCQScore, record.ImageScore, record.EasyScore,
		record.Medium2Score, record.MediumScore, record.Image2Score)
	if err != nil {
		return fmt.Errorf("upsert participant: %w", err)
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context) ([]domain.ParticipantRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT security_code, name, region, final_score,
		       intro_score, mcq_score, image_score, easy_score,
		       medium2_score, medium_score, image2_score, updated_at
		FROM players
		ORDER BY final_score DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var records []domain.ParticipantRecord
	for rows.Next() {
		var r domain.ParticipantRecord
		if err := rows.Scan(
			&r.SecurityCode, &r.Name, &r.Region, &r.FinalScore,
			&r.IntroScore, &r.MCQScore, &r.ImageScore, &r.EasyScore,
			&r.Medium2Score, &r.MediumScore, &r.Image2Score, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return records, nil
}

func (s *Store) DeleteAllParticipants(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("wipe participants: %w", err)
	}
	return nil
}
