package app

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"words-of-healing/internal/domain"
)

// RankResolver computes a participant's standing against all persisted
// scores. Every computation is a point-in-time, non-atomic read of a
// concurrently mutating collection; callers tolerate staleness and re-query
// after score-affecting events.
type RankResolver struct {
	store ParticipantStore
	sf    singleflight.Group
}

func NewRankResolver(store ParticipantStore) *RankResolver {
	return &RankResolver{store: store}
}

// Stats ranks finalScore against the leaderboard. Rank is 1 plus the count
// of strictly greater scores, so tied players share a rank. On read error it
// returns a zeroed snapshot instead of failing; the rank display degrades
// rather than blocking gameplay.
func (r *RankResolver) Stats(ctx context.Context, finalScore int) domain.RankSnapshot {
	v, err, _ := r.sf.Do("participants", func() (interface{}, error) {
		return r.store.ListParticipants(ctx)
	})
	if err != nil {
		log.Printf("rank: list participants: %v", err)
		return domain.RankSnapshot{}
	}
	records := v.([]domain.ParticipantRecord)

	total := len(records)
	if total == 0 {
		return domain.RankSnapshot{}
	}

	higher := 0
	for _, record := range records {
		if record.FinalScore > finalScore {
			higher++
		}
	}
	rank := higher + 1
	percentile := (total - rank + 1) * 100
	// round to nearest, matching round((total-rank+1)/total*100)
	percentile = (percentile + total/2) / total

	return domain.RankSnapshot{
		Rank:         rank,
		TotalPlayers: total,
		Percentile:   percentile,
	}
}
