// Package scoring computes per-level scores and aggregates them into
// leaderboard breakdowns. Everything here is pure: same input, same output,
// no errors.
package scoring

import (
	"math"

	"words-of-healing/internal/domain"
)

// timeExponent rewards speed super-linearly: finishing early is worth
// disproportionately more than finishing late.
const timeExponent = 1.3

var difficultyMultipliers = map[domain.LevelType]float64{
	domain.LevelIntro:   0.8,
	domain.LevelMCQ:     0.9,
	domain.LevelImage:   1.0,
	domain.LevelEasy:    1.0,
	domain.LevelMedium2: 1.3,
	domain.LevelMedium:  1.5,
	domain.LevelImage2:  2.0,
}

// Score returns the points for one level attempt. A wrong or timed-out
// answer scores zero; there is no partial credit.
func Score(secondsLeft int, level domain.LevelType, correct bool) int {
	if !correct || secondsLeft <= 0 {
		return 0
	}
	multiplier, ok := difficultyMultipliers[level]
	if !ok {
		multiplier = 1.0
	}
	return int(math.Floor(math.Pow(float64(secondsLeft), timeExponent) * multiplier))
}

// Total sums the individual scores. It is monotonically non-decreasing as
// records are appended.
func Total(records []domain.LevelScoreRecord) int {
	total := 0
	for _, record := range records {
		total += record.Score
	}
	return total
}

// Breakdown projects the record list onto one bucket per level type.
// An empty list yields all zeros.
func Breakdown(records []domain.LevelScoreRecord) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{}
	for _, record := range records {
		switch record.Level {
		case domain.LevelIntro:
			b.Intro = record.Score
		case domain.LevelMCQ:
			b.MCQ = record.Score
		case domain.LevelImage:
			b.Image = record.Score
		case domain.LevelEasy:
			b.Easy = record.Score
		case domain.LevelMedium2:
			b.Medium2 = record.Score
		case domain.LevelMedium:
			b.Medium = record.Score
		case domain.LevelImage2:
			b.Image2 = record.Score
		}
	}
	b.Total = Total(records)
	return b
}

// Record builds the persisted leaderboard row for a participant from their
// breakdown.
func Record(name, region, securityCode string, b domain.ScoreBreakdown) domain.ParticipantRecord {
	return domain.ParticipantRecord{
		Name:         name,
		Region:       region,
		SecurityCode: securityCode,
		FinalScore:   b.Total,
		IntroScore:   b.Intro,
		MCQScore:     b.MCQ,
		ImageScore:   b.Image,
		EasyScore:    b.Easy,
		Medium2Score: b.Medium2,
		MediumScore:  b.Medium,
		Image2Score:  b.Image2,
	}
}
