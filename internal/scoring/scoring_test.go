package scoring_test

import (
	"math"
	"testing"

	"words-of-healing/internal/domain"
	"words-of-healing/internal/scoring"
)

func TestScoreZeroWhenWrongOrOutOfTime(t *testing.T) {
	levels := []domain.LevelType{
		domain.LevelIntro, domain.LevelMCQ, domain.LevelImage, domain.LevelEasy,
		domain.LevelMedium2, domain.LevelMedium, domain.LevelImage2,
	}
	for _, level := range levels {
		if got := scoring.Score(30, level, false); got != 0 {
			t.Fatalf("wrong answer on %s scored %d, want 0", level, got)
		}
		if got := scoring.Score(0, level, true); got != 0 {
			t.Fatalf("timed-out answer on %s scored %d, want 0", level, got)
		}
		if got := scoring.Score(-5, level, true); got != 0 {
			t.Fatalf("negative time on %s scored %d, want 0", level, got)
		}
	}
}

func TestScoreKnownValues(t *testing.T) {
	// floor(30^1.3 * multiplier); 30^1.3 ≈ 83.23
	cases := []struct {
		level domain.LevelType
		want  int
	}{
		{domain.LevelIntro, 66},   // * 0.8
		{domain.LevelMCQ, 74},     // * 0.9
		{domain.LevelImage, 83},   // * 1.0
		{domain.LevelEasy, 83},    // * 1.0
		{domain.LevelMedium2, 108}, // * 1.3
		{domain.LevelMedium, 124}, // * 1.5
		{domain.LevelImage2, 166}, // * 2.0
	}
	for _, tc := range cases {
		if got := scoring.Score(30, tc.level, true); got != tc.want {
			t.Fatalf("Score(30, %s, true) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestScoreMonotonicInTime(t *testing.T) {
	prev := -1
	for seconds := 1; seconds <= 45; seconds++ {
		got := scoring.Score(seconds, domain.LevelMedium, true)
		if got <= prev {
			t.Fatalf("score not strictly increasing: %ds -> %d, %ds -> %d",
				seconds-1, prev, seconds, got)
		}
		prev = got
	}
}

func TestScoreSuperLinear(t *testing.T) {
	// Doubling the remaining time must more than double the score.
	slow := scoring.Score(10, domain.LevelEasy, true)
	fast := scoring.Score(20, domain.LevelEasy, true)
	if fast <= 2*slow {
		t.Fatalf("expected super-linear reward, got %d vs 2*%d", fast, slow)
	}
}

func TestScoreMatchesFormula(t *testing.T) {
	for seconds := 1; seconds <= 45; seconds++ {
		want := int(math.Floor(math.Pow(float64(seconds), 1.3) * 1.5))
		if got := scoring.Score(seconds, domain.LevelMedium, true); got != want {
			t.Fatalf("Score(%d, medium, true) = %d, want %d", seconds, got, want)
		}
	}
}

func TestBreakdownEmpty(t *testing.T) {
	b := scoring.Breakdown(nil)
	if b.Total != 0 || b.Intro != 0 || b.Image2 != 0 {
		t.Fatalf("empty breakdown not all zeros: %+v", b)
	}
}

func TestBreakdownTotals(t *testing.T) {
	records := []domain.LevelScoreRecord{
		{Level: domain.LevelIntro, Score: 40, SecondsLeft: 20, Correct: true},
		{Level: domain.LevelMCQ, Score: 0, SecondsLeft: 0, Correct: false},
		{Level: domain.LevelMedium, Score: 124, SecondsLeft: 30, Correct: true},
	}
	b := scoring.Breakdown(records)
	if b.Intro != 40 || b.MCQ != 0 || b.Medium != 124 {
		t.Fatalf("unexpected buckets: %+v", b)
	}
	if b.Total != 164 {
		t.Fatalf("total = %d, want 164", b.Total)
	}
	if b.Total != scoring.Total(records) {
		t.Fatalf("breakdown total disagrees with Total")
	}
	if b.Easy != 0 || b.Image != 0 || b.Medium2 != 0 || b.Image2 != 0 {
		t.Fatalf("unattempted levels must be zero: %+v", b)
	}
}

func TestTotalMonotonicOnAppend(t *testing.T) {
	var records []domain.LevelScoreRecord
	prev := 0
	appendScores := []int{10, 0, 55, 0, 3}
	for _, score := range appendScores {
		records = append(records, domain.LevelScoreRecord{Level: domain.LevelEasy, Score: score})
		total := scoring.Total(records)
		if total < prev {
			t.Fatalf("total decreased from %d to %d", prev, total)
		}
		prev = total
	}
}

func TestRecordProjection(t *testing.T) {
	b := domain.ScoreBreakdown{Intro: 1, MCQ: 2, Image: 3, Easy: 4, Medium2: 5, Medium: 6, Image2: 7, Total: 28}
	record := scoring.Record("Alice", "North", "123456", b)
	if record.FinalScore != 28 || record.SecurityCode != "123456" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.IntroScore != 1 || record.Image2Score != 7 {
		t.Fatalf("bucket mapping broken: %+v", record)
	}
}
