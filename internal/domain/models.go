package domain

import "time"

// LevelType is one of the seven fixed puzzle categories of the event.
type LevelType string

const (
	LevelIntro   LevelType = "intro"   // level 1: complete the verse
	LevelMCQ     LevelType = "mcq"     // level 2: multiple choice
	LevelImage   LevelType = "image"   // level 3: image identification
	LevelEasy    LevelType = "easy"    // level 4: fragment arrange
	LevelMedium2 LevelType = "medium2" // level 5: fragment arrange
	LevelMedium  LevelType = "medium"  // level 6: fragment arrange
	LevelImage2  LevelType = "image2"  // level 7: image identification (harder)
)

// LevelCount is the number of sequential levels in one event.
const LevelCount = 7

// LevelScoreRecord is the immutable outcome of one level attempt.
// Exactly one is created per level, at submit or timeout.
type LevelScoreRecord struct {
	Level       LevelType `json:"level"`
	Score       int       `json:"score"`
	SecondsLeft int       `json:"secondsLeft"`
	Correct     bool      `json:"correct"`
}

// ScoreBreakdown is a pure projection of a participant's level records:
// one bucket per level type (0 if not yet attempted) plus the total.
type ScoreBreakdown struct {
	Intro   int `json:"intro"`
	MCQ     int `json:"mcq"`
	Image   int `json:"image"`
	Easy    int `json:"easy"`
	Medium2 int `json:"medium2"`
	Medium  int `json:"medium"`
	Image2  int `json:"image2"`
	Total   int `json:"total"`
}

// ParticipantRecord is the persisted leaderboard row, keyed by security code.
// Repeated upserts with the same code overwrite the prior row.
type ParticipantRecord struct {
	Name         string    `json:"name"`
	Region       string    `json:"region"`
	SecurityCode string    `json:"security_code"`
	FinalScore   int       `json:"final_score"`
	IntroScore   int       `json:"intro_score"`
	MCQScore     int       `json:"mcq_score"`
	ImageScore   int       `json:"image_score"`
	EasyScore    int       `json:"easy_score"`
	Medium2Score int       `json:"medium2_score"`
	MediumScore  int       `json:"medium_score"`
	Image2Score  int       `json:"image2_score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RankSnapshot is a point-in-time view of a participant's standing.
// It may be stale the moment it is computed; callers re-query after any
// score-affecting event.
type RankSnapshot struct {
	Rank         int `json:"rank"`
	TotalPlayers int `json:"totalPlayers"`
	Percentile   int `json:"percentile"`
}

// UnlockState maps level number (1..LevelCount) to its host-controlled
// "open" flag. Exactly one logical instance exists per event.
type UnlockState map[int]bool

// NewUnlockState returns a state with every level locked.
func NewUnlockState() UnlockState {
	s := make(UnlockState, LevelCount)
	for level := 1; level <= LevelCount; level++ {
		s[level] = false
	}
	return s
}

// Open reports whether the given level is unlocked.
func (s UnlockState) Open(level int) bool {
	return s[level]
}

// Clone returns an independent copy.
func (s UnlockState) Clone() UnlockState {
	c := make(UnlockState, len(s))
	for level, open := range s {
		c[level] = open
	}
	return c
}

// WithOpen returns a copy with one level's flag changed.
func (s UnlockState) WithOpen(level int, open bool) UnlockState {
	c := s.Clone()
	c[level] = open
	return c
}

// Equal reports whether two states agree on every level flag.
func (s UnlockState) Equal(other UnlockState) bool {
	for level := 1; level <= LevelCount; level++ {
		if s[level] != other[level] {
			return false
		}
	}
	return true
}
