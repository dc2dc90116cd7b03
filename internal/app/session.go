package app

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"words-of-healing/internal/domain"
	"words-of-healing/internal/scoring"
)

// verifyAttempts is the fixed number of tries the security-code gate allows.
const verifyAttempts = 3

// Session is the participant-local game state for one play-through: identity,
// the append-only level score list, and rank tracking. It is owned by a
// single client session; the persisted leaderboard row is derived from it.
type Session struct {
	mu sync.Mutex

	name   string
	region string

	securityCode string
	rnd          *rand.Rand

	records   []domain.LevelScoreRecord
	started   bool
	completed bool

	currentRank  int
	previousRank int

	failedVerifies int
}

// NewSession validates identity and starts a fresh play-through.
func NewSession(name, region string) (*Session, error) {
	if len(strings.TrimSpace(name)) < 2 {
		return nil, domain.ErrNameTooShort
	}
	return &Session{
		name:    strings.TrimSpace(name),
		region:  strings.TrimSpace(region),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		started: true,
	}, nil
}

func (s *Session) Name() string   { return s.name }
func (s *Session) Region() string { return s.region }

// SecurityCode returns the participant's 6-digit identity token, generating
// it lazily on first use.
func (s *Session) SecurityCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.securityCode == "" {
		s.securityCode = generateCode(s.rnd)
	}
	return s.securityCode
}

// SetSecurityCode restores a code for re-entry flows.
func (s *Session) SetSecurityCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.securityCode = code
}

func generateCode(rnd *rand.Rand) string {
	digits := []byte("0123456789")
	code := make([]byte, 6)
	code[0] = digits[1+rnd.Intn(9)] // no leading zero
	for i := 1; i < len(code); i++ {
		code[i] = digits[rnd.Intn(10)]
	}
	return string(code)
}

// Append records one level outcome. Records are strictly append-only and
// ordered by play order.
func (s *Session) Append(record domain.LevelScoreRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Records returns a copy of the level outcomes so far.
func (s *Session) Records() []domain.LevelScoreRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LevelScoreRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Breakdown projects the current records into per-level buckets and a total.
func (s *Session) Breakdown() domain.ScoreBreakdown {
	return scoring.Breakdown(s.Records())
}

// Record builds the leaderboard row for upsert, generating the security code
// if this is the first submission.
func (s *Session) Record() domain.ParticipantRecord {
	code := s.SecurityCode()
	return scoring.Record(s.name, s.region, code, s.Breakdown())
}

// SetRank stores a freshly computed rank, keeping the previous one so the
// surface can show movement.
func (s *Session) SetRank(rank int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previousRank = s.currentRank
	s.currentRank = rank
}

// Rank returns the current and previous rank.
func (s *Session) Rank() (current, previous int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentRank, s.previousRank
}

// Complete marks the play-through finished.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = true
}

// Completed reports whether the final level has been played.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Verify checks an entered security code against the session's own. After
// three failures the gate locks.
func (s *Session) Verify(code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failedVerifies >= verifyAttempts {
		return false, domain.ErrVerifyLocked
	}
	if code != "" && code == s.securityCode {
		s.failedVerifies = 0
		return true, nil
	}
	s.failedVerifies++
	if s.failedVerifies >= verifyAttempts {
		return false, domain.ErrVerifyLocked
	}
	return false, nil
}

// Reset wipes the play-through for a new game. The shared unlock state is
// unaffected; only the host resets that.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.securityCode = ""
	s.records = nil
	s.started = false
	s.completed = false
	s.currentRank = 0
	s.previousRank = 0
	s.failedVerifies = 0
}
