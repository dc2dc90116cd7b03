package app

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"words-of-healing/internal/content"
	"words-of-healing/internal/domain"
	"words-of-healing/internal/fragment"
	"words-of-healing/internal/scoring"
)

// State is the controller's position in one level attempt.
type State int

const (
	StateLocked State = iota
	StateActive
	StateSubmitted
	StateWaitingNext
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	case StateWaitingNext:
		return "waitingNext"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// PuzzleProvider supplies the canonical puzzle and countdown length per
// level.
type PuzzleProvider interface {
	PuzzleForLevel(level int) (domain.Puzzle, error)
	Duration(level int) time.Duration
}

// Timing collects the controller's intervals. Tests inject short ones; the
// defaults match the event's user-visible cadence.
type Timing struct {
	// LockPoll is the cadence for watching a locked level. It is tighter
	// than the general sync poll because level-start latency is
	// user-visible.
	LockPoll time.Duration
	// NextPoll is the cadence for watching the next level while waiting.
	NextPoll time.Duration
	// Feedback is the post-submit display window before auto-advancing.
	Feedback time.Duration
	// Tick is the countdown granularity; one tick burns one level second.
	Tick time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		LockPoll: 100 * time.Millisecond,
		NextPoll: 500 * time.Millisecond,
		Feedback: 2500 * time.Millisecond,
		Tick:     time.Second,
	}
}

// EventType tags controller events sent to the interaction surface.
type EventType string

const (
	EventLocked       EventType = "locked"
	EventLevelStarted EventType = "levelStarted"
	EventTick         EventType = "tick"
	EventFeedback     EventType = "feedback"
	EventRank         EventType = "rank"
	EventWaitingNext  EventType = "waitingNext"
	EventComplete     EventType = "complete"
)

// PuzzleView is the participant-facing rendition of a puzzle: shuffled, with
// the answer withheld.
type PuzzleView struct {
	Level     int               `json:"level"`
	Kind      domain.PuzzleKind `json:"kind"`
	Prompt    string            `json:"prompt"`
	Reference string            `json:"reference,omitempty"`
	ImageURL  string            `json:"imageUrl,omitempty"`
	Fragments []domain.Fragment `json:"fragments,omitempty"`
	Options   []string          `json:"options,omitempty"`
	Seconds   int               `json:"seconds"`
}

// Event is one controller-to-surface notification.
type Event struct {
	Type        EventType                `json:"type"`
	Level       int                      `json:"level,omitempty"`
	SecondsLeft int                      `json:"secondsLeft,omitempty"`
	Puzzle      *PuzzleView              `json:"puzzle,omitempty"`
	Record      *domain.LevelScoreRecord `json:"record,omitempty"`
	Breakdown   *domain.ScoreBreakdown   `json:"breakdown,omitempty"`
	Rank        *domain.RankSnapshot     `json:"rank,omitempty"`
	Explanation string                   `json:"explanation,omitempty"`
}

// upsertRetries bounds the fire-and-forget leaderboard write. A failed
// mid-level write never blocks progression; the terminal write repairs it.
const upsertRetries = 3

// Controller drives one participant through the seven levels: it gates entry
// on the shared unlock state, runs the countdown, scores exactly one
// submission (or the timeout) per level, pushes the aggregate upsert, and
// refreshes the displayed rank.
type Controller struct {
	session *Session
	sync    *UnlockSync
	ranks   *RankResolver
	store   ParticipantStore
	puzzles PuzzleProvider
	timing  Timing
	rnd     *rand.Rand

	events  chan Event
	submits chan domain.Answer

	mu      sync.Mutex
	state   State
	level   int
	pending sync.WaitGroup
}

func NewController(session *Session, unlockSync *UnlockSync, ranks *RankResolver, store ParticipantStore, puzzles PuzzleProvider, timing Timing) *Controller {
	if puzzles == nil {
		puzzles = content.NewProvider()
	}
	if timing.LockPoll <= 0 || timing.NextPoll <= 0 || timing.Tick <= 0 {
		timing = DefaultTiming()
	}
	return &Controller{
		session: session,
		sync:    unlockSync,
		ranks:   ranks,
		store:   store,
		puzzles: puzzles,
		timing:  timing,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		events:  make(chan Event, 32),
		submits: make(chan domain.Answer, 1),
		state:   StateLocked,
		level:   1,
	}
}

// Events is the controller's notification stream. It is closed when Run
// returns.
func (c *Controller) Events() <-chan Event { return c.events }

// State returns the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Level returns the level currently being gated or played.
func (c *Controller) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// Submit hands in an answer. Outside ACTIVE it is a no-op, which is the
// structural duplicate-submission guard.
func (c *Controller) Submit(answer domain.Answer) {
	c.mu.Lock()
	active := c.state == StateActive
	c.mu.Unlock()
	if !active {
		return
	}
	select {
	case c.submits <- answer:
	default:
		// The level loop is mid-transition; treat as after-submit no-op.
	}
}

// drainSubmits discards an answer buffered during a state transition so it
// cannot leak into the next level.
func (c *Controller) drainSubmits() {
	select {
	case <-c.submits:
	default:
	}
}

func (c *Controller) setState(state State, level int) {
	c.mu.Lock()
	c.state = state
	c.level = level
	c.mu.Unlock()
}

// Run plays the whole event. It returns when the participant completes level
// seven or ctx is cancelled; either way the event stream is closed and no
// timers are left running.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.events)
	defer c.pending.Wait()

	for level := 1; level <= domain.LevelCount; level++ {
		c.setState(StateLocked, level)
		c.emit(Event{Type: EventLocked, Level: level})
		if err := c.waitOpen(ctx, level, c.timing.LockPoll); err != nil {
			return err
		}

		puzzle, err := c.puzzles.PuzzleForLevel(level)
		if err != nil {
			return err
		}
		seconds := int(c.puzzles.Duration(level) / time.Second)

		c.drainSubmits()
		c.setState(StateActive, level)
		view := c.view(level, puzzle, seconds)
		c.emit(Event{Type: EventLevelStarted, Level: level, Puzzle: &view, SecondsLeft: seconds})

		record, err := c.playLevel(ctx, level, puzzle, seconds)
		if err != nil {
			return err
		}

		c.setState(StateSubmitted, level)
		c.session.Append(record)
		breakdown := c.session.Breakdown()
		c.persistAsync()
		c.emit(Event{
			Type:        EventFeedback,
			Level:       level,
			Record:      &record,
			Breakdown:   &breakdown,
			Explanation: puzzle.Explanation,
		})

		if err := sleepCtx(ctx, c.timing.Feedback); err != nil {
			return err
		}

		if level == domain.LevelCount {
			break
		}
		c.setState(StateWaitingNext, level)
		c.emit(Event{Type: EventWaitingNext, Level: level + 1})
		if err := c.waitOpen(ctx, level+1, c.timing.NextPoll); err != nil {
			return err
		}
	}

	return c.finalize(ctx)
}

// waitOpen blocks until the cached unlock state shows the level open. It
// checks the cache at the given cadence; the sync component keeps the cache
// itself fresh independently.
func (c *Controller) waitOpen(ctx context.Context, level int, interval time.Duration) error {
	if c.sync.Current().Open(level) {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if c.sync.Current().Open(level) {
				return nil
			}
		}
	}
}

// playLevel runs the countdown and accepts exactly one submission. Reaching
// zero without one is the timeout path: scored as incorrect with zero
// remaining time.
func (c *Controller) playLevel(ctx context.Context, level int, puzzle domain.Puzzle, seconds int) (domain.LevelScoreRecord, error) {
	levelType := puzzle.Level
	ticker := time.NewTicker(c.timing.Tick)
	defer ticker.Stop()

	secondsLeft := seconds
	for {
		select {
		case <-ctx.Done():
			return domain.LevelScoreRecord{}, ctx.Err()
		case answer := <-c.submits:
			if !puzzle.Ready(answer) {
				continue
			}
			correct := puzzle.Check(answer)
			return domain.LevelScoreRecord{
				Level:       levelType,
				Score:       scoring.Score(secondsLeft, levelType, correct),
				SecondsLeft: secondsLeft,
				Correct:     correct,
			}, nil
		case <-ticker.C:
			secondsLeft--
			if secondsLeft <= 0 {
				return domain.LevelScoreRecord{
					Level:       levelType,
					Score:       0,
					SecondsLeft: 0,
					Correct:     false,
				}, nil
			}
			c.emit(Event{Type: EventTick, Level: level, SecondsLeft: secondsLeft})
		}
	}
}

// persistAsync pushes the current aggregate to the leaderboard and refreshes
// the rank without blocking the state machine. The upsert is keyed by the
// security code, so retries and the later terminal write are idempotent.
func (c *Controller) persistAsync() {
	record := c.session.Record()
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.upsertWithRetry(ctx, record); err != nil {
			log.Printf("progression: upsert for %s failed: %v", record.SecurityCode, err)
			return
		}
		stats := c.ranks.Stats(ctx, record.FinalScore)
		if stats.TotalPlayers > 0 {
			c.session.SetRank(stats.Rank)
		}
		c.emit(Event{Type: EventRank, Rank: &stats})
	}()
}

func (c *Controller) upsertWithRetry(ctx context.Context, record domain.ParticipantRecord) error {
	var err error
	for attempt := 0; attempt < upsertRetries; attempt++ {
		if err = c.store.UpsertParticipant(ctx, record); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
	return err
}

// finalize is the terminal submission. Per-level upserts have already
// written the same aggregate, so this re-upsert cannot double-count; it only
// repairs a lost mid-game write.
func (c *Controller) finalize(ctx context.Context) error {
	c.pending.Wait()
	c.setState(StateComplete, domain.LevelCount)
	c.session.Complete()

	record := c.session.Record()
	if err := c.upsertWithRetry(ctx, record); err != nil {
		log.Printf("progression: final upsert for %s failed: %v", record.SecurityCode, err)
	}
	stats := c.ranks.Stats(ctx, record.FinalScore)
	if stats.TotalPlayers > 0 {
		c.session.SetRank(stats.Rank)
	}
	breakdown := c.session.Breakdown()
	c.emit(Event{Type: EventComplete, Breakdown: &breakdown, Rank: &stats})
	return nil
}

func (c *Controller) view(level int, puzzle domain.Puzzle, seconds int) PuzzleView {
	view := PuzzleView{
		Level:     level,
		Kind:      puzzle.Kind,
		Prompt:    puzzle.Prompt,
		Reference: puzzle.Reference,
		ImageURL:  puzzle.ImageURL,
		Seconds:   seconds,
	}
	switch puzzle.Kind {
	case domain.PuzzleOrdered:
		view.Fragments = fragment.Shuffle(c.rnd, puzzle.Fragments)
	case domain.PuzzleSingleChoice:
		options := append([]string{puzzle.CorrectAnswer}, puzzle.WrongOptions...)
		view.Options = fragment.ShuffleStrings(c.rnd, options)
	}
	return view
}

func (c *Controller) emit(event Event) {
	select {
	case c.events <- event:
	default:
		// Drop the oldest event so a slow surface never stalls the game.
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- event:
		default:
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
