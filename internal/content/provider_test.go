package content_test

import (
	"errors"
	"testing"
	"time"

	"words-of-healing/internal/content"
	"words-of-healing/internal/domain"
)

func TestTypeForCoversAllLevels(t *testing.T) {
	want := map[int]domain.LevelType{
		1: domain.LevelIntro,
		2: domain.LevelMCQ,
		3: domain.LevelImage,
		4: domain.LevelEasy,
		5: domain.LevelMedium2,
		6: domain.LevelMedium,
		7: domain.LevelImage2,
	}
	for level, levelType := range want {
		got, err := content.TypeFor(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if got != levelType {
			t.Fatalf("level %d type = %s, want %s", level, got, levelType)
		}
	}
	for _, level := range []int{0, 8, -1} {
		if _, err := content.TypeFor(level); !errors.Is(err, domain.ErrLevelOutOfRange) {
			t.Fatalf("level %d: expected range error, got %v", level, err)
		}
	}
}

func TestDurations(t *testing.T) {
	provider := content.NewProvider()
	for level := 1; level <= domain.LevelCount; level++ {
		want := 45 * time.Second
		if level == 2 || level == 3 {
			want = 30 * time.Second
		}
		if got := provider.Duration(level); got != want {
			t.Fatalf("level %d duration = %s, want %s", level, got, want)
		}
	}
}

func TestPuzzleForLevelShapes(t *testing.T) {
	provider := content.NewProvider()
	ordered := map[int]bool{1: true, 4: true, 5: true, 6: true}

	for level := 1; level <= domain.LevelCount; level++ {
		puzzle, err := provider.PuzzleForLevel(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if ordered[level] {
			if puzzle.Kind != domain.PuzzleOrdered {
				t.Fatalf("level %d kind = %s, want ordered", level, puzzle.Kind)
			}
			if len(puzzle.Fragments) == 0 {
				t.Fatalf("level %d has no fragments", level)
			}
			continue
		}
		if puzzle.Kind != domain.PuzzleSingleChoice {
			t.Fatalf("level %d kind = %s, want single choice", level, puzzle.Kind)
		}
		if puzzle.CorrectAnswer == "" {
			t.Fatalf("level %d missing correct answer", level)
		}
		if len(puzzle.WrongOptions) == 0 {
			t.Fatalf("level %d missing wrong options", level)
		}
		for _, wrong := range puzzle.WrongOptions {
			if wrong == puzzle.CorrectAnswer {
				t.Fatalf("level %d wrong option duplicates the answer: %q", level, wrong)
			}
		}
	}

	if _, err := provider.PuzzleForLevel(99); !errors.Is(err, domain.ErrLevelOutOfRange) {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestSplitVerseLevelsRespectFragmentBounds(t *testing.T) {
	provider := content.NewProvider()
	for _, level := range []int{4, 5, 6} {
		puzzle, err := provider.PuzzleForLevel(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if n := len(puzzle.Fragments); n < 7 || n > 8 {
			t.Fatalf("level %d fragment count %d, want 7..8", level, n)
		}
	}
}

func TestPuzzleIsDeterministic(t *testing.T) {
	provider := content.NewProvider()
	first, err := provider.PuzzleForLevel(4)
	if err != nil {
		t.Fatalf("puzzle: %v", err)
	}
	second, err := provider.PuzzleForLevel(4)
	if err != nil {
		t.Fatalf("puzzle: %v", err)
	}
	if first.ID != second.ID || len(first.Fragments) != len(second.Fragments) {
		t.Fatalf("same level produced different puzzles: %+v vs %+v", first, second)
	}
	for i := range first.Fragments {
		if first.Fragments[i] != second.Fragments[i] {
			t.Fatalf("fragment %d differs between calls", i)
		}
	}
}
