// Package content is the fixed puzzle data set and its per-level selection
// table. Which puzzle a level uses is never randomized; only option order is.
package content

import (
	"fmt"
	"time"

	"words-of-healing/internal/domain"
	"words-of-healing/internal/fragment"
)

var levelTypes = map[int]domain.LevelType{
	1: domain.LevelIntro,
	2: domain.LevelMCQ,
	3: domain.LevelImage,
	4: domain.LevelEasy,
	5: domain.LevelMedium2,
	6: domain.LevelMedium,
	7: domain.LevelImage2,
}

var levelDurations = map[int]time.Duration{
	1: 45 * time.Second,
	2: 30 * time.Second,
	3: 30 * time.Second,
	4: 45 * time.Second,
	5: 45 * time.Second,
	6: 45 * time.Second,
	7: 45 * time.Second,
}

// Provider hands out one canonical puzzle per level.
type Provider struct{}

func NewProvider() Provider { return Provider{} }

// TypeFor maps a level number to its puzzle category.
func TypeFor(level int) (domain.LevelType, error) {
	t, ok := levelTypes[level]
	if !ok {
		return "", domain.ErrLevelOutOfRange
	}
	return t, nil
}

// Duration returns the countdown length for a level.
func (Provider) Duration(level int) time.Duration {
	if d, ok := levelDurations[level]; ok {
		return d
	}
	return 45 * time.Second
}

// PuzzleForLevel builds the canonical puzzle for a level. Fragments are in
// correct order and options unshuffled; shuffling belongs to the caller.
func (Provider) PuzzleForLevel(level int) (domain.Puzzle, error) {
	levelType, err := TypeFor(level)
	if err != nil {
		return domain.Puzzle{}, err
	}

	switch levelType {
	case domain.LevelIntro:
		v := FixedIncompleteVerse()
		fragments := make([]domain.Fragment, len(v.MissingFragments))
		for i, text := range v.MissingFragments {
			fragments[i] = domain.Fragment{
				ID:            fmt.Sprintf("intro-frag-%d", i),
				Text:          text,
				OriginalIndex: i,
			}
		}
		return domain.Puzzle{
			ID:        v.ID,
			Kind:      domain.PuzzleOrdered,
			Level:     levelType,
			Prompt:    v.VisibleText,
			Reference: v.Reference,
			Fragments: fragments,
		}, nil

	case domain.LevelMCQ:
		v := FixedMCQVerse()
		return domain.Puzzle{
			ID:            v.ID,
			Kind:          domain.PuzzleSingleChoice,
			Level:         levelType,
			Prompt:        v.IncompleteText,
			Reference:     v.Reference,
			CorrectAnswer: v.CorrectEnding,
			WrongOptions:  v.WrongOptions,
		}, nil

	case domain.LevelImage, domain.LevelImage2:
		q := FixedImageQuestion()
		if levelType == domain.LevelImage2 {
			q = FixedImageQuestion2()
		}
		return domain.Puzzle{
			ID:            q.ID,
			Kind:          domain.PuzzleSingleChoice,
			Level:         levelType,
			Prompt:        q.Question,
			ImageURL:      q.ImageURL,
			Explanation:   q.Explanation,
			CorrectAnswer: q.CorrectAnswer,
			WrongOptions:  q.WrongOptions,
		}, nil

	case domain.LevelEasy, domain.LevelMedium, domain.LevelMedium2:
		var v Verse
		switch levelType {
		case domain.LevelEasy:
			v = FixedVerse("easy")
		case domain.LevelMedium:
			v = FixedVerse("medium")
		default:
			v = FixedMedium2Verse()
		}
		return domain.Puzzle{
			ID:        v.ID,
			Kind:      domain.PuzzleOrdered,
			Level:     levelType,
			Prompt:    "Arrange the fragments to restore the verse",
			Reference: v.Reference,
			Fragments: fragment.Split(v.Text),
		}, nil
	}
	return domain.Puzzle{}, domain.ErrLevelOutOfRange
}
