package domain

// PuzzleKind selects the correctness rule for a puzzle.
type PuzzleKind string

const (
	// PuzzleOrdered puzzles are solved by arranging fragments into the
	// canonical sequence.
	PuzzleOrdered PuzzleKind = "ordered"
	// PuzzleSingleChoice puzzles are solved by picking exactly one option.
	PuzzleSingleChoice PuzzleKind = "singleChoice"
)

// Fragment is a short word group used as a selectable unit in ordering
// puzzles. OriginalIndex is the unique sort key that reconstructs the
// original verse order.
type Fragment struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	OriginalIndex int    `json:"originalIndex"`
}

// Puzzle is the canonical (unshuffled) content of one level.
type Puzzle struct {
	ID          string     `json:"id"`
	Kind        PuzzleKind `json:"kind"`
	Level       LevelType  `json:"level"`
	Prompt      string     `json:"prompt"`
	Reference   string     `json:"reference,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Explanation string     `json:"explanation,omitempty"`

	// Fragments holds the correct sequence for ordered puzzles.
	Fragments []Fragment `json:"fragments,omitempty"`
	// CorrectAnswer and WrongOptions apply to single-choice puzzles.
	CorrectAnswer string   `json:"-"`
	WrongOptions  []string `json:"-"`
}

// Answer is a participant's submission for one level.
type Answer struct {
	FragmentTexts []string `json:"fragments,omitempty"`
	Option        string   `json:"option,omitempty"`
}

// Ready reports whether the answer meets the minimum selection for
// submission: an exact-count sequence for ordered puzzles, a non-empty
// option for single-choice ones.
func (p Puzzle) Ready(a Answer) bool {
	switch p.Kind {
	case PuzzleOrdered:
		return len(a.FragmentTexts) == len(p.Fragments)
	case PuzzleSingleChoice:
		return a.Option != ""
	}
	return false
}

// Check applies the variant's correctness rule.
func (p Puzzle) Check(a Answer) bool {
	switch p.Kind {
	case PuzzleOrdered:
		if len(a.FragmentTexts) != len(p.Fragments) {
			return false
		}
		for i, fragment := range p.Fragments {
			if a.FragmentTexts[i] != fragment.Text {
				return false
			}
		}
		return true
	case PuzzleSingleChoice:
		return a.Option != "" && a.Option == p.CorrectAnswer
	}
	return false
}
