// Package fragment turns verse text into the bounded set of selectable
// fragments used by ordering puzzles. Splitting is deterministic for a given
// text; shuffling is the only randomized step.
package fragment

import (
	"fmt"
	"math/rand"
	"strings"

	"words-of-healing/internal/domain"
)

const (
	wordsPerFragment = 2
	minFragments     = 7
	maxFragments     = 8
)

// Split groups consecutive words two-at-a-time into fragments and then
// enforces the [minFragments, maxFragments] bound: too few fragments get the
// longest one bisected until the floor is reached (or nothing multi-word is
// left to split), too many get the tail merged into its predecessor.
// Identifiers and OriginalIndex are renumbered densely in final order.
func Split(text string) []domain.Fragment {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	texts := make([]string, 0, len(words)/wordsPerFragment+1)
	for start := 0; start < len(words); start += wordsPerFragment {
		end := start + wordsPerFragment
		if end > len(words) {
			end = len(words)
		}
		texts = append(texts, strings.Join(words[start:end], " "))
	}

	for len(texts) < minFragments {
		longest := 0
		longestWords := 0
		for i, t := range texts {
			if n := len(strings.Fields(t)); n > longestWords {
				longestWords = n
				longest = i
			}
		}
		if longestWords <= 1 {
			// Degenerate verse: nothing left to bisect.
			break
		}
		parts := strings.Fields(texts[longest])
		mid := (len(parts) + 1) / 2
		head := strings.Join(parts[:mid], " ")
		tail := strings.Join(parts[mid:], " ")
		texts = append(texts[:longest], append([]string{head, tail}, texts[longest+1:]...)...)
	}

	for len(texts) > maxFragments {
		last := texts[len(texts)-1]
		texts = texts[:len(texts)-1]
		texts[len(texts)-1] = texts[len(texts)-1] + " " + last
	}

	fragments := make([]domain.Fragment, len(texts))
	for i, t := range texts {
		fragments[i] = domain.Fragment{
			ID:            fmt.Sprintf("fragment-%d", i),
			Text:          t,
			OriginalIndex: i,
		}
	}
	return fragments
}

// Shuffle returns a new slice holding an unbiased permutation of the input.
// The input is not mutated.
func Shuffle(rnd *rand.Rand, fragments []domain.Fragment) []domain.Fragment {
	shuffled := make([]domain.Fragment, len(fragments))
	copy(shuffled, fragments)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// ShuffleStrings is Shuffle for plain option lists (mcq/image levels).
func ShuffleStrings(rnd *rand.Rand, options []string) []string {
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
