package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDistanceIsZeroForIdenticalStrings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z]{0,12}`).Draw(t, "s")
		assert.Equal(t, 0, Distance(s, s))
	})
}

func TestDistanceIsSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-z]{0,8}`).Draw(t, "a")
		b := rapid.StringMatching(`[a-z]{0,8}`).Draw(t, "b")
		assert.Equal(t, Distance(a, b), Distance(b, a))
	})
}

// TestSuggestHonorsFuzzyBound checks the fuzzy bound invariant directly:
// Suggest only ever returns a candidate whose distance lies in
// [1, threshold].
func TestSuggestHonorsFuzzyBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "word")
		threshold := rapid.IntRange(0, 5).Draw(t, "threshold")
		n := rapid.IntRange(0, 6).Draw(t, "n")

		choices := make([]string, n)
		for i := range choices {
			choices[i] = rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "choice")
		}

		suggestion, ok := Suggest(word, choices, threshold)
		if !ok {
			return
		}
		assert.GreaterOrEqual(t, suggestion.Distance, 1)
		assert.LessOrEqual(t, suggestion.Distance, threshold)
	})
}

func TestDistanceSwapIsCheaperThanTwoSubstitutions(t *testing.T) {
	assert.Equal(t, 1, Distance("ab", "ba"))
}
