// Package fuzzy computes Damerau-Levenshtein edit distance between a missed
// header/alias and the set of registered candidates, for the analyser's
// "did you mean" suggestions.
//
// The distance metric is hand-rolled, generalised from plain Levenshtein to
// Damerau-Levenshtein by adding the adjacent-transposition case, because a
// bounded numeric edit distance is needed here - ranking libraries such as
// github.com/sahilm/fuzzy (used elsewhere in this module for completion
// ranking) don't expose one; they return a relevance-ordered subsequence
// match, not a bounded distance.
package fuzzy

// Distance returns the Damerau-Levenshtein edit distance between str and tgt:
// insertions, deletions, substitutions and adjacent-transposition each cost 1.
func Distance(str, tgt string) int {
	sr := []rune(str)
	tr := []rune(tgt)

	if len(sr) == 0 {
		return len(tr)
	}
	if len(tr) == 0 {
		return len(sr)
	}

	dists := make([][]int, len(sr)+1)
	for i := range dists {
		dists[i] = make([]int, len(tr)+1)
		dists[i][0] = i
	}
	for j := range dists[0] {
		dists[0][j] = j
	}

	for i := 1; i <= len(sr); i++ {
		for j := 1; j <= len(tr); j++ {
			cost := 1
			if sr[i-1] == tr[j-1] {
				cost = 0
			}

			del := dists[i-1][j] + 1
			ins := dists[i][j-1] + 1
			sub := dists[i-1][j-1] + cost
			best := min3(del, ins, sub)

			if i > 1 && j > 1 && sr[i-1] == tr[j-2] && sr[i-2] == tr[j-1] {
				if trans := dists[i-2][j-2] + 1; trans < best {
					best = trans
				}
			}

			dists[i][j] = best
		}
	}

	return dists[len(sr)][len(tr)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Suggestion is the best candidate found for a mismatched token, along with
// how far it is from that token.
type Suggestion struct {
	Candidate string
	Distance  int
}

// Closest returns the candidate with the smallest edit distance to word, and
// that distance. ok is false when choices is empty.
func Closest(word string, choices []string) (Suggestion, bool) {
	if len(choices) == 0 {
		return Suggestion{}, false
	}

	best := -1
	bestDist := -1
	for i, c := range choices {
		d := Distance(word, c)
		if best < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}

	return Suggestion{Candidate: choices[best], Distance: bestDist}, true
}

// Suggest returns the closest candidate to word iff its distance is within
// [1, threshold] - a distance of 0 means an exact match, which is not a fuzzy
// suggestion at all (spec.md §8: "iff edit-distance(header, registered) ≤
// threshold and ≥ 1").
func Suggest(word string, choices []string, threshold int) (Suggestion, bool) {
	best, ok := Closest(word, choices)
	if !ok {
		return Suggestion{}, false
	}
	if best.Distance < 1 || best.Distance > threshold {
		return Suggestion{}, false
	}
	return best, true
}
