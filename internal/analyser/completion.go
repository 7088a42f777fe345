package analyser

import (
	"github.com/sahilm/fuzzy"

	"github.com/reeflective/dialect/internal/core"
)

// completionAliases are the reserved tokens that short-circuit the
// HeaderMatched state into completion mode (spec.md §4.6 "Completion").
var completionAliases = map[string]bool{
	"--comp":       true,
	"--completion": true,
}

// CompletionResult is the synthetic, non-matching result produced when a
// completion alias is seen: the set of tokens that would be valid next.
type CompletionResult struct {
	Options     []string
	Subcommands []string
	ArgHints    []string
}

// computeCompletion lists every Option alias and Subcommand name in params
// and the completion hint of every main-args slot that has one. Aliases
// already consumed earlier in the line are not removed, and the hints are
// not narrowed to the slot currently being filled. When partial is
// non-empty, each candidate list is ranked against it with sahilm/fuzzy
// (best match first) instead of left in table-iteration order.
func computeCompletion(params map[string]*core.AliasSlot, mainArgs *core.Args, partial string) CompletionResult {
	var result CompletionResult
	for alias, slot := range params {
		switch slot.Single.(type) {
		case *core.Option:
			result.Options = append(result.Options, alias)
		case *core.Subcommand:
			result.Subcommands = append(result.Subcommands, alias)
		}
	}
	if mainArgs != nil {
		for _, slot := range mainArgs.Slots() {
			if slot.CompletionHint != "" {
				result.ArgHints = append(result.ArgHints, slot.CompletionHint)
			}
		}
	}

	if partial != "" {
		result.Options = rankCandidates(partial, result.Options)
		result.Subcommands = rankCandidates(partial, result.Subcommands)
		result.ArgHints = rankCandidates(partial, result.ArgHints)
	}
	return result
}

// rankCandidates reorders candidates by subsequence-fuzzy relevance to
// partial, dropping any candidate that doesn't match at all.
func rankCandidates(partial string, candidates []string) []string {
	if len(candidates) == 0 {
		return candidates
	}
	matches := fuzzy.Find(partial, candidates)
	ranked := make([]string, len(matches))
	for i, m := range matches {
		ranked[i] = candidates[m.Index]
	}
	return ranked
}
