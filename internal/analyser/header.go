package analyser

import (
	"strings"

	"github.com/reeflective/dialect/internal/core"
	cerrors "github.com/reeflective/dialect/internal/errors"
	"github.com/reeflective/dialect/internal/fuzzy"
)

// headerTable compiles a command's accepted Header list into the literal
// strings the Start state matches against, plus the same strings kept
// around as fuzzy-match candidates (spec.md §4.6 "Header matcher").
type headerTable struct {
	literals   map[string]core.Header
	candidates []string
}

func compileHeaders(headers []core.Header) *headerTable {
	t := &headerTable{literals: map[string]core.Header{}}
	for _, h := range headers {
		lit := h.Prefix + h.Name
		t.literals[lit] = h
		t.candidates = append(t.candidates, lit)
	}
	return t
}

// match reports whether token is one of the accepted headers, returning the
// matched Header's (prefix, name) split as a HeadResult.
func (t *headerTable) match(token string) (core.HeadResult, bool) {
	h, ok := t.literals[token]
	if !ok {
		return core.HeadResult{}, false
	}
	return core.HeadResult{
		Matched: true,
		Result:  token,
		Groups:  map[string]string{"prefix": h.Prefix, "name": h.Name},
	}, true
}

// suggest returns a fuzzy "did you mean" candidate for a mismatched token,
// bounded by threshold (spec.md §8 "Fuzzy bound": distance in [1, threshold]).
func (t *headerTable) suggest(token string, threshold int) (fuzzy.Suggestion, bool) {
	return fuzzy.Suggest(token, t.candidates, threshold)
}

// joinHeaders renders the accepted header literals for error messages.
func joinHeaders(headers []core.Header) string {
	lits := make([]string, len(headers))
	for i, h := range headers {
		lits[i] = h.Prefix + h.Name
	}
	return strings.Join(lits, ", ")
}

func headerMismatchErr(token, suggestion string) error {
	return cerrors.Newf(cerrors.FuzzyMatchSuccess, "unknown header %q, did you mean %q?", token, suggestion)
}

func headerMissingErr(token string, headers []core.Header) error {
	return cerrors.Newf(cerrors.HeaderMissing, "no header matches %q (accepted: %s)", token, joinHeaders(headers))
}
