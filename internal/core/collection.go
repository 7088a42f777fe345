// Package core implements the compile+analyse data model: patterns, the
// argument model, the command node tree, the data-collection stream
// abstraction, and the structured result with its query/behavior pipeline
// (spec.md §3-§4, components C1-C5 and C7).
package core

import (
	"fmt"
	"strings"
)

// Element is one position in a DataCollection: either a text token or an
// opaque payload preserved verbatim (a mention, an image, a URL object -
// whatever the caller's message transport hands us).
type Element struct {
	// Text holds the token string when IsText is true.
	Text string
	// Payload holds the original non-text object when IsText is false.
	Payload any
	// Index is this element's position in the original, unfiltered stream.
	Index int
}

// IsText reports whether this element is a parsed string token rather than
// an opaque payload.
func (e Element) IsText() bool { return e.Payload == nil }

// DataCollection is the analyser's normalised view of an input stream: an
// ordered sequence of text tokens and preserved payloads, with a cursor that
// the analyser advances one token at a time (spec.md §3 "DataCollection",
// §4.5).
type DataCollection struct {
	elements []Element
	cursor   int
}

// Options controls how raw input is normalised into a DataCollection
// (spec.md §6 "Config surface": keep_crlf, filter_out).
type Options struct {
	// Separators used to split plain-string input into tokens. Defaults to
	// a single space.
	Separators []string
	// KeepCRLF disables the default stripping of bare \r and \n runs from
	// string tokens.
	KeepCRLF bool
	// FilterOut lists payload type names (as produced by a TypeTag func) to
	// drop entirely from the collection.
	FilterOut []string
	// TypeTag returns a stable name for a payload's runtime type, used by
	// FilterOut and by type-check patterns. Defaults to a %T format.
	TypeTag func(payload any) string
}

func defaultTypeTag(payload any) string {
	return elementTypeName(payload)
}

// NewFromString tokenizes a plain string: split on opts.Separators (a single
// space by default), with "quoted substrings" kept intact, the way a single
// shell command line is tokenized.
func NewFromString(input string, opts Options) *DataCollection {
	seps := opts.Separators
	if len(seps) == 0 {
		seps = []string{" "}
	}
	text := input
	if !opts.KeepCRLF {
		text = stripCRLF(text)
	}
	toks := tokenizeQuoted(text, seps)
	elems := make([]Element, len(toks))
	for i, t := range toks {
		elems[i] = Element{Text: t, Index: i}
	}
	return &DataCollection{elements: elems}
}

// NewFromSequence builds a DataCollection out of a heterogeneous slice:
// plain strings are tokenized in place, any other value becomes a single
// atomic payload element (spec.md §4.5 "mixed payload stream").
func NewFromSequence(items []any, opts Options) *DataCollection {
	seps := opts.Separators
	if len(seps) == 0 {
		seps = []string{" "}
	}
	tagger := opts.TypeTag
	if tagger == nil {
		tagger = defaultTypeTag
	}

	var elems []Element
	idx := 0
	for _, item := range items {
		if s, ok := item.(string); ok {
			text := s
			if !opts.KeepCRLF {
				text = stripCRLF(text)
			}
			for _, t := range tokenizeQuoted(text, seps) {
				elems = append(elems, Element{Text: t, Index: idx})
				idx++
			}
			continue
		}
		if filtered(tagger(item), opts.FilterOut) {
			idx++
			continue
		}
		elems = append(elems, Element{Payload: item, Index: idx})
		idx++
	}
	return &DataCollection{elements: elems}
}

func filtered(tag string, filterOut []string) bool {
	for _, f := range filterOut {
		if f == tag {
			return true
		}
	}
	return false
}

func elementTypeName(v any) string {
	type typed interface{ TypeTag() string }
	if t, ok := v.(typed); ok {
		return t.TypeTag()
	}
	return sprintfType(v)
}

// IsExhausted reports whether the cursor has consumed every element.
func (d *DataCollection) IsExhausted() bool {
	return d.cursor >= len(d.elements)
}

// Len returns the total element count, irrespective of cursor position.
func (d *DataCollection) Len() int {
	return len(d.elements)
}

// Pos returns the current cursor position (number of elements consumed).
func (d *DataCollection) Pos() int {
	return d.cursor
}

// Peek returns the element at the cursor without consuming it.
func (d *DataCollection) Peek() (Element, bool) {
	if d.IsExhausted() {
		return Element{}, false
	}
	return d.elements[d.cursor], true
}

// PeekAt returns the element offset positions ahead of the cursor, without
// consuming anything.
func (d *DataCollection) PeekAt(offset int) (Element, bool) {
	i := d.cursor + offset
	if i < 0 || i >= len(d.elements) {
		return Element{}, false
	}
	return d.elements[i], true
}

// PopFront consumes and returns the element at the cursor.
func (d *DataCollection) PopFront() (Element, bool) {
	e, ok := d.Peek()
	if ok {
		d.cursor++
	}
	return e, ok
}

// Rewind moves the cursor back n elements (used to restore a backtracking
// savepoint). It never moves the cursor before 0.
func (d *DataCollection) Rewind(n int) {
	d.cursor -= n
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// Savepoint returns an opaque marker for the current cursor position.
func (d *DataCollection) Savepoint() int {
	return d.cursor
}

// RestoreTo rewinds the cursor directly to a previously captured savepoint.
func (d *DataCollection) RestoreTo(savepoint int) {
	d.cursor = savepoint
}

// SplitOnce splits the current head text token on sep, consuming only the
// part before sep and leaving the remainder as the new head token - letting
// the analyser consume one word at a time without destroying the tail
// (spec.md §4.5).
func (d *DataCollection) SplitOnce(sep string) (head string, ok bool) {
	e, has := d.Peek()
	if !has || !e.IsText() {
		return "", false
	}
	before, after, found := strings.Cut(e.Text, sep)
	if !found {
		d.cursor++
		return e.Text, true
	}
	d.elements[d.cursor] = Element{Text: after, Index: e.Index}
	return before, true
}

// Remaining returns every element from the cursor to the end, without
// consuming them.
func (d *DataCollection) Remaining() []Element {
	return append([]Element(nil), d.elements[d.cursor:]...)
}

func sprintfType(v any) string {
	return fmt.Sprintf("%T", v)
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// tokenizeQuoted splits text on any of seps, but keeps "..." and '...'
// spans intact as a single token (quotes are stripped from the result).
func tokenizeQuoted(text string, seps []string) []string {
	var tokens []string
	var cur strings.Builder
	var quote rune
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quote != 0 {
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
			continue
		}
		if r == '"' || r == '\'' {
			quote = r
			continue
		}
		if matchesSep(runes, i, seps) {
			flush()
			i += sepLen(runes, i, seps) - 1
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return tokens
}

func matchesSep(runes []rune, i int, seps []string) bool {
	return sepLen(runes, i, seps) > 0
}

func sepLen(runes []rune, i int, seps []string) int {
	for _, sep := range seps {
		sr := []rune(sep)
		if i+len(sr) > len(runes) {
			continue
		}
		match := true
		for j, sc := range sr {
			if runes[i+j] != sc {
				match = false
				break
			}
		}
		if match {
			return len(sr)
		}
	}
	return 0
}
