package core

import (
	"encoding/hex"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PatternKind tags how a Pattern matches a token (spec.md §3 "Pattern"):
// whether it consumes a token verbatim, applies a regex, applies a regex
// then a transform, or checks/convert an opaque payload by runtime type.
type PatternKind uint8

// Pattern kinds.
const (
	KindDirect PatternKind = iota
	KindRegexMatch
	KindRegexTransform
	KindTypeCheck
	KindTypeConvert
)

// emptySentinel is the marker value produced by the Empty pattern and used
// by NewArgs as the default of an optional slot declared without one
// (mirrors nepattern.Empty in the source this spec distills from).
type emptySentinel struct{}

// Empty is the sentinel value meaning "no argument was supplied". Compare
// with ==, not reflect.DeepEqual.
var Empty any = emptySentinel{}

// matchFunc consumes zero or more elements from d and returns the matched
// value, or an error describing why the pattern did not match. Patterns
// that fail MUST NOT leave the cursor advanced; callers are expected to
// wrap calls in a savepoint/restore pair regardless, but well-behaved
// patterns keep cursor discipline themselves too.
type matchFunc func(d *DataCollection) (value any, err error)

// Pattern is a composable, named value matcher: the unit of typing for a
// single argument slot (spec.md §4.1).
type Pattern struct {
	// Name is the pattern's display name, used in help text and error
	// messages (e.g. "int", "url").
	Name string
	// Kind classifies how the pattern matches, for introspection/help.
	Kind PatternKind
	// TypeTag is the target type's display tag (e.g. "int", "bool").
	TypeTag string

	match matchFunc
}

// Find runs the pattern against the collection's cursor. On failure the
// cursor is restored to where it was before the attempt.
func (p *Pattern) Find(d *DataCollection) (any, error) {
	save := d.Savepoint()
	v, err := p.match(d)
	if err != nil {
		d.RestoreTo(save)
		return nil, err
	}
	return v, nil
}

// newPattern is the low-level constructor used by every built-in and by
// user-defined patterns built through the combinators below.
func newPattern(name string, kind PatternKind, typeTag string, fn matchFunc) *Pattern {
	return &Pattern{Name: name, Kind: kind, TypeTag: typeTag, match: fn}
}

// NewDirect builds a Pattern that consumes exactly one element and accepts
// it via check, without any text transformation.
func NewDirect(name, typeTag string, check func(Element) (any, bool)) *Pattern {
	return newPattern(name, KindDirect, typeTag, func(d *DataCollection) (any, error) {
		e, ok := d.Peek()
		if !ok {
			return nil, errNoToken(name)
		}
		v, accepted := check(e)
		if !accepted {
			return nil, errRejected(name, e)
		}
		d.PopFront()
		return v, nil
	})
}

// NewRegexMatch builds a Pattern that consumes one text token iff it fully
// matches re, returning the matched string itself.
func NewRegexMatch(name, typeTag string, re *regexp.Regexp) *Pattern {
	return newPattern(name, KindRegexMatch, typeTag, func(d *DataCollection) (any, error) {
		e, ok := d.Peek()
		if !ok || !e.IsText() || !re.MatchString(e.Text) {
			return nil, errRejectedPeek(name, d)
		}
		d.PopFront()
		return e.Text, nil
	})
}

// NewRegexTransform builds a Pattern that consumes one text token iff it
// matches re, then feeds the token through transform to produce the typed
// value.
func NewRegexTransform(name, typeTag string, re *regexp.Regexp, transform func(string) (any, error)) *Pattern {
	return newPattern(name, KindRegexTransform, typeTag, func(d *DataCollection) (any, error) {
		e, ok := d.Peek()
		if !ok || !e.IsText() || !re.MatchString(e.Text) {
			return nil, errRejectedPeek(name, d)
		}
		v, err := transform(e.Text)
		if err != nil {
			return nil, err
		}
		d.PopFront()
		return v, nil
	})
}

// NewTypeCheck builds a Pattern that consumes one element iff it is an
// opaque payload (not text) and check accepts it.
func NewTypeCheck(name, typeTag string, check func(any) bool) *Pattern {
	return newPattern(name, KindTypeCheck, typeTag, func(d *DataCollection) (any, error) {
		e, ok := d.Peek()
		if !ok || e.IsText() || !check(e.Payload) {
			return nil, errRejectedPeek(name, d)
		}
		d.PopFront()
		return e.Payload, nil
	})
}

// NewTypeConvert builds a Pattern like NewTypeCheck, but convert may also
// coerce the payload to a different representation instead of a plain
// boolean accept/reject.
func NewTypeConvert(name, typeTag string, convert func(any) (any, bool)) *Pattern {
	return newPattern(name, KindTypeConvert, typeTag, func(d *DataCollection) (any, error) {
		e, ok := d.Peek()
		if !ok || e.IsText() {
			return nil, errRejectedPeek(name, d)
		}
		v, accepted := convert(e.Payload)
		if !accepted {
			return nil, errRejectedPeek(name, d)
		}
		d.PopFront()
		return v, nil
	})
}

// Union tries each pattern left-to-right; the first success wins.
func Union(patterns ...*Pattern) *Pattern {
	return newPattern(unionName(patterns), KindDirect, "union", func(d *DataCollection) (any, error) {
		var lastErr error
		for _, p := range patterns {
			if v, err := p.Find(d); err == nil {
				return v, nil
			} else {
				lastErr = err
			}
		}
		return nil, lastErr
	})
}

// Sequence consumes one token per pattern, in order, and returns the slice
// of matched values. It fails (restoring the cursor) if any member fails.
func Sequence(patterns ...*Pattern) *Pattern {
	return newPattern("sequence", KindDirect, "sequence", func(d *DataCollection) (any, error) {
		values := make([]any, 0, len(patterns))
		for _, p := range patterns {
			v, err := p.Find(d)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	})
}

// Anti succeeds iff p fails on the current token, consuming that token and
// returning its raw value (string or payload).
func Anti(p *Pattern) *Pattern {
	return newPattern("anti:"+p.Name, KindDirect, p.TypeTag, func(d *DataCollection) (any, error) {
		if _, err := p.Find(d); err == nil {
			return nil, errRejectedPeek("anti:"+p.Name, d)
		}
		e, ok := d.PopFront()
		if !ok {
			return nil, errNoToken("anti:" + p.Name)
		}
		if e.IsText() {
			return e.Text, nil
		}
		return e.Payload, nil
	})
}

// OptionalPattern never fails: it yields def without consuming when p fails.
func OptionalPattern(p *Pattern, def any) *Pattern {
	return newPattern("optional:"+p.Name, p.Kind, p.TypeTag, func(d *DataCollection) (any, error) {
		if v, err := p.Find(d); err == nil {
			return v, nil
		}
		return def, nil
	})
}

func unionName(patterns []*Pattern) string {
	if len(patterns) == 0 {
		return "union()"
	}
	name := "union(" + patterns[0].Name
	for _, p := range patterns[1:] {
		name += "|" + p.Name
	}
	return name + ")"
}

// Predefined patterns (spec.md §4.1).
var (
	// Int matches a base-10 (optionally signed) integer token.
	Int = NewRegexTransform("int", "int", regexp.MustCompile(`^[+-]?\d+$`), func(s string) (any, error) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errConvert("int", s, err)
		}
		return v, nil
	})

	// Float matches a decimal floating point token.
	Float = NewRegexTransform("float", "float", regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`), func(s string) (any, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errConvert("float", s, err)
		}
		return v, nil
	})

	// Bool matches true/false (case-insensitive, plus yes/no/1/0).
	Bool = NewRegexTransform("bool", "bool", regexp.MustCompile(`(?i)^(true|false|yes|no|y|n|1|0)$`), func(s string) (any, error) {
		switch strings.ToLower(s) {
		case "true", "yes", "y", "1":
			return true, nil
		default:
			return false, nil
		}
	})

	// Str matches any single text token, verbatim.
	Str = NewDirect("str", "str", func(e Element) (any, bool) {
		if !e.IsText() {
			return nil, false
		}
		return e.Text, true
	})

	// AnyOne matches exactly one token of any kind - text or payload.
	AnyOne = NewDirect("any", "any", func(e Element) (any, bool) {
		if e.IsText() {
			return e.Text, true
		}
		return e.Payload, true
	})

	// URL matches a token that go-playground/validator accepts as a URL.
	URL = NewRegexTransform("url", "url", regexp.MustCompile(`^\S+://\S+$`), func(s string) (any, error) {
		if err := sharedValidator.Var(s, "url"); err != nil {
			return nil, errConvert("url", s, err)
		}
		u, err := url.Parse(s)
		if err != nil {
			return nil, errConvert("url", s, err)
		}
		return u, nil
	})

	// IP matches an IPv4 or IPv6 literal.
	IP = NewRegexTransform("ip", "ip", regexp.MustCompile(`^[0-9a-fA-F.:]+$`), func(s string) (any, error) {
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, errConvert("ip", s, errBadIP)
		}
		return ip, nil
	})

	// Email matches an RFC 5322-ish address, validated with go-playground/validator.
	Email = NewRegexTransform("email", "email", regexp.MustCompile(`^\S+@\S+\.\S+$`), func(s string) (any, error) {
		if err := sharedValidator.Var(s, "email"); err != nil {
			return nil, errConvert("email", s, err)
		}
		return s, nil
	})

	// Hex matches a hexadecimal token and decodes it to bytes.
	Hex = NewRegexTransform("hex", "hex", regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]+$`), func(s string) (any, error) {
		trimmed := s
		if len(trimmed) > 2 && (trimmed[:2] == "0x" || trimmed[:2] == "0X") {
			trimmed = trimmed[2:]
		}
		if len(trimmed)%2 != 0 {
			trimmed = "0" + trimmed
		}
		b, err := hex.DecodeString(trimmed)
		if err != nil {
			return nil, errConvert("hex", s, err)
		}
		return b, nil
	})

	// AllParam consumes every remaining element and returns it as []any, in
	// order. Spec.md's open question about subcommand greediness is resolved
	// via the slot-level Greedy flag on Arg (see args.go).
	AllParam = newPattern("allparam", KindDirect, "[]any", func(d *DataCollection) (any, error) {
		rest := d.Remaining()
		values := make([]any, len(rest))
		for i, e := range rest {
			if e.IsText() {
				values[i] = e.Text
			} else {
				values[i] = e.Payload
			}
		}
		for range rest {
			d.PopFront()
		}
		return values, nil
	})

	// EmptyPattern always succeeds without consuming, yielding the Empty sentinel.
	EmptyPattern = newPattern("empty", KindDirect, "empty", func(d *DataCollection) (any, error) {
		return Empty, nil
	})

	sharedValidator = validator.New()
	errBadIP        = errInvalidIP{}
)

type errInvalidIP struct{}

func (errInvalidIP) Error() string { return "not a valid IP literal" }
