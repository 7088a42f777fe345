package core

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	cerrors "github.com/reeflective/dialect/internal/errors"
)

var (
	intRe   = regexp.MustCompile(`^[+-]?\d+$`)
	floatRe = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)([eE][+-]?\d+)?$`)
)

func parseIntLiteral(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func parseFloatLiteral(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// literalRegex builds a regexp matching name verbatim (name is not regexp
// syntax here - it is a plain literal word from the grammar).
func literalRegex(name string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(name) + "$")
}

// TypeTable maps a type name used in the pattern-string mini-grammar
// (spec.md §6) to the Pattern that enforces it, with an escape hatch for
// user-registered custom types (spec.md §4.2 "custom_types").
type TypeTable struct {
	mu    sync.RWMutex
	types map[string]*Pattern
}

// NewTypeTable builds a TypeTable pre-populated with the predefined
// patterns (spec.md §4.1).
func NewTypeTable() *TypeTable {
	t := &TypeTable{types: map[string]*Pattern{
		"int":    Int,
		"float":  Float,
		"bool":   Bool,
		"str":    Str,
		"string": Str,
		"any":    AnyOne,
		"url":    URL,
		"ip":     IP,
		"email":  Email,
		"hex":    Hex,
	}}
	return t
}

// Register adds or overrides a named type in the table - the "custom_types"
// escape hatch.
func (t *TypeTable) Register(name string, pattern *Pattern) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[name] = pattern
}

// Lookup resolves a type name to its Pattern.
func (t *TypeTable) Lookup(name string) (*Pattern, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.types[name]
	return p, ok
}

// DefaultTypes is the process-wide type table used when callers do not
// supply their own.
var DefaultTypes = NewTypeTable()

// ParseArgSlot parses a single slot out of the mini-grammar (spec.md §6):
//
//	<name:type>        required
//	<name:type=default> defaulted, optional
//	[name]              a literal: the slot only matches the exact word "name"
//
// A trailing "#help text" sets the slot's Notice.
func ParseArgSlot(spec string, types *TypeTable) (*Arg, error) {
	if types == nil {
		types = DefaultTypes
	}

	body, help, _ := strings.Cut(spec, "#")
	body = strings.TrimSpace(body)
	help = strings.TrimSpace(help)

	switch {
	case strings.HasPrefix(body, "<") && strings.HasSuffix(body, ">"):
		inner := body[1 : len(body)-1]
		namePart, rest, hasType := strings.Cut(inner, ":")
		name := strings.TrimSpace(namePart)
		if name == "" {
			return nil, cerrors.New(cerrors.ArgInvalid, "empty arg name in slot grammar")
		}
		if !hasType {
			arg := Positional(name, AnyOne)
			arg.Notice = help
			return arg, nil
		}

		typeName, defaultPart, hasDefault := strings.Cut(rest, "=")
		typeName = strings.TrimSpace(typeName)
		pattern, ok := types.Lookup(typeName)
		if !ok {
			return nil, cerrors.Newf(cerrors.ArgInvalid, "unknown type %q in slot grammar", typeName)
		}

		var arg *Arg
		if hasDefault {
			arg = OptionalArg(name, pattern, parseLiteralDefault(strings.TrimSpace(defaultPart)))
		} else {
			arg = Positional(name, pattern)
		}
		arg.Notice = help
		return arg, nil

	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]"):
		name := body[1 : len(body)-1]
		arg := Positional(name, NewRegexMatch("literal:"+name, "literal", literalRegex(name)))
		arg.Notice = help
		arg.Flags |= FlagHidden
		return arg, nil

	default:
		return nil, cerrors.Newf(cerrors.ArgInvalid, "unrecognized slot grammar %q", spec)
	}
}

// ParseArgsString parses a whitespace-separated sequence of slot grammars
// into an Args list (spec.md §4.2 "From a string list").
func ParseArgsString(spec string, types *TypeTable) (*Args, error) {
	fields := splitTopLevel(spec)
	slots := make([]*Arg, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		arg, err := ParseArgSlot(f, types)
		if err != nil {
			return nil, err
		}
		slots = append(slots, arg)
	}
	return NewArgs(nil, slots...)
}

// splitTopLevel splits on whitespace but keeps "<...>" and "[...]" spans
// intact even if they contained (they don't, today, but this keeps the
// door open for slots with embedded help text containing spaces).
func splitTopLevel(s string) []string {
	var fields []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '<', '[':
			depth++
		case '>', ']':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && (r == ' ' || r == '\t') {
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

// parseLiteralDefault recognises the closed literal set the safe parser
// supports for default values (spec.md §9: no eval(), a safe literal parser
// only): true/false, integers, floats, or bare strings.
func parseLiteralDefault(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if intRe.MatchString(s) {
		if v, ok := parseIntLiteral(s); ok {
			return v
		}
	}
	if floatRe.MatchString(s) {
		if v, ok := parseFloatLiteral(s); ok {
			return v
		}
	}
	return strings.Trim(s, `"'`)
}
