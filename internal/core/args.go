package core

import (
	"strings"

	cerrors "github.com/reeflective/dialect/internal/errors"
)

// SlotFlag is a bitmask of the flags an Arg slot can carry (spec.md §3 "Arg
// slot"): optional, hidden, anti, keyword-only, multiple (variadic).
type SlotFlag uint8

// Slot flags.
const (
	FlagOptional SlotFlag = 1 << iota
	FlagHidden
	FlagAnti
	FlagKWOnly
	FlagMultiple
	// FlagGreedy resolves spec.md §9's open question on AllParam inside a
	// subcommand: when set, an AllParam/variadic slot consumes tokens past
	// the boundary of an enclosing command's remaining options too.
	FlagGreedy
)

// Has reports whether flag is set.
func (f SlotFlag) Has(flag SlotFlag) bool { return f&flag != 0 }

// Arg is one named, typed, flagged slot in an Args list (spec.md §3).
type Arg struct {
	// Name identifies the slot. Names starting with "_key_" are hidden
	// filler slots (spec.md §3).
	Name string
	// Pattern is the slot's value matcher. Nil if Nested is set instead.
	Pattern *Pattern
	// Nested lets a slot itself be a nested Args list, per spec.md's
	// "value: Pattern | Args | wildcard-marker".
	Nested *Args
	// Wildcard marks a slot that accepts exactly one arbitrary token,
	// deferring to AnyOne semantics regardless of Pattern.
	Wildcard bool

	// Default is used when the slot is FlagOptional and matching failed.
	Default any
	// HasDefault reports whether Default was explicitly set (as opposed to
	// being the zero value).
	HasDefault bool

	// DisplayName overrides Name in help text; empty means use Name.
	DisplayName string
	// Notice is an additional help annotation.
	Notice string
	// CompletionHint suggests what a completion engine should offer next.
	CompletionHint string

	// Validate is an optional go-playground/validator "validate" tag run
	// against the slot's converted value after Pattern matching succeeds -
	// the escape hatch for constraints a Pattern alone can't express (e.g.
	// "gt=0", "oneof=red green blue").
	Validate string

	Flags      SlotFlag
	Separators []string
}

// WithValidate attaches a go-playground/validator tag to an already-built
// Arg slot, returning it for chaining.
func (a *Arg) WithValidate(tag string) *Arg {
	a.Validate = tag
	return a
}

// IsHiddenFiller reports whether this slot is a synthesized, non-user-facing
// filler (spec.md §3: "Names starting with _key_ are hidden fillers").
func (a *Arg) IsHiddenFiller() bool {
	return strings.HasPrefix(a.Name, "_key_")
}

// Label returns DisplayName if set, else Name.
func (a *Arg) Label() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// Positional builds a required positional slot.
func Positional(name string, pattern *Pattern) *Arg {
	return &Arg{Name: name, Pattern: pattern}
}

// OptionalArg builds an optional positional slot with a fall-through default.
func OptionalArg(name string, pattern *Pattern, def any) *Arg {
	return &Arg{Name: name, Pattern: pattern, Default: def, HasDefault: def != nil, Flags: FlagOptional}
}

// KeywordOnly builds a slot only reachable by name (after the positional run).
func KeywordOnly(name string, pattern *Pattern) *Arg {
	return &Arg{Name: name, Pattern: pattern, Flags: FlagKWOnly}
}

// Variadic builds the (at most one) slot that absorbs every remaining token.
func Variadic(name string, pattern *Pattern) *Arg {
	return &Arg{Name: name, Pattern: pattern, Flags: FlagMultiple}
}

// Args is the ordered, immutable-after-construction slot list consumed by
// the analyser's arg phase (spec.md §3 "Args", §4.2).
type Args struct {
	slots      []*Arg
	separators []string

	varIndex    int // index of the single variadic slot, or -1
	kwOnlyStart int // index of the first kw-only slot, or len(slots)
}

// NewArgs validates and builds an Args list from slots, enforcing spec.md
// §3's invariants: positional slots precede kw-only slots, at most one
// variadic slot, and every FlagOptional slot carries a default.
func NewArgs(separators []string, slots ...*Arg) (*Args, error) {
	if len(separators) == 0 {
		separators = []string{" "}
	}

	varIndex := -1
	kwOnlyStart := len(slots)
	seenKWOnly := false

	for i, s := range slots {
		if s.Flags.Has(FlagKWOnly) {
			if !seenKWOnly {
				kwOnlyStart = i
				seenKWOnly = true
			}
		} else if seenKWOnly {
			return nil, cerrors.Newf(cerrors.ArgInvalid, "positional slot %q declared after keyword-only slots", s.Name)
		}

		if s.Flags.Has(FlagMultiple) {
			if varIndex != -1 {
				return nil, cerrors.Newf(cerrors.ArgInvalid, "more than one variadic slot: %q and %q", slots[varIndex].Name, s.Name)
			}
			varIndex = i
		}

		if s.Flags.Has(FlagOptional) && !s.HasDefault {
			s.Default = Empty
			s.HasDefault = true
		}
	}

	return &Args{slots: slots, separators: separators, varIndex: varIndex, kwOnlyStart: kwOnlyStart}, nil
}

// Slots returns the ordered slot list.
func (a *Args) Slots() []*Arg { return a.slots }

// Len returns the slot count.
func (a *Args) Len() int { return len(a.slots) }

// Get looks up a slot by name.
func (a *Args) Get(name string) (*Arg, bool) {
	for _, s := range a.slots {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Separators returns the separator set used between this Args' own tokens.
func (a *Args) Separators() []string { return a.separators }

// VarPositional returns the single variadic slot, if any.
func (a *Args) VarPositional() (*Arg, bool) {
	if a.varIndex == -1 {
		return nil, false
	}
	return a.slots[a.varIndex], true
}

// KWOnlyStartIndex returns the index of the first keyword-only slot, or
// Len() if there are none.
func (a *Args) KWOnlyStartIndex() int { return a.kwOnlyStart }

// IsEmpty reports whether this Args has no slots at all.
func (a *Args) IsEmpty() bool { return len(a.slots) == 0 }
