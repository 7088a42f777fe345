package core

import (
	"strings"

	cerrors "github.com/reeflective/dialect/internal/errors"
)

// Header is one accepted invocation prefix: either a bare command name
// (Prefix == "") or a (prefix, name) pair, e.g. ("/", "kick") (spec.md §3
// "Alconna", GLOSSARY "Header").
type Header struct {
	Prefix string
	Name   string
}

// Meta carries a command's descriptive and behavioral metadata (spec.md §3,
// §6 "Config surface").
type Meta struct {
	Description string
	Usage       string
	Example     string

	// FuzzyMatch enables "did you mean" suggestions on header mismatch.
	FuzzyMatch bool
	// FuzzyThreshold bounds the edit distance accepted for a suggestion.
	// NewCommand turns zero into 2; CommandManager.Register replaces a value
	// that is still zero with the namespace's threshold.
	FuzzyThreshold int
	// KeepCRLF disables stripping \r\n from string input.
	KeepCRLF bool
	// RaiseException: true means fatal analyser errors abort with an error
	// return; false means they are captured into the result with
	// Matched=false (spec.md §7 "Propagation policy").
	RaiseException bool
}

// Command is the top-level compiled grammar: headers + command name + main
// args + options/subcommands + namespace + meta + behaviors (spec.md §3
// "Alconna").
type Command struct {
	ID string // assigned by the registry on successful Register

	Headers     []Header
	CommandName string
	MainArgs    *Args
	Options     []Node
	Namespace   string
	Meta        Meta
	Behaviors   []Behavior
}

// CommandOption configures a Command at construction time, in the style of
// Go functional options.
type CommandOption func(*Command)

// WithHeaders sets the accepted invocation headers. If never called, the
// command name itself is the sole header.
func WithHeaders(headers ...Header) CommandOption {
	return func(c *Command) { c.Headers = headers }
}

// WithMainArgs sets the command's top-level positional/keyword args.
func WithMainArgs(args *Args) CommandOption {
	return func(c *Command) { c.MainArgs = args }
}

// WithOptions appends options and/or subcommands.
func WithOptions(options ...Node) CommandOption {
	return func(c *Command) { c.Options = append(c.Options, options...) }
}

// WithNamespace assigns the command to a registry namespace; the default
// namespace is "" (global).
func WithNamespace(ns string) CommandOption {
	return func(c *Command) { c.Namespace = ns }
}

// WithCommandMeta sets the command's metadata.
func WithCommandMeta(meta Meta) CommandOption {
	return func(c *Command) { c.Meta = meta }
}

// WithBehaviors appends post-analysis behaviors, run in declaration order
// (after dependency flattening - see behavior.go).
func WithBehaviors(behaviors ...Behavior) CommandOption {
	return func(c *Command) { c.Behaviors = append(c.Behaviors, behaviors...) }
}

// NewCommand builds and validates a Command (spec.md §3 "Alconna"
// invariant: headers non-empty; no duplicate node name at the same scope).
func NewCommand(name string, opts ...CommandOption) (*Command, error) {
	if strings.TrimSpace(name) == "" {
		return nil, cerrors.New(cerrors.ArgInvalid, "command name must not be empty")
	}

	c := &Command{
		CommandName: name,
		Meta:        Meta{RaiseException: true, FuzzyThreshold: 2},
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.Headers) == 0 {
		c.Headers = []Header{{Name: name}}
	}
	if c.Meta.FuzzyThreshold == 0 {
		c.Meta.FuzzyThreshold = 2
	}

	if err := validateNodeNames(c.Options); err != nil {
		return nil, err
	}

	return c, nil
}

// Fingerprint is the registry uniqueness key: headers + command name, used
// to detect duplicate registration within a namespace (spec.md §3, §4.4).
func (c *Command) Fingerprint() string {
	var b strings.Builder
	for _, h := range c.Headers {
		b.WriteString(h.Prefix)
		b.WriteByte(0)
		b.WriteString(h.Name)
		b.WriteByte(0)
	}
	b.WriteString(c.CommandName)
	return b.String()
}

// validateNodeNames walks options/subcommands one level deep at a time,
// raising DuplicateCommand when two options, or two subcommands, share a
// name at the same scope; an option and a subcommand may share a name
// (grounded on
// arclet.alconna's AlconnaNodeVisitor, which raises the same error while
// building its name_list).
func validateNodeNames(options []Node) error {
	seen := map[string]bool{}
	for _, n := range options {
		kind := "option"
		if _, ok := n.(*Subcommand); ok {
			kind = "subcommand"
		}
		key := kind + ":" + n.NodeName()
		if seen[key] {
			return cerrors.Newf(cerrors.DuplicateCommand, "duplicate %s name %q", kind, n.NodeName())
		}
		seen[key] = true

		if sub, ok := n.(*Subcommand); ok {
			if err := validateNodeNames(sub.Options); err != nil {
				return err
			}
		}
	}
	return nil
}
