package core

import "strings"

// Node is the common contract shared by Option, Subcommand and Sentence -
// anything the analyser's alias table can point to (spec.md §3
// "CommandNode / Option / Subcommand").
type Node interface {
	NodeName() string
	NodeAliases() []string
	NodeArgs() *Args
	NodeSeparators() []string
	NodeRequires() []string
	NodePriority() int
	NodeDest() string
	NodeHelp() string
	isNode()
}

// CommandNode is the base embedded by Option and Subcommand: a name with
// aliases, optional args, separators, a requirement chain, a tie-break
// priority and help text (spec.md §3).
type CommandNode struct {
	Name       string
	Aliases    []string
	Args       *Args
	Separators []string
	Requires   []string
	Priority   int
	HelpText   string
	Dest       string

	// order is not set or read anywhere; priority ties are broken by
	// registration order through the stable sort in sortByPriorityDesc.
	order int
}

// newCommandNode builds a CommandNode, expanding a "--foo|-f" style spec
// string into Name="--foo" and an alias "-f" (spec.md §4.3).
func newCommandNode(spec string, args *Args) CommandNode {
	parts := strings.Split(spec, "|")
	name := strings.TrimSpace(parts[0])
	aliases := []string{name}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p != "" {
			aliases = append(aliases, p)
		}
	}
	return CommandNode{
		Name:       name,
		Aliases:    aliases,
		Args:       args,
		Separators: []string{" "},
		Dest:       name,
	}
}

// NodeName implements Node.
func (c *CommandNode) NodeName() string { return c.Name }

// NodeAliases implements Node.
func (c *CommandNode) NodeAliases() []string { return c.Aliases }

// NodeArgs implements Node.
func (c *CommandNode) NodeArgs() *Args { return c.Args }

// NodeSeparators implements Node.
func (c *CommandNode) NodeSeparators() []string {
	if len(c.Separators) == 0 {
		return []string{" "}
	}
	return c.Separators
}

// NodeRequires implements Node.
func (c *CommandNode) NodeRequires() []string { return c.Requires }

// NodePriority implements Node.
func (c *CommandNode) NodePriority() int { return c.Priority }

// NodeDest implements Node.
func (c *CommandNode) NodeDest() string {
	if c.Dest == "" {
		return c.Name
	}
	return c.Dest
}

// NodeHelp implements Node.
func (c *CommandNode) NodeHelp() string { return c.HelpText }

// ActionFunc transforms an option's (or main-args') parsed dict after its
// Args have been populated (spec.md §4.6 "Actions").
type ActionFunc func(values map[string]any, raiseExc bool) (map[string]any, error)

// ArgAction wraps an ActionFunc with whether repeated invocations of the
// owning Option should accumulate into a slice instead of overwriting.
type ArgAction struct {
	Handle     ActionFunc
	Accumulate bool
}

// StoreTrue returns an ArgAction that unconditionally sets dest to true,
// ignoring any parsed args - the "[true]" bracket in the option mini-grammar
// (spec.md §6).
func StoreTrue(dest string) *ArgAction {
	return &ArgAction{Handle: func(values map[string]any, _ bool) (map[string]any, error) {
		values[dest] = true
		return values, nil
	}}
}

// StoreFalse is StoreTrue's complement - the "[false]" bracket.
func StoreFalse(dest string) *ArgAction {
	return &ArgAction{Handle: func(values map[string]any, _ bool) (map[string]any, error) {
		values[dest] = false
		return values, nil
	}}
}

// StoreConst returns an ArgAction that sets dest to a fixed value - the
// "[const]" bracket, with the constant supplied by the declarer rather than
// evaluated from source text (spec.md §9: no eval(), closed literal set only).
func StoreConst(dest string, value any) *ArgAction {
	return &ArgAction{Handle: func(values map[string]any, _ bool) (map[string]any, error) {
		values[dest] = value
		return values, nil
	}}
}

// Option is a flag/keyword node: `--name|-n <args...>` with an optional
// post-args ArgAction (spec.md §3, §4.6).
type Option struct {
	CommandNode
	Action *ArgAction
}

func (*Option) isNode() {}

// NewOption builds an Option. spec may be "--foo|-f" to declare an alias.
func NewOption(spec string, args *Args) *Option {
	return &Option{CommandNode: newCommandNode(spec, args)}
}

// WithAction attaches a post-args action and returns the Option for chaining.
func (o *Option) WithAction(action *ArgAction) *Option {
	o.Action = action
	return o
}

// WithPriority sets the Option's tie-break priority and returns it for chaining.
func (o *Option) WithPriority(priority int) *Option {
	o.Priority = priority
	return o
}

// WithRequires sets the Option's requirement chain and returns it for chaining.
func (o *Option) WithRequires(requires ...string) *Option {
	o.Requires = requires
	return o
}

// WithHelp sets the Option's help text and returns it for chaining.
func (o *Option) WithHelp(help string) *Option {
	o.HelpText = help
	return o
}

// Sentence is a synthesised placeholder node representing one word of a
// requirement chain in the alias table (spec.md GLOSSARY "Sentence").
type Sentence struct {
	Name string
}

func (*Sentence) isNode() {}

// NodeName implements Node.
func (s *Sentence) NodeName() string { return s.Name }

// NodeAliases implements Node.
func (s *Sentence) NodeAliases() []string { return []string{s.Name} }

// NodeArgs implements Node.
func (s *Sentence) NodeArgs() *Args { return nil }

// NodeSeparators implements Node.
func (s *Sentence) NodeSeparators() []string { return []string{" "} }

// NodeRequires implements Node.
func (s *Sentence) NodeRequires() []string { return nil }

// NodePriority implements Node.
func (s *Sentence) NodePriority() int { return 0 }

// NodeDest implements Node.
func (s *Sentence) NodeDest() string { return s.Name }

// NodeHelp implements Node.
func (s *Sentence) NodeHelp() string { return "" }

// Subcommand is a named node owning its own nested options/subcommands and
// an alias table derived from them (spec.md §3 "Subcommand").
type Subcommand struct {
	CommandNode
	Options []Node

	// subParams is the derived alias table: every child option alias and
	// every Sentence synthesised from a child's Requires chain.
	subParams map[string]*AliasSlot
	// partLen bounds the number of state-machine iterations spent inside
	// this subcommand (spec.md §4.6 "InSubcommand").
	partLen int
}

func (*Subcommand) isNode() {}

// NewSubcommand builds a Subcommand with the given nested options/subcommands.
func NewSubcommand(spec string, args *Args, options ...Node) *Subcommand {
	sc := &Subcommand{CommandNode: newCommandNode(spec, args), Options: options}
	sc.compile()
	return sc
}

// WithRequires sets the Subcommand's requirement chain and returns it for chaining.
func (s *Subcommand) WithRequires(requires ...string) *Subcommand {
	s.Requires = requires
	return s
}

// WithPriority sets the Subcommand's tie-break priority and returns it for chaining.
func (s *Subcommand) WithPriority(priority int) *Subcommand {
	s.Priority = priority
	return s
}

// WithHelp sets the Subcommand's help text and returns it for chaining.
func (s *Subcommand) WithHelp(help string) *Subcommand {
	s.HelpText = help
	return s
}

// SubParams returns the compiled alias table for this subcommand's children.
func (s *Subcommand) SubParams() map[string]*AliasSlot { return s.subParams }

// PartLen returns the upper bound on state-machine iterations for this
// subcommand's own option/subcommand phase.
func (s *Subcommand) PartLen() int { return s.partLen }

func (s *Subcommand) compile() {
	var requireLen int
	s.subParams, requireLen = CompileParams(s.Options)

	extra := 0
	if s.Args != nil && !s.Args.IsEmpty() {
		extra = 1
	}
	s.partLen = len(s.Options) + extra + requireLen
}
