package core

// AliasSlot is what an alias table entry points to: either a single node, or
// - when several Options share one alias - all of them, sorted by
// descending priority (spec.md §4.6 "Alias resolution with priority").
type AliasSlot struct {
	Single Node
	Shared []*Option
}

// CompileParams builds the alias table shared by a command or a subcommand's
// children: every option alias, every nested subcommand's name, and a
// Sentence marker for every distinct word appearing in a child's Requires
// chain (spec.md §4.6 "Requirement chains": "The compiler synthesises
// Sentence(name=wi) markers in the alias table so the state machine can
// validate prefixes without special-casing"). The second return value is the
// longest Requires chain among the children, used to size part_len.
func CompileParams(options []Node) (map[string]*AliasSlot, int) {
	table := map[string]*AliasSlot{}
	requireLen := 0

	for _, child := range options {
		switch n := child.(type) {
		case *Option:
			addAlias(table, n)
		case *Subcommand:
			table[n.Name] = &AliasSlot{Single: n}
		}
		if reqs := child.NodeRequires(); len(reqs) > 0 {
			if len(reqs) > requireLen {
				requireLen = len(reqs)
			}
			for _, w := range reqs {
				if _, exists := table[w]; !exists {
					table[w] = &AliasSlot{Single: &Sentence{Name: w}}
				}
			}
		}
	}
	return table, requireLen
}

func addAlias(table map[string]*AliasSlot, opt *Option) {
	for _, alias := range opt.Aliases {
		slot, exists := table[alias]
		if !exists {
			table[alias] = &AliasSlot{Single: opt, Shared: []*Option{opt}}
			continue
		}
		slot.Shared = append(slot.Shared, opt)
		sortByPriorityDesc(slot.Shared)
		slot.Single = slot.Shared[0]
	}
}

// RequiresSatisfied reports whether pending - the run of consumed Sentence
// words immediately preceding a candidate node, in order - exactly matches
// requires. A node with an empty Requires chain is always satisfied; one
// with a non-empty chain only activates when pending is that exact
// sequence, so a node reachable "directly" in the alias table (its own name
// is always registered there, regardless of Requires) still only dispatches
// once its whole prefix was actually walked.
func RequiresSatisfied(requires, pending []string) bool {
	if len(requires) == 0 {
		return true
	}
	if len(requires) != len(pending) {
		return false
	}
	for i, w := range requires {
		if pending[i] != w {
			return false
		}
	}
	return true
}

func sortByPriorityDesc(opts []*Option) {
	// Insertion sort: option counts per alias are tiny, and it is stable,
	// preserving registration order on ties (spec.md §8 "Priority").
	for i := 1; i < len(opts); i++ {
		for j := i; j > 0 && opts[j].Priority > opts[j-1].Priority; j-- {
			opts[j], opts[j-1] = opts[j-1], opts[j]
		}
	}
}
