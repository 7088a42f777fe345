package core

// HeadResult records the outcome of the header-matching phase (spec.md §3
// "HeadResult").
type HeadResult struct {
	Matched bool
	// Groups holds named captures from a (prefix, name) header match, e.g.
	// {"prefix": "/", "name": "kick"}.
	Groups map[string]string
	// Result is the raw matched header text.
	Result string
}

// OptionResult records one matched Option: its parsed args dict and, if an
// ArgAction ran, the action's (possibly transformed) return value in place
// of the raw dict (spec.md §3 "OptionResult", §4.6 "Actions").
type OptionResult struct {
	Matched bool
	Value   any
	Args    map[string]any
}

// SubcommandResult records one matched Subcommand: its own args dict plus
// the nested results of any options/subcommands it owns (spec.md §3
// "SubcommandResult").
type SubcommandResult struct {
	Matched bool
	Value   any
	Args    map[string]any
	Options map[string]OptionResult
	Subs    map[string]SubcommandResult
}
