package analyser

import (
	"github.com/reeflective/dialect/internal/core"
	cerrors "github.com/reeflective/dialect/internal/errors"
)

// analyseOption consumes one Option's alias token plus its own args phase
// (spec.md §4.6 "InOption(o)"). When several Options share the alias, each
// candidate in slot.Shared is tried in descending-priority order and the
// first whose args parse wins (spec.md §4.6 "Alias resolution with
// priority"); a failing candidate's token consumption is rolled back via a
// savepoint before the next candidate is tried.
func analyseOption(slot *core.AliasSlot, d *core.DataCollection, boundary map[string]bool) (*core.Option, core.OptionResult, error) {
	candidates := slot.Shared
	if len(candidates) == 0 {
		opt, ok := slot.Single.(*core.Option)
		if !ok {
			return nil, core.OptionResult{}, cerrors.New(cerrors.UnexpectedToken, "alias resolves to a non-option node")
		}
		candidates = []*core.Option{opt}
	}

	var lastErr error
	for _, opt := range candidates {
		save := d.Savepoint()
		res, err := tryOption(opt, d, boundary)
		if err == nil {
			return opt, res, nil
		}
		d.RestoreTo(save)
		lastErr = err
	}
	return nil, core.OptionResult{}, lastErr
}

func tryOption(opt *core.Option, d *core.DataCollection, boundary map[string]bool) (core.OptionResult, error) {
	d.PopFront() // consume the alias token itself

	args, err := analyseArgs(opt.Args, d, boundary)
	if err != nil {
		return core.OptionResult{}, err
	}

	res := core.OptionResult{Matched: true, Args: args}
	if opt.Action != nil {
		out, actErr := opt.Action.Handle(args, true)
		if actErr != nil {
			return core.OptionResult{}, actErr
		}
		res.Args = out
		if v, ok := out["__value__"]; ok {
			res.Value = v
		}
	}
	return res, nil
}

// mergeOption folds a freshly matched OptionResult into the accumulator,
// honoring the option's Action.Accumulate flag (spec.md §4.6 "Actions":
// "accumulate across repeats when declared so").
func mergeOption(dest map[string]core.OptionResult, name string, opt *core.Option, res core.OptionResult) {
	if opt.Action == nil || !opt.Action.Accumulate {
		dest[name] = res
		return
	}

	prev, ok := dest[name]
	if !ok {
		list := core.OptionResult{Matched: true, Args: res.Args, Value: []any{res.Value}}
		dest[name] = list
		return
	}

	values, _ := prev.Value.([]any)
	prev.Value = append(values, res.Value)
	dest[name] = prev
}
