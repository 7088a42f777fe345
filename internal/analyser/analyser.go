// Package analyser implements the compiled state machine that walks a
// DataCollection against a compiled Command: header matching (with fuzzy
// fallback), the main-args phase, option and subcommand recursion, and
// completion-hint computation (spec.md §4.6, component C6).
package analyser

import (
	"github.com/reeflective/dialect/internal/core"
	cerrors "github.com/reeflective/dialect/internal/errors"
	"github.com/reeflective/dialect/internal/logging"
)

// Analyser is a frozen, reusable compilation of one Command: its header
// matcher, its top-level alias table, and the bound on state-machine
// iterations (spec.md §4.6 "Compilation").
type Analyser struct {
	Command *core.Command

	headers *headerTable
	params  map[string]*core.AliasSlot
	ids     map[string]bool
	partLen int

	log *logging.Logger
}

// Compile freezes cmd into an Analyser. Compilation never fails on its own
// - any structural problem (duplicate node names) is already rejected by
// core.NewCommand at construction time.
func Compile(cmd *core.Command, log *logging.Logger) *Analyser {
	if log == nil {
		log = logging.Nop()
	}
	params, requireLen := core.CompileParams(cmd.Options)

	extra := 0
	if cmd.MainArgs != nil && !cmd.MainArgs.IsEmpty() {
		extra = 1
	}

	a := &Analyser{
		Command: cmd,
		headers: compileHeaders(cmd.Headers),
		params:  params,
		ids:     paramIDs(params),
		partLen: len(cmd.Options) + extra + requireLen,
		log:     log,
	}
	log.Debugf("compiled analyser for %q: %d params, part_len=%d", cmd.CommandName, len(params), a.partLen)
	return a
}

// Analyse runs the full state machine over data and returns the resulting
// Arparma. It never panics: every fatal condition is either returned inline
// (when Command.Meta.RaiseException is true) or folded into the result's
// ErrorData/ErrorInfo (spec.md §7 "Propagation policy").
func (a *Analyser) Analyse(data *core.DataCollection) *core.Arparma {
	result := core.NewArparma(a.Command, data)

	head, err := a.matchHead(data)
	if err != nil {
		return result.Fail(err)
	}

	mainArgs := map[string]any{}
	options := map[string]core.OptionResult{}
	subs := map[string]core.SubcommandResult{}
	var errData []string
	var pending []string // run of consumed Sentence words awaiting a Requires match
	mainConsumed := a.Command.MainArgs == nil || a.Command.MainArgs.IsEmpty()

	limit := a.partLen + 1
	for i := 0; i < limit && !data.IsExhausted(); i++ {
		e, ok := data.Peek()
		if !ok {
			break
		}

		if e.IsText() && completionAliases[e.Text] {
			data.PopFront()
			var partial string
			if next, ok := data.Peek(); ok && next.IsText() {
				partial = next.Text
			}
			hint := computeCompletion(a.params, a.Command.MainArgs, partial)
			return a.completionResult(result, hint, partial)
		}

		if e.IsText() {
			if slot, known := a.params[e.Text]; known {
				if _, isSentence := slot.Single.(*core.Sentence); isSentence {
					data.PopFront()
					pending = append(pending, e.Text)
					continue
				}
				if core.RequiresSatisfied(slot.Single.NodeRequires(), pending) {
					pending = nil
					if failed := a.stepKnownToken(slot, data, &options, &subs, &errData); failed != nil {
						return result.Fail(failed)
					}
					continue
				}
				// Requires chain not yet walked: this node isn't activated
				// yet, fall through as if the token were unknown.
			}
		}

		if !mainConsumed {
			vals, argErr := analyseArgs(a.Command.MainArgs, data, a.ids)
			mainConsumed = true
			if argErr != nil {
				if a.Command.Meta.RaiseException {
					return result.Fail(argErr)
				}
				errData = append(errData, argErr.Error())
				continue
			}
			mainArgs = vals
			continue
		}

		uErr := cerrors.Newf(cerrors.UnexpectedToken, "unexpected token %q", describe(e))
		if a.Command.Meta.RaiseException {
			return result.Fail(uErr)
		}
		errData = append(errData, uErr.Error())
		data.PopFront()
	}

	for _, e := range data.Remaining() {
		errData = append(errData, "unconsumed trailing token "+describe(e))
	}

	result.EncapsulateResult(head, mainArgs, options, subs)
	result.ErrorData = errData
	return result
}

// stepKnownToken dispatches one already-identified param-table token to its
// Option/Subcommand handling, folding failures into errData when
// RaiseException is false, or returning them for an immediate Fail otherwise.
func (a *Analyser) stepKnownToken(slot *core.AliasSlot, data *core.DataCollection, options *map[string]core.OptionResult, subs *map[string]core.SubcommandResult, errData *[]string) error {
	switch n := slot.Single.(type) {
	case *core.Option:
		opt, res, err := analyseOption(slot, data, a.ids)
		if err != nil {
			if a.Command.Meta.RaiseException {
				return err
			}
			*errData = append(*errData, err.Error())
			data.PopFront()
			return nil
		}
		mergeOption(*options, opt.NodeDest(), opt, res)
		return nil
	case *core.Subcommand:
		res, err := analyseSubcommand(n, data, a.ids)
		if err != nil {
			if a.Command.Meta.RaiseException {
				return err
			}
			*errData = append(*errData, err.Error())
			return nil
		}
		(*subs)[n.NodeDest()] = res
		return nil
	}
	return nil
}

// matchHead consumes the head token(s) and matches them against the
// compiled header table, with a fuzzy "did you mean" fallback (spec.md §4.6
// state 1 "Start").
func (a *Analyser) matchHead(data *core.DataCollection) (core.HeadResult, error) {
	e, ok := data.PopFront()
	if !ok {
		return core.HeadResult{}, cerrors.New(cerrors.HeaderMissing, "empty input")
	}
	if !e.IsText() {
		return core.HeadResult{}, cerrors.New(cerrors.HeaderMissing, "head token is not text")
	}

	if head, ok := a.headers.match(e.Text); ok {
		return head, nil
	}

	if a.Command.Meta.FuzzyMatch {
		if s, found := a.headers.suggest(e.Text, a.Command.Meta.FuzzyThreshold); found {
			return core.HeadResult{}, cerrors.Newf(cerrors.FuzzyMatchSuccess, "unknown command %q, did you mean %q?", e.Text, s.Candidate)
		}
	}

	return core.HeadResult{}, cerrors.Newf(cerrors.HeaderMissing, "no header matches %q (accepted: %s)", e.Text, joinHeaders(a.Command.Headers))
}

func (a *Analyser) completionResult(result *core.Arparma, hint CompletionResult, partial string) *core.Arparma {
	result.Matched = false
	result.ErrorInfo = cerrors.New(cerrors.Unknown, "completion requested")
	result.OtherArgs = map[string]any{
		"completion.options":     hint.Options,
		"completion.subcommands": hint.Subcommands,
		"completion.hints":       hint.ArgHints,
		"completion.partial":     partial,
	}
	return result
}

func describe(e core.Element) string {
	if e.IsText() {
		return e.Text
	}
	return "<payload>"
}
