package analyser

import (
	"github.com/reeflective/dialect/internal/core"
	cerrors "github.com/reeflective/dialect/internal/errors"
)

// analyseSubcommand consumes a Subcommand's name token, then loops over its
// own param table exactly as the top-level HeaderMatched state does, bounded
// by s.PartLen() iterations (spec.md §4.6 "InSubcommand(s)").
func analyseSubcommand(sub *core.Subcommand, d *core.DataCollection, outerBoundary map[string]bool) (core.SubcommandResult, error) {
	d.PopFront() // consume the subcommand's own name token

	params := sub.SubParams()
	innerBoundary := mergeBoundary(outerBoundary, paramIDs(params))

	args, err := analyseArgs(sub.NodeArgs(), d, innerBoundary)
	if err != nil {
		return core.SubcommandResult{}, err
	}

	options := map[string]core.OptionResult{}
	subs := map[string]core.SubcommandResult{}
	var pending []string // run of consumed Sentence words awaiting a Requires match

	limit := sub.PartLen()
	for i := 0; i < limit; i++ {
		e, ok := d.Peek()
		if !ok || !e.IsText() {
			break
		}
		slot, known := params[e.Text]
		if !known {
			if outerBoundary[e.Text] {
				break // belongs to the enclosing command, not us
			}
			return core.SubcommandResult{}, cerrors.Newf(cerrors.UnexpectedToken, "unexpected token %q inside subcommand %q", e.Text, sub.NodeName())
		}

		if _, isSentence := slot.Single.(*core.Sentence); isSentence {
			d.PopFront()
			pending = append(pending, e.Text)
			continue
		}

		if !core.RequiresSatisfied(slot.Single.NodeRequires(), pending) {
			if outerBoundary[e.Text] {
				break // not our Requires chain either; let the caller deal with it
			}
			return core.SubcommandResult{}, cerrors.Newf(cerrors.UnexpectedToken, "unexpected token %q inside subcommand %q: requires chain not satisfied", e.Text, sub.NodeName())
		}
		pending = nil

		switch n := slot.Single.(type) {
		case *core.Option:
			opt, res, optErr := analyseOption(slot, d, innerBoundary)
			if optErr != nil {
				return core.SubcommandResult{}, optErr
			}
			mergeOption(options, opt.NodeDest(), opt, res)
		case *core.Subcommand:
			nested, subErr := analyseSubcommand(n, d, innerBoundary)
			if subErr != nil {
				return core.SubcommandResult{}, subErr
			}
			subs[n.NodeDest()] = nested
		}
	}

	return core.SubcommandResult{Matched: true, Args: args, Options: options, Subs: subs}, nil
}

func paramIDs(params map[string]*core.AliasSlot) map[string]bool {
	ids := make(map[string]bool, len(params))
	for k := range params {
		ids[k] = true
	}
	return ids
}

func mergeBoundary(a, b map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(a)+len(b))
	for k := range a {
		merged[k] = true
	}
	for k := range b {
		merged[k] = true
	}
	return merged
}
