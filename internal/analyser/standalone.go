package analyser

import (
	"github.com/reeflective/dialect/internal/core"
)

// AnalyseArgsStandalone runs a bare Args list against data with no
// surrounding command/option context, mirroring arclet.alconna's
// _DummyAnalyser + analyse_args - useful for unit-testing one Args in
// isolation (spec.md SPEC_FULL §3).
func AnalyseArgsStandalone(args *core.Args, data *core.DataCollection) (map[string]any, error) {
	return analyseArgs(args, data, map[string]bool{})
}

// AnalyseHeaderStandalone matches token against headers directly, with the
// same fuzzy fallback the compiled Analyser uses.
func AnalyseHeaderStandalone(headers []core.Header, token string, fuzzyThreshold int) (core.HeadResult, error) {
	t := compileHeaders(headers)
	if head, ok := t.match(token); ok {
		return head, nil
	}
	if fuzzyThreshold > 0 {
		if s, found := t.suggest(token, fuzzyThreshold); found {
			return core.HeadResult{}, headerMismatchErr(token, s.Candidate)
		}
	}
	return core.HeadResult{}, headerMissingErr(token, headers)
}

// AnalyseOptionStandalone runs a lone Option's alias+args phase, consuming
// from the front of data.
func AnalyseOptionStandalone(opt *core.Option, data *core.DataCollection) (core.OptionResult, error) {
	slot := &core.AliasSlot{Single: opt}
	_, res, err := analyseOption(slot, data, map[string]bool{})
	return res, err
}

// AnalyseSubcommandStandalone runs a lone Subcommand's name+args+children
// phase, consuming from the front of data.
func AnalyseSubcommandStandalone(sub *core.Subcommand, data *core.DataCollection) (core.SubcommandResult, error) {
	return analyseSubcommand(sub, data, map[string]bool{})
}
