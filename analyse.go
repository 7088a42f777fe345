package dialect

import (
	"github.com/reeflective/dialect/internal/analyser"
	"github.com/reeflective/dialect/internal/core"
)

// Analyser is a frozen, reusable compilation of one Command (spec.md §4.6
// "Compilation").
type Analyser = analyser.Analyser

// Compile freezes cmd into an Analyser that Analyse (or Manager.Parse) can
// run repeatedly against different inputs without re-deriving the alias
// table each time.
func Compile(cmd *Command) *Analyser {
	return analyser.Compile(cmd, nil)
}

// Analyse runs a, compiled from some Command, against data and returns the
// resulting Arparma. The caller is responsible for calling Arparma.Execute
// afterwards if the command declares behaviors.
func Analyse(a *Analyser, data *DataCollection) *Arparma {
	return a.Analyse(data)
}

// Parse is the common-case entry point: tokenize input as a plain string
// and analyse it against cmd in one call, executing cmd's behaviors on a
// successful match.
func Parse(cmd *Command, input string) *Arparma {
	a := Compile(cmd)
	data := core.NewFromString(input, core.Options{KeepCRLF: cmd.Meta.KeepCRLF})
	result := a.Analyse(data)
	if result.Matched {
		_ = result.Execute()
	}
	return result
}

// ParseSequence analyses a mixed string/payload stream (spec.md §4.5
// "mixed payload stream") against cmd.
func ParseSequence(cmd *Command, items []any) *Arparma {
	a := Compile(cmd)
	data := core.NewFromSequence(items, core.Options{KeepCRLF: cmd.Meta.KeepCRLF})
	result := a.Analyse(data)
	if result.Matched {
		_ = result.Execute()
	}
	return result
}

// AnalyseArgs runs a single Args list against a string, independent of any
// Command - useful for unit-testing a lone argument list (spec.md SPEC_FULL
// §3, mirroring arclet.alconna's analyse_args/_DummyAnalyser).
func AnalyseArgs(args *Args, input string) (map[string]any, error) {
	data := core.NewFromString(input, core.Options{})
	return analyser.AnalyseArgsStandalone(args, data)
}

// AnalyseHeader matches a single token against an explicit header set,
// independent of any Command.
func AnalyseHeader(headers []Header, token string, fuzzyThreshold int) (HeadResult, error) {
	return analyser.AnalyseHeaderStandalone(headers, token, fuzzyThreshold)
}

// AnalyseOption runs a single Option's alias + args phase against data.
func AnalyseOption(opt *Option, data *DataCollection) (OptionResult, error) {
	return analyser.AnalyseOptionStandalone(opt, data)
}

// AnalyseSubcommand runs a single Subcommand's name + args + children phase
// against data.
func AnalyseSubcommand(sub *Subcommand, data *DataCollection) (SubcommandResult, error) {
	return analyser.AnalyseSubcommandStandalone(sub, data)
}

// Completion is the option aliases, subcommand names, and main-args
// completion hints offered for a partially-typed line. Options already used
// earlier in the line are still listed.
type Completion struct {
	Options     []string
	Subcommands []string
	ArgHints    []string
}

// Complete analyses input with a trailing "--comp <partial>" appended and
// projects the resulting Arparma.OtherArgs completion keys into a Completion
// (integration/carapace builds shell completion on top of this rather than
// on Parse's match/no-match result).
func Complete(cmd *Command, input, partial string) Completion {
	line := input
	if line != "" {
		line += " "
	}
	line += "--comp " + partial

	result := Parse(cmd, line)
	return Completion{
		Options:     stringsSlice(result.OtherArgs["completion.options"]),
		Subcommands: stringsSlice(result.OtherArgs["completion.subcommands"]),
		ArgHints:    stringsSlice(result.OtherArgs["completion.hints"]),
	}
}

func stringsSlice(v any) []string {
	s, _ := v.([]string)
	return s
}
