package analyser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/dialect/internal/core"
	"github.com/reeflective/dialect/internal/logging"
)

func buildKickCommand(t *testing.T) *core.Command {
	t.Helper()

	mainArgs, err := core.NewArgs(nil, core.Positional("target", core.Str))
	require.NoError(t, err)

	optArgs, err := core.NewArgs(nil, core.Positional("reason", core.Str))
	require.NoError(t, err)
	opt := core.NewOption("--reason|-r", optArgs)

	cmd, err := core.NewCommand("kick", core.WithMainArgs(mainArgs), core.WithOptions(opt))
	require.NoError(t, err)
	return cmd
}

func TestAnalyseMatchesHeaderAndMainArgs(t *testing.T) {
	cmd := buildKickCommand(t)
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("kick bob", core.Options{})
	result := a.Analyse(data)

	require.True(t, result.Matched)
	assert.Equal(t, "bob", result.MainArgs["target"])
}

func TestAnalyseMatchesOptionAfterMainArgs(t *testing.T) {
	cmd := buildKickCommand(t)
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("kick bob --reason spamming", core.Options{})
	result := a.Analyse(data)

	require.True(t, result.Matched)
	assert.Equal(t, "bob", result.MainArgs["target"])
	assert.Equal(t, "spamming", result.Options["--reason"].Args["reason"])
}

func TestAnalyseFailsOnUnknownHeader(t *testing.T) {
	cmd := buildKickCommand(t)
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("ban bob", core.Options{})
	result := a.Analyse(data)

	assert.False(t, result.Matched)
	assert.Equal(t, core.KindHeaderMissing, core.KindOf(result.ErrorInfo))
}

func TestAnalyseFuzzyHeaderSuggestion(t *testing.T) {
	cmd := buildKickCommand(t)
	cmd.Meta.FuzzyMatch = true
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("kcik bob", core.Options{})
	result := a.Analyse(data)

	assert.False(t, result.Matched)
	assert.Equal(t, core.KindFuzzyMatchSuccess, core.KindOf(result.ErrorInfo))
}

func buildPermCommand(t *testing.T) *core.Command {
	t.Helper()

	subArgs, err := core.NewArgs(nil, core.Positional("who", core.Str), core.Positional("value", core.Bool))
	require.NoError(t, err)
	set := core.NewSubcommand("set", subArgs).WithRequires("perm")

	cmd, err := core.NewCommand("lp", core.WithOptions(set))
	require.NoError(t, err)
	return cmd
}

func TestAnalyseRequiresChainActivatesOnExactPrefix(t *testing.T) {
	cmd := buildPermCommand(t)
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("lp perm set admin true", core.Options{})
	result := a.Analyse(data)

	require.True(t, result.Matched)
	sub, ok := result.Subcommands["set"]
	require.True(t, ok)
	assert.Equal(t, "admin", sub.Args["who"])
	assert.Equal(t, true, sub.Args["value"])
}

func TestAnalyseRequiresChainRejectsSkippedPrefix(t *testing.T) {
	cmd := buildPermCommand(t)
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("lp set admin true", core.Options{})
	result := a.Analyse(data)

	assert.False(t, result.Matched, "set must not activate without its perm prefix")
	_, ok := result.Subcommands["set"]
	assert.False(t, ok)
}

func TestAnalyseCompletionAliasShortCircuits(t *testing.T) {
	cmd := buildKickCommand(t)
	a := Compile(cmd, logging.Nop())

	data := core.NewFromString("kick --comp ", core.Options{})
	result := a.Analyse(data)

	assert.False(t, result.Matched)
	options, _ := result.OtherArgs["completion.options"].([]string)
	assert.Contains(t, options, "--reason")
}
