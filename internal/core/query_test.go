package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArparma() *Arparma {
	return &Arparma{
		MainArgs:  map[string]any{"name": "alice"},
		OtherArgs: map[string]any{},
		Options: map[string]OptionResult{
			"kick": {Matched: true, Args: map[string]any{"reason": "spam"}},
		},
		Subcommands: map[string]SubcommandResult{
			"ban": {Matched: true, Args: map[string]any{"days": int64(7)}},
		},
	}
}

func TestQueryMainArgs(t *testing.T) {
	a := newTestArparma()
	v, err := a.Query("name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestQueryDottedOptionArg(t *testing.T) {
	a := newTestArparma()
	v, err := a.Query("options.kick.args.reason")
	require.NoError(t, err)
	assert.Equal(t, "spam", v)
}

func TestQueryBareOptionShortcut(t *testing.T) {
	a := newTestArparma()
	v, err := a.Query("kick.reason")
	require.NoError(t, err)
	assert.Equal(t, "spam", v)
}

func TestQueryDottedSubcommandArg(t *testing.T) {
	a := newTestArparma()
	v, err := a.Query("subcommands.ban.args.days")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestQueryBareNameAmbiguousWhenOptionAndSubcommandCollide(t *testing.T) {
	a := newTestArparma()
	a.Subcommands["kick"] = SubcommandResult{Matched: true}

	_, err := a.Query("kick")
	require.Error(t, err)
	assert.Equal(t, KindAmbiguousQuery, KindOf(err))
}

func TestQueryOrFallsBackOnMiss(t *testing.T) {
	a := newTestArparma()
	got := a.QueryOr("nope", "fallback")
	assert.Equal(t, "fallback", got)
}

func TestFindReportsPresence(t *testing.T) {
	a := newTestArparma()
	assert.True(t, a.Find("name"))
	assert.False(t, a.Find("nonexistent"))
}
