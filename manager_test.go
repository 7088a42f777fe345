package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGreetCommand(t *testing.T) *Command {
	t.Helper()
	args, err := NewArgs(nil, Positional("name", Str))
	require.NoError(t, err)
	opt := NewOption("--loud|-l", nil).WithAction(StoreTrue("loud"))
	cmd, err := NewCommand("greet", WithMainArgs(args), WithOptions(opt))
	require.NoError(t, err)
	return cmd
}

func TestManagerParseCachesAndClonesOnHit(t *testing.T) {
	m := NewManager()
	id, err := m.Register(buildGreetCommand(t))
	require.NoError(t, err)

	first, err := m.Parse(id, "greet world")
	require.NoError(t, err)
	require.True(t, first.Matched)

	second, err := m.Parse(id, "greet world")
	require.NoError(t, err)
	require.True(t, second.Matched)

	assert.NotSame(t, first, second, "a cache hit must not hand back the cached pointer")
	assert.Equal(t, first.MainArgs, second.MainArgs)

	second.MainArgs["name"] = "mutated"
	third, err := m.Parse(id, "greet world")
	require.NoError(t, err)
	assert.Equal(t, "world", third.MainArgs["name"], "mutating one result must not corrupt the cached entry")
}

func TestManagerParseRecordsCompletionHistory(t *testing.T) {
	m := NewManager()
	id, err := m.Register(buildGreetCommand(t))
	require.NoError(t, err)

	_, err = m.Parse(id, "greet --comp lo")
	require.NoError(t, err)

	assert.Equal(t, []string{"lo"}, m.RecentCompletions(id))
}
