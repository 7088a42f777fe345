package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGreetCommand(t *testing.T) *Command {
	t.Helper()
	args, err := NewArgs(nil, Positional("name", Str))
	require.NoError(t, err)
	cmd, err := NewCommand("greet", WithMainArgs(args))
	require.NoError(t, err)
	return cmd
}

func TestCommandManagerRegisterAssignsID(t *testing.T) {
	m := NewCommandManager()
	cmd := buildGreetCommand(t)

	id, err := m.Register(cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, cmd.ID)

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, cmd, got)
}

func TestCommandManagerRejectsDuplicateFingerprint(t *testing.T) {
	m := NewCommandManager()
	cmd1 := buildGreetCommand(t)
	cmd2 := buildGreetCommand(t)

	_, err := m.Register(cmd1)
	require.NoError(t, err)

	_, err = m.Register(cmd2)
	require.Error(t, err)
	assert.Equal(t, KindDuplicateCommand, KindOf(err))
}

func TestCommandManagerUnregisterFreesName(t *testing.T) {
	m := NewCommandManager()
	cmd := buildGreetCommand(t)

	id, err := m.Register(cmd)
	require.NoError(t, err)
	m.Unregister(id)

	_, ok := m.Get(id)
	assert.False(t, ok)
	assert.Empty(t, m.ByName("greet"))
}

func TestCommandManagerParseCacheRoundTrips(t *testing.T) {
	m := NewCommandManager()
	cmd := buildGreetCommand(t)
	id, err := m.Register(cmd)
	require.NoError(t, err)

	result := NewArparma(cmd, nil)
	result.MainArgs["name"] = "world"
	m.StoreParse(id, "greet world", 11, result)

	got, ok := m.CachedParse(id, "greet world", 11)
	require.True(t, ok)
	assert.NotSame(t, result, got, "a cache hit must hand back a clone, not the cached pointer")
	assert.Equal(t, result.MainArgs, got.MainArgs)

	got.MainArgs["name"] = "mutated"
	got2, ok := m.CachedParse(id, "greet world", 11)
	require.True(t, ok)
	assert.Equal(t, "world", got2.MainArgs["name"], "mutating one clone must not affect the cached entry")

	assert.Equal(t, 1, m.CacheLen(id))
	m.PurgeCache(id)
	assert.Equal(t, 0, m.CacheLen(id))
}

func TestCommandManagerCompletionRingBounded(t *testing.T) {
	m := NewCommandManager(WithNamespaceConfig(NamespaceConfig{Name: "", CompletionRingSize: 2}))
	cmd := buildGreetCommand(t)
	id, err := m.Register(cmd)
	require.NoError(t, err)

	m.RecordCompletion(id, "a")
	m.RecordCompletion(id, "b")
	m.RecordCompletion(id, "c")

	assert.Equal(t, []string{"b", "c"}, m.RecentCompletions(id))
}

func TestNamespaceConfigAppliesDefaultsWithoutOverwriting(t *testing.T) {
	m := NewCommandManager(WithNamespaceConfig(NamespaceConfig{
		Name:           "bots",
		FuzzyThreshold: 3,
		FuzzyMatch:     true,
	}))

	cmd, err := NewCommand("kick", WithNamespace("bots"))
	require.NoError(t, err)
	cmd.Meta.FuzzyThreshold = 0 // force namespace default to apply

	_, err = m.Register(cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.Meta.FuzzyThreshold)
	assert.True(t, cmd.Meta.FuzzyMatch)
}
