package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiresSatisfiedEmptyChainAlwaysPasses(t *testing.T) {
	assert.True(t, RequiresSatisfied(nil, nil))
	assert.True(t, RequiresSatisfied(nil, []string{"perm"}))
}

func TestRequiresSatisfiedExactSequenceOnly(t *testing.T) {
	assert.True(t, RequiresSatisfied([]string{"perm"}, []string{"perm"}))
	assert.False(t, RequiresSatisfied([]string{"perm"}, nil))
	assert.False(t, RequiresSatisfied([]string{"perm"}, []string{"other"}))
	assert.False(t, RequiresSatisfied([]string{"a", "b"}, []string{"b", "a"}))
	assert.True(t, RequiresSatisfied([]string{"a", "b"}, []string{"a", "b"}))
}

func TestCompileParamsSynthesizesSentenceForRequires(t *testing.T) {
	subArgs, err := NewArgs(nil, Positional("v", Str))
	if err != nil {
		t.Fatal(err)
	}
	sub := NewSubcommand("set", subArgs).WithRequires("perm")

	table, requireLen := CompileParams([]Node{sub})
	assert.Equal(t, 1, requireLen)

	setSlot, ok := table["set"]
	assert.True(t, ok)
	gotSub, ok := setSlot.Single.(*Subcommand)
	assert.True(t, ok)
	assert.Same(t, sub, gotSub)

	permSlot, ok := table["perm"]
	assert.True(t, ok)
	_, isSentence := permSlot.Single.(*Sentence)
	assert.True(t, isSentence)
}
