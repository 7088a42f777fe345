package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArgsRejectsPositionalAfterKWOnly(t *testing.T) {
	_, err := NewArgs(nil,
		KeywordOnly("verbose", Bool),
		Positional("name", Str),
	)
	require.Error(t, err)
	assert.Equal(t, KindArgInvalid, KindOf(err))
}

func TestNewArgsRejectsTwoVariadicSlots(t *testing.T) {
	_, err := NewArgs(nil,
		Variadic("a", Str),
		Variadic("b", Str),
	)
	require.Error(t, err)
}

func TestNewArgsFillsEmptyDefaultForOptional(t *testing.T) {
	args, err := NewArgs(nil, OptionalArg("count", Int, nil))
	require.NoError(t, err)

	slot, ok := args.Get("count")
	require.True(t, ok)
	assert.True(t, slot.HasDefault)
	assert.Equal(t, Empty, slot.Default)
}

func TestArgsKWOnlyStartIndex(t *testing.T) {
	args, err := NewArgs(nil,
		Positional("name", Str),
		KeywordOnly("verbose", Bool),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, args.KWOnlyStartIndex())
	assert.Equal(t, 2, args.Len())
}

func TestArgLabelFallsBackToName(t *testing.T) {
	a := Positional("count", Int)
	assert.Equal(t, "count", a.Label())

	a.DisplayName = "n"
	assert.Equal(t, "n", a.Label())
}

func TestArgWithValidate(t *testing.T) {
	a := Positional("port", Int).WithValidate("gt=0")
	assert.Equal(t, "gt=0", a.Validate)

	require.NoError(t, ValidateTag(a.Validate, int64(80)))
	require.Error(t, ValidateTag(a.Validate, int64(-1)))
}
