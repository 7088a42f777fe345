package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternBuiltins(t *testing.T) {
	tests := []struct {
		name    string
		pattern *Pattern
		input   string
		want    any
		wantErr bool
	}{
		{"int ok", Int, "42", int64(42), false},
		{"int bad", Int, "nope", nil, true},
		{"float ok", Float, "3.14", 3.14, false},
		{"bool true", Bool, "yes", true, false},
		{"bool false", Bool, "no", false, false},
		{"str passthrough", Str, "hello", "hello", false},
		{"hex ok", Hex, "0xff", []byte{0xff}, false},
		{"ip ok", IP, "127.0.0.1", nil, false},
		{"email ok", Email, "a@b.com", "a@b.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewFromString(tt.input, Options{})
			got, err := tt.pattern.Find(data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUnionTriesEachInOrder(t *testing.T) {
	u := Union(Int, Str)

	data := NewFromString("notanumber", Options{})
	got, err := u.Find(data)
	require.NoError(t, err)
	assert.Equal(t, "notanumber", got)
}

func TestAntiInvertsMatch(t *testing.T) {
	anti := Anti(Int)

	data := NewFromString("hello", Options{})
	_, err := anti.Find(data)
	require.NoError(t, err)

	data2 := NewFromString("42", Options{})
	_, err = anti.Find(data2)
	require.Error(t, err)
}

func TestOptionalPatternFallsBackToDefault(t *testing.T) {
	opt := OptionalPattern(Int, int64(-1))

	data := NewFromString("nope", Options{})
	got, err := opt.Find(data)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)
}
