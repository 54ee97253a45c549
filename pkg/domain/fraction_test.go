package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractionNormalization(t *testing.T) {
	assert.Equal(t, "1/2", NewFraction(1, 2).String())
	assert.Equal(t, "1/2", NewFraction(2, 4).String())
	assert.Equal(t, "1/2", NewFraction(5, 2).String())   // mod 2
	assert.Equal(t, "3/2", NewFraction(-1, 2).String())  // wrapped positive
	assert.Equal(t, "3/2", NewFraction(1, -2).String())  // sign on denominator
	assert.Equal(t, "0", NewFraction(2, 1).String())     // full turn is zero
	assert.Equal(t, "0", NewFraction(-4, 1).String())
	assert.Equal(t, "1", NewFraction(7, 1).String())
}

func TestFractionZeroIsCanonical(t *testing.T) {
	// Every way of producing a zero phase yields the zero value, so
	// fractions stay comparable with ==.
	assert.Equal(t, Fraction{}, NewFraction(0, 1))
	assert.Equal(t, Fraction{}, NewFraction(0, 7))
	assert.Equal(t, Fraction{}, NewFraction(6, 3))
	assert.Equal(t, Fraction{}, NewFraction(1, 2).Add(NewFraction(3, 2)))

	parsed, err := ParseFraction("0")
	require.NoError(t, err)
	assert.Equal(t, Fraction{}, parsed)
}

func TestFractionZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { NewFraction(1, 0) })
}

func TestFractionAdd(t *testing.T) {
	sum := NewFraction(1, 2).Add(NewFraction(1, 2))
	assert.True(t, sum.Equal(NewFraction(1, 1)))

	// Wraps modulo a full turn.
	sum = NewFraction(3, 2).Add(NewFraction(3, 4))
	assert.True(t, sum.Equal(NewFraction(1, 4)))

	// Adding to the zero value works.
	var zero Fraction
	assert.True(t, zero.Add(NewFraction(1, 3)).Equal(NewFraction(1, 3)))
	assert.True(t, zero.IsZero())
	assert.False(t, NewFraction(1, 3).IsZero())
}

func TestParseFraction(t *testing.T) {
	f, err := ParseFraction("3/4")
	require.NoError(t, err)
	assert.True(t, f.Equal(NewFraction(3, 4)))

	f, err = ParseFraction(" 1 ")
	require.NoError(t, err)
	assert.True(t, f.Equal(NewFraction(1, 1)))

	f, err = ParseFraction("")
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	_, err = ParseFraction("1/0")
	assert.Error(t, err)
	_, err = ParseFraction("a/2")
	assert.Error(t, err)
	_, err = ParseFraction("1/b")
	assert.Error(t, err)
}

func TestFractionJSON(t *testing.T) {
	data, err := json.Marshal(NewFraction(5, 4))
	require.NoError(t, err)
	assert.JSONEq(t, `"5/4"`, string(data))

	var f Fraction
	require.NoError(t, json.Unmarshal(data, &f))
	assert.True(t, f.Equal(NewFraction(5, 4)))

	assert.Error(t, json.Unmarshal([]byte(`"x/y"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
}
