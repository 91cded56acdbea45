package bank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestAmountConstruction(t *testing.T) {
	t.Run("from euros and cents", func(t *testing.T) {
		a, err := NewAmount(12, 34)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), a.Cents())
	})

	t.Run("negative amounts carry the sign in both parts", func(t *testing.T) {
		a, err := NewAmount(-1000, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(-100000), a.Cents())
	})

	t.Run("from euros rounds to the nearest cent", func(t *testing.T) {
		a, err := AmountFromEuros(12.345)
		require.NoError(t, err)
		assert.Equal(t, int64(1235), a.Cents())

		b, err := AmountFromEuros(12.344)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), b.Cents())
	})

	t.Run("round trip through cents", func(t *testing.T) {
		for _, cents := range []int64{0, 1, -1, 99, -100000, maxCents, -maxCents} {
			a, err := AmountFromCents(cents)
			require.NoError(t, err)
			assert.Equal(t, cents, a.Cents())
		}
	})
}

func TestAmountRange(t *testing.T) {
	t.Run("the boundary itself is valid", func(t *testing.T) {
		_, err := AmountFromCents(maxCents)
		assert.NoError(t, err)
		_, err = AmountFromCents(-maxCents)
		assert.NoError(t, err)
	})

	t.Run("one cent beyond the boundary fails", func(t *testing.T) {
		_, err := AmountFromCents(maxCents + 1)
		var rangeErr RangeError
		require.ErrorAs(t, err, &rangeErr)

		_, err = AmountFromCents(-maxCents - 1)
		require.ErrorAs(t, err, &rangeErr)
	})

	t.Run("euro constructor enforces the range", func(t *testing.T) {
		_, err := AmountFromEuros(MaxValue().Euros())
		assert.NoError(t, err)

		_, err = AmountFromEuros(MaxValue().Euros() * 2)
		var rangeErr RangeError
		require.ErrorAs(t, err, &rangeErr)

		_, err = AmountFromEuros(MinValue().Euros() * 2)
		require.ErrorAs(t, err, &rangeErr)
	})

	t.Run("huge euro parts cannot wrap around", func(t *testing.T) {
		var rangeErr RangeError

		_, err := NewAmount(184467440737095517, 0)
		require.ErrorAs(t, err, &rangeErr)

		_, err = NewAmount(-184467440737095517, 0)
		require.ErrorAs(t, err, &rangeErr)

		_, err = NewAmount(0, math.MaxInt64)
		require.ErrorAs(t, err, &rangeErr)

		_, err = NewAmount(maxCents/100, 0)
		assert.NoError(t, err)
	})

	t.Run("arithmetic re-validates the range", func(t *testing.T) {
		var rangeErr RangeError

		_, err := MaxValue().Plus(MaxValue())
		require.ErrorAs(t, err, &rangeErr)

		_, err = MinValue().Minus(MaxValue())
		require.ErrorAs(t, err, &rangeErr)

		_, err = MaxValue().Times(2)
		require.ErrorAs(t, err, &rangeErr)
	})
}

func TestAmountArithmetic(t *testing.T) {
	a, err := NewAmount(10, 50)
	require.NoError(t, err)
	b, err := NewAmount(2, 25)
	require.NoError(t, err)

	sum, err := a.Plus(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1275), sum.Cents())

	diff, err := a.Minus(b)
	require.NoError(t, err)
	assert.Equal(t, int64(825), diff.Cents())

	scaled, err := a.Times(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3150), scaled.Cents())

	// Inputs are untouched: every result is a fresh value.
	assert.Equal(t, int64(1050), a.Cents())
	assert.Equal(t, int64(225), b.Cents())
}

func TestAmountComparison(t *testing.T) {
	small, err := NewAmount(1, 0)
	require.NoError(t, err)
	big, err := NewAmount(2, 0)
	require.NoError(t, err)
	alsoSmall, err := AmountFromCents(100)
	require.NoError(t, err)

	assert.Equal(t, -1, small.Cmp(big))
	assert.Equal(t, 1, big.Cmp(small))
	assert.Equal(t, 0, small.Cmp(alsoSmall))
	assert.Equal(t, small, alsoSmall)
	assert.Equal(t, 0, Zero.Cmp(Amount{}))
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123456, "1234.56"},
		{-100000, "-1000.00"},
		{-7, "-0.07"},
	}
	for _, tt := range tests {
		a, err := AmountFromCents(tt.cents)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, a.String())
	}
}

func TestAmountFormatUsesPrinterLocale(t *testing.T) {
	a, err := AmountFromCents(123456)
	require.NoError(t, err)

	english := message.NewPrinter(language.English)
	german := message.NewPrinter(language.German)

	assert.Equal(t, "1,234.56", a.Format(english))
	assert.Equal(t, "1.234,56", a.Format(german))
}
