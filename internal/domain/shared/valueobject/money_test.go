package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(1500), CurrencyINR)
		require.NoError(t, err)
		assert.Equal(t, CurrencyINR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(1500)))
	})

	t.Run("unsupported currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), Currency("XYZ"))
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("2499.50", CurrencyINR)
		require.NoError(t, err)
		assert.Equal(t, "₹2499.50", m.String())
	})

	t.Run("from invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", CurrencyINR)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add same currency", func(t *testing.T) {
		a, _ := NewMoneyFromString("100.50", CurrencyINR)
		b, _ := NewMoneyFromString("49.50", CurrencyINR)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("add currency mismatch", func(t *testing.T) {
		a, _ := NewMoneyFromString("100", CurrencyINR)
		b, _ := NewMoneyFromString("100", CurrencyUSD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("subtract", func(t *testing.T) {
		a, _ := NewMoneyFromString("100", CurrencyINR)
		b, _ := NewMoneyFromString("130", CurrencyINR)
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})

	t.Run("multiply", func(t *testing.T) {
		a, _ := NewMoneyFromString("250", CurrencyINR)
		got := a.Multiply(decimal.NewFromInt(3))
		assert.True(t, got.Amount().Equal(decimal.NewFromInt(750)))
	})

	t.Run("compare", func(t *testing.T) {
		a, _ := NewMoneyFromString("99", CurrencyINR)
		b, _ := NewMoneyFromString("100", CurrencyINR)
		less, err := a.LessThan(b)
		require.NoError(t, err)
		assert.True(t, less)
	})
}

func TestApproximateConvert(t *testing.T) {
	t.Run("identity when currencies match", func(t *testing.T) {
		m, _ := NewMoneyFromString("1234.56", CurrencyINR)
		got, err := ApproximateConvert(m, CurrencyINR)
		require.NoError(t, err)
		assert.True(t, got.Equals(m))
	})

	t.Run("usd to inr uses fixed rate", func(t *testing.T) {
		m, _ := NewMoneyFromString("10", CurrencyUSD)
		got, err := ApproximateConvert(m, CurrencyINR)
		require.NoError(t, err)
		assert.Equal(t, CurrencyINR, got.Currency())
		assert.True(t, got.Amount().Equal(decimal.NewFromInt(840)))
	})

	t.Run("cross rate routes through inr", func(t *testing.T) {
		m, _ := NewMoneyFromString("106", CurrencyGBP)
		got, err := ApproximateConvert(m, CurrencyUSD)
		require.NoError(t, err)
		// 106 GBP * 106 = 11236 INR, / 84 = 133.76 USD
		assert.True(t, got.Amount().Equal(decimal.RequireFromString("133.76")))
	})

	t.Run("deterministic", func(t *testing.T) {
		m, _ := NewMoneyFromString("57.31", CurrencyEUR)
		first, err := ApproximateConvert(m, CurrencyINR)
		require.NoError(t, err)
		second, err := ApproximateConvert(m, CurrencyINR)
		require.NoError(t, err)
		assert.True(t, first.Equals(second))
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := ApproximateConvert(Money{amount: decimal.NewFromInt(1), currency: Currency("XYZ")}, CurrencyINR)
		assert.Error(t, err)
	})
}
