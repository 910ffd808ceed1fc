package valueobject

import (
	"fmt"

	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAED Currency = "AED"
)

// DefaultCurrency is the display currency of the storefront
const DefaultCurrency = CurrencyINR

// IsValid checks if the currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyAED:
		return true
	}
	return false
}

// String returns the currency code
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyINR:
		return "₹"
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	case CurrencyAED:
		return "د.إ"
	default:
		return string(c)
	}
}

// Money is an immutable monetary value with a currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money value
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency: %s", currency))
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyFromString creates a new Money value from a decimal string
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Invalid amount: %s", amount))
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns a zero value in the given currency
func ZeroMoney(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the monetary amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns the sum of two monetary values
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, shared.NewDomainError("CURRENCY_MISMATCH",
			fmt.Sprintf("Cannot add %s to %s", other.currency, m.currency))
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two monetary values
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, shared.NewDomainError("CURRENCY_MISMATCH",
			fmt.Sprintf("Cannot subtract %s from %s", other.currency, m.currency))
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply returns the monetary value multiplied by a factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equals reports whether two monetary values are equal
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// LessThan reports whether m is less than other (same currency required)
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, shared.NewDomainError("CURRENCY_MISMATCH",
			fmt.Sprintf("Cannot compare %s with %s", m.currency, other.currency))
	}
	return m.amount.LessThan(other.amount), nil
}

// String returns a human-readable representation
func (m Money) String() string {
	return fmt.Sprintf("%s%s", m.currency.Symbol(), m.amount.StringFixed(2))
}

// approximateRates maps supported currencies to a fixed INR rate. The
// rates are intentionally static: converted amounts are used only for
// display and price-bucket comparisons, never for settlement.
var approximateRates = map[Currency]decimal.Decimal{
	CurrencyINR: decimal.NewFromInt(1),
	CurrencyUSD: decimal.NewFromInt(84),
	CurrencyEUR: decimal.NewFromInt(91),
	CurrencyGBP: decimal.NewFromInt(106),
	CurrencyAED: decimal.RequireFromString("22.9"),
}

// ApproximateConvert converts a monetary value to the target currency
// using the fixed rate table, routed through INR. The result is an
// approximation for display and filtering purposes only.
func ApproximateConvert(m Money, target Currency) (Money, error) {
	if m.currency == target {
		return m, nil
	}
	fromRate, ok := approximateRates[m.currency]
	if !ok {
		return Money{}, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("No rate for currency: %s", m.currency))
	}
	toRate, ok := approximateRates[target]
	if !ok {
		return Money{}, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("No rate for currency: %s", target))
	}
	inINR := m.amount.Mul(fromRate)
	converted := inINR.Div(toRate).Round(2)
	return Money{amount: converted, currency: target}, nil
}
