package shared

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when no currency code is supplied.
const DefaultCurrency = "TRY"

// moneyScale is the number of fractional digits every amount is stored at.
const moneyScale = 2

// Money is an immutable value object for monetary amounts.
// The amount is always non-negative and scaled to 2 fractional digits
// (half-up); the currency is an uppercased 3-letter code. Every operation
// returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value. The currency is trimmed, uppercased and
// defaults to DefaultCurrency when blank; the amount is rejected if
// negative and rounded half-up to 2 fractional digits otherwise.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, NewValidationError("money", "amount",
			fmt.Sprintf("amount must be non-negative, got: %s", amount))
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	// decimal.Round is half away from zero, which equals half-up for the
	// non-negative amounts allowed here.
	return Money{
		amount:   amount.Round(moneyScale),
		currency: currency,
	}, nil
}

// NewMoneyFromString parses the amount from its decimal string form.
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, NewValidationError("money", "amount",
			"amount is not a valid decimal: "+amount)
	}
	return NewMoney(d, currency)
}

// Amount returns the scaled amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the 3-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsSet reports whether the value was constructed via NewMoney.
// The zero Money has no currency and is treated as absent.
func (m Money) IsSet() bool {
	return m.currency != ""
}

// Add returns the sum of both values. Fails when currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, NewCurrencyMismatchError(m.currency, other.currency)
	}
	return Money{
		amount:   m.amount.Add(other.amount).Round(moneyScale),
		currency: m.currency,
	}, nil
}

// Multiply returns this value scaled by factor, re-rounded.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{
		amount:   m.amount.Mul(factor).Round(moneyScale),
		currency: m.currency,
	}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsGreaterThan compares amounts. Fails when currencies differ.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, NewCurrencyMismatchError(m.currency, other.currency)
	}
	return m.amount.GreaterThan(other.amount), nil
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the value as "<amount> <currency>", e.g. "29999.99 TRY".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale) + " " + m.currency
}
