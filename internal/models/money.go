package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var pricePattern = regexp.MustCompile(`^\d+(\.\d{2})?$`)

// Column limits: prices are decimal(10,2), order totals decimal(12,2).
var (
	MaxPrice = MustMoney("99999999.99")
	MaxTotal = MustMoney("9999999999.99")
)

// Money is a fixed-point amount with two fraction digits. It is stored as a
// decimal column and serialized as a JSON string ("10000.00").
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func IsPriceString(s string) bool {
	return pricePattern.MatchString(s)
}

func ParseMoney(s string) (Money, error) {
	if !IsPriceString(s) {
		return Money{}, fmt.Errorf("invalid price %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

// ParseMoneyMax parses s and rejects amounts above limit.
func ParseMoneyMax(s string, limit Money) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if m.GreaterThan(limit.Decimal) {
		return Money{}, fmt.Errorf("amount %s exceeds %s", m, limit)
	}
	return m, nil
}

func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(v any) error {
	return m.Decimal.Scan(v)
}
