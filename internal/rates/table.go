package rates

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"
)

// ErrUnknownCurrency is returned for a currency code missing from the table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Table holds exchange rates relative to a base currency.
type Table struct {
	// Base is the ISO 4217 code every rate is quoted against.
	Base string `json:"base"`

	// Rates maps a currency code to units of that currency per one Base.
	Rates map[string]float64 `json:"rates"`

	// UpdatedAt is when the provider published the table.
	UpdatedAt time.Time `json:"updatedAt"`

	// Source names where the table came from ("static" or the endpoint URL).
	Source string `json:"source"`
}

// perBase returns units of code per one Base unit.
func (t *Table) perBase(code string) (float64, bool) {
	if code == t.Base {
		return 1, true
	}
	r, ok := t.Rates[code]
	if !ok || r <= 0 {
		return 0, false
	}
	return r, true
}

// Rate returns how many units of to one unit of from buys.
func (t *Table) Rate(from, to string) (float64, error) {
	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	f, ok := t.perBase(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	g, ok := t.perBase(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}
	return g / f, nil
}

// Currencies returns every code the table can convert, sorted.
func (t *Table) Currencies() []string {
	codes := make([]string, 0, len(t.Rates)+1)
	codes = append(codes, t.Base)
	for code := range t.Rates {
		if code != t.Base {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func (t *Table) clone() *Table {
	c := *t
	c.Rates = maps.Clone(t.Rates)
	return &c
}

// staticRates are reference euro rates used when no provider is reachable.
var staticRates = map[string]float64{
	"USD": 1.08,
	"GBP": 0.85,
	"CHF": 0.95,
	"JPY": 163.0,
	"CNY": 7.8,
	"MXN": 18.5,
	"ARS": 950.0,
	"COP": 4300.0,
	"CLP": 1000.0,
	"PEN": 4.05,
	"UYU": 42.0,
	"BRL": 5.6,
	"VES": 39.0,
	"DOP": 64.0,
	"GTQ": 8.4,
	"BOB": 7.46,
	"PYG": 8100.0,
	"CRC": 560.0,
}

// Static returns the built-in euro-based table.
func Static() *Table {
	return &Table{
		Base:      "EUR",
		Rates:     maps.Clone(staticRates),
		UpdatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Source:    "static",
	}
}
