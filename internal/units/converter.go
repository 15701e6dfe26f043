package units

import (
	"log/slog"
	"math"
)

// Converter performs unit conversions and reports unknown names through a
// logger. The zero value is not usable; create one with New.
type Converter struct {
	logger *slog.Logger
}

// New creates a Converter. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger}
}

// Convert converts value from one unit to another within category.
//
// NaN input returns 0. An unknown category or unit returns value unchanged
// and logs a warning. The tiempo and temperatura categories are delegated
// to ConvertTime and ConvertTemperature.
func (c *Converter) Convert(value float64, category, from, to string) float64 {
	if math.IsNaN(value) {
		return 0
	}

	t, ok := lookupCategory(category)
	if !ok {
		c.logger.Warn("unknown conversion category", "category", category)
		return value
	}

	switch t.category.Key {
	case CategoryTemperature:
		return c.ConvertTemperature(value, from, to)
	case CategoryTime:
		return c.ConvertTime(value, from, to)
	}

	return c.convertLinear(t, value, from, to)
}

// convertLinear normalizes value to the base unit and then to the target.
func (c *Converter) convertLinear(t *table, value float64, from, to string) float64 {
	fromUnit, ok := t.lookup(from)
	if !ok {
		c.logger.Warn("unknown unit", "category", t.category.Key, "unit", from)
		return value
	}
	toUnit, ok := t.lookup(to)
	if !ok {
		c.logger.Warn("unknown unit", "category", t.category.Key, "unit", to)
		return value
	}

	base := value * fromUnit.Factor
	return base / toUnit.Factor
}

// ConvertTime converts between seconds, minutes, hours, days, weeks,
// months (30 days) and years (365 days).
//
// NaN or negative input returns 0. An unknown unit returns value unchanged
// and logs a warning.
func (c *Converter) ConvertTime(value float64, from, to string) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	t, _ := lookupCategory(CategoryTime)
	return c.convertLinear(t, value, from, to)
}

// ConvertCurrency multiplies amount by an exchange rate.
// A negative rate or a NaN operand returns 0.
func (c *Converter) ConvertCurrency(amount, rate float64) float64 {
	if math.IsNaN(amount) || math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return amount * rate
}

// Convert converts with a Converter bound to slog.Default().
func Convert(value float64, category, from, to string) float64 {
	return New(nil).Convert(value, category, from, to)
}

// ConvertTemperature converts with a Converter bound to slog.Default().
func ConvertTemperature(value float64, from, to string) float64 {
	return New(nil).ConvertTemperature(value, from, to)
}

// ConvertTime converts with a Converter bound to slog.Default().
func ConvertTime(value float64, from, to string) float64 {
	return New(nil).ConvertTime(value, from, to)
}

// ConvertCurrency multiplies amount by rate, see Converter.ConvertCurrency.
func ConvertCurrency(amount, rate float64) float64 {
	return New(nil).ConvertCurrency(amount, rate)
}
