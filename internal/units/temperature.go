package units

import "math"

// ConvertTemperature converts between Celsius, Fahrenheit and Kelvin by way
// of Celsius. An unrecognized unit on either side is read as Celsius.
// NaN input returns 0.
func (c *Converter) ConvertTemperature(value float64, from, to string) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return c.fromCelsius(c.toCelsius(value, from), to)
}

func (c *Converter) toCelsius(value float64, unit string) float64 {
	switch c.temperatureUnit(unit) {
	case Fahrenheit:
		return (value - 32) * 5 / 9
	case Kelvin:
		return value - 273.15
	default:
		return value
	}
}

func (c *Converter) fromCelsius(celsius float64, unit string) float64 {
	switch c.temperatureUnit(unit) {
	case Fahrenheit:
		return celsius*9/5 + 32
	case Kelvin:
		return celsius + 273.15
	default:
		return celsius
	}
}

// temperatureUnit resolves unit to its canonical key, defaulting to Celsius.
func (c *Converter) temperatureUnit(unit string) string {
	t, _ := lookupCategory(CategoryTemperature)
	u, ok := t.lookup(unit)
	if !ok {
		c.logger.Debug("unknown temperature unit, assuming celsius", "unit", unit)
		return Celsius
	}
	return u.Key
}
