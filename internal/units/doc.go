// Package units converts numeric values between units of one measurement
// category (longitud, peso, volumen, área, velocidad, datos, potencia,
// presión, energía, tiempo, temperatura) plus a currency helper.
//
// Linear categories share one strategy: every unit stores the number of
// base units it equals, so a value is normalized to the base unit and then
// divided by the target factor. Temperature is affine and goes through
// Celsius instead.
//
// The converter never returns errors. Invalid numbers (NaN, negative time)
// yield 0, while unknown categories or units yield the input value unchanged
// and emit a warning through the configured slog.Logger.
//
// Unit and category names are matched case-insensitively and without
// accents, so "Kilómetros", "kilometros" and "KM" all resolve to the same unit.
package units
