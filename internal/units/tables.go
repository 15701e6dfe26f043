package units

import (
	"fmt"
	"sort"

	"github.com/nao1215/calcsite/internal/textutil"
)

// Unit is one entry of a category table.
type Unit struct {
	// Key is the canonical Spanish name, plural and unaccented.
	Key string `json:"key"`

	// Name is the display label.
	Name string `json:"name"`

	// Symbol is the short form shown next to values.
	Symbol string `json:"symbol"`

	// Factor is the number of base units one unit equals.
	// Zero for affine (temperature) units.
	Factor float64 `json:"factor,omitempty"`

	// Aliases are extra accepted spellings (singular, English, legacy keys).
	Aliases []string `json:"aliases,omitempty"`
}

// Category is a named unit table.
type Category struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Units   []Unit   `json:"units"`

	// Affine is set for temperature, whose units are not related by a factor.
	Affine bool `json:"affine,omitempty"`
}

// Base returns the unit whose factor is 1.
func (c *Category) Base() (Unit, bool) {
	for _, u := range c.Units {
		if u.Factor == 1 {
			return u, true
		}
	}
	return Unit{}, false
}

// Canonical category keys.
const (
	CategoryLength      = "longitud"
	CategoryMass        = "peso"
	CategoryVolume      = "volumen"
	CategoryArea        = "area"
	CategorySpeed       = "velocidad"
	CategoryData        = "datos"
	CategoryPower       = "potencia"
	CategoryPressure    = "presion"
	CategoryEnergy      = "energia"
	CategoryTime        = "tiempo"
	CategoryTemperature = "temperatura"
)

// Temperature unit keys.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
	secondsPerMonth  = 30 * secondsPerDay
	secondsPerYear   = 365 * secondsPerDay
)

// catalog is the single source of truth for every unit the site supports.
// It is the union of the embedded converter widget and the standalone
// conversion utility, so both keep accepting their historical spellings.
var catalog = []Category{
	{
		Key: CategoryLength, Name: "Longitud", Aliases: []string{"length", "distancia"},
		Units: []Unit{
			{Key: "metros", Name: "Metros", Symbol: "m", Factor: 1, Aliases: []string{"metro", "meters", "meter", "metres"}},
			{Key: "kilometros", Name: "Kilómetros", Symbol: "km", Factor: 1000, Aliases: []string{"kilometro", "kilometers", "kilometer"}},
			{Key: "centimetros", Name: "Centímetros", Symbol: "cm", Factor: 0.01, Aliases: []string{"centimetro", "centimeters", "centimeter"}},
			{Key: "milimetros", Name: "Milímetros", Symbol: "mm", Factor: 0.001, Aliases: []string{"milimetro", "millimeters", "millimeter"}},
			{Key: "micrometros", Name: "Micrómetros", Symbol: "µm", Factor: 1e-6, Aliases: []string{"micrometro", "micras", "micrometers"}},
			{Key: "millas", Name: "Millas", Symbol: "mi", Factor: 1609.344, Aliases: []string{"milla", "miles", "mile"}},
			{Key: "yardas", Name: "Yardas", Symbol: "yd", Factor: 0.9144, Aliases: []string{"yarda", "yards", "yard"}},
			{Key: "pies", Name: "Pies", Symbol: "ft", Factor: 0.3048, Aliases: []string{"pie", "feet", "foot"}},
			{Key: "pulgadas", Name: "Pulgadas", Symbol: "in", Factor: 0.0254, Aliases: []string{"pulgada", "inches", "inch"}},
			{Key: "millas nauticas", Name: "Millas náuticas", Symbol: "nmi", Factor: 1852, Aliases: []string{"milla nautica", "nautical miles"}},
		},
	},
	{
		Key: CategoryMass, Name: "Peso", Aliases: []string{"masa", "mass", "weight"},
		Units: []Unit{
			{Key: "kilogramos", Name: "Kilogramos", Symbol: "kg", Factor: 1, Aliases: []string{"kilogramo", "kilos", "kilo", "kilograms"}},
			{Key: "gramos", Name: "Gramos", Symbol: "g", Factor: 0.001, Aliases: []string{"gramo", "grams"}},
			{Key: "miligramos", Name: "Miligramos", Symbol: "mg", Factor: 1e-6, Aliases: []string{"miligramo", "milligrams"}},
			{Key: "toneladas", Name: "Toneladas", Symbol: "t", Factor: 1000, Aliases: []string{"tonelada", "tonnes", "tons"}},
			{Key: "libras", Name: "Libras", Symbol: "lb", Factor: 0.45359237, Aliases: []string{"libra", "pounds", "pound", "lbs"}},
			{Key: "onzas", Name: "Onzas", Symbol: "oz", Factor: 0.028349523125, Aliases: []string{"onza", "ounces", "ounce"}},
			{Key: "stones", Name: "Stones", Symbol: "st", Factor: 6.35029318, Aliases: []string{"stone", "piedras"}},
		},
	},
	{
		Key: CategoryVolume, Name: "Volumen", Aliases: []string{"volume"},
		Units: []Unit{
			{Key: "litros", Name: "Litros", Symbol: "l", Factor: 1, Aliases: []string{"litro", "liters", "litres"}},
			{Key: "mililitros", Name: "Mililitros", Symbol: "ml", Factor: 0.001, Aliases: []string{"mililitro", "milliliters"}},
			{Key: "metros cubicos", Name: "Metros cúbicos", Symbol: "m³", Factor: 1000, Aliases: []string{"metro cubico", "m3", "cubic meters"}},
			{Key: "centimetros cubicos", Name: "Centímetros cúbicos", Symbol: "cm³", Factor: 0.001, Aliases: []string{"centimetro cubico", "cm3", "cc"}},
			{Key: "galones", Name: "Galones (EE. UU.)", Symbol: "gal", Factor: 3.785411784, Aliases: []string{"galon", "gallons", "gallon"}},
			{Key: "cuartos", Name: "Cuartos de galón", Symbol: "qt", Factor: 0.946352946, Aliases: []string{"cuarto", "quarts"}},
			{Key: "pintas", Name: "Pintas", Symbol: "pt", Factor: 0.473176473, Aliases: []string{"pinta", "pints"}},
			{Key: "tazas", Name: "Tazas", Symbol: "taza", Factor: 0.2365882365, Aliases: []string{"cups", "cup"}},
			{Key: "onzas liquidas", Name: "Onzas líquidas", Symbol: "fl oz", Factor: 0.0295735295625, Aliases: []string{"onza liquida", "fluid ounces"}},
			{Key: "cucharadas", Name: "Cucharadas", Symbol: "cda", Factor: 0.01478676478125, Aliases: []string{"cucharada", "tablespoons", "tbsp"}},
			{Key: "cucharaditas", Name: "Cucharaditas", Symbol: "cdta", Factor: 0.00492892159375, Aliases: []string{"cucharadita", "teaspoons", "tsp"}},
			{Key: "pies cubicos", Name: "Pies cúbicos", Symbol: "ft³", Factor: 28.316846592, Aliases: []string{"pie cubico", "ft3", "cubic feet"}},
		},
	},
	{
		Key: CategoryArea, Name: "Área", Aliases: []string{"superficie"},
		Units: []Unit{
			{Key: "metros cuadrados", Name: "Metros cuadrados", Symbol: "m²", Factor: 1, Aliases: []string{"metro cuadrado", "m2", "square meters"}},
			{Key: "kilometros cuadrados", Name: "Kilómetros cuadrados", Symbol: "km²", Factor: 1e6, Aliases: []string{"kilometro cuadrado", "km2", "square kilometers"}},
			{Key: "centimetros cuadrados", Name: "Centímetros cuadrados", Symbol: "cm²", Factor: 1e-4, Aliases: []string{"centimetro cuadrado", "cm2"}},
			{Key: "hectareas", Name: "Hectáreas", Symbol: "ha", Factor: 1e4, Aliases: []string{"hectarea", "hectares"}},
			{Key: "acres", Name: "Acres", Symbol: "ac", Factor: 4046.8564224, Aliases: []string{"acre"}},
			{Key: "pies cuadrados", Name: "Pies cuadrados", Symbol: "ft²", Factor: 0.09290304, Aliases: []string{"pie cuadrado", "ft2", "square feet"}},
			{Key: "pulgadas cuadradas", Name: "Pulgadas cuadradas", Symbol: "in²", Factor: 0.00064516, Aliases: []string{"pulgada cuadrada", "in2"}},
			{Key: "yardas cuadradas", Name: "Yardas cuadradas", Symbol: "yd²", Factor: 0.83612736, Aliases: []string{"yarda cuadrada", "yd2"}},
			{Key: "millas cuadradas", Name: "Millas cuadradas", Symbol: "mi²", Factor: 2589988.110336, Aliases: []string{"milla cuadrada", "mi2"}},
		},
	},
	{
		Key: CategorySpeed, Name: "Velocidad", Aliases: []string{"speed"},
		Units: []Unit{
			{Key: "metros por segundo", Name: "Metros por segundo", Symbol: "m/s", Factor: 1, Aliases: []string{"metro por segundo", "mps"}},
			{Key: "kilometros por hora", Name: "Kilómetros por hora", Symbol: "km/h", Factor: 1000.0 / 3600.0, Aliases: []string{"kilometro por hora", "kph", "kmh"}},
			{Key: "millas por hora", Name: "Millas por hora", Symbol: "mph", Factor: 0.44704, Aliases: []string{"milla por hora"}},
			{Key: "nudos", Name: "Nudos", Symbol: "kn", Factor: 1852.0 / 3600.0, Aliases: []string{"nudo", "knots"}},
			{Key: "pies por segundo", Name: "Pies por segundo", Symbol: "ft/s", Factor: 0.3048, Aliases: []string{"pie por segundo", "fps"}},
		},
	},
	{
		Key: CategoryData, Name: "Datos", Aliases: []string{"data", "almacenamiento"},
		Units: []Unit{
			{Key: "bits", Name: "Bits", Symbol: "bit", Factor: 0.125, Aliases: []string{"bit"}},
			{Key: "bytes", Name: "Bytes", Symbol: "B", Factor: 1, Aliases: []string{"byte"}},
			{Key: "kilobits", Name: "Kilobits", Symbol: "kbit", Factor: 128, Aliases: []string{"kilobit"}},
			{Key: "kilobytes", Name: "Kilobytes", Symbol: "KB", Factor: 1 << 10, Aliases: []string{"kilobyte"}},
			{Key: "megabits", Name: "Megabits", Symbol: "Mbit", Factor: 1 << 17, Aliases: []string{"megabit"}},
			{Key: "megabytes", Name: "Megabytes", Symbol: "MB", Factor: 1 << 20, Aliases: []string{"megabyte"}},
			{Key: "gigabytes", Name: "Gigabytes", Symbol: "GB", Factor: 1 << 30, Aliases: []string{"gigabyte"}},
			{Key: "terabytes", Name: "Terabytes", Symbol: "TB", Factor: 1 << 40, Aliases: []string{"terabyte"}},
			{Key: "petabytes", Name: "Petabytes", Symbol: "PB", Factor: 1 << 50, Aliases: []string{"petabyte"}},
		},
	},
	{
		Key: CategoryPower, Name: "Potencia", Aliases: []string{"power"},
		Units: []Unit{
			{Key: "vatios", Name: "Vatios", Symbol: "W", Factor: 1, Aliases: []string{"vatio", "watts", "watt"}},
			{Key: "kilovatios", Name: "Kilovatios", Symbol: "kW", Factor: 1e3, Aliases: []string{"kilovatio", "kilowatts"}},
			{Key: "megavatios", Name: "Megavatios", Symbol: "MW", Factor: 1e6, Aliases: []string{"megavatio", "megawatts"}},
			{Key: "caballos de fuerza", Name: "Caballos de fuerza", Symbol: "hp", Factor: 745.69987158227022, Aliases: []string{"caballo de fuerza", "horsepower"}},
			{Key: "caballos de vapor", Name: "Caballos de vapor", Symbol: "CV", Factor: 735.49875, Aliases: []string{"caballo de vapor"}},
			{Key: "btu por hora", Name: "BTU por hora", Symbol: "BTU/h", Factor: 0.29307107017222, Aliases: []string{"btuh"}},
		},
	},
	{
		Key: CategoryPressure, Name: "Presión", Aliases: []string{"pressure"},
		Units: []Unit{
			{Key: "pascales", Name: "Pascales", Symbol: "Pa", Factor: 1, Aliases: []string{"pascal", "pascals"}},
			{Key: "kilopascales", Name: "Kilopascales", Symbol: "kPa", Factor: 1e3, Aliases: []string{"kilopascal"}},
			{Key: "bares", Name: "Bares", Symbol: "bar", Factor: 1e5, Aliases: []string{"bars"}},
			{Key: "atmosferas", Name: "Atmósferas", Symbol: "atm", Factor: 101325, Aliases: []string{"atmosfera", "atmospheres"}},
			{Key: "psi", Name: "Libras por pulgada cuadrada", Symbol: "psi", Factor: 6894.757293168361, Aliases: []string{"libras por pulgada cuadrada"}},
			{Key: "milimetros de mercurio", Name: "Milímetros de mercurio", Symbol: "mmHg", Factor: 133.322387415, Aliases: []string{"milimetro de mercurio"}},
			{Key: "torr", Name: "Torr", Symbol: "Torr", Factor: 101325.0 / 760.0},
		},
	},
	{
		Key: CategoryEnergy, Name: "Energía", Aliases: []string{"energy"},
		Units: []Unit{
			{Key: "julios", Name: "Julios", Symbol: "J", Factor: 1, Aliases: []string{"julio", "joules", "joule"}},
			{Key: "kilojulios", Name: "Kilojulios", Symbol: "kJ", Factor: 1e3, Aliases: []string{"kilojulio", "kilojoules"}},
			{Key: "calorias", Name: "Calorías", Symbol: "cal", Factor: 4.184, Aliases: []string{"caloria", "calories"}},
			{Key: "kilocalorias", Name: "Kilocalorías", Symbol: "kcal", Factor: 4184, Aliases: []string{"kilocaloria", "kilocalories"}},
			{Key: "vatios hora", Name: "Vatios hora", Symbol: "Wh", Factor: 3600, Aliases: []string{"vatio hora", "watt hours"}},
			{Key: "kilovatios hora", Name: "Kilovatios hora", Symbol: "kWh", Factor: 3.6e6, Aliases: []string{"kilovatio hora", "kilowatt hours"}},
			{Key: "btu", Name: "BTU", Symbol: "BTU", Factor: 1055.05585262, Aliases: []string{"btus"}},
			{Key: "electronvoltios", Name: "Electronvoltios", Symbol: "eV", Factor: 1.602176634e-19, Aliases: []string{"electronvoltio", "electronvolts"}},
		},
	},
	{
		Key: CategoryTime, Name: "Tiempo", Aliases: []string{"time"},
		Units: []Unit{
			{Key: "segundos", Name: "Segundos", Symbol: "s", Factor: 1, Aliases: []string{"segundo", "seconds", "second", "seg"}},
			{Key: "minutos", Name: "Minutos", Symbol: "min", Factor: secondsPerMinute, Aliases: []string{"minuto", "minutes", "minute"}},
			{Key: "horas", Name: "Horas", Symbol: "h", Factor: secondsPerHour, Aliases: []string{"hora", "hours", "hour"}},
			{Key: "dias", Name: "Días", Symbol: "d", Factor: secondsPerDay, Aliases: []string{"dia", "days", "day"}},
			{Key: "semanas", Name: "Semanas", Symbol: "sem", Factor: secondsPerWeek, Aliases: []string{"semana", "weeks", "week"}},
			{Key: "meses", Name: "Meses", Symbol: "mes", Factor: secondsPerMonth, Aliases: []string{"months", "month"}},
			{Key: "anos", Name: "Años", Symbol: "a", Factor: secondsPerYear, Aliases: []string{"ano", "years", "year"}},
		},
	},
	{
		Key: CategoryTemperature, Name: "Temperatura", Aliases: []string{"temperature"}, Affine: true,
		Units: []Unit{
			{Key: Celsius, Name: "Celsius", Symbol: "°C", Aliases: []string{"c", "centigrados", "grados celsius"}},
			{Key: Fahrenheit, Name: "Fahrenheit", Symbol: "°F", Aliases: []string{"f", "grados fahrenheit"}},
			{Key: Kelvin, Name: "Kelvin", Symbol: "K", Aliases: []string{"k", "kelvins"}},
		},
	},
}

// table is a category with its lookup index.
type table struct {
	category *Category
	units    map[string]*Unit
}

var (
	// tables indexes every category by all of its normalized names.
	tables map[string]*table
)

func init() {
	tables = make(map[string]*table)
	for i := range catalog {
		c := &catalog[i]
		t := &table{category: c, units: make(map[string]*Unit)}
		for j := range c.Units {
			u := &c.Units[j]
			for _, name := range unitNames(u) {
				t.units[textutil.Key(name)] = u
			}
		}
		tables[textutil.Key(c.Key)] = t
		for _, alias := range c.Aliases {
			tables[textutil.Key(alias)] = t
		}
	}
}

// unitNames returns every accepted spelling of u.
func unitNames(u *Unit) []string {
	names := make([]string, 0, len(u.Aliases)+2)
	names = append(names, u.Key, u.Symbol)
	return append(names, u.Aliases...)
}

// lookupCategory resolves a category by any of its names.
func lookupCategory(name string) (*table, bool) {
	t, ok := tables[textutil.Key(name)]
	return t, ok
}

// lookup resolves a unit within the table.
func (t *table) lookup(name string) (*Unit, bool) {
	u, ok := t.units[textutil.Key(name)]
	return u, ok
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, c := range catalog {
		out[i] = cloneCategory(c)
	}
	return out
}

// CategoryKeys returns the canonical category keys, sorted.
func CategoryKeys() []string {
	keys := make([]string, 0, len(catalog))
	for _, c := range catalog {
		keys = append(keys, c.Key)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the category known under name, including aliases.
func Lookup(name string) (Category, bool) {
	t, ok := lookupCategory(name)
	if !ok {
		return Category{}, false
	}
	return cloneCategory(*t.category), true
}

// Units returns the units of the named category.
func Units(category string) ([]Unit, bool) {
	c, ok := Lookup(category)
	if !ok {
		return nil, false
	}
	return c.Units, true
}

// HasUnit reports whether unit names a unit of category.
func HasUnit(category, unit string) bool {
	t, ok := lookupCategory(category)
	if !ok {
		return false
	}
	_, ok = t.lookup(unit)
	return ok
}

func cloneCategory(c Category) Category {
	c.Aliases = append([]string(nil), c.Aliases...)
	units := make([]Unit, len(c.Units))
	for i, u := range c.Units {
		u.Aliases = append([]string(nil), u.Aliases...)
		units[i] = u
	}
	c.Units = units
	return c
}

// validateTables checks the table invariants: exactly one base unit per
// linear category, strictly positive factors, and no spelling shared by
// two units of the same category or by two categories.
func validateTables() error {
	categoryNames := make(map[string]string)
	for _, c := range catalog {
		for _, name := range append([]string{c.Key}, c.Aliases...) {
			key := textutil.Key(name)
			if owner, ok := categoryNames[key]; ok {
				return fmt.Errorf("category name %q used by %s and %s", name, owner, c.Key)
			}
			categoryNames[key] = c.Key
		}

		seen := make(map[string]string)
		for i := range c.Units {
			u := &c.Units[i]
			for _, name := range unitNames(u) {
				key := textutil.Key(name)
				if owner, ok := seen[key]; ok && owner != u.Key {
					return fmt.Errorf("%s: unit name %q used by %s and %s", c.Key, name, owner, u.Key)
				}
				seen[key] = u.Key
			}
		}

		if c.Affine {
			continue
		}
		bases := 0
		for _, u := range c.Units {
			if u.Factor <= 0 {
				return fmt.Errorf("%s: unit %s has non-positive factor %v", c.Key, u.Key, u.Factor)
			}
			if u.Factor == 1 {
				bases++
			}
		}
		if bases != 1 {
			return fmt.Errorf("%s: expected exactly one base unit, found %d", c.Key, bases)
		}
	}
	return nil
}
