package calculator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/calcsite/internal/units"
)

// Calculator IDs with a registered computation.
const (
	IDMortgage         = "calculadora-hipoteca"
	IDLoan             = "calculadora-prestamo"
	IDCompoundInterest = "calculadora-interes-compuesto"
	IDQuadratic        = "calculadora-ecuacion-cuadratica"
	IDPercentage       = "calculadora-porcentaje"
	IDBMI              = "calculadora-imc"
	IDUnitConverter    = "conversor-unidades"
	IDTemperature      = "conversor-temperatura"
	IDCurrency         = "conversor-moneda"
)

// RateSource supplies exchange rates to the currency converter.
// *rates.Service satisfies it.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// Result is the outcome of one computation.
type Result struct {
	CalculatorID string `json:"calculatorId"`

	// Outputs holds every numeric result keyed by name.
	Outputs map[string]float64 `json:"outputs"`

	// Summary is a Spanish one-line rendering of the main output.
	Summary string `json:"summary"`

	// Class is a qualitative label, set by the BMI calculator.
	Class string `json:"class,omitempty"`

	// Roots is set by the quadratic equation solver.
	Roots []Root `json:"roots,omitempty"`

	// Schedule is set by the loan calculator.
	Schedule []Installment `json:"schedule,omitempty"`
}

// computeFunc is the signature every registered computation implements.
type computeFunc func(ctx context.Context, e *Engine, in Inputs) (*Result, error)

var registry = map[string]computeFunc{
	IDMortgage:         computeMortgage,
	IDLoan:             computeLoan,
	IDCompoundInterest: computeCompoundInterest,
	IDQuadratic:        computeQuadratic,
	IDPercentage:       computePercentage,
	IDBMI:              computeBMI,
	IDUnitConverter:    computeUnitConversion,
	IDTemperature:      computeTemperature,
	IDCurrency:         computeCurrency,
}

// Engine runs calculator computations.
type Engine struct {
	converter *units.Converter
	rates     RateSource
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRates sets the exchange rate source used by the currency converter.
func WithRates(src RateSource) Option {
	return func(e *Engine) {
		e.rates = src
	}
}

// WithLogger sets the logger passed to the unit converter.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.converter = units.New(e.logger)
	return e
}

// IDs returns the calculator IDs the engine can compute, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Supports reports whether a computation is registered for id.
func Supports(id string) bool {
	_, ok := registry[id]
	return ok
}

// Compute runs the calculator registered under id. Finite inputs can still
// overflow, so a result holding NaN or an infinity is rejected with
// ErrInvalidInput.
func (e *Engine) Compute(ctx context.Context, id string, in Inputs) (*Result, error) {
	fn, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, id)
	}
	res, err := fn(ctx, e, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	if name, ok := res.nonFinite(); ok {
		return nil, fmt.Errorf("%s: %w: %s is out of range", id, ErrInvalidInput, name)
	}
	res.CalculatorID = id
	return res, nil
}

// nonFinite returns the name of the first value that is NaN or infinite.
func (r *Result) nonFinite() (string, bool) {
	names := make([]string, 0, len(r.Outputs))
	for name := range r.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !IsFinite(r.Outputs[name]) {
			return name, true
		}
	}
	for i, root := range r.Roots {
		if !IsFinite(root.Real) || !IsFinite(root.Imag) {
			return fmt.Sprintf("root %d", i+1), true
		}
	}
	for _, row := range r.Schedule {
		for _, v := range []float64{row.Payment, row.Interest, row.Principal, row.Balance} {
			if !IsFinite(v) {
				return fmt.Sprintf("schedule month %d", row.Month), true
			}
		}
	}
	return "", false
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// printer formats numbers the Spanish way ("1.234,56").
func printer() *message.Printer {
	return message.NewPrinter(language.Spanish)
}
