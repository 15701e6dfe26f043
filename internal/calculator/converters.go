package calculator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/calcsite/internal/units"
)

func computeUnitConversion(_ context.Context, e *Engine, in Inputs) (*Result, error) {
	value, err := in.Number("valor")
	if err != nil {
		return nil, err
	}
	category, err := in.Text("categoria")
	if err != nil {
		return nil, err
	}
	from, err := in.Text("desde")
	if err != nil {
		return nil, err
	}
	to, err := in.Text("hasta")
	if err != nil {
		return nil, err
	}

	// The converter echoes unknown names; the screen reports them instead.
	if _, ok := units.Lookup(category); !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if !units.HasUnit(category, from) || !units.HasUnit(category, to) {
		return nil, fmt.Errorf("%w: unknown unit in %q", ErrInvalidInput, category)
	}

	result := e.converter.Convert(value, category, from, to)
	return &Result{
		Outputs: map[string]float64{"resultado": result},
		Summary: printer().Sprintf("%.6g %s = %.6g %s", value, from, result, to),
	}, nil
}

func computeTemperature(_ context.Context, e *Engine, in Inputs) (*Result, error) {
	value, err := in.Number("valor")
	if err != nil {
		return nil, err
	}
	from, err := in.Text("desde")
	if err != nil {
		return nil, err
	}
	to, err := in.Text("hasta")
	if err != nil {
		return nil, err
	}

	result := e.converter.ConvertTemperature(value, from, to)
	return &Result{
		Outputs: map[string]float64{"resultado": result},
		Summary: printer().Sprintf("%.2f %s = %.2f %s", value, from, result, to),
	}, nil
}

func computeCurrency(ctx context.Context, e *Engine, in Inputs) (*Result, error) {
	amount, err := in.nonNegative("cantidad")
	if err != nil {
		return nil, err
	}
	from, err := in.Text("desde")
	if err != nil {
		return nil, err
	}
	to, err := in.Text("hasta")
	if err != nil {
		return nil, err
	}
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	rate, err := in.NumberOr("tasa", -1)
	if err != nil {
		return nil, err
	}
	if rate < 0 {
		if e.rates == nil {
			return nil, ErrRateUnavailable
		}
		rate, err = e.rates.Rate(ctx, from, to)
		if err != nil {
			return nil, errors.Join(ErrRateUnavailable, err)
		}
	}

	result := e.converter.ConvertCurrency(amount, rate)
	return &Result{
		Outputs: map[string]float64{
			"resultado": result,
			"tasa":      rate,
		},
		Summary: printer().Sprintf("%.2f %s = %.2f %s", amount, from, result, to),
	}, nil
}
