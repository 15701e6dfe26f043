package calculator

import (
	"context"
	"fmt"
	"math"
)

// Root is one solution of a quadratic equation. Imag is zero for real roots.
type Root struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// String renders the root as "1,5" or "-0,5 + 1,32i".
func (r Root) String() string {
	p := printer()
	switch {
	case r.Imag == 0:
		return p.Sprintf("%.4g", r.Real)
	case r.Imag < 0:
		return p.Sprintf("%.4g - %.4gi", r.Real, -r.Imag)
	default:
		return p.Sprintf("%.4g + %.4gi", r.Real, r.Imag)
	}
}

// SolveQuadratic returns the roots of ax² + bx + c = 0 and the discriminant.
// A zero a degrades to the linear equation bx + c = 0.
func SolveQuadratic(a, b, c float64) ([]Root, float64, error) {
	if a == 0 {
		if b == 0 {
			return nil, 0, fmt.Errorf("%w: a and b cannot both be zero", ErrInvalidInput)
		}
		return []Root{{Real: -c / b}}, 0, nil
	}

	disc := b*b - 4*a*c
	switch {
	case disc > 0:
		sq := math.Sqrt(disc)
		return []Root{
			{Real: (-b + sq) / (2 * a)},
			{Real: (-b - sq) / (2 * a)},
		}, disc, nil
	case disc == 0:
		return []Root{{Real: -b / (2 * a)}}, disc, nil
	default:
		re := -b / (2 * a)
		im := math.Sqrt(-disc) / (2 * math.Abs(a))
		return []Root{{Real: re, Imag: im}, {Real: re, Imag: -im}}, disc, nil
	}
}

func computeQuadratic(_ context.Context, _ *Engine, in Inputs) (*Result, error) {
	a, err := in.Number("a")
	if err != nil {
		return nil, err
	}
	b, err := in.Number("b")
	if err != nil {
		return nil, err
	}
	c, err := in.Number("c")
	if err != nil {
		return nil, err
	}

	roots, disc, err := SolveQuadratic(a, b, c)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Outputs: map[string]float64{"discriminante": disc},
		Roots:   roots,
	}
	for i, r := range roots {
		res.Outputs[fmt.Sprintf("x%d", i+1)] = r.Real
	}

	switch {
	case len(roots) == 1:
		res.Summary = "Solución única: x = " + roots[0].String()
	case roots[0].Imag != 0:
		res.Summary = "Raíces complejas: x₁ = " + roots[0].String() + ", x₂ = " + roots[1].String()
	default:
		res.Summary = "Raíces reales: x₁ = " + roots[0].String() + ", x₂ = " + roots[1].String()
	}
	return res, nil
}

func computePercentage(_ context.Context, _ *Engine, in Inputs) (*Result, error) {
	value, err := in.Number("valor")
	if err != nil {
		return nil, err
	}
	pct, err := in.Number("porcentaje")
	if err != nil {
		return nil, err
	}
	result := value * pct / 100
	return &Result{
		Outputs: map[string]float64{
			"resultado": result,
			"aumento":   value + result,
			"descuento": value - result,
		},
		Summary: printer().Sprintf("El %.4g %% de %.4g es %.4g", pct, value, result),
	}, nil
}
