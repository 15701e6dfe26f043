package calculator

import (
	"context"
	"fmt"
)

// BMI classes of the World Health Organization.
const (
	ClassUnderweight = "Bajo peso"
	ClassNormal      = "Peso normal"
	ClassOverweight  = "Sobrepeso"
	ClassObesity1    = "Obesidad grado I"
	ClassObesity2    = "Obesidad grado II"
	ClassObesity3    = "Obesidad grado III"
)

// BMI returns the body mass index for a weight in kilograms and a height in
// centimeters.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// BMIClass maps a body mass index to its WHO class.
func BMIClass(bmi float64) string {
	switch {
	case bmi < 18.5:
		return ClassUnderweight
	case bmi < 25:
		return ClassNormal
	case bmi < 30:
		return ClassOverweight
	case bmi < 35:
		return ClassObesity1
	case bmi < 40:
		return ClassObesity2
	default:
		return ClassObesity3
	}
}

func computeBMI(_ context.Context, _ *Engine, in Inputs) (*Result, error) {
	weight, err := in.positive("peso")
	if err != nil {
		return nil, err
	}
	height, err := in.positive("altura")
	if err != nil {
		return nil, err
	}
	if height > 300 {
		return nil, fmt.Errorf("%w: altura is in centimeters", ErrInvalidInput)
	}

	bmi := BMI(weight, height)
	class := BMIClass(bmi)
	return &Result{
		Outputs: map[string]float64{"imc": bmi},
		Class:   class,
		Summary: printer().Sprintf("IMC: %.1f (%s)", bmi, class),
	}, nil
}
