package calculator

import (
	"context"
	"fmt"
	"math"
)

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// monthlyPayment returns the constant payment of a French amortization loan.
// A zero rate splits the principal evenly.
func monthlyPayment(principal, monthlyRate float64, months int) float64 {
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(months)))
}

// Schedule builds the month-by-month amortization table. The final row
// absorbs rounding so the balance ends at exactly zero.
func Schedule(principal, annualRatePct float64, months int) []Installment {
	if months <= 0 || principal <= 0 {
		return nil
	}
	rate := annualRatePct / 100 / 12
	payment := monthlyPayment(principal, rate, months)

	rows := make([]Installment, 0, months)
	balance := principal
	for m := 1; m <= months; m++ {
		interest := balance * rate
		amort := payment - interest
		if m == months {
			amort = balance
		}
		balance -= amort
		rows = append(rows, Installment{
			Month:     m,
			Payment:   amort + interest,
			Interest:  interest,
			Principal: amort,
			Balance:   math.Max(balance, 0),
		})
	}
	return rows
}

// loanTerms reads the principal and annual rate shared by mortgage and loan.
func loanTerms(in Inputs) (principal, ratePct float64, err error) {
	if principal, err = in.positive("principal"); err != nil {
		return 0, 0, err
	}
	if ratePct, err = in.nonNegative("tasa"); err != nil {
		return 0, 0, err
	}
	return principal, ratePct, nil
}

// wholeMonths validates a month count.
func wholeMonths(name string, months float64) (int, error) {
	if months < 1 || months != math.Trunc(months) || months > 1200 {
		return 0, fmt.Errorf("%w: %s must be a whole number of months between 1 and 1200", ErrInvalidInput, name)
	}
	return int(months), nil
}

func computeMortgage(_ context.Context, _ *Engine, in Inputs) (*Result, error) {
	principal, ratePct, err := loanTerms(in)
	if err != nil {
		return nil, err
	}
	years, err := in.positive("anos")
	if err != nil {
		return nil, err
	}
	months, err := wholeMonths("anos", years*12)
	if err != nil {
		return nil, err
	}

	payment := monthlyPayment(principal, ratePct/100/12, months)
	total := payment * float64(months)
	return &Result{
		Outputs: map[string]float64{
			"cuota":     payment,
			"total":     total,
			"intereses": total - principal,
			"meses":     float64(months),
		},
		Summary: printer().Sprintf("Cuota mensual: %.2f € durante %d meses", payment, months),
	}, nil
}

func computeLoan(_ context.Context, _ *Engine, in Inputs) (*Result, error) {
	principal, ratePct, err := loanTerms(in)
	if err != nil {
		return nil, err
	}
	m, err := in.positive("meses")
	if err != nil {
		return nil, err
	}
	months, err := wholeMonths("meses", m)
	if err != nil {
		return nil, err
	}

	schedule := Schedule(principal, ratePct, months)
	var total, interest float64
	for _, row := range schedule {
		total += row.Payment
		interest += row.Interest
	}
	payment := schedule[0].Payment
	return &Result{
		Outputs: map[string]float64{
			"cuota":     payment,
			"total":     total,
			"intereses": interest,
		},
		Summary:  printer().Sprintf("Cuota mensual: %.2f €, intereses totales: %.2f €", payment, interest),
		Schedule: schedule,
	}, nil
}

func computeCompoundInterest(_ context.Context, _ *Engine, in Inputs) (*Result, error) {
	capital, err := in.positive("capital")
	if err != nil {
		return nil, err
	}
	ratePct, err := in.nonNegative("tasa")
	if err != nil {
		return nil, err
	}
	years, err := in.nonNegative("anos")
	if err != nil {
		return nil, err
	}
	periods, err := in.NumberOr("periodos", 1)
	if err != nil {
		return nil, err
	}
	if periods < 1 || periods != math.Trunc(periods) {
		return nil, fmt.Errorf("%w: periodos must be a positive whole number", ErrInvalidInput)
	}

	final := capital * math.Pow(1+ratePct/100/periods, periods*years)
	return &Result{
		Outputs: map[string]float64{
			"montoFinal": final,
			"intereses":  final - capital,
		},
		Summary: printer().Sprintf("Capital final: %.2f € (intereses: %.2f €)", final, final-capital),
	}, nil
}
