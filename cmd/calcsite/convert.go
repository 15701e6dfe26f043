package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/calculator"
	"github.com/nao1215/calcsite/internal/units"
)

// categoryCurrency selects exchange rates instead of a unit table.
const categoryCurrency = "moneda"

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units or currencies",
		Long: `Convert converts VALUE from one unit to another.

The category is selected with --kind. Unit names are the ones listed by
"calcsite convert --list". The "moneda" category converts between ISO 4217
currency codes using the configured exchange rate source.

Values may use the Spanish decimal comma ("3,5").

Examples:
  calcsite convert 10 km mi -k longitud
  calcsite convert 100 celsius fahrenheit -k temperatura
  calcsite convert 250 EUR USD -k moneda`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list { //nolint:errcheck // flag is registered below
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: runConvertCmd,
	}

	cmd.Flags().StringP("kind", "k", units.CategoryLength, "Conversion category")
	cmd.Flags().Bool("list", false, "List categories and their units")

	return cmd
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd, nil)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list { //nolint:errcheck // flag is registered above
		for _, cat := range units.Categories() {
			names := make([]string, 0, len(cat.Units))
			for _, u := range cat.Units {
				names = append(names, u.Key)
			}
			fmt.Fprintf(out, "%-12s %s\n", cat.Key, strings.Join(names, ", "))
		}
		return nil
	}

	value, err := calculator.Inputs{"value": args[0]}.Number("value")
	if err != nil {
		return err
	}
	from, to := args[1], args[2]
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}

	converter := units.New(logger)

	if kind == categoryCurrency {
		service, closeRates := newRateService(cfg, logger)
		defer closeRates()

		from, to = strings.ToUpper(from), strings.ToUpper(to)
		rate, err := service.Rate(context.Background(), from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%g %s = %g %s (1 %s = %g %s)\n",
			value, from, converter.ConvertCurrency(value, rate), to, from, rate, to)
		return nil
	}

	cat, ok := units.Lookup(kind)
	if !ok {
		return fmt.Errorf("unknown category %q (available: %s, %s)",
			kind, strings.Join(units.CategoryKeys(), ", "), categoryCurrency)
	}
	for _, u := range []string{from, to} {
		if !units.HasUnit(cat.Key, u) {
			return fmt.Errorf("unknown unit %q in category %s", u, cat.Key)
		}
	}

	fmt.Fprintf(out, "%g %s = %g %s\n", value, from, converter.Convert(value, cat.Key, from, to), to)
	return nil
}
