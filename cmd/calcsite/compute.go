package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/calcsite/internal/calculator"
	"github.com/nao1215/calcsite/internal/config"
	"github.com/nao1215/calcsite/internal/model"
)

// NewComputeCmd creates the compute command.
func NewComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute ID [name=value...]",
		Short: "Run a calculator from the command line",
		Long: `Compute runs the calculator ID with the given inputs, exactly as the
site's calculator forms do.

Inputs are name=value pairs. Numbers may use the Spanish decimal comma.
Run "calcsite compute --list" to see the available calculators.

With --save the calculation is stored in the configured history, and
--history prints the stored calculations of ID instead of computing.

Examples:
  calcsite compute calculadora-imc peso=70 altura=175
  calcsite compute calculadora-hipoteca principal=150000 tasa=3,5 anos=25 --json
  calcsite compute calculadora-porcentaje porcentaje=21 valor=80 --save --history sqlite`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list { //nolint:errcheck // flag is registered below
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: runComputeCmd,
	}

	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().Bool("list", false, "List the calculators that can be computed")
	cmd.Flags().Bool("save", false, "Store the calculation in the history")
	cmd.Flags().Bool("show-history", false, "Print the stored calculations instead of computing")
	cmd.Flags().String("history", "", "History backend: memory or sqlite")

	return cmd
}

func runComputeCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if list, _ := cmd.Flags().GetBool("list"); list { //nolint:errcheck // flag is registered above
		for _, id := range calculator.IDs() {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	cfg, logger, err := prepare(cmd, func(cfg *config.Config) error {
		backend, err := cmd.Flags().GetString("history")
		if err != nil {
			return err
		}
		if backend != "" {
			cfg.HistoryBackend = backend
		}
		return nil
	})
	if err != nil {
		return err
	}

	id := args[0]
	asJSON := getBoolFlag(cmd, "json")
	ctx := context.Background()

	if getBoolFlag(cmd, "show-history") {
		store, err := openHistory(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Load(ctx, id)
		if err != nil {
			return err
		}
		return printHistory(out, entries, asJSON)
	}

	inputs, err := parseInputs(args[1:])
	if err != nil {
		return err
	}

	service, closeRates := newRateService(cfg, logger)
	defer closeRates()

	engine := calculator.NewEngine(calculator.WithRates(service), calculator.WithLogger(logger))
	res, err := engine.Compute(ctx, id, inputs)
	if err != nil {
		return err
	}

	if getBoolFlag(cmd, "save") {
		store, err := openHistory(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		entry := &model.HistoryEntry{
			CalculatorID: id,
			Inputs:       inputs,
			Outputs:      res.Outputs,
			Summary:      res.Summary,
		}
		if err := store.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save calculation: %w", err)
		}
		logger.Debug("calculation saved", "id", entry.ID, "calculator", id)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(out, res)
	return nil
}

// parseInputs turns name=value arguments into calculator inputs.
func parseInputs(args []string) (calculator.Inputs, error) {
	in := make(calculator.Inputs, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid input %q: expected name=value", arg)
		}
		in[name] = value
	}
	return in, nil
}

// printResult writes the summary followed by every output, sorted by name.
func printResult(w io.Writer, res *calculator.Result) {
	fmt.Fprintln(w, res.Summary)
	if res.Class != "" {
		fmt.Fprintf(w, "  clasificación: %s\n", res.Class)
	}
	for _, name := range sortedKeys(res.Outputs) {
		fmt.Fprintf(w, "  %s: %g\n", name, res.Outputs[name])
	}
	for _, r := range res.Roots {
		fmt.Fprintf(w, "  raíz: %s\n", r)
	}
	if n := len(res.Schedule); n > 0 {
		fmt.Fprintf(w, "  cuadro de amortización: %d cuotas\n", n)
	}
}

func printHistory(w io.Writer, entries []model.HistoryEntry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []model.HistoryEntry{}
		}
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "Sin cálculos guardados")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Summary)
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
