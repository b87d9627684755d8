// Command dpll runs the DPLL satisfiability search over a DIMACS CNF
// instance. Grounded on the same cobra root-command shape as
// cmd/bdd; DPLL carries no --cache-dir since a solve's result depends on
// the whole CNF file content anyway and the search itself is already the
// cheap part relative to formatting a useful diagnosis.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logicforge/logicforge/internal/cmdutil"
	"github.com/logicforge/logicforge/internal/dpll"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "dpll",
		Short:         "Solve a DIMACS CNF instance with DPLL",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	flags := cmdutil.Register(rootCmd, "text", false)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := cmdutil.Resolve(cmd, flags, "dpll")
		if err != nil {
			return err
		}
		logger := cmdutil.NewLogger(f.LogLevel)
		run := func() error { return runOnce(f, logger) }
		if f.Watch {
			return cmdutil.Watch(logger, f.Input, run)
		}
		return run()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runOnce(f *cmdutil.Flags, logger *slog.Logger) error {
	in, err := cmdutil.OpenInput(f.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	cnf, err := dpll.Parse(in)
	if err != nil {
		return fmt.Errorf("dpll: %w", err)
	}
	logger.Debug("parsed CNF", "vars", cnf.NVars, "clauses", len(cnf.Clauses))

	result := dpll.Solve(cnf)

	out, err := cmdutil.OpenOutput(f.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	return cmdutil.Encode(out, f.Format, result, func() string {
		return renderText(result)
	})
}

// renderText renders a Result as the native text format: "SAT" or
// "UNSAT" followed by one "i: True|False|Unset" line per variable,
// matching dpll.c's printf("%lu: %s\n", i, ...) output.
func renderText(r dpll.Result) string {
	if !r.Satisfiable {
		return "UNSAT"
	}
	var b strings.Builder
	b.WriteString("SAT")
	for i := 1; i < len(r.Assignment); i++ {
		fmt.Fprintf(&b, "\n%d: %s", i, stateLabel(r.Assignment[i]))
	}
	return b.String()
}

func stateLabel(s dpll.State) string {
	switch s {
	case dpll.True:
		return "True"
	case dpll.False:
		return "False"
	default:
		return "Unset"
	}
}
