// Command ltl translates an LTL formula into a generalized Büchi
// automaton. Grounded on the same cobra root-command shape as cmd/bdd,
// plus schema-checked JSON output before the result ever reaches
// cmdutil.Encode.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/logicforge/logicforge/internal/cache"
	"github.com/logicforge/logicforge/internal/cmdutil"
	"github.com/logicforge/logicforge/internal/ltl"
	"github.com/logicforge/logicforge/internal/parser"
	"github.com/logicforge/logicforge/internal/printer"
	"github.com/logicforge/logicforge/internal/token"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "ltl",
		Short:         "Translate an LTL formula into a generalized Büchi automaton",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	flags := cmdutil.Register(rootCmd, "json", true)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := cmdutil.Resolve(cmd, flags, "ltl")
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
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("ltl: read input: %w", err)
	}

	formula, errs := parser.Parse(string(src), token.LTL)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("ltl: %d parse error(s)", len(errs))
	}

	canonical := printer.Print(formula, token.LTL)
	c := cache.New(f.CacheDir)
	key := cache.Key("ltl", canonical)

	var automaton ltl.Automaton
	hit, err := c.Load(key, &automaton)
	if err != nil {
		return err
	}
	if hit {
		logger.Info("cache hit", "key", key)
	} else {
		logger.Debug("translating LTL formula", "formula", canonical)
		automaton, err = ltl.ToBuchi(formula)
		if err != nil {
			return fmt.Errorf("ltl: %w", err)
		}
		if err := c.Store(key, automaton); err != nil {
			return err
		}
	}

	if err := ltl.ValidateOutput(automaton); err != nil {
		return fmt.Errorf("ltl: %w", err)
	}

	out, err := cmdutil.OpenOutput(f.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	return cmdutil.Encode(out, f.Format, automaton, func() string {
		return printer.PrintDebug(formula)
	})
}
