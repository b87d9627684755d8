// Command bdd builds a Reduced Ordered Binary Decision Diagram from a
// propositional formula. Grounded on cli/main.go's cobra root-command
// shape: flags bound to local vars, RunE doing the real work, errors
// formatted and returned rather than os.Exit'd inline.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logicforge/logicforge/internal/bdd"
	"github.com/logicforge/logicforge/internal/cache"
	"github.com/logicforge/logicforge/internal/cmdutil"
	"github.com/logicforge/logicforge/internal/parser"
	"github.com/logicforge/logicforge/internal/printer"
	"github.com/logicforge/logicforge/internal/token"
)

var version = "dev" // set via -ldflags at build time

// cachedBDD is the persisted shape for --cache-dir hits: the node table
// plus its root index.
type cachedBDD struct {
	Nodes []bdd.Node `json:"nodes" yaml:"nodes"`
	Root  int        `json:"root" yaml:"root"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "bdd",
		Short:         "Build a Reduced Ordered Binary Decision Diagram from a propositional formula",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	flags := cmdutil.Register(rootCmd, "dot", true)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := cmdutil.Resolve(cmd, flags, "bdd")
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
		return fmt.Errorf("bdd: read input: %w", err)
	}

	formula, errs := parser.Parse(string(src), token.BDD)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("bdd: %d parse error(s)", len(errs))
	}

	canonical := printer.Print(formula, token.BDD)
	c := cache.New(f.CacheDir)
	key := cache.Key("bdd", canonical)

	var result cachedBDD
	hit, err := c.Load(key, &result)
	if err != nil {
		return err
	}
	if hit {
		logger.Info("cache hit", "key", key)
	} else {
		logger.Debug("building BDD", "formula", canonical)
		nodes, root := bdd.Build(formula)
		result = cachedBDD{Nodes: nodes, Root: root}
		if err := c.Store(key, result); err != nil {
			return err
		}
	}

	out, err := cmdutil.OpenOutput(f.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	return cmdutil.Encode(out, f.Format, result, func() string {
		return renderDot(result.Nodes, result.Root)
	})
}

// renderDot emits the BDD as Graphviz dot source: one node per table
// entry, solid edges for the "then" (x=1) branch and dashed for "else",
// terminals boxed and internal nodes circular, with one {rank=same; ...}
// group per variable level so same-level nodes align visually.
func renderDot(nodes []bdd.Node, root int) string {
	var b strings.Builder
	b.WriteString("digraph BDD {\n")
	fmt.Fprintf(&b, "  root [shape=point]; root -> n%d;\n", root)

	levels := map[int][]int{}
	var levelOrder []int
	for i, n := range nodes {
		if i <= 1 {
			fmt.Fprintf(&b, "  n%d [shape=box, label=%q];\n", i, n.Label)
			continue
		}
		fmt.Fprintf(&b, "  n%d [shape=circle, label=%q];\n", i, n.Label)
		fmt.Fprintf(&b, "  n%d -> n%d [style=solid];\n", i, n.Then)
		fmt.Fprintf(&b, "  n%d -> n%d [style=dashed];\n", i, n.Else)
		if _, seen := levels[n.Var]; !seen {
			levelOrder = append(levelOrder, n.Var)
		}
		levels[n.Var] = append(levels[n.Var], i)
	}

	sort.Ints(levelOrder)
	for _, v := range levelOrder {
		b.WriteString("  {rank=same;")
		for _, i := range levels[v] {
			fmt.Fprintf(&b, " n%d", i)
		}
		b.WriteString(";}\n")
	}

	b.WriteString("}")
	return b.String()
}
