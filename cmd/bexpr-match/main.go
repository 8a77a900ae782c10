// Command bexpr-match is a small multi-mode CLI over the bexpr engine:
// compile an expression against a declared attribute domain, match it
// against a batch of events, or report its static bound on one attribute.
// Grounded on cmd/cli/main.go's command-per-verb shape and cmd/server's
// flag-driven error reporting, generalized from a single-mode REPL/server
// to three explicit subcommands via cobra, the tool the corpus reaches for
// once a CLI outgrows a single bare flag.FlagSet.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ritamzico/bexpr"
	"github.com/ritamzico/bexpr/internal/configio"
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/value"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("bexpr-match: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bexpr-match",
		Short:         "Boolean expression matching engine CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCmd(), newMatchCmd(), newBoundCmd())
	return root
}

func openDomains(path string) (*bexpr.Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e := bexpr.New()
	if err := e.LoadDomains(f); err != nil {
		return nil, err
	}
	return e, nil
}

func newCompileCmd() *cobra.Command {
	var domainsPath, exprText string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile an expression against a declared attribute domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainsPath == "" || exprText == "" {
				return fmt.Errorf("--domains and --expr are required")
			}

			e, err := openDomains(domainsPath)
			if err != nil {
				return err
			}

			tree, err := e.ParseAndCompile(exprText)
			if err != nil {
				return err
			}

			stats := expr.CollectStats(tree)
			fmt.Printf("compiled OK: predicate id %d, %d nodes, depth %d\n", tree.ID, stats.NodeCount, stats.Depth)
			for tag, n := range stats.ByTag {
				fmt.Printf("  %-16s %d\n", tag, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&domainsPath, "domains", "", "path to a domain declaration JSON file")
	cmd.Flags().StringVar(&exprText, "expr", "", "expression text, in testdsl syntax")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var domainsPath, eventsPath, exprText string
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match an expression against a batch of events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainsPath == "" || eventsPath == "" || exprText == "" {
				return fmt.Errorf("--domains, --events, and --expr are required")
			}

			e, err := openDomains(domainsPath)
			if err != nil {
				return err
			}

			tree, err := e.ParseAndCompile(exprText)
			if err != nil {
				return err
			}

			ef, err := os.Open(eventsPath)
			if err != nil {
				return err
			}
			defer ef.Close()
			batch, err := configio.LoadEventBatch(ef)
			if err != nil {
				return err
			}

			report := &bexpr.Report{}
			for i, ej := range batch.Events {
				ev, err := e.DecodeEvent(ej)
				if err != nil {
					log.Printf("event %d: decode error: %v", i, err)
					continue
				}
				ok, err := e.Match(ev, tree, e.NewMemoize(), report)
				if err != nil {
					log.Printf("event %d: match error: %v", i, err)
					continue
				}
				fmt.Printf("event %d: %v\n", i, ok)
			}
			fmt.Printf("memoization: %d expressions, %d sub-expressions\n", report.ExpressionsMemoized, report.SubExpressionsMemoized)
			return nil
		},
	}
	cmd.Flags().StringVar(&domainsPath, "domains", "", "path to a domain declaration JSON file")
	cmd.Flags().StringVar(&eventsPath, "events", "", "path to an event batch JSON file")
	cmd.Flags().StringVar(&exprText, "expr", "", "expression text, in testdsl syntax")
	return cmd
}

func newBoundCmd() *cobra.Command {
	var domainsPath, exprText, attr string
	cmd := &cobra.Command{
		Use:   "bound",
		Short: "Report the static bound an expression places on one attribute",
		RunE: func(cmd *cobra.Command, args []string) error {
			if domainsPath == "" || exprText == "" || attr == "" {
				return fmt.Errorf("--domains, --expr, and --attr are required")
			}

			e, err := openDomains(domainsPath)
			if err != nil {
				return err
			}

			tree, err := e.ParseAndCompile(exprText)
			if err != nil {
				return err
			}

			interval, err := e.Bound(attr, tree)
			if err != nil {
				return err
			}
			fmt.Printf("%s bound: [%s, %s]\n", attr, formatBoundValue(interval.Min), formatBoundValue(interval.Max))
			return nil
		},
	}
	cmd.Flags().StringVar(&domainsPath, "domains", "", "path to a domain declaration JSON file")
	cmd.Flags().StringVar(&exprText, "expr", "", "expression text, in testdsl syntax")
	cmd.Flags().StringVar(&attr, "attr", "", "attribute name to compute the static bound for")
	return cmd
}

func formatBoundValue(v bexpr.Value) string {
	switch v.Kind {
	case value.Bool:
		return fmt.Sprintf("%v", v.B)
	case value.Int64:
		return fmt.Sprintf("%d", v.I)
	case value.Float64:
		return fmt.Sprintf("%g", v.F)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
