package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/dotrender/internal/demo"
	"github.com/vango-dev/dotrender/pkg/headless"
	"github.com/vango-dev/dotrender/pkg/render"
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

func benchCmd() *cobra.Command {
	var (
		iterations int
		rows       []int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure store update to patch latency",
		Long: `Mount lists of bound rows and time Store.Set until every row is patched.

Examples:
  dotrender bench
  dotrender bench --iterations=1000 --rows=1,100,1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if iterations <= 0 {
				iterations = cfg.Bench.Iterations
			}
			if len(rows) == 0 {
				rows = []int{1, 10, cfg.Bench.Rows}
			}

			tbl := table.NewWriter()
			tbl.SetTitle("dotrender patch latency")
			tbl.SetOutputMirror(os.Stdout)
			tbl.AppendHeader(table.Row{"benchmark", "updates", "avg", "min", "p75", "p99", "max"})

			for _, n := range rows {
				calc, err := benchRows(cmd.Context(), n, iterations)
				if err != nil {
					return err
				}
				tbl.AppendRow(table.Row{
					fmt.Sprintf("text rows: %s", humanize.Comma(int64(n))),
					humanize.Comma(int64(iterations)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				})

				calc, err = benchSwap(cmd.Context(), n, iterations)
				if err != nil {
					return err
				}
				tbl.AppendRow(table.Row{
					fmt.Sprintf("swap subtree: %s", humanize.Comma(int64(n))),
					humanize.Comma(int64(iterations)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				})
			}

			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Measured updates per benchmark (default from config)")
	cmd.Flags().IntSliceVar(&rows, "rows", nil, "Row counts to benchmark (default 1,10 and bench.rows)")

	return cmd
}

// benchRows times in-place text patches of n rows bound to one store.
func benchRows(ctx context.Context, n, iterations int) (*tachymeter.Metrics, error) {
	src := store.New(0)
	doc := headless.NewDocument()
	root, err := render.New(doc).Mount(ctx, demo.Rows(n, src), doc.Body())
	if err != nil {
		return nil, err
	}
	defer root.Unmount()

	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	for i := 0; i < iterations; i++ {
		start := time.Now()
		src.Set(i + 1)
		tach.AddTime(time.Since(start))
	}
	return tach.Calc(), nil
}

// benchSwap times replacing a subtree of n rows with another one.
func benchSwap(ctx context.Context, n, iterations int) (*tachymeter.Metrics, error) {
	src := store.New(0)
	flip := store.New(false)
	content := store.Project[bool, *vdom.Tag](flip, func(b bool) *vdom.Tag {
		if b {
			return demo.Rows(n, src)
		}
		return vdom.H("ol", demo.Rows(n, src).Children)
	})

	doc := headless.NewDocument()
	root, err := render.New(doc).Mount(ctx, vdom.H("div", content), doc.Body())
	if err != nil {
		return nil, err
	}
	defer root.Unmount()

	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	for i := 0; i < iterations; i++ {
		start := time.Now()
		flip.Set(i%2 == 0)
		tach.AddTime(time.Since(start))
	}
	return tach.Calc(), nil
}
