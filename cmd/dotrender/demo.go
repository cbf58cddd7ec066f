package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/dotrender/internal/demo"
)

func demoCmd() *cobra.Command {
	var htmlOnly bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play the scripted demo session",
		Long: `Mount the demo application on a headless document, play a scripted
session of clicks and updates, and print the HTML after each step.

Examples:
  dotrender demo
  dotrender demo --html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			s, err := demo.Mount(cmd.Context(), rendererOptions(cfg, logger, prometheus.NewRegistry())...)
			if err != nil {
				return err
			}
			frames := s.Play(demo.Script())

			if htmlOnly {
				for _, f := range frames {
					fmt.Println(f.HTML)
				}
				return nil
			}

			tbl := table.NewWriter()
			tbl.SetTitle("dotrender demo")
			tbl.SetOutputMirror(os.Stdout)
			tbl.AppendHeader(table.Row{"step", "records", "bindings", "size", "html"})
			for _, f := range frames {
				tbl.AppendRow(table.Row{
					f.Step,
					f.Stats.Records,
					f.Stats.Handles,
					humanize.Bytes(uint64(len(f.HTML))),
					f.HTML,
				})
			}
			tbl.Render()
			return s.Root.Unmount()
		},
	}

	cmd.Flags().BoolVar(&htmlOnly, "html", false, "Print only the HTML of each step")

	return cmd
}
