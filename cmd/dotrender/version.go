package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const modulePath = "github.com/vango-dev/dotrender"

// stackModules are the dependencies the renderer and its tooling are built
// on, listed by `dotrender version --deps`.
var stackModules = []string{
	"github.com/prometheus/client_golang",
	"go.opentelemetry.io/otel",
	"github.com/go-chi/chi/v5",
	"github.com/gorilla/websocket",
	"github.com/fxamacker/cbor/v2",
	"github.com/aws/aws-sdk-go-v2/service/s3",
	"github.com/cespare/xxhash/v2",
}

// buildVersion prefers the linker-set version and falls back to the
// module version recorded by `go install`.
func buildVersion(info *debug.BuildInfo) string {
	if version != "dev" || info == nil {
		return version
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return version
}

// writeStack lists the versions of stackModules found in info.
func writeStack(w io.Writer, info *debug.BuildInfo) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"module", "version"})
	found := make(map[string]string)
	if info != nil {
		for _, dep := range info.Deps {
			found[dep.Path] = dep.Version
		}
	}
	for _, path := range stackModules {
		v, ok := found[path]
		if !ok {
			v = "-"
		}
		tbl.AppendRow(table.Row{path, v})
	}
	tbl.Render()
}

func versionCmd() *cobra.Command {
	var (
		short bool
		deps  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print renderer build information",
		Long: `Print the dotrender version, the module it was built from and the
toolchain. With --deps, also list the versions of the metrics, tracing,
transport and storage modules linked into the binary.`,
		Run: func(cmd *cobra.Command, args []string) {
			info, _ := debug.ReadBuildInfo()
			v := buildVersion(info)
			if short {
				fmt.Println(v)
				return
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dotrender %s (%s)\n", v, modulePath)
			fmt.Fprintf(out, "  commit %s, built %s\n", commit, date)
			fmt.Fprintf(out, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if info != nil && info.Main.Path != "" && !strings.HasPrefix(info.Main.Path, modulePath) {
				fmt.Fprintf(out, "  embedded in %s\n", info.Main.Path)
			}
			if deps {
				fmt.Fprintln(out)
				writeStack(out, info)
			}
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version")
	cmd.Flags().BoolVar(&deps, "deps", false, "List the versions of the linked stack modules")

	return cmd
}
