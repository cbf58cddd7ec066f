package main

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vango-dev/dotrender/internal/config"
	"github.com/vango-dev/dotrender/internal/demo"
	"github.com/vango-dev/dotrender/pkg/snapshot"
)

func snapshotCmd() *cobra.Command {
	var (
		sinkKind string
		dir      string
		name     string
		steps    bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the demo and store its HTML",
		Long: `Render the demo application and store the resulting HTML in a sink.

The file sink writes into a directory. The s3 sink uploads to the bucket
configured under [snapshot.s3]; credentials are read from
AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  dotrender snapshot
  dotrender snapshot --sink=file --dir=out
  dotrender snapshot --sink=s3 --steps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if sinkKind != "" {
				cfg.Snapshot.Sink = sinkKind
			}
			if dir != "" {
				cfg.Snapshot.Dir = dir
			}
			if name != "" {
				cfg.Snapshot.Name = name
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg)

			sink, err := snapshot.Open(sinkOptions(cfg))
			if err != nil {
				return err
			}

			s, err := demo.Mount(cmd.Context(), rendererOptions(cfg, logger, nil)...)
			if err != nil {
				return err
			}
			defer s.Root.Unmount()

			shots := map[string]snapshot.Snapshot{
				cfg.Snapshot.Name: snapshot.CaptureInner(s.Doc.Body()),
			}
			if steps {
				for i, step := range demo.Script() {
					step.Do(s.App)
					shots[cfg.Snapshot.Name+"-"+humanize.Ordinal(i+1)] = snapshot.CaptureInner(s.Doc.Body())
				}
			}

			for n, snap := range shots {
				if err := snap.Save(cmd.Context(), sink, n); err != nil {
					return err
				}
				success("%s.html  %s  %s", n, humanize.Bytes(uint64(snap.Size())), snap.ETag())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sinkKind, "sink", "", "Sink: file or s3 (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory of the file sink")
	cmd.Flags().StringVar(&name, "name", "", "Snapshot name without extension")
	cmd.Flags().BoolVar(&steps, "steps", false, "Also store one snapshot per scripted demo step")

	return cmd
}

func sinkOptions(cfg *config.Config) snapshot.Options {
	return snapshot.Options{
		Kind: cfg.Snapshot.Sink,
		Dir:  cfg.SnapshotPath(),
		S3: snapshot.S3Config{
			Bucket:          cfg.Snapshot.S3.Bucket,
			Prefix:          cfg.Snapshot.S3.Prefix,
			Region:          cfg.Snapshot.S3.Region,
			Endpoint:        cfg.Snapshot.S3.Endpoint,
			UsePathStyle:    cfg.Snapshot.S3.PathStyle,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		},
	}
}
