package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newBuildCmd() *cobra.Command {
	var (
		out     string
		workers int
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			// Listings are read once per build; no point caching them.
			cfg.CacheTTL = 0
			app, err := folio.New(cfg)
			if err != nil {
				return err
			}
			opts := folio.BuildOptions{
				OutDir:  cfg.Build.OutDir,
				Workers: cfg.Build.Workers,
				Strict:  strict,
			}
			if out != "" {
				opts.OutDir = out
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			return app.Build(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides build.out_dir)")
	cmd.Flags().IntVar(&workers, "workers", 0, "posts rendered in parallel (overrides build.workers)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any post file is rejected")
	return cmd
}
