package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show configuration keys and their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			out := cmd.OutOrStdout()
			for _, o := range folio.ConfigOptions() {
				fmt.Fprintf(out, "# %s\n%s = %v\n\n", o.Comment, o.Key, o.Default)
			}
			fmt.Fprintf(out, "# effective\nsite.url = %s\ncontent_dir = %s\naddr = %s\ncache_ttl = %s\n",
				cfg.Site.URL, cfg.ContentDir, cfg.Addr, cfg.CacheTTL)
			return nil
		},
	}
}
