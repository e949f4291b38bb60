package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first, and any rejected files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			store := content.NewStore(cfg.ContentDir, content.WithExtensions(cfg.PostExtensions...))

			entries, err := store.Scan()
			if err != nil {
				return err
			}
			var summaries []content.Summary
			var rejected []content.Entry
			for _, e := range entries {
				if e.Err != nil {
					rejected = append(rejected, e)
					continue
				}
				summaries = append(summaries, e.Summary)
			}
			content.SortSummaries(summaries)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tID\tTITLE")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Date, s.ID, s.Title)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, e := range rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "rejected %s: %v\n", e.Path, e.Err)
			}
			return nil
		},
	}
}
