package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewsAlerts/internal/app"
	"NewsAlerts/internal/report"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the alert pipeline once and deliver the digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(app.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			digest, err := application.Run(cmd.Context())
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), renderDigest(digest))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the digest instead of sending it")
	return cmd
}

func renderDigest(d report.Digest) string {
	out := d.Heading + "\n"
	if d.Empty() {
		out += "No matching articles\n"
	} else {
		rows := make([][]string, 0, len(d.Groups))
		for _, g := range d.Groups {
			rows = append(rows, []string{
				report.FormatTags(g.Companies, g.Industries),
				truncate(g.Title, 70),
				g.SourceLabel,
				report.PublishedLabel(g.PublishedAt, d.GeneratedAt, d.Location),
			})
		}
		out += renderTable([]string{"Tags", "Title", "Source", "Published"}, rows) + "\n"
	}

	if len(d.Warnings) > 0 {
		rows := make([][]string, 0, len(d.Warnings))
		for _, w := range d.Warnings {
			rows = append(rows, []string{w.Source, w.Message})
		}
		out += renderTable([]string{"Source", "Warning"}, rows) + "\n"
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
