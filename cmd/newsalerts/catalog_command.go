package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"NewsAlerts/internal/app"
	"NewsAlerts/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [company]",
		Short: "List the companies and industries being tracked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(app.Options{DryRun: true})
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(application.Catalog()))
				return nil
			}
			out, err := renderCompany(application.Catalog(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func renderCatalog(cat catalog.Catalog) string {
	companies := make([][]string, 0, len(cat.Companies))
	for i, c := range cat.Companies {
		companies = append(companies, []string{fmt.Sprint(i + 1), c.Name, strings.Join(c.Aliases, ", ")})
	}

	industries := make([][]string, 0, len(cat.Industries))
	for _, ind := range cat.Industries {
		industries = append(industries, []string{
			ind.Name,
			fmt.Sprint(len(ind.Keywords)),
			strings.Join(ind.NegativeKeywords, ", "),
		})
	}

	return renderTable([]string{"#", "Company", "Aliases"}, companies, 1) +
		"\n" +
		renderTable([]string{"Industry", "Keywords", "Excluded"}, industries, 2)
}

func renderCompany(cat catalog.Catalog, name string) (string, error) {
	company, ok := cat.Company(name)
	if !ok {
		return "", fmt.Errorf("company %q is not in the catalog", name)
	}

	rows := make([][]string, 0, len(company.Patterns()))
	for _, pattern := range company.Patterns() {
		rows = append(rows, []string{pattern})
	}
	return renderTable([]string{company.Name + " patterns"}, rows), nil
}
