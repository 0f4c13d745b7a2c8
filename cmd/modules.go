package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/ui"
)

// executeModules writes the visible catalog for category and query as a
// table. Links are left out; `codex open` goes through the gate.
func executeModules(w io.Writer, category, query string) error {
	cat, err := catalog.ParseCategory(category)
	if err != nil {
		return err
	}
	visible := catalog.Visible(catalog.List(), catalog.FilterState{Category: cat, Query: query})
	if len(visible) == 0 {
		_, err := fmt.Fprintf(w, "no modules match %q in %s\n", query, cat)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold("INDEX"), bold("NAME"), bold("CATEGORY"), bold("DESCRIPTION"))
	for i, it := range visible {
		tbl.AddRow(dim(ui.ModuleLabel(i)), it.Name, it.Category.String(), it.Description)
	}
	_, err = fmt.Fprintln(w, tbl)
	return err
}

// NewModulesCmd builds the `codex modules` command.
func NewModulesCmd() *cobra.Command {
	var category, query string
	modulesCmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"ls"},
		Short:   "list the module directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeModules(cmd.OutOrStdout(), category, query)
		},
	}
	modulesCmd.Flags().StringVarP(&category, "category", "c", "", "only show one category (core, brand, growth, conversion)")
	modulesCmd.Flags().StringVarP(&query, "query", "q", "", "only show modules whose name contains this text")
	return modulesCmd
}
