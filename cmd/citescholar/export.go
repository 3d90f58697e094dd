// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved citations as BibTeX, YAML, or JSON",
	Long: `Export writes every saved citation in insertion order. The default
bibtex format produces a .bib file usable by LaTeX and reference managers.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := store.ParseExportFormat(formatName)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")

	st, err := store.Open(databasePath(cmd), store.WithLogger(logger))
	if err != nil {
		return err
	}
	defer st.Close()

	var w io.Writer = cmd.OutOrStdout()
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := st.Export(cmd.Context(), w, format)
	if err != nil {
		return err
	}
	if output != "" && output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d citations to %s\n", n, output)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringP("sqlite3", "s", types.DefaultDatabasePath, "SQLite3 database file path")
	exportCmd.Flags().StringP("format", "f", string(store.ExportBibTeX), "export format: bibtex, yaml, or json")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
