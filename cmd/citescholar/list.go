// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved citations, newest first",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := store.Open(databasePath(cmd), store.WithLogger(logger))
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		if records == nil {
			records = []types.Citation{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	formatCitationTable(records, cmd.OutOrStdout())
	return nil
}

// formatCitationTable writes records as a human-readable table to w.
func formatCitationTable(records []types.Citation, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No citations saved.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-60s  %s\n", "ID", "Created", "Title", "Hash")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range records {
		title := r.Title
		if r := []rune(title); len(r) > 60 {
			title = string(r[:57]) + "..."
		}
		hash := r.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-60s  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), title, hash)
	}

	fmt.Fprintf(w, "\n%d citations\n", len(records))
}

func init() {
	listCmd.Flags().StringP("sqlite3", "s", types.DefaultDatabasePath, "SQLite3 database file path")
	listCmd.Flags().Int("limit", 0, "maximum citations to list (0 = all)")
	listCmd.Flags().Bool("json", false, "output citations as JSON")

	rootCmd.AddCommand(listCmd)
}
