// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescholar/internal/confirm"
	"github.com/pdiddy/citescholar/internal/scholar"
	"github.com/pdiddy/citescholar/internal/store"
)

// newProvider builds the search backend for a run.
var newProvider = scholar.New

// runCite opens the store, runs the confirmation loop, and saves the
// accepted citation. Storage errors are reported and end the run without
// a failing exit status.
func runCite(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("--title must not be empty")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg.Search, nil, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Paper title: %s\n", title)
	fmt.Fprintf(out, "Citation style: %s\n", cfg.Style)
	fmt.Fprintf(out, "Save to database: %t\n", !cfg.Store.Disabled)

	var st *store.Store
	if !cfg.Store.Disabled {
		fmt.Fprintf(out, "Database file: %s\n", cfg.Store.DatabasePath())
		st, err = store.Open(cfg.Store.DatabasePath(), store.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "An error occurred: %v\n", err)
			return nil
		}
		defer st.Close()
		fmt.Fprintln(out, "Database setup successful!")
	}

	c := &confirm.Confirmer{
		Provider: provider,
		Decider:  confirm.NewConsoleDecider(cmd.InOrStdin(), out),
		Out:      out,
		Style:    cfg.Style,
		Logger:   logger,
	}
	res, ok := c.Find(cmd.Context(), title)
	if !ok {
		fmt.Fprintln(out, "No result bye.")
		return nil
	}

	if st == nil {
		return nil
	}

	inserted, err := st.Insert(cmd.Context(), res.Title, res.Citation)
	switch {
	case err != nil:
		fmt.Fprintf(cmd.ErrOrStderr(), "Database error: %v\n", err)
	case inserted:
		fmt.Fprintln(out, "Citation successfully added to database.")
	default:
		fmt.Fprintln(out, "This citation already exists in the database.")
	}
	return nil
}
