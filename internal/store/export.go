// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citescholar/pkg/types"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	ExportBibTeX ExportFormat = "bibtex"
	ExportYAML   ExportFormat = "yaml"
	ExportJSON   ExportFormat = "json"
)

// ParseExportFormat validates a format name. The empty string selects
// BibTeX.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(s)); f {
	case "", "bib":
		return ExportBibTeX, nil
	case ExportBibTeX, ExportYAML, ExportJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: use bibtex, yaml, or json", s)
	}
}

// Export writes every stored citation to w in insertion order. BibTeX
// output is the stored citation texts separated by blank lines, ready to
// use as a .bib file. It returns the number of records written.
func (s *Store) Export(ctx context.Context, w io.Writer, format ExportFormat) (int, error) {
	records, err := s.List(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}
	slices.Reverse(records)
	if records == nil {
		records = []types.Citation{}
	}

	switch format {
	case ExportBibTeX, "":
		for i, r := range records {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return i, err
				}
			}
			if _, err := fmt.Fprintln(w, strings.TrimRight(r.Citation, "\n")); err != nil {
				return i, err
			}
		}
	case ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return 0, fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		return 0, fmt.Errorf("unsupported export format %q", format)
	}

	return len(records), nil
}
