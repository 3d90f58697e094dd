// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/citescholar/pkg/types"
)

const maxAbstract = 300

// Display writes a labelled, human-readable summary of p to w. Empty fields
// are omitted.
func Display(w io.Writer, p *types.Publication) {
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-9s %s\n", label+":", value)
		}
	}

	line("Title", p.Title)
	line("Authors", strings.Join(p.Authors, ", "))
	if p.Year > 0 {
		line("Year", fmt.Sprintf("%d", p.Year))
	}
	line("Venue", p.Venue)
	line("Type", string(p.Kind))
	line("DOI", p.DOI)
	line("URL", p.URL)
	if p.CitedBy > 0 {
		line("Cited by", fmt.Sprintf("%d", p.CitedBy))
	}
	if p.ID != "" {
		line("Source", fmt.Sprintf("%s (%s)", p.Source, p.ID))
	}
	line("Abstract", truncate(p.Abstract, maxAbstract))
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
