// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders resolved publications as BibTeX entries and as
// a human-readable summary for interactive confirmation.
package citation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/citescholar/pkg/types"
)

// keyStopWords are skipped when choosing the title word of a citation key.
var keyStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "on": true, "of": true, "in": true,
	"for": true, "and": true, "to": true, "with": true, "is": true,
}

// latexEscaper escapes characters that break a braced BibTeX field.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
)

// Render formats p in the given style. BibTeX is the only supported style.
func Render(p *types.Publication, style types.CitationStyle) (string, error) {
	switch style {
	case "", types.StyleBibTeX:
		return BibTeX(p), nil
	default:
		return "", fmt.Errorf("unsupported citation style %q", style)
	}
}

// BibTeX renders p as a single BibTeX entry. Fields are emitted in
// alphabetical order so identical publications always render identically.
func BibTeX(p *types.Publication) string {
	kind := p.Kind
	if kind == "" {
		kind = types.KindMisc
	}

	fields := map[string]string{
		"title": p.Title,
		"doi":   p.DOI,
		"url":   p.URL,
	}
	if len(p.Authors) > 0 {
		names := make([]string, len(p.Authors))
		for i, a := range p.Authors {
			names[i] = bibtexName(a)
		}
		fields["author"] = strings.Join(names, " and ")
	}
	if p.Year > 0 {
		fields["year"] = strconv.Itoa(p.Year)
	}
	if p.Pages != "" {
		fields["pages"] = pageRange(p.Pages)
	}

	switch kind {
	case types.KindArticle:
		fields["journal"] = p.Venue
		fields["volume"] = p.Volume
		fields["number"] = p.Issue
		fields["publisher"] = p.Publisher
	case types.KindInProceedings, types.KindInCollection:
		fields["booktitle"] = p.Venue
		fields["volume"] = p.Volume
		fields["publisher"] = p.Publisher
	case types.KindBook:
		fields["publisher"] = firstNonEmpty(p.Publisher, p.Venue)
	case types.KindThesis:
		fields["school"] = firstNonEmpty(p.Publisher, p.Venue)
	default:
		fields["howpublished"] = p.Venue
	}

	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s", kind, CiteKey(p))
	for _, k := range keys {
		v := fields[k]
		if k != "url" && k != "doi" {
			v = latexEscaper.Replace(v)
		}
		fmt.Fprintf(&b, ",\n  %s = {%s}", k, v)
	}
	b.WriteString("\n}")
	return b.String()
}

// CiteKey builds a key of the form <first author family name><year><first
// significant title word>, lower-cased and restricted to ASCII letters and
// digits (e.g. "vaswani2017attention").
func CiteKey(p *types.Publication) string {
	var author string
	if len(p.Authors) > 0 {
		author = keyPart(splitName(p.Authors[0]).family)
	}

	var word string
	for _, w := range strings.Fields(p.Title) {
		w = keyPart(w)
		if w != "" && !keyStopWords[w] {
			word = w
			break
		}
	}

	var year string
	if p.Year > 0 {
		year = strconv.Itoa(p.Year)
	}

	key := author + year + word
	if key == "" {
		return "unknown"
	}
	return key
}

func keyPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// personName is a name split into BibTeX family and given parts.
type personName struct {
	family string
	given  string
}

// splitName splits a display name on the last space: the last token is the
// family name and everything before it is given. Names already written as
// "Family, Given" are kept as they are.
func splitName(name string) personName {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ","); i >= 0 {
		return personName{family: strings.TrimSpace(name[:i]), given: strings.TrimSpace(name[i+1:])}
	}
	i := strings.LastIndex(name, " ")
	if i < 0 {
		return personName{family: name}
	}
	return personName{family: name[i+1:], given: strings.TrimSpace(name[:i])}
}

func bibtexName(name string) string {
	n := splitName(name)
	if n.given == "" {
		return n.family
	}
	return n.family + ", " + n.given
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// pageRange writes a page range with the BibTeX double hyphen. Ranges that
// already use "--" are left alone.
func pageRange(pages string) string {
	pages = strings.TrimSpace(pages)
	if strings.Contains(pages, "--") {
		return pages
	}
	pages = strings.Replace(pages, "\u2013", "-", 1)
	return strings.Replace(pages, "-", "--", 1)
}
