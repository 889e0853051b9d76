// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var bibtexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"^", `\textasciicircum{}`,
	"~", `\textasciitilde{}`,
)

// ToBibTeX renders p as a @misc entry with arXiv eprint fields.
func ToBibTeX(p types.Paper) string {
	type field struct{ name, value string }
	fields := []field{
		{"title", p.Title},
		{"author", bibtexAuthors(p.Authors)},
	}
	if !p.Published.IsZero() {
		fields = append(fields,
			field{"year", fmt.Sprintf("%d", p.Published.Year())},
			field{"month", strings.ToLower(p.Published.Format("Jan"))},
		)
	}
	fields = append(fields,
		field{"eprint", p.ID},
		field{"archivePrefix", "arXiv"},
		field{"primaryClass", p.PrimaryCategory()},
		field{"url", p.AbstractURL()},
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "@misc{%s,\n", BibTeXKey(p))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&sb, "  %s = {%s},\n", f.name, bibtexEscaper.Replace(f.value))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// BibTeXKey builds a citation key from the first author's surname, the
// year and the first title word, falling back to the arXiv ID.
func BibTeXKey(p types.Paper) string {
	var key string
	if len(p.Authors) > 0 {
		key = keyPart(surname(p.Authors[0]))
	}
	if key == "" {
		return "arxiv" + keyPart(p.ID)
	}
	if !p.Published.IsZero() {
		key += fmt.Sprintf("%d", p.Published.Year())
	}
	if words := strings.Fields(p.Title); len(words) > 0 {
		w := keyPart(words[0])
		if len(w) > 5 {
			w = w[:5]
		}
		key += w
	}
	return key
}

// bibtexAuthors formats names as "Last, First and Last, First".
func bibtexAuthors(authors []string) string {
	formatted := make([]string, 0, len(authors))
	for _, a := range authors {
		words := strings.Fields(a)
		switch {
		case len(words) == 0:
			continue
		case strings.Contains(a, ","), len(words) == 1:
			formatted = append(formatted, strings.Join(words, " "))
		default:
			last := words[len(words)-1]
			formatted = append(formatted, last+", "+strings.Join(words[:len(words)-1], " "))
		}
	}
	return strings.Join(formatted, " and ")
}

func surname(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return name[:i]
	}
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// keyPart lower-cases s and keeps only ASCII letters and digits.
func keyPart(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
