// Package parties cleans party-name text from the case header and
// separates CPF/CNPJ identifiers from names.
package parties

import (
	"regexp"
	"strings"
)

var (
	reCPF   = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)
	reCNPJ  = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	reLabel = regexp.MustCompile(`(?i)\b(?:CPF|CNPJ):?`)
	reParen = regexp.MustCompile(`\([^)]*\)`)
	reSpace = regexp.MustCompile(`\s+`)
)

// excluded marks rows that name a representative rather than the party
// itself.
var excluded = []string{"ADVOGADO", "REPRESENTANTE", "PROCURADORIA"}

// CleanName strips identifiers, labels, parenthetical role annotations and
// trailing qualifiers from a raw party row, leaving only the name.
func CleanName(raw string) string {
	s := reCPF.ReplaceAllString(raw, "")
	s = reCNPJ.ReplaceAllString(s, "")
	s = reLabel.ReplaceAllString(s, "")
	s = reParen.ReplaceAllString(s, "")
	if idx := strings.Index(s, " - "); idx >= 0 {
		s = s[:idx]
	}
	s = reSpace.ReplaceAllString(s, " ")
	return strings.Trim(s, " -")
}

// TaxID returns the first CPF or CNPJ found in s, or "".
func TaxID(s string) string {
	if m := reCPF.FindString(s); m != "" {
		return m
	}
	return reCNPJ.FindString(s)
}

// ExtractActive scans the polo ativo table rows top to bottom and returns
// the first row that is the party itself, as (name, taxID). Rows naming
// lawyers, representatives or the public attorney's office are skipped.
// Returns empty values when no row qualifies.
func ExtractActive(rows []string) (string, string) {
	for _, row := range rows {
		if strings.TrimSpace(row) == "" {
			continue
		}
		upper := strings.ToUpper(row)
		skip := false
		for _, kw := range excluded {
			if strings.Contains(upper, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		id := TaxID(row)
		return CleanName(row), id
	}
	return "", ""
}

// ExtractPassive reads the single polo passivo cell, as (name, taxID).
// The respondent is an entity in these cases, so only a CNPJ is looked
// for.
func ExtractPassive(cell string) (string, string) {
	id := reCNPJ.FindString(cell)
	return CleanName(cell), id
}
