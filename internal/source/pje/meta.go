package pje

import (
	"strings"

	"github.com/mvcoutinho/pje-decision-tracker/internal/parties"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
)

// The case header is semi-structured text rendered from the "Dados do
// Processo" panel. Fields are located lexically: there is no stable markup
// to parse against, and each lookup degrades to "" on its own.

const (
	labelOrgao         = "Órgão Julgador"
	labelClasse        = "Classe Judicial"
	labelDistribuicao  = "Data da Distribuição"
	labelMovimentacao  = "Última Movimentação"
	labelObjeto        = "Objeto do Processo"
	headingPoloAtivo   = "Polo Ativo"
	headingPoloPassivo = "Polo Passivo"
	headingAfterPolos  = "Movimentações"
)

// parseHeader extracts the case-level metadata from the rendered header
// text.
func parseHeader(text string) record.CaseMetadata {
	meta := record.CaseMetadata{
		OrgaoJulgador:      labeledField(text, labelOrgao),
		ClasseJudicial:     labeledField(text, labelClasse),
		DataDistribuicao:   labeledField(text, labelDistribuicao),
		UltimaMovimentacao: labeledField(text, labelMovimentacao),
		Objeto:             labeledField(text, labelObjeto),
	}
	meta.PoloAtivo, meta.PoloAtivoTaxID = parties.ExtractActive(
		sectionLines(text, headingPoloAtivo, headingPoloPassivo))
	if passive := sectionLines(text, headingPoloPassivo, headingAfterPolos); len(passive) > 0 {
		meta.PoloPassivo, meta.PoloPassivoTaxID = parties.ExtractPassive(passive[0])
	}
	return meta
}

// labeledField finds the line carrying label and returns its value: the
// remainder after a colon on the same line, or the next non-empty line.
func labeledField(text, label string) string {
	lines := strings.Split(text, "\n")
	lowerLabel := strings.ToLower(label)
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if !strings.HasPrefix(strings.ToLower(trimmed), lowerLabel) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(label):])
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest != "" {
			return rest
		}
		for _, next := range lines[i+1:] {
			if v := strings.TrimSpace(next); v != "" {
				return v
			}
		}
		return ""
	}
	return ""
}

// sectionLines returns the non-empty lines between the from heading and
// the to heading (or the end of text). Table column headers rendered as
// text are dropped.
func sectionLines(text, from, to string) []string {
	lines := strings.Split(text, "\n")
	var out []string
	in := false
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		lower := strings.ToLower(trimmed)
		if !in {
			if strings.HasPrefix(lower, strings.ToLower(from)) {
				in = true
			}
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(to)) {
			break
		}
		if trimmed == "" || lower == "participante" || lower == "situação" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
