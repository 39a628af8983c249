package record

import (
	"regexp"
	"strings"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
)

var (
	reAnchorHeader = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`)
	reSignedBy     = regexp.MustCompile(regexp.QuoteMeta(constants.MarkerSignedBy) + `\s*(.+)`)
)

// ParseAnchor reads the document-list anchor label and returns the
// timestamp and type label from its header line, which looks like
// "02/03/2023 14:22:10 - Decisão". Lines before the header (document
// numbers, icons rendered as text) are ignored; missing pieces come back
// empty.
func ParseAnchor(anchorText string) (dataHora, tipo string) {
	for _, ln := range strings.Split(anchorText, "\n") {
		ln = strings.TrimSpace(ln)
		if !reAnchorHeader.MatchString(ln) {
			continue
		}
		parts := strings.SplitN(ln, " - ", 2)
		dataHora = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			tipo = strings.TrimSpace(parts[1])
		}
		return dataHora, tipo
	}
	return "", ""
}

// DocumentID extracts the id following the "ID do documento:" marker, or
// "" when the marker is absent.
func DocumentID(text string) string {
	_, after, ok := strings.Cut(text, constants.MarkerDocumentID)
	if !ok {
		return ""
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Signer extracts the name on the "Assinado eletronicamente por:" line, or
// "" when the document carries no electronic signature block.
func Signer(text string) string {
	m := reSignedBy.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
