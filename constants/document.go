package constants

import "strings"

// QualifyingTypes holds the lowercase keywords that mark a document entry
// as worth opening. Accent-stripped variants are listed because the portal
// is inconsistent about diacritics in anchor labels.
var QualifyingTypes = []string{
	"decisão", "decisao",
	"sentença", "sentenca",
	"alvará", "alvara",
	"despacho",
}

// Markers found inside the rendered document body.
const (
	MarkerDocumentID = "ID do documento:"
	MarkerSignedBy   = "Assinado eletronicamente por:"
	MarkerArchived   = "Arquivado Definitivamente"
)

// FlagYes and FlagNo are the values written to the boolean-like output
// columns; the output is consumed by Portuguese-speaking analysts.
const (
	FlagYes = "SIM"
	FlagNo  = "NÃO"
)

// TypeNotFound marks a placeholder row for a case the portal returned no
// results for.
const TypeNotFound = "N/A"

// IsQualifyingType reports whether a document anchor label refers to a
// decision-like document.
func IsQualifyingType(label string) bool {
	lower := strings.ToLower(label)
	for _, k := range QualifyingTypes {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// YesNo maps a bool to the output flag values.
func YesNo(b bool) string {
	if b {
		return FlagYes
	}
	return FlagNo
}
