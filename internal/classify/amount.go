package classify

import (
	"regexp"
	"strings"
)

// reAmount matches currency amounts in the Brazilian format used by the
// portal, e.g. "R$ 12.345,67".
var reAmount = regexp.MustCompile(`R\$[\s]*\d{1,3}(?:\.\d{3})*,\d{2}`)

// context keywords tying an amount to a category. Stems cover inflected
// forms (bloqueio/bloqueados, transferência/transferidos).
const (
	kwSequestro     = "sequestro"
	kwBloqueio      = "bloque"
	kwTransferencia = "transfer"
)

// ExtractAmount returns the currency amount associated with the triggered
// categories, or "" when none applies.
//
// Amounts are scanned in document order. The first amount whose containing
// line mentions a keyword for a category that is actually triggered wins;
// when no amount has a matching context line, the first amount in the
// document is used. A document that triggered no category reports no
// amount at all: a value only means something attached to an
// authorization.
func ExtractAmount(text string, flags Flags) string {
	if !flags.Any() {
		return ""
	}
	locs := reAmount.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return ""
	}
	for _, loc := range locs {
		line := strings.ToLower(lineAround(text, loc[0]))
		if flags.Sequestro && strings.Contains(line, kwSequestro) {
			return text[loc[0]:loc[1]]
		}
		if flags.Bloqueio && strings.Contains(line, kwBloqueio) {
			return text[loc[0]:loc[1]]
		}
		if flags.Transferencia && strings.Contains(line, kwTransferencia) {
			return text[loc[0]:loc[1]]
		}
	}
	return text[locs[0][0]:locs[0][1]]
}

// lineAround returns the line containing byte offset pos, bounded by the
// surrounding newlines.
func lineAround(text string, pos int) string {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : pos+end]
}
