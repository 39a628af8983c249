package classify

import (
	"regexp"
	"strings"
)

// ExtractPassage returns the paragraph containing the triggering phrase,
// for audit of what the classifier matched.
//
// Paragraphs are blank-line separated blocks. Categories are tried in the
// fixed precedence sequestro > bloqueio > transferência and only the first
// triggered category's passage is returned, even when several flags are
// set. Returns "" when no flag is set or no paragraph matches.
func (v *Vocabulary) ExtractPassage(text string, flags Flags) string {
	paragraphs := strings.Split(text, "\n\n")
	if flags.Sequestro {
		if p := firstMatch(paragraphs, v.Sequestro); p != "" {
			return p
		}
	}
	if flags.Bloqueio {
		if p := firstMatch(paragraphs, v.Bloqueio); p != "" {
			return p
		}
	}
	if flags.Transferencia {
		if p := firstMatch(paragraphs, v.Transferencia); p != "" {
			return p
		}
	}
	return ""
}

func firstMatch(paragraphs []string, re *regexp.Regexp) string {
	for _, p := range paragraphs {
		if re.MatchString(p) {
			return strings.TrimSpace(p)
		}
	}
	return ""
}
