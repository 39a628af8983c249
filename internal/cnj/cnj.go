// Package cnj canonicalizes judicial case numbers into the national
// numeração única format NNNNNNN-NN.NNNN.N.NN.NNNN.
package cnj

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reCanonical = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.\d\.\d{2}\.\d{4}$`)
	reNonDigit  = regexp.MustCompile(`\D`)
)

// Normalize converts a raw case number (for example
// "07139631420238070016", or anything with stray punctuation) into the
// canonical CNJ form "0713963-14.2023.8.07.0016". Already-canonical input
// is returned unchanged. There is no failure mode: digits are extracted,
// left-padded with zeros to 20 and re-sliced into the fixed field widths.
// Inputs with more than 20 digits keep the first 20; trailing digits are
// dropped silently, so an over-long input yields a syntactically valid
// but wrong number.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if reCanonical.MatchString(raw) {
		return raw
	}
	digits := reNonDigit.ReplaceAllString(raw, "")
	if len(digits) < 20 {
		digits = strings.Repeat("0", 20-len(digits)) + digits
	}
	return fmt.Sprintf("%s-%s.%s.%s.%s.%s",
		digits[0:7], digits[7:9], digits[9:13], digits[13:14], digits[14:16], digits[16:20])
}

// IsCanonical reports whether s already matches the CNJ pattern.
func IsCanonical(s string) bool {
	return reCanonical.MatchString(s)
}
