// Package classify matches decision documents against the controlled
// vocabularies of judicial authorization phrases and extracts the amount
// and the triggering passage.
package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
)

// Vocabulary holds the three compiled category patterns. Build it once at
// startup and share it; the compiled patterns are read-only.
type Vocabulary struct {
	Sequestro     *regexp.Regexp
	Bloqueio      *regexp.Regexp
	Transferencia *regexp.Regexp
}

// vocabularyFile is the on-disk override format (VOCAB_FILE).
type vocabularyFile struct {
	Sequestro     []string `yaml:"sequestro"`
	Bloqueio      []string `yaml:"bloqueio"`
	Transferencia []string `yaml:"transferencia"`
}

// NewVocabulary compiles the built-in term lists.
func NewVocabulary() *Vocabulary {
	v, err := compile(constants.TermsSequestro, constants.TermsBloqueio, constants.TermsTransferencia)
	if err != nil {
		// built-in lists are literals; a compile failure is a programming error
		panic(err)
	}
	return v
}

// LoadVocabulary reads a YAML term-list file and compiles it. Categories
// missing from the file fall back to the built-in lists.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var f vocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(f.Sequestro) == 0 {
		f.Sequestro = constants.TermsSequestro
	}
	if len(f.Bloqueio) == 0 {
		f.Bloqueio = constants.TermsBloqueio
	}
	if len(f.Transferencia) == 0 {
		f.Transferencia = constants.TermsTransferencia
	}
	return compile(f.Sequestro, f.Bloqueio, f.Transferencia)
}

func compile(seq, bloq, trans []string) (*Vocabulary, error) {
	reSeq, err := compileTerms(seq)
	if err != nil {
		return nil, fmt.Errorf("sequestro terms: %w", err)
	}
	reBloq, err := compileTerms(bloq)
	if err != nil {
		return nil, fmt.Errorf("bloqueio terms: %w", err)
	}
	reTrans, err := compileTerms(trans)
	if err != nil {
		return nil, fmt.Errorf("transferência terms: %w", err)
	}
	return &Vocabulary{Sequestro: reSeq, Bloqueio: reBloq, Transferencia: reTrans}, nil
}

// compileTerms builds a case-insensitive alternation from literal phrases.
// Phrases are quoted so punctuation like "proceda-se, com urgência," stays
// literal.
func compileTerms(terms []string) (*regexp.Regexp, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty term list")
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(strings.TrimSpace(t))
	}
	return regexp.Compile("(?i)" + strings.Join(quoted, "|"))
}
