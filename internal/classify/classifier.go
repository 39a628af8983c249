package classify

// Flags reports which legal-action categories a document authorizes.
// Categories are not mutually exclusive.
type Flags struct {
	Sequestro     bool
	Bloqueio      bool
	Transferencia bool
}

// Any reports whether at least one category was triggered.
func (f Flags) Any() bool {
	return f.Sequestro || f.Bloqueio || f.Transferencia
}

// Classify runs the three vocabulary searches over the document text.
// A match anywhere in the text sets the category flag; all three checks
// always run.
func (v *Vocabulary) Classify(text string) Flags {
	return Flags{
		Sequestro:     v.Sequestro.MatchString(text),
		Bloqueio:      v.Bloqueio.MatchString(text),
		Transferencia: v.Transferencia.MatchString(text),
	}
}
