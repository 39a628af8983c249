package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPassage(t *testing.T) {
	v := NewVocabulary()

	seqPara := "Diante do exposto, determino o sequestro do valor de R$ 1.000,00."
	bloqPara := "Autorizo o bloqueio de valores na conta do réu."
	intro := "Vistos etc."

	t.Run("returns the matching paragraph trimmed", func(t *testing.T) {
		text := intro + "\n\n  " + seqPara + "  \n\nPublique-se."
		got := v.ExtractPassage(text, Flags{Sequestro: true})
		assert.Equal(t, seqPara, got)
	})

	t.Run("sequestro takes precedence over bloqueio", func(t *testing.T) {
		text := bloqPara + "\n\n" + seqPara
		got := v.ExtractPassage(text, Flags{Sequestro: true, Bloqueio: true})
		assert.Equal(t, seqPara, got)
	})

	t.Run("bloqueio used when sequestro flag is off", func(t *testing.T) {
		text := bloqPara + "\n\n" + seqPara
		got := v.ExtractPassage(text, Flags{Bloqueio: true})
		assert.Equal(t, bloqPara, got)
	})

	t.Run("transferência is last resort", func(t *testing.T) {
		transPara := "Defiro a expedição de alvará para levantamento."
		text := intro + "\n\n" + transPara
		got := v.ExtractPassage(text, Flags{Transferencia: true})
		assert.Equal(t, transPara, got)
	})

	t.Run("no flags yields empty", func(t *testing.T) {
		assert.Empty(t, v.ExtractPassage(seqPara, Flags{}))
	})

	t.Run("flag set but no paragraph matches", func(t *testing.T) {
		// flags can come from an override vocabulary; the built-in one may
		// legitimately not match anything.
		assert.Empty(t, v.ExtractPassage(intro, Flags{Sequestro: true}))
	})
}
