package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	v := NewVocabulary()

	tests := []struct {
		name string
		text string
		want Flags
	}{
		{
			name: "sequestro phrase",
			text: "Diante do exposto, ordeno o sequestro da quantia indicada.",
			want: Flags{Sequestro: true},
		},
		{
			name: "case insensitive",
			text: "DEFIRO O SEQUESTRO do valor postulado.",
			want: Flags{Sequestro: true},
		},
		{
			name: "bloqueio phrase",
			text: "Assim, autorizo o bloqueio de valores na conta do ente público.",
			want: Flags{Bloqueio: true},
		},
		{
			name: "tutela de urgência bloqueio variant",
			text: "Defiro o pedido de tutela de urgência para determinar o bloqueio do montante.",
			want: Flags{Bloqueio: true},
		},
		{
			name: "alvará counts as transferência",
			text: "Autorizo a expedição de alvará em favor da farmácia credora.",
			want: Flags{Transferencia: true},
		},
		{
			name: "multiple categories in one document",
			text: "Determino o sequestro do valor.\n\nApós, determino a transferência ao beneficiário.",
			want: Flags{Sequestro: true, Transferencia: true},
		},
		{
			name: "no vocabulary phrase",
			text: "Intime-se a parte autora para manifestação no prazo de 15 dias.",
			want: Flags{},
		},
		{
			name: "mention without authorization verb",
			text: "A parte requereu o sequestro, que será apreciado oportunamente.",
			want: Flags{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Classify(tt.text))
		})
	}
}

func TestFlagsAny(t *testing.T) {
	assert.False(t, Flags{}.Any())
	assert.True(t, Flags{Bloqueio: true}.Any())
	assert.True(t, Flags{Sequestro: true, Transferencia: true}.Any())
}

func TestLoadVocabularyOverride(t *testing.T) {
	path := writeTempVocab(t, `
sequestro:
  - "mando apreender"
`)
	v, err := LoadVocabulary(path)
	require.NoError(t, err)

	// overridden category uses the file's terms
	assert.True(t, v.Classify("mando apreender os valores").Sequestro)
	assert.False(t, v.Classify("ordeno o sequestro da quantia").Sequestro)

	// omitted categories keep the built-in terms
	assert.True(t, v.Classify("autorizo o bloqueio do montante").Bloqueio)
	assert.True(t, v.Classify("defiro a expedição de alvará").Transferencia)
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	_, err := LoadVocabulary("/nonexistent/vocab.yaml")
	require.Error(t, err)
}
