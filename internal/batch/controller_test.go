package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvcoutinho/pje-decision-tracker/internal/classify"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
	"github.com/mvcoutinho/pje-decision-tracker/internal/sink"
	"github.com/mvcoutinho/pje-decision-tracker/internal/source"
)

// fakeCase is one scripted case served by fakeSource.
type fakeCase struct {
	archived bool
	meta     record.CaseMetadata
	pages    [][]fakeDoc
}

type fakeDoc struct {
	anchor string
	text   string
}

// fakeSource scripts the portal: a map of case number to content, counting
// fetches so dedupe behavior is observable.
type fakeSource struct {
	cases   map[string]fakeCase
	fetches map[string]int
	closed  bool
}

func newFakeSource(cases map[string]fakeCase) *fakeSource {
	return &fakeSource{cases: cases, fetches: make(map[string]int)}
}

func (s *fakeSource) FetchCase(_ context.Context, numero string) (source.CaseView, error) {
	s.fetches[numero]++
	c, ok := s.cases[numero]
	if !ok {
		return nil, source.ErrNoResults
	}
	return &fakeView{c: c}, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeView struct {
	c fakeCase
}

func (v *fakeView) Archived() bool                               { return v.c.archived }
func (v *fakeView) Metadata(context.Context) record.CaseMetadata { return v.c.meta }
func (v *fakeView) PageCount() int                               { return len(v.c.pages) }
func (v *fakeView) Close() error                                 { return nil }

func (v *fakeView) Documents(_ context.Context, page int) ([]source.DocumentEntry, error) {
	docs := v.c.pages[page-1]
	entries := make([]source.DocumentEntry, len(docs))
	for i, d := range docs {
		entries[i] = source.DocumentEntry{Ref: fmt.Sprintf("%d:%d", page, i), AnchorText: d.anchor}
	}
	return entries, nil
}

func (v *fakeView) OpenDocument(_ context.Context, entry source.DocumentEntry) (string, error) {
	var page, idx int
	if _, err := fmt.Sscanf(entry.Ref, "%d:%d", &page, &idx); err != nil {
		return "", err
	}
	return v.c.pages[page-1][idx].text, nil
}

func newTestController(t *testing.T, src source.DocumentSource, seen map[string]struct{}) (*Controller, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.tsv")
	return NewController(nil, classify.NewVocabulary(), src, sink.NewTSVSink(path, nil), seen), path
}

const caseSequestro = "0713963-14.2023.8.07.0016"

func sequestroCase() fakeCase {
	return fakeCase{
		meta: record.CaseMetadata{
			PoloAtivo:      "ANTUANETE XAVIER",
			PoloAtivoTaxID: "123.456.789-01",
			PoloPassivo:    "DISTRITO FEDERAL",
		},
		pages: [][]fakeDoc{{
			{
				anchor: "148812934\n02/03/2023 14:22:10 - Decisão",
				text: "ID do documento: 148812934\n\n" +
					"Vistos.\n\n" +
					"Diante do exposto, ordeno o sequestro da quantia de R$ 1.234,56 em face do ente público.\n\n" +
					"Assinado eletronicamente por: MARIA DA SILVA",
			},
			{
				anchor: "148812999\n03/03/2023 09:00:00 - Certidão",
				text:   "certidões não são abertas",
			},
		}},
	}
}

func TestRunEndToEnd(t *testing.T) {
	src := newFakeSource(map[string]fakeCase{caseSequestro: sequestroCase()})
	c, _ := newTestController(t, src, nil)

	sum, err := c.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)

	require.Len(t, sum.Records, 1)
	r := sum.Records[0]
	assert.Equal(t, caseSequestro, r.NumeroProcesso)
	assert.Equal(t, "148812934", r.IDDocumento)
	assert.Equal(t, "Decisão", r.TipoDocumento)
	assert.Equal(t, "02/03/2023 14:22:10", r.DataHora)
	assert.Equal(t, "MARIA DA SILVA", r.AssinadoPor)
	assert.True(t, r.Flags.Sequestro)
	assert.False(t, r.Flags.Bloqueio)
	assert.False(t, r.Flags.Transferencia)
	assert.Equal(t, "R$ 1.234,56", r.ValorTotal)
	assert.False(t, r.Arquivado)
	assert.Contains(t, r.TextoDocumento, "ordeno o sequestro da quantia")
	assert.Equal(t, "ANTUANETE XAVIER", r.Metadata.PoloAtivo)

	row := r.Row()
	assert.Equal(t, "SIM", row[5])
	assert.Equal(t, "NÃO", row[6])
	assert.Equal(t, "NÃO", row[7])
	assert.Equal(t, "NÃO", row[9])
}

func TestRunSkipsSeenCases(t *testing.T) {
	src := newFakeSource(map[string]fakeCase{caseSequestro: sequestroCase()})
	seen := map[string]struct{}{caseSequestro: {}}
	c, _ := newTestController(t, src, seen)

	sum, err := c.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)

	assert.Zero(t, src.fetches[caseSequestro], "seen case must cost no fetch")
	assert.Equal(t, 1, sum.Skipped)
	assert.Empty(t, sum.Records)
}

func TestRunDedupesWithinRun(t *testing.T) {
	src := newFakeSource(map[string]fakeCase{caseSequestro: sequestroCase()})
	c, _ := newTestController(t, src, nil)

	sum, err := c.Run(context.Background(), []string{caseSequestro, caseSequestro})
	require.NoError(t, err)

	assert.Equal(t, 1, src.fetches[caseSequestro])
	assert.Equal(t, 1, sum.Consulted)
	assert.Equal(t, 1, sum.Skipped)
}

func TestRunNotFoundEmitsPlaceholder(t *testing.T) {
	src := newFakeSource(nil)
	c, path := newTestController(t, src, nil)

	sum, err := c.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.NotFound)
	require.Len(t, sum.Records, 1)
	assert.Equal(t, "N/A", sum.Records[0].TipoDocumento)

	seen, err := sink.SeenCases(path)
	require.NoError(t, err)
	assert.Contains(t, seen, caseSequestro, "placeholder row must register the case as processed")
}

func TestRunResumeFromPriorOutput(t *testing.T) {
	cases := map[string]fakeCase{caseSequestro: sequestroCase()}

	// first run writes the case
	src1 := newFakeSource(cases)
	c1, path := newTestController(t, src1, nil)
	_, err := c1.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)

	// second run loads the seen set from the same file and skips
	seen, err := sink.SeenCases(path)
	require.NoError(t, err)
	src2 := newFakeSource(cases)
	c2 := NewController(nil, classify.NewVocabulary(), src2, sink.NewTSVSink(path, nil), seen)
	sum, err := c2.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)

	assert.Zero(t, src2.fetches[caseSequestro])
	assert.Equal(t, 1, sum.Skipped)
}

func TestRunFiltersNonQualifyingDocuments(t *testing.T) {
	src := newFakeSource(map[string]fakeCase{caseSequestro: sequestroCase()})
	c, _ := newTestController(t, src, nil)

	sum, err := c.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)
	require.Len(t, sum.Records, 1, "the Certidão entry must not be opened")
}

func TestRunMultiplePages(t *testing.T) {
	fc := sequestroCase()
	fc.pages = append(fc.pages, []fakeDoc{{
		anchor: "149000000\n10/04/2023 11:00:00 - Sentença",
		text: "ID do documento: 149000000\n\n" +
			"Autorizo o bloqueio de R$ 9.000,00 na conta do ente.\n\n" +
			"Assinado eletronicamente por: JOSE SANTOS",
	}})
	src := newFakeSource(map[string]fakeCase{caseSequestro: fc})
	c, _ := newTestController(t, src, nil)

	sum, err := c.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)
	require.Len(t, sum.Records, 2)
	assert.True(t, sum.Records[1].Flags.Bloqueio)
	assert.Equal(t, "R$ 9.000,00", sum.Records[1].ValorTotal)
}

func TestRunSkipsEmptyDocumentText(t *testing.T) {
	fc := sequestroCase()
	fc.pages[0] = append(fc.pages[0], fakeDoc{anchor: "x\n05/05/2023 10:00:00 - Despacho", text: ""})
	src := newFakeSource(map[string]fakeCase{caseSequestro: fc})
	c, _ := newTestController(t, src, nil)

	sum, err := c.Run(context.Background(), []string{caseSequestro})
	require.NoError(t, err)
	require.Len(t, sum.Records, 1)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:05", FormatElapsed(5e9))
	assert.Equal(t, "01:01:01", FormatElapsed(3661e9))
}
