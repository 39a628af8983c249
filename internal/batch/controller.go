// Package batch drives the sequential per-case run: dedupe against prior
// output, document classification, incremental persistence and the
// end-of-run consolidation.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/classify"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
	"github.com/mvcoutinho/pje-decision-tracker/internal/sink"
	"github.com/mvcoutinho/pje-decision-tracker/internal/source"
)

// RowSink is the append-only destination for record batches.
type RowSink interface {
	Append(records []record.DocumentRecord) error
}

// Controller processes one case fully before the next; the stateful
// browsing session behind the source does not tolerate concurrency.
type Controller struct {
	logger *slog.Logger
	vocab  *classify.Vocabulary
	src    source.DocumentSource
	sink   RowSink
	seen   map[string]struct{}
}

// Summary reports what a run did.
type Summary struct {
	RunID     string
	Total     int
	Consulted int
	Skipped   int
	NotFound  int
	Records   []record.DocumentRecord
	Elapsed   time.Duration
}

func NewController(logger *slog.Logger, vocab *classify.Vocabulary, src source.DocumentSource, rows RowSink, seen map[string]struct{}) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if seen == nil {
		seen = make(map[string]struct{})
	}
	return &Controller{
		logger: logger,
		vocab:  vocab,
		src:    src,
		sink:   rows,
		seen:   seen,
	}
}

// Run iterates the normalized case list strictly sequentially. Each case's
// batch is appended to the sink before the next case starts, so an
// external kill loses at most the in-flight case; a case already present
// in the prior output is never queried again within the run.
func (c *Controller) Run(ctx context.Context, cases []string) (Summary, error) {
	start := time.Now()
	sum := Summary{
		RunID: uuid.NewString(),
		Total: len(cases),
	}
	c.logger.Info("batch.run.start", "run_id", sum.RunID, "cases", len(cases))

	for idx, numero := range cases {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if _, ok := c.seen[numero]; ok {
			sum.Skipped++
			c.logger.Info("batch.case.skip", "case", numero, "idx", idx+1, "total", len(cases))
			continue
		}
		c.logger.Info("batch.case.start", "case", numero, "idx", idx+1, "total", len(cases))

		records, err := c.processCase(ctx, numero)
		if err != nil {
			if errors.Is(err, source.ErrNoResults) {
				// placeholder row keeps case-level coverage auditable
				records = []record.DocumentRecord{record.NotFound(numero)}
				sum.NotFound++
				c.logger.Warn("batch.case.not_found", "case", numero)
			} else {
				return sum, fmt.Errorf("case %s: %w", numero, err)
			}
		}

		if err := c.sink.Append(records); err != nil {
			return sum, fmt.Errorf("case %s: %w", numero, err)
		}
		c.seen[numero] = struct{}{}
		sum.Consulted++
		sum.Records = append(sum.Records, records...)
		c.logger.Info("batch.case.ok", "case", numero, "records", len(records))
	}

	sum.Elapsed = time.Since(start)
	c.logger.Info("batch.run.ok",
		"run_id", sum.RunID,
		"consulted", sum.Consulted,
		"skipped", sum.Skipped,
		"not_found", sum.NotFound,
		"records", len(sum.Records),
		"elapsed", FormatElapsed(sum.Elapsed),
	)
	return sum, nil
}

// processCase opens the case and classifies every qualifying document.
func (c *Controller) processCase(ctx context.Context, numero string) ([]record.DocumentRecord, error) {
	view, err := c.src.FetchCase(ctx, numero)
	if err != nil {
		return nil, err
	}
	defer view.Close()

	archived := view.Archived()
	meta := view.Metadata(ctx)

	var records []record.DocumentRecord
	pages := view.PageCount()
	for page := 1; page <= pages; page++ {
		c.logger.Info("batch.page", "case", numero, "page", page, "pages", pages)
		entries, err := view.Documents(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		for _, entry := range entries {
			if !constants.IsQualifyingType(entry.AnchorText) {
				continue
			}
			text, err := view.OpenDocument(ctx, entry)
			if err != nil {
				// flaky entry after retries: skip, keep the batch going
				c.logger.Warn("batch.document.skip", "case", numero, "page", page, "err", err)
				continue
			}
			if text == "" {
				continue
			}
			records = append(records, c.buildRecord(numero, archived, meta, entry.AnchorText, text))
		}
	}
	return records, nil
}

// buildRecord runs the extraction engine over one document's text.
func (c *Controller) buildRecord(numero string, archived bool, meta record.CaseMetadata, anchorText, text string) record.DocumentRecord {
	dataHora, tipo := record.ParseAnchor(anchorText)
	flags := c.vocab.Classify(text)
	return record.DocumentRecord{
		NumeroProcesso: numero,
		IDDocumento:    record.DocumentID(text),
		TipoDocumento:  tipo,
		DataHora:       dataHora,
		AssinadoPor:    record.Signer(text),
		Flags:          flags,
		ValorTotal:     classify.ExtractAmount(text, flags),
		Arquivado:      archived,
		TextoDocumento: c.vocab.ExtractPassage(text, flags),
		Metadata:       meta,
	}
}

// FormatElapsed renders a duration as HH:MM:SS for the run summary.
func FormatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

var _ RowSink = (*sink.TSVSink)(nil)
