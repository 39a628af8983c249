// Package sink persists extracted records: the append-only daily TSV, the
// consolidated end-of-run exports and the input case list.
package sink

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
)

// TSVSink appends record batches to a tab-separated file, writing the
// header only when the destination is new or empty.
type TSVSink struct {
	Path   string
	Logger *slog.Logger
}

func NewTSVSink(path string, logger *slog.Logger) *TSVSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &TSVSink{Path: path, Logger: logger}
}

// Append writes one batch of rows. Newlines inside fields (the triggering
// passage) are flattened to spaces so one record stays one line; the
// seen-set loader and downstream spreadsheet tools rely on that.
func (s *TSVSink) Append(records []record.DocumentRecord) error {
	if len(records) == 0 {
		return nil
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if info.Size() == 0 {
		if err := w.Write(constants.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, r := range records {
		if err := w.Write(flatten(r.Row())); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	s.Logger.Info("sink.append.ok", "path", s.Path, "rows", len(records))
	return nil
}

// SeenCases loads the case numbers already present in the output file,
// read once at startup. A missing file yields an empty set.
func SeenCases(path string) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return seen, nil
		}
		return nil, fmt.Errorf("open prior output: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read prior output: %w", err)
	}
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		seen[row[0]] = struct{}{}
	}
	return seen, nil
}

func flatten(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		v = strings.ReplaceAll(v, "\n", " ")
		out[i] = strings.ReplaceAll(v, "\r", " ")
	}
	return out
}
