package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mvcoutinho/pje-decision-tracker/internal/cnj"
)

// ReadCaseList reads the tab-delimited input file and returns the case
// numbers already normalized to the CNJ pattern. The file has a single
// "processos" column; a header row with that name is skipped, a headerless
// file is accepted as-is.
func ReadCaseList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open case list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read case list: %w", err)
	}

	out := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if i == 0 && row[0] == "processos" {
			continue
		}
		out = append(out, cnj.Normalize(row[0]))
	}
	return out, nil
}
