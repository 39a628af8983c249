package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/classify"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
)

func sampleRecord(numero string) record.DocumentRecord {
	return record.DocumentRecord{
		NumeroProcesso: numero,
		IDDocumento:    "148812934",
		TipoDocumento:  "Decisão",
		DataHora:       "02/03/2023 14:22:10",
		AssinadoPor:    "MARIA DA SILVA",
		Flags:          classify.Flags{Sequestro: true},
		ValorTotal:     "R$ 1.234,56",
		TextoDocumento: "ordeno o sequestro\nda quantia",
	}
}

func TestTSVSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	s := NewTSVSink(path, nil)

	require.NoError(t, s.Append([]record.DocumentRecord{sampleRecord("0713963-14.2023.8.07.0016")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	// header written once, tab-separated, full column set
	assert.Equal(t, strings.Join(constants.Columns, "\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0713963-14.2023.8.07.0016\t"))
	assert.Contains(t, lines[1], "SIM")
	assert.Contains(t, lines[1], "R$ 1.234,56")

	// passage newline flattened so the record stays one line
	assert.Contains(t, lines[1], "ordeno o sequestro da quantia")

	// second append adds rows without repeating the header
	require.NoError(t, s.Append([]record.DocumentRecord{sampleRecord("0700000-11.2022.8.07.0001")}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "numeroProcesso"))
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestTSVSinkAppendEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, NewTSVSink(path, nil).Append(nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty batch must not create the file")
}

func TestSeenCases(t *testing.T) {
	t.Run("missing file is an empty set", func(t *testing.T) {
		seen, err := SeenCases(filepath.Join(t.TempDir(), "absent.tsv"))
		require.NoError(t, err)
		assert.Empty(t, seen)
	})

	t.Run("loads case numbers skipping the header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.tsv")
		s := NewTSVSink(path, nil)
		require.NoError(t, s.Append([]record.DocumentRecord{
			sampleRecord("0713963-14.2023.8.07.0016"),
			sampleRecord("0713963-14.2023.8.07.0016"),
			sampleRecord("0700000-11.2022.8.07.0001"),
		}))

		seen, err := SeenCases(path)
		require.NoError(t, err)
		assert.Len(t, seen, 2)
		assert.Contains(t, seen, "0713963-14.2023.8.07.0016")
		assert.Contains(t, seen, "0700000-11.2022.8.07.0001")
	})
}

func TestReadCaseList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processos.tsv")
	content := "processos\n07139631420238070016\n0700000-11.2022.8.07.0001\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cases, err := ReadCaseList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0713963-14.2023.8.07.0016",
		"0700000-11.2022.8.07.0001",
	}, cases)
}

func TestReadCaseListHeaderless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processos.tsv")
	require.NoError(t, os.WriteFile(path, []byte("07139631420238070016\n"), 0o644))

	cases, err := ReadCaseList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"0713963-14.2023.8.07.0016"}, cases)
}
