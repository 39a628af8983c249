// Package record defines the output row produced per qualifying document
// and the parsing of the portal's document markers.
package record

import (
	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/classify"
)

// CaseMetadata holds the case-level fields read from the case header.
// Every field degrades to "" independently when its lookup fails.
type CaseMetadata struct {
	PoloAtivo          string
	PoloAtivoTaxID     string
	PoloPassivo        string
	PoloPassivoTaxID   string
	OrgaoJulgador      string
	ClasseJudicial     string
	DataDistribuicao   string
	UltimaMovimentacao string
	Objeto             string
}

// DocumentRecord is one output row. Built once per qualifying document and
// immutable afterwards.
type DocumentRecord struct {
	NumeroProcesso string
	IDDocumento    string
	TipoDocumento  string
	DataHora       string
	AssinadoPor    string
	Flags          classify.Flags
	ValorTotal     string
	Arquivado      bool
	TextoDocumento string
	Metadata       CaseMetadata
}

// NotFound builds the placeholder row emitted when the portal returns no
// results for a case, so case-level coverage stays auditable.
func NotFound(numeroProcesso string) DocumentRecord {
	return DocumentRecord{
		NumeroProcesso: numeroProcesso,
		TipoDocumento:  constants.TypeNotFound,
	}
}

// Row renders the record in the fixed column order of constants.Columns.
func (r DocumentRecord) Row() []string {
	return []string{
		r.NumeroProcesso,
		r.IDDocumento,
		r.TipoDocumento,
		r.DataHora,
		r.AssinadoPor,
		constants.YesNo(r.Flags.Sequestro),
		constants.YesNo(r.Flags.Bloqueio),
		constants.YesNo(r.Flags.Transferencia),
		r.ValorTotal,
		constants.YesNo(r.Arquivado),
		r.TextoDocumento,
		r.Metadata.PoloAtivo,
		r.Metadata.PoloAtivoTaxID,
		r.Metadata.PoloPassivo,
		r.Metadata.PoloPassivoTaxID,
		r.Metadata.OrgaoJulgador,
		r.Metadata.ClasseJudicial,
		r.Metadata.DataDistribuicao,
		r.Metadata.UltimaMovimentacao,
		r.Metadata.Objeto,
	}
}
