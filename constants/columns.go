package constants

// Columns is the fixed output column set, in write order. The incremental
// TSV and the consolidated export share it.
var Columns = []string{
	"numeroProcesso",
	"idDocumento",
	"tipoDocumento",
	"dataHora",
	"assinadoPor",
	"contemAutorizacaoSequestro",
	"contemAutorizacaoBloqueio",
	"contemAutorizacaoTransferencia",
	"valorTotal",
	"arquivado",
	"textoDocumento",
	"poloAtivo",
	"poloAtivoDocumento",
	"poloPassivo",
	"poloPassivoDocumento",
	"orgaoJulgador",
	"classeJudicial",
	"dataDistribuicao",
	"ultimaMovimentacao",
	"objeto",
}
