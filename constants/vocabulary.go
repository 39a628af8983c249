package constants

// TermsSequestro holds the authorization phrases found in decisions that
// order the seizure of public funds (sequestro de verbas públicas).
var TermsSequestro = []string{
	"ordeno o sequestro",
	"defiro o sequestro",
	"determino o sequestro",
	"autorizo o sequestro",
	"proceda-se, com urgência, ao sequestro",
	"proceda-se ao sequestro",
	"justifica-se a medida excepcional de sequestro",
	"se legitima o sequestro",
}

// TermsBloqueio holds the authorization phrases for freezing funds in a
// public account (bloqueio via BACENJUD/SISBAJUD).
var TermsBloqueio = []string{
	"ordeno o bloqueio",
	"defiro o bloqueio",
	"determino o bloqueio",
	"defiro o pedido de tutela de urgência para determinar o bloqueio",
	"para determinar o bloqueio",
	"autorizo o bloqueio",
}

// TermsTransferencia holds the authorization phrases for releasing seized
// or frozen funds to the final beneficiary (transferência / alvará).
var TermsTransferencia = []string{
	"ordeno a transferência",
	"determino a transferência",
	"autorizo a transferência",
	"defiro a transferência",
	"autorizo a expedição de alvará judicial para o levantamento dos valores sequestrados",
	"ordeno a expedição de alvará",
	"determino a expedição de alvará",
	"defiro a expedição de alvará",
	"autorizo a expedição de alvará",
}
