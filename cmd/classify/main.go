// Command classify runs the extraction engine over a single document text
// file from disk, for checking vocabulary changes without touching the
// portal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/classify"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
)

func main() {
	var (
		file  = flag.String("file", "", "document text file (required)")
		vocab = flag.String("vocab", "", "YAML vocabulary override file (optional)")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	vocabulary := classify.NewVocabulary()
	if *vocab != "" {
		v, err := classify.LoadVocabulary(*vocab)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		vocabulary = v
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	text := string(data)

	flags := vocabulary.Classify(text)
	fmt.Printf("contemAutorizacaoSequestro: %s\n", constants.YesNo(flags.Sequestro))
	fmt.Printf("contemAutorizacaoBloqueio: %s\n", constants.YesNo(flags.Bloqueio))
	fmt.Printf("contemAutorizacaoTransferencia: %s\n", constants.YesNo(flags.Transferencia))
	fmt.Printf("valorTotal: %s\n", classify.ExtractAmount(text, flags))
	fmt.Printf("idDocumento: %s\n", record.DocumentID(text))
	fmt.Printf("assinadoPor: %s\n", record.Signer(text))
	if passage := vocabulary.ExtractPassage(text, flags); passage != "" {
		fmt.Printf("trecho:\n%s\n", passage)
	}
}
