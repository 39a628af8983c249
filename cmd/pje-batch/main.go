package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/mvcoutinho/pje-decision-tracker/internal/batch"
	"github.com/mvcoutinho/pje-decision-tracker/internal/classify"
	"github.com/mvcoutinho/pje-decision-tracker/internal/common"
	"github.com/mvcoutinho/pje-decision-tracker/internal/sink"
	"github.com/mvcoutinho/pje-decision-tracker/internal/source/pje"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		input = flag.String("input", "", "tab-delimited case list (overrides INPUT_FILE)")
		out   = flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
		vocab = flag.String("vocab", "", "YAML vocabulary override file (overrides VOCAB_FILE)")
		xlsx  = flag.Bool("xlsx", true, "also write the consolidated XLSX workbook")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("dotenv load failed", "error", err)
	}

	cfg := common.LoadConfig()
	if *input != "" {
		cfg.Batch.InputFile = *input
	}
	if *out != "" {
		cfg.Batch.OutputDir = *out
	}
	if *vocab != "" {
		cfg.Batch.VocabFile = *vocab
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Vocabulary: built-in unless an override file is configured
	vocabulary := classify.NewVocabulary()
	if cfg.Batch.VocabFile != "" {
		v, err := classify.LoadVocabulary(cfg.Batch.VocabFile)
		if err != nil {
			logger.Error("failed to load vocabulary", "path", cfg.Batch.VocabFile, "error", err)
			os.Exit(1)
		}
		vocabulary = v
		logger.Info("vocabulary loaded", "path", cfg.Batch.VocabFile)
	}

	cases, err := sink.ReadCaseList(cfg.Batch.InputFile)
	if err != nil {
		logger.Error("failed to read case list", "error", err)
		os.Exit(1)
	}
	logger.Info("case list loaded", "path", cfg.Batch.InputFile, "cases", len(cases))

	// Daily incremental file; prior content feeds the dedupe set
	day := time.Now().Format("2006-01-02")
	dailyPath := filepath.Join(cfg.Batch.OutputDir, day+"_consulta_acoes_judiciais_sesdf_tjdft.tsv")
	seen, err := sink.SeenCases(dailyPath)
	if err != nil {
		logger.Error("failed to load prior output", "path", dailyPath, "error", err)
		os.Exit(1)
	}
	logger.Info("dedupe set loaded", "path", dailyPath, "already_seen", len(seen))

	src, err := pje.NewSource(cfg.Portal, logger)
	if err != nil {
		logger.Error("failed to open portal session", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("portal session close failed", "error", err)
		}
	}()

	controller := batch.NewController(logger, vocabulary, src, sink.NewTSVSink(dailyPath, logger), seen)
	sum, err := controller.Run(ctx, cases)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		os.Exit(1)
	}

	// Consolidated outputs carry only this run's records
	consolidatedTSV := filepath.Join(cfg.Batch.OutputDir, "resultados_sequestro_tjdft.tsv")
	if err := os.Remove(consolidatedTSV); err != nil && !os.IsNotExist(err) {
		logger.Error("failed to reset consolidated file", "error", err)
		os.Exit(1)
	}
	if err := sink.NewTSVSink(consolidatedTSV, logger).Append(sum.Records); err != nil {
		logger.Error("failed to write consolidated file", "error", err)
		os.Exit(1)
	}
	if *xlsx {
		consolidatedXLSX := filepath.Join(cfg.Batch.OutputDir, "resultados_sequestro_tjdft.xlsx")
		if err := sink.WriteXLSX(consolidatedXLSX, sum.Records, logger); err != nil {
			logger.Error("failed to write consolidated workbook", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Concluído – arquivos salvos.\n")
	fmt.Printf("- Processos na lista: %d\n", sum.Total)
	fmt.Printf("- Consultados: %d\n", sum.Consulted)
	fmt.Printf("- Pulados (já consultados): %d\n", sum.Skipped)
	fmt.Printf("- Sem resultado: %d\n", sum.NotFound)
	fmt.Printf("- Registros extraídos: %d\n", len(sum.Records))
	fmt.Printf("- Tempo total: %s\n", batch.FormatElapsed(sum.Elapsed))
}
