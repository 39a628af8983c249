package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Portal PortalConfig
	Batch  BatchConfig
}

// PortalConfig holds the consultation-portal settings
type PortalConfig struct {
	BaseURL     string
	Headless    bool
	NavTimeout  time.Duration
	DocTimeout  time.Duration
	SearchDelay time.Duration
	PageDelay   time.Duration
}

// BatchConfig holds run-level settings
type BatchConfig struct {
	InputFile string
	OutputDir string
	VocabFile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Portal: PortalConfig{
			BaseURL:     getEnv("PJE_BASE_URL", "https://pje-consultapublica.tjdft.jus.br/consultapublica/ConsultaPublica/listView.seam"),
			Headless:    getEnvAsBool("PJE_HEADLESS", true),
			NavTimeout:  getEnvAsDuration("PJE_NAV_TIMEOUT", 10*time.Second),
			DocTimeout:  getEnvAsDuration("PJE_DOC_TIMEOUT", 5*time.Second),
			SearchDelay: getEnvAsDuration("PJE_SEARCH_DELAY", 8*time.Second),
			PageDelay:   getEnvAsDuration("PJE_PAGE_DELAY", 2*time.Second),
		},
		Batch: BatchConfig{
			InputFile: getEnv("INPUT_FILE", "processos.tsv"),
			OutputDir: getEnv("OUTPUT_DIR", "."),
			VocabFile: getEnv("VOCAB_FILE", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Portal.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "PJE_BASE_URL is required", ErrInvalidInput)
	}
	if c.Batch.InputFile == "" {
		return NewAppError("CONFIG_ERROR", "INPUT_FILE is required", ErrInvalidInput)
	}
	if c.Batch.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "OUTPUT_DIR is required", ErrInvalidInput)
	}
	return nil
}
