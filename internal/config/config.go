package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	SourceXLSX = "xlsx"
	SourceSQL  = "sql"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application.
type Config struct {
	AppEnv       string
	SourceKind   string
	DataDir      string
	WorkbookPath string
	WeightsPath  string
	DBDriver     string
	DBDSN        string
	DBTable      string
	Role         string
	Months       []string
	LoadTimeout  time.Duration
	Debug        bool
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	timeout, err := time.ParseDuration(getEnv("LOAD_TIMEOUT", "30s"))
	if err != nil {
		timeout = 30 * time.Second
	}

	dataDir := getEnv("DATA_DIR", "./data")

	return &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		SourceKind:   strings.ToLower(getEnv("SOURCE_KIND", SourceXLSX)),
		DataDir:      dataDir,
		WorkbookPath: getEnv("WORKBOOK_PATH", ""),
		WeightsPath:  getEnv("WEIGHTS_PATH", dataDir+"/pesos.json"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:        getEnv("DB_DSN", dataDir+"/bonus.db"),
		DBTable:      getEnv("DB_TABLE", "analyst_records"),
		Role:         getEnv("ROLE", "ANALISTA"),
		Months:       splitList(getEnv("PERIOD_MONTHS", "JANEIRO,FEVEREIRO,MARÇO")),
		LoadTimeout:  timeout,
		Debug:        getEnv("DEBUG", "") == "true",
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.SourceKind {
	case SourceXLSX:
		if c.WorkbookPath == "" && c.DataDir == "" {
			return fmt.Errorf("%w: WORKBOOK_PATH or DATA_DIR is required", ErrInvalidConfig)
		}
	case SourceSQL:
		if c.DBDriver == "" || c.DBDSN == "" {
			return fmt.Errorf("%w: DB_DRIVER and DB_DSN are required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SOURCE_KIND %q", ErrInvalidConfig, c.SourceKind)
	}
	if c.WeightsPath == "" {
		return fmt.Errorf("%w: WEIGHTS_PATH is required", ErrInvalidConfig)
	}
	if len(c.Months) == 0 {
		return fmt.Errorf("%w: PERIOD_MONTHS is empty", ErrInvalidConfig)
	}
	return nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.AppEnv == "production" {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
