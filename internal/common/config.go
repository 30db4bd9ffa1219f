package common

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultConfigPath is read when PAYSLIPS_CONFIG is not set. It may be absent.
const DefaultConfigPath = "payslips.toml"

// Output layouts
const (
	LayoutFlat     = "flat"
	LayoutMirrored = "mirrored"
)

// Config holds all application configuration
type Config struct {
	Input    InputConfig    `toml:"input"`
	Output   OutputConfig   `toml:"output"`
	Patterns PatternsConfig `toml:"patterns"`
	PDF      PDFConfig      `toml:"pdf"`
	Log      LogConfig      `toml:"log"`
}

// InputConfig holds the directory scan configuration
type InputConfig struct {
	Dir        string `toml:"dir"`
	SkipHidden bool   `toml:"skip_hidden"`
}

// OutputConfig holds output file configuration
type OutputConfig struct {
	Dir             string `toml:"dir"`
	Layout          string `toml:"layout"`
	JSON            bool   `toml:"json"`
	CSV             bool   `toml:"csv"`
	CSVFilename     string `toml:"csv_filename"`
	XLSX            bool   `toml:"xlsx"`
	XLSXFilename    string `toml:"xlsx_filename"`
	SkipLogFilename string `toml:"skip_log_filename"`
}

// PatternsConfig points at the pattern table; empty Path uses the built-in table
type PatternsConfig struct {
	Path string `toml:"path"`
}

// PDFConfig holds PDF text extraction configuration
type PDFConfig struct {
	Pdftotext string `toml:"pdftotext"` // optional fallback binary; empty disables it
	MaxPages  int    `toml:"max_pages"` // 0 = no limit
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Input: InputConfig{Dir: "input", SkipHidden: true},
		Output: OutputConfig{
			Dir:             "output",
			Layout:          LayoutFlat,
			JSON:            true,
			CSV:             true,
			CSVFilename:     "all_payslips.csv",
			XLSX:            true,
			XLSXFilename:    "all_payslips.xlsx",
			SkipLogFilename: "skipped.csv",
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads config: defaults -> TOML file -> .env -> env vars (env wins).
// A missing file is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, NewConfigError(fmt.Sprintf("parse %s", path), err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, NewConfigError(fmt.Sprintf("read %s", path), err)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg.Input.Dir = getEnv("PAYSLIPS_INPUT_DIR", cfg.Input.Dir)
	cfg.Input.SkipHidden = getEnvAsBool("PAYSLIPS_SKIP_HIDDEN", cfg.Input.SkipHidden)
	cfg.Output.Dir = getEnv("PAYSLIPS_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Output.Layout = getEnv("PAYSLIPS_OUTPUT_LAYOUT", cfg.Output.Layout)
	cfg.Output.JSON = getEnvAsBool("PAYSLIPS_JSON", cfg.Output.JSON)
	cfg.Output.CSV = getEnvAsBool("PAYSLIPS_CSV", cfg.Output.CSV)
	cfg.Output.CSVFilename = getEnv("PAYSLIPS_CSV_FILENAME", cfg.Output.CSVFilename)
	cfg.Output.XLSX = getEnvAsBool("PAYSLIPS_XLSX", cfg.Output.XLSX)
	cfg.Output.XLSXFilename = getEnv("PAYSLIPS_XLSX_FILENAME", cfg.Output.XLSXFilename)
	cfg.Patterns.Path = getEnv("PAYSLIPS_PATTERNS", cfg.Patterns.Path)
	cfg.PDF.Pdftotext = getEnv("PAYSLIPS_PDFTOTEXT", cfg.PDF.Pdftotext)
	cfg.PDF.MaxPages = getEnvAsInt("PAYSLIPS_PDF_MAX_PAGES", cfg.PDF.MaxPages)
	cfg.Log.Level = getEnv("PAYSLIPS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("PAYSLIPS_LOG_FORMAT", cfg.Log.Format)

	return &cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration. Every failure is a CONFIG_ERROR.
func (c *Config) Validate() error {
	v := NewValidator().
		Field("input.dir", c.Input.Dir, Required).
		Field("output.dir", c.Output.Dir, Required).
		Field("output.layout", c.Output.Layout, OneOf(LayoutFlat, LayoutMirrored)).
		Field("log.level", strings.ToLower(c.Log.Level), OneOf("debug", "info", "warn", "error")).
		Field("log.format", strings.ToLower(c.Log.Format), OneOf("json", "text")).
		Field("pdf.max_pages", c.PDF.MaxPages, NonNegative)
	if c.Output.CSV {
		v.Field("output.csv_filename", c.Output.CSVFilename, Required, BaseName)
	}
	if c.Output.XLSX {
		v.Field("output.xlsx_filename", c.Output.XLSXFilename, Required, BaseName)
	}
	v.Field("output.skip_log_filename", c.Output.SkipLogFilename, Required, BaseName)
	if v.HasErrors() {
		return NewConfigError("invalid configuration", v.Error())
	}

	info, err := os.Stat(c.Input.Dir)
	if err != nil {
		return NewConfigError(fmt.Sprintf("input directory %q", c.Input.Dir), err)
	}
	if !info.IsDir() {
		return NewConfigError(fmt.Sprintf("input path %q is not a directory", c.Input.Dir), ErrInvalidInput)
	}
	if _, err := os.ReadDir(c.Input.Dir); err != nil {
		return NewConfigError(fmt.Sprintf("input directory %q is not readable", c.Input.Dir), err)
	}
	return nil
}

// EnsureOutputDir creates the output directory if it does not exist yet.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return NewConfigError(fmt.Sprintf("output directory %q", c.Output.Dir), err)
	}
	return nil
}

// SlogLevel maps Log.Level onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger from Log settings.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Log.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
