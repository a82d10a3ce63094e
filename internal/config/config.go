// Package config loads service configuration from flags, environment variables
// and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Server ServerConfig
	Render RenderConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates everything the service keeps on disk.
type DataConfig struct {
	BasePath     string // Root data directory (default: ~/HRDocs/data)
	DatabasePath string // SQLite file (default: {base}/hrdocs.db)
	ArchivePath  string // Badger directory for rendered documents (default: {base}/archive)
	TemplatePath string // Template library directory (default: {base}/templates)
	// ArchiveDocuments archives every render, not only those that ask for it (default: false).
	ArchiveDocuments bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // default: 15s
	WriteTimeout time.Duration // default: 15s
	IdleTimeout  time.Duration // default: 60s
	CORSOrigins  []string      // Allowed origins (default: *)
	// RenderRate is the sustained renders per second allowed per client IP.
	RenderRate  float64
	RenderBurst int
}

// RenderConfig holds template rendering defaults.
type RenderConfig struct {
	OfferExpiryDays int  // Days added to today for the offer expiry date (default: 7)
	LogoMaxHeight   int  // Logo image max height in pixels (default: 60)
	StrictDefault   bool // Reject renders with unresolved tokens unless the request says otherwise
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds a Config with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("hrdocs", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	dataPath := fs.String("data-path", "", "Base path for service data")
	dbPath := fs.String("db-path", "", "SQLite database file")
	archivePath := fs.String("archive-path", "", "Directory for the rendered document archive")
	templatePath := fs.String("template-path", "", "Directory holding template files")
	archiveDocs := fs.String("archive-documents", "", "Archive every rendered document (default: false)")

	port := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed origins (default: *)")
	renderRate := fs.String("render-rate", "", "Renders per second per client (default: 5)")
	renderBurst := fs.String("render-burst", "", "Render burst per client (default: 20)")

	expiryDays := fs.String("offer-expiry-days", "", "Offer validity window in days (default: 7)")
	logoHeight := fs.String("logo-max-height", "", "Company logo max height in px (default: 60)")
	strict := fs.String("strict", "", "Reject documents with unresolved tokens by default")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env file is not an error.
	if err := loadEnvFile(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath:         getConfigValue(*dataPath, "DATA_PATH", ""),
			DatabasePath:     getConfigValue(*dbPath, "DB_PATH", ""),
			ArchivePath:      getConfigValue(*archivePath, "ARCHIVE_PATH", ""),
			TemplatePath:     getConfigValue(*templatePath, "TEMPLATE_PATH", ""),
			ArchiveDocuments: getBoolConfigValue(*archiveDocs, "ARCHIVE_DOCUMENTS", false),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*port, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
			RenderRate:  getFloatConfigValue(*renderRate, "RENDER_RATE", 5),
			RenderBurst: getIntConfigValue(*renderBurst, "RENDER_BURST", 20),
		},
		Render: RenderConfig{
			OfferExpiryDays: getIntConfigValue(*expiryDays, "OFFER_EXPIRY_DAYS", 7),
			LogoMaxHeight:   getIntConfigValue(*logoHeight, "LOGO_MAX_HEIGHT", 60),
			StrictDefault:   getBoolConfigValue(*strict, "RENDER_STRICT", false),
		},
	}

	timeouts := []struct {
		name   string
		flag   string
		envKey string
		def    string
		dst    *time.Duration
	}{
		{"read timeout", *readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{"write timeout", *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{"idle timeout", *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
	}
	for _, to := range timeouts {
		raw := getConfigValue(to.flag, to.envKey, to.def)
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", to.name, raw, err)
		}
		*to.dst = d
	}

	if err := cfg.expandDataPaths(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}
	if c.Render.OfferExpiryDays < 1 {
		return fmt.Errorf("offer expiry days must be positive, got %d", c.Render.OfferExpiryDays)
	}
	if c.Render.LogoMaxHeight < 1 {
		return fmt.Errorf("logo max height must be positive, got %d", c.Render.LogoMaxHeight)
	}
	if c.Server.RenderRate <= 0 || c.Server.RenderBurst < 1 {
		return errors.New("render rate and burst must be positive")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPaths resolves the base path, then defaults every other data path
// beneath it.
func (c *Config) expandDataPaths() error {
	defaultBase := ""
	if c.Data.BasePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		defaultBase = filepath.Join(homeDir, "HRDocs", "data")
	}

	base, err := expandPath(c.Data.BasePath, defaultBase)
	if err != nil {
		return err
	}
	c.Data.BasePath = base

	paths := []struct {
		dst *string
		def string
	}{
		{&c.Data.DatabasePath, filepath.Join(base, "hrdocs.db")},
		{&c.Data.ArchivePath, filepath.Join(base, "archive")},
		{&c.Data.TemplatePath, filepath.Join(base, "templates")},
	}
	for _, p := range paths {
		expanded, err := expandPath(*p.dst, p.def)
		if err != nil {
			return err
		}
		*p.dst = expanded
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (any case) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return v
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
	if err != nil {
		return defaultValue
	}
	return v
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

// loadEnvFile loads KEY=value lines from a .env file. Variables already set in
// the environment are left alone.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
