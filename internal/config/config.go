// Package config loads the assessment tool configuration from file, environment and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/breast-cancer-risk-assessment/internal/domain"
	"github.com/breast-cancer-risk-assessment/internal/fhir"
)

// EnvPrefix is the prefix of environment overrides, e.g. BCRA_LOGGING_LEVEL.
const EnvPrefix = "BCRA"

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	v      *viper.Viper
	file   string
	config *domain.Config
}

var _ domain.ConfigManager = (*Manager)(nil)

// NewManager creates a new configuration manager that searches the default locations
func NewManager() (*Manager, error) {
	return NewManagerFromFile("")
}

// NewManagerFromFile creates a configuration manager reading an explicit config file.
// An empty path searches the default locations.
func NewManagerFromFile(path string) (*Manager, error) {
	m := &Manager{v: viper.New(), file: path}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := m.v

	if m.file != "" {
		v.SetConfigFile(m.file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/breast-risk-assessment/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || m.file != "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	v := m.v

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.filename", "")

	// Export defaults
	v.SetDefault("export.enabled", false)
	v.SetDefault("export.dir", DefaultExportDir())
	v.SetDefault("export.file_name", fhir.DefaultExportFile)
	v.SetDefault("export.patient_id", fhir.DefaultPatientID)
	v.SetDefault("export.patient_name", fhir.DefaultPatientName)
	v.SetDefault("export.code_system", fhir.DefaultCodeSystem)
	v.SetDefault("export.risk_system", fhir.DefaultRiskSystem)

	// Report defaults
	v.SetDefault("report.language", string(domain.LanguageDutch))
}

// DefaultExportDir returns the default directory for exported bundles.
func DefaultExportDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "exports"
	}
	return filepath.Join(homeDir, ".breast-risk-assessment", "exports")
}

// EnsureExportDir creates the export directory if it doesn't exist.
func (m *Manager) EnsureExportDir() error {
	return os.MkdirAll(m.config.Export.Dir, 0755)
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetLoggingConfig returns logging configuration
func (m *Manager) GetLoggingConfig() *domain.LoggingConfig {
	return &m.config.Logging
}

// GetExportConfig returns export configuration
func (m *Manager) GetExportConfig() *domain.ExportConfig {
	return &m.config.Export
}

// Language returns the configured report language, Dutch when unset or invalid.
func (m *Manager) Language() domain.Language {
	lang, err := domain.ParseLanguage(m.config.Report.Language)
	if err != nil {
		return domain.LanguageDutch
	}
	return lang
}

// ConfigFileUsed returns the config file that was read, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Override sets a value with the highest precedence.
func (m *Manager) Override(key string, value interface{}) error {
	m.v.Set(key, value)
	return m.refresh()
}

// BindFlag binds a command line flag to a configuration key. A flag given on the command
// line takes precedence over the file and the environment; an unset flag never replaces
// a configured value.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	if err := m.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
	}
	return m.refresh()
}

func (m *Manager) refresh() error {
	config := &domain.Config{}
	if err := m.v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	m.config = config
	return nil
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", config.Logging.Format)
	}
	switch strings.ToLower(config.Logging.Output) {
	case "stdout", "stderr":
	case "file":
		if config.Logging.Filename == "" {
			return fmt.Errorf("log filename is required when output is file")
		}
	default:
		return fmt.Errorf("invalid log output: %s", config.Logging.Output)
	}

	// Validate report configuration
	if _, err := domain.ParseLanguage(config.Report.Language); err != nil {
		return err
	}

	// Validate export configuration
	if config.Export.Enabled && config.Export.Dir == "" {
		return fmt.Errorf("export directory is required when export is enabled")
	}
	if config.Export.FileName == "" || filepath.Base(config.Export.FileName) != config.Export.FileName {
		return fmt.Errorf("invalid export file name: %q", config.Export.FileName)
	}

	return nil
}
