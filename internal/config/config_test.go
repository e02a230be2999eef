package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

func TestNewManager_Defaults(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Export.Enabled)
	assert.NotEmpty(t, cfg.Export.Dir)
	assert.Equal(t, "breast_cancer_risk_fhir.json", cfg.Export.FileName)
	assert.Equal(t, "breast-cancer-risk-assessment", cfg.Export.PatientID)
	assert.Equal(t, domain.LanguageDutch, m.Language())
	assert.NoError(t, m.Validate())
}

func TestNewManager_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BCRA_LOGGING_LEVEL", "debug")
	t.Setenv("BCRA_LOGGING_FORMAT", "json")
	t.Setenv("BCRA_EXPORT_ENABLED", "true")
	t.Setenv("BCRA_EXPORT_DIR", "/tmp/bcra-test")
	t.Setenv("BCRA_REPORT_LANGUAGE", "en")

	m, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, "debug", m.GetLoggingConfig().Level)
	assert.Equal(t, "json", m.GetLoggingConfig().Format)
	assert.True(t, m.GetExportConfig().Enabled)
	assert.Equal(t, "/tmp/bcra-test", m.GetExportConfig().Dir)
	assert.Equal(t, domain.LanguageEnglish, m.Language())
}

func TestNewManagerFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assess.yaml")
	content := `
logging:
  level: warn
  format: json
export:
  enabled: true
  dir: ` + dir + `
  patient_id: custom-patient
report:
  language: en
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := NewManagerFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, m.ConfigFileUsed())
	assert.Equal(t, "warn", m.GetLoggingConfig().Level)
	assert.Equal(t, "custom-patient", m.GetExportConfig().PatientID)
	assert.Equal(t, "breast_cancer_risk_fhir.json", m.GetExportConfig().FileName, "unset keys keep defaults")
	assert.Equal(t, domain.LanguageEnglish, m.Language())
	assert.NoError(t, m.Validate())
}

func TestNewManagerFromFile_Missing(t *testing.T) {
	_, err := NewManagerFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestManager_Override(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	require.NoError(t, m.Override("report.language", "en"))
	require.NoError(t, m.Override("export.dir", "/tmp/override"))

	assert.Equal(t, domain.LanguageEnglish, m.Language())
	assert.Equal(t, "/tmp/override", m.GetExportConfig().Dir)
}

func TestManager_BindFlag(t *testing.T) {
	t.Setenv("BCRA_LOGGING_LEVEL", "warn")

	m, err := NewManager()
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("lang", "", "")
	fs.String("log-level", "", "")
	fs.Bool("export", false, "")
	require.NoError(t, fs.Parse([]string{"--lang=en", "--export"}))

	require.NoError(t, m.BindFlag("report.language", fs.Lookup("lang")))
	require.NoError(t, m.BindFlag("logging.level", fs.Lookup("log-level")))
	require.NoError(t, m.BindFlag("export.enabled", fs.Lookup("export")))

	assert.Equal(t, domain.LanguageEnglish, m.Language())
	assert.True(t, m.GetExportConfig().Enabled)
	assert.Equal(t, "warn", m.GetLoggingConfig().Level, "unset flags keep the environment value")

	assert.Error(t, m.BindFlag("report.language", fs.Lookup("missing")))
}

func TestManager_Validate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr string
	}{
		{"invalid level", "logging.level", "loud", "invalid log level"},
		{"invalid format", "logging.format", "xml", "invalid log format"},
		{"invalid output", "logging.output", "syslog", "invalid log output"},
		{"file without name", "logging.output", "file", "log filename is required"},
		{"invalid language", "report.language", "de", "invalid language"},
		{"nested file name", "export.file_name", "a/b.json", "invalid export file name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager()
			require.NoError(t, err)
			require.NoError(t, m.Override(tt.key, tt.value))

			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManager_EnsureExportDir(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "nested", "exports")
	require.NoError(t, m.Override("export.dir", dir))
	require.NoError(t, m.EnsureExportDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
