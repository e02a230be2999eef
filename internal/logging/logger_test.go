package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

func TestNew_LevelAndFormat(t *testing.T) {
	tests := []struct {
		name      string
		cfg       domain.LoggingConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"json debug", domain.LoggingConfig{Level: "debug", Format: "json"}, logrus.DebugLevel, true},
		{"text warn", domain.LoggingConfig{Level: "warn", Format: "text"}, logrus.WarnLevel, false},
		{"unknown level falls back", domain.LoggingConfig{Level: "chatty"}, logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, closer, err := New(tt.cfg)
			require.NoError(t, err)
			defer closer.Close()

			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assess.log")
	logger, closer, err := New(domain.LoggingConfig{Level: "info", Format: "json", Output: "file", Filename: path})
	require.NoError(t, err)

	logger.WithField("risk_level", "High").Info("Assessment completed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Assessment completed"`)
	assert.Contains(t, string(data), `"risk_level":"High"`)
}

func TestNew_InvalidOutput(t *testing.T) {
	_, _, err := New(domain.LoggingConfig{Output: "syslog"})
	assert.Error(t, err)

	_, _, err = New(domain.LoggingConfig{Output: "file", Filename: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
