package domain

// HistoryNormalizer validates a raw submission and builds the canonical history record
type HistoryNormalizer interface {
	Normalize(raw *RawSubmission) (*PatientHistoryRecord, error)
}

// RiskClassifier maps a history record to a risk tier, explanation and recommendations.
// Implementations must not modify the record.
type RiskClassifier interface {
	Classify(record *PatientHistoryRecord) ClassificationResult
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetLoggingConfig() *LoggingConfig
	GetExportConfig() *ExportConfig
	Language() Language
	Validate() error
}
