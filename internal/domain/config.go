package domain

// Config represents the main application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Export  ExportConfig  `mapstructure:"export"`
	Report  ReportConfig  `mapstructure:"report"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`   // "stdout", "stderr" or "file"
	Filename string `mapstructure:"filename"` // used when output is "file"
}

// ExportConfig controls the clinical record export.
type ExportConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Dir         string `mapstructure:"dir"`
	FileName    string `mapstructure:"file_name"`
	PatientID   string `mapstructure:"patient_id"`
	PatientName string `mapstructure:"patient_name"`
	CodeSystem  string `mapstructure:"code_system"`
	RiskSystem  string `mapstructure:"risk_system"`
}

// ReportConfig controls the rendered result screen.
type ReportConfig struct {
	Language string `mapstructure:"language"`
}
