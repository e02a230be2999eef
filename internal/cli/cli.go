// Package cli implements the assess command line: one-shot assessment of a submission
// file, an interactive questionnaire, and configuration helpers.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/breast-cancer-risk-assessment/internal/config"
	"github.com/breast-cancer-risk-assessment/internal/domain"
	"github.com/breast-cancer-risk-assessment/internal/fhir"
	"github.com/breast-cancer-risk-assessment/internal/logging"
	"github.com/breast-cancer-risk-assessment/internal/report"
	"github.com/breast-cancer-risk-assessment/internal/service"
)

// Exit codes returned by the assess binary.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// flagBindings maps command line flags onto configuration keys.
var flagBindings = map[string]string{
	"lang":       "report.language",
	"log-level":  "logging.level",
	"export":     "export.enabled",
	"export-dir": "export.dir",
}

// CLI provides the command-line interface of the assessment tool.
type CLI struct {
	stdout io.Writer
	stderr io.Writer
	reader *bufio.Reader
}

// New creates a CLI reading from stdin and writing to stdout and stderr.
func New(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{
		stdout: stdout,
		stderr: stderr,
		reader: bufio.NewReader(stdin),
	}
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return ExitValidation
	}
	return ExitFailure
}

// Run executes the command named by the first argument.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	var err error
	switch args[0] {
	case "assess":
		err = c.assess(ctx, args[1:])
	case "wizard":
		err = c.runWizard(ctx, args[1:])
	case "criteria":
		err = c.listCriteria(args[1:])
	case "config":
		err = c.showConfig(args[1:])
	case "help", "--help", "-h":
		return c.showHelp()
	default:
		fmt.Fprintf(c.stderr, "Unknown command: %s\n\n", args[0])
		_ = c.showHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}

	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

// showHelp displays usage information.
func (c *CLI) showHelp() error {
	help := `
Breast cancer family-history risk assessment

Usage:
  assess <command> [options]

Commands:
  assess     Assess a submitted questionnaire (JSON file or stdin)
  wizard     Fill in the questionnaire interactively
  criteria   List the decision criteria
  config     Show and validate the effective configuration

Examples:
  # Assess a submission and print the Dutch report
  assess assess --input submission.json

  # English report, also write the FHIR bundle
  assess assess -i submission.json --lang en --export --export-dir ./exports

  # Print the assessment as JSON
  cat submission.json | assess assess --json
`
	_, err := fmt.Fprintln(c.stdout, help)
	return err
}

func (c *CLI) newFlagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	configPath := fs.StringP("config", "c", "", "path to a config file")
	fs.StringP("lang", "l", "", "report language (nl or en)")
	fs.String("log-level", "", "log level (trace, debug, info, warn, error)")
	return fs, configPath
}

func addExportFlags(fs *pflag.FlagSet) *bool {
	fs.Bool("export", false, "write the FHIR bundle after the assessment")
	fs.String("export-dir", "", "directory for the FHIR bundle")
	return fs.Bool("json", false, "print the assessment as JSON instead of the text report")
}

// session is the configuration and logger shared by one command invocation.
type session struct {
	manager *config.Manager
	logger  *logrus.Logger
	closer  io.Closer
	lang    domain.Language
}

func (s *session) Close() error {
	return s.closer.Close()
}

func (c *CLI) newSession(fs *pflag.FlagSet, configPath string) (*session, error) {
	manager, err := config.NewManagerFromFile(configPath)
	if err != nil {
		return nil, err
	}
	for name, key := range flagBindings {
		if flag := fs.Lookup(name); flag != nil {
			if err := manager.BindFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}
	if err := manager.Validate(); err != nil {
		return nil, domain.NewAssessmentError(domain.ErrConfig, "invalid configuration", err.Error())
	}

	logger, closer, err := logging.New(*manager.GetLoggingConfig())
	if err != nil {
		return nil, err
	}
	logger.WithField("config_file", manager.ConfigFileUsed()).Debug("Configuration loaded")

	return &session{
		manager: manager,
		logger:  logger,
		closer:  closer,
		lang:    manager.Language(),
	}, nil
}

func (s *session) service() *service.AssessmentService {
	exporter := fhir.NewExporter(*s.manager.GetExportConfig())
	return service.NewAssessmentService(s.logger, s.lang, exporter)
}

// assess reads one submission document and prints its assessment.
func (c *CLI) assess(ctx context.Context, args []string) error {
	fs, configPath := c.newFlagSet("assess")
	input := fs.StringP("input", "i", "-", "submission JSON file, - for stdin")
	asJSON := addExportFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.newSession(fs, *configPath)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := c.readInput(*input)
	if err != nil {
		return err
	}

	svc := s.service()
	assessment, err := svc.AssessJSON(ctx, data)
	if err != nil {
		c.printValidationErrors(err)
		return err
	}
	return c.present(s, svc, assessment, *asJSON)
}

func (c *CLI) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(c.reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read submission from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission: %w", err)
	}
	return data, nil
}

func (c *CLI) printValidationErrors(err error) {
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	fmt.Fprintln(c.stderr, "The submission has invalid answers:")
	for _, e := range verrs {
		fmt.Fprintf(c.stderr, "  - %s: %s\n", e.Field, e.Message)
	}
}

// present prints the assessment and writes the export bundle when enabled.
func (c *CLI) present(s *session, svc *service.AssessmentService, assessment *service.Assessment, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(assessment); err != nil {
			return fmt.Errorf("failed to encode assessment: %w", err)
		}
	} else if err := report.Render(c.stdout, assessment.Record, assessment.Result, s.lang); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if !s.manager.GetExportConfig().Enabled {
		return nil
	}
	if err := s.manager.EnsureExportDir(); err != nil {
		return domain.NewAssessmentError(domain.ErrExport, "failed to create export directory", err.Error())
	}
	path, err := svc.Export(assessment)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "FHIR bundle written to %s\n", path)
	return nil
}

// listCriteria prints the decision criteria in evaluation order.
func (c *CLI) listCriteria(args []string) error {
	fs, _ := c.newFlagSet("criteria")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lang, _ := fs.GetString("lang")

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTIER\tCRITERION")
	for _, criterion := range service.NewRiskClassifier(domain.Language(lang)).Criteria() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", criterion.Code, criterion.Level, criterion.Description)
	}
	return tw.Flush()
}

// showConfig displays the effective configuration and whether it is valid.
func (c *CLI) showConfig(args []string) error {
	fs, configPath := c.newFlagSet("config")
	fs.String("export-dir", "", "directory for the FHIR bundle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	manager, err := config.NewManagerFromFile(*configPath)
	if err != nil {
		return err
	}
	for name, key := range flagBindings {
		if flag := fs.Lookup(name); flag != nil {
			if err := manager.BindFlag(key, flag); err != nil {
				return err
			}
		}
	}

	cfg := manager.GetConfig()
	file := manager.ConfigFileUsed()
	if file == "" {
		file = "(none, using defaults and environment)"
	}

	fmt.Fprintln(c.stdout, "Configuration")
	fmt.Fprintln(c.stdout, "=============")
	fmt.Fprintf(c.stdout, "Config file: %s\n", file)
	fmt.Fprintf(c.stdout, "Language:    %s\n", cfg.Report.Language)
	fmt.Fprintf(c.stdout, "Logging:     level=%s format=%s output=%s\n", cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	fmt.Fprintf(c.stdout, "Export:      enabled=%t dir=%s file=%s\n", cfg.Export.Enabled, cfg.Export.Dir, cfg.Export.FileName)
	fmt.Fprintln(c.stdout)

	if err := manager.Validate(); err != nil {
		fmt.Fprintf(c.stdout, "✗ Configuration has issues: %v\n", err)
		return domain.NewAssessmentError(domain.ErrConfig, "invalid configuration", err.Error())
	}
	fmt.Fprintln(c.stdout, "✓ Configuration is valid!")
	return nil
}
