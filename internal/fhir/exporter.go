package fhir

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// Exporter builds FHIR bundles from a classified history record.
type Exporter struct {
	cfg   domain.ExportConfig
	now   func() time.Time
	newID func() string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock sets the clock used for the birth year and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithIDGenerator sets the generator for bundle and observation ids.
func WithIDGenerator(newID func() string) Option {
	return func(e *Exporter) { e.newID = newID }
}

// NewExporter creates an exporter. Empty config fields fall back to the package defaults.
func NewExporter(cfg domain.ExportConfig, opts ...Option) *Exporter {
	if cfg.PatientID == "" {
		cfg.PatientID = DefaultPatientID
	}
	if cfg.PatientName == "" {
		cfg.PatientName = DefaultPatientName
	}
	if cfg.CodeSystem == "" {
		cfg.CodeSystem = DefaultCodeSystem
	}
	if cfg.RiskSystem == "" {
		cfg.RiskSystem = DefaultRiskSystem
	}
	if cfg.FileName == "" {
		cfg.FileName = DefaultExportFile
	}

	e := &Exporter{
		cfg:   cfg,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BirthDate estimates a birth date from the current year and an age.
func BirthDate(now time.Time, age int) string {
	return fmt.Sprintf("%04d-01-01", now.Year()-age)
}

// Build assembles the bundle for one assessment.
func (e *Exporter) Build(record *domain.PatientHistoryRecord, result domain.ClassificationResult) *Bundle {
	now := e.now().UTC()

	patient := &Patient{
		ResourceType: ResourcePatient,
		ID:           e.cfg.PatientID,
		Active:       true,
		Name:         []HumanName{{Use: "official", Text: e.cfg.PatientName}},
		Gender:       GenderUnknown,
		BirthDate:    BirthDate(now, record.Personal.Age),
	}

	observation := &Observation{
		ResourceType: ResourceObservation,
		ID:           e.newID(),
		Status:       ObservationFinal,
		Code: CodeableConcept{Coding: []Coding{{
			System:  LOINCSystem,
			Code:    LOINCRiskAssessment,
			Display: RiskAssessmentTitle,
		}}},
		Subject:           Reference{Reference: ResourcePatient + "/" + e.cfg.PatientID},
		EffectiveDateTime: now.Format(time.RFC3339),
		ValueCodeableConcept: CodeableConcept{Coding: []Coding{{
			System:  e.cfg.RiskSystem,
			Code:    result.RiskLevel.Code(),
			Display: result.RiskLevel.String(),
		}}},
		Component: e.components(record, result),
	}

	return &Bundle{
		ResourceType: ResourceBundle,
		ID:           e.newID(),
		Type:         BundleTypeCollection,
		Timestamp:    now.Format(time.RFC3339),
		Entry: []BundleEntry{
			{Resource: patient},
			{FullURL: "urn:uuid:" + observation.ID, Resource: observation},
		},
	}
}

func (e *Exporter) component(code, display string) ObservationComponent {
	return ObservationComponent{Code: CodeableConcept{Coding: []Coding{{
		System:  e.cfg.CodeSystem,
		Code:    code,
		Display: display,
	}}}}
}

func (e *Exporter) boolComponent(code, display string, v bool) ObservationComponent {
	c := e.component(code, display)
	c.ValueBoolean = &v
	return c
}

func (e *Exporter) intComponent(code, display string, v int) ObservationComponent {
	c := e.component(code, display)
	c.ValueInteger = &v
	return c
}

func (e *Exporter) stringComponent(code, display, v string) ObservationComponent {
	c := e.component(code, display)
	c.ValueString = &v
	return c
}

func (e *Exporter) components(record *domain.PatientHistoryRecord, result domain.ClassificationResult) []ObservationComponent {
	personal := record.Personal
	out := []ObservationComponent{
		e.boolComponent("personal-history", "Personal History of Breast Cancer", personal.HasBreastCancer),
	}
	if personal.HasBreastCancer && personal.DiagnosisAge != nil {
		out = append(out, e.intComponent("personal-diagnosis-age", "Age at Personal Diagnosis", *personal.DiagnosisAge))
	}

	if record.HasFamilyHistory {
		for _, r := range record.FirstDegree() {
			if !r.Cancer.BreastCancer || r.DiagnosisAge == nil {
				continue
			}
			out = append(out, e.intComponent(
				"family-history-"+string(r.Relation),
				"Family History - "+r.Relation.Label(domain.LanguageEnglish),
				*r.DiagnosisAge,
			))
		}

		if v := sideValue(record.MaternalSelection, record.SecondDegree(domain.SideMaternal)); v != "" {
			out = append(out, e.stringComponent("family-history-maternal", "Family History - Maternal Relatives", v))
		}
		if v := sideValue(record.PaternalSelection, record.SecondDegree(domain.SidePaternal)); v != "" {
			out = append(out, e.stringComponent("family-history-paternal", "Family History - Paternal Relatives", v))
		}
	}

	for _, t := range record.GeneticTests {
		out = append(out, e.stringComponent(
			fmt.Sprintf("genetic-test-%s-%s", t.Scope, t.Relation),
			"Genetic Test - "+t.Relation.Label(domain.LanguageEnglish),
			string(t.Abnormality),
		))
	}

	categories := []struct {
		code    string
		display string
		has     func(domain.CancerFlags) bool
	}{
		{"ovarian-cancer", "Ovarian Cancer in Family", func(f domain.CancerFlags) bool { return f.OvarianCancer }},
		{"male-breast-cancer", "Male Breast Cancer in Family", func(f domain.CancerFlags) bool { return f.MaleBreastCancer }},
		{"multiple-breast-cancer", "Multiple Breast Cancer Diagnoses in Family", func(f domain.CancerFlags) bool { return f.MultipleBreastCancer }},
		{"pancreatic-cancer", "Pancreatic Cancer in Family", func(f domain.CancerFlags) bool { return f.PancreaticCancer }},
		{"prostate-cancer", "Prostate Cancer under 60 in Family", func(f domain.CancerFlags) bool { return f.ProstateCancer }},
	}
	for _, cat := range categories {
		var relations []string
		for _, r := range record.Relatives {
			if cat.has(r.Cancer) {
				relations = appendUnique(relations, string(r.Relation))
			}
		}
		if len(relations) > 0 {
			out = append(out, e.stringComponent(cat.code, cat.display, strings.Join(relations, ", ")))
		}
	}

	if len(result.MatchedCriteria) > 0 {
		codes := make([]string, len(result.MatchedCriteria))
		for i, c := range result.MatchedCriteria {
			codes[i] = string(c)
		}
		out = append(out, e.stringComponent("matched-criteria", "Matched Risk Criteria", strings.Join(codes, ", ")))
	}

	return append(out, e.stringComponent("risk-explanation", "Risk Assessment Explanation", result.Explanation))
}

// sideValue joins the picked relatives of one side, falling back to the recorded ones.
func sideValue(selection []domain.Relation, recorded []domain.RelativeRecord) string {
	var tags []string
	for _, r := range selection {
		tags = append(tags, string(r))
	}
	if len(tags) == 0 {
		for _, r := range recorded {
			tags = appendUnique(tags, string(r.Relation))
		}
	}
	return strings.Join(tags, ", ")
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

// WriteJSON writes the bundle as indented JSON.
func WriteJSON(w io.Writer, bundle *Bundle) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return nil
}

// WriteFile writes the bundle to the configured export directory and returns the path.
func (e *Exporter) WriteFile(bundle *Bundle) (string, error) {
	dir := e.cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, e.cfg.FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteJSON(f, bundle); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to sync export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}
