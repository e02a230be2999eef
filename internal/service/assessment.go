package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/breast-cancer-risk-assessment/internal/domain"
	"github.com/breast-cancer-risk-assessment/internal/fhir"
)

// Assessment is one completed questionnaire with its classification and export bundle.
type Assessment struct {
	ID             string                       `json:"id"`
	AssessedAt     time.Time                    `json:"assessedAt"`
	Record         *domain.PatientHistoryRecord `json:"record"`
	Result         domain.ClassificationResult  `json:"result"`
	Bundle         *fhir.Bundle                 `json:"-"`
	ProcessingTime time.Duration                `json:"processingTime"`
}

// AssessmentService runs the normalize, classify and export steps for one submission.
type AssessmentService struct {
	logger     *logrus.Logger
	normalizer domain.HistoryNormalizer
	classifier domain.RiskClassifier
	exporter   *fhir.Exporter
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(logger *logrus.Logger, lang domain.Language, exporter *fhir.Exporter) *AssessmentService {
	return &AssessmentService{
		logger:     logger,
		normalizer: NewHistoryNormalizer(logger),
		classifier: NewRiskClassifier(lang),
		exporter:   exporter,
	}
}

// AssessJSON decodes a raw submission document and assesses it.
func (s *AssessmentService) AssessJSON(ctx context.Context, data []byte) (*Assessment, error) {
	raw, err := domain.DecodeSubmission(data)
	if err != nil {
		return nil, err
	}
	return s.Assess(ctx, raw)
}

// Assess validates and classifies a raw submission. Validation failures are returned as
// domain.ValidationErrors; the classifier is only reached with a valid record.
func (s *AssessmentService) Assess(ctx context.Context, raw *domain.RawSubmission) (*Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()
	id := uuid.New().String()

	s.logger.WithFields(logrus.Fields{
		"assessment_id":      id,
		"has_family_history": raw != nil && raw.HasFamilyHistory,
	}).Info("Starting risk assessment")

	// Step 1: Normalize the raw answers into a canonical record
	record, err := s.normalizer.Normalize(raw)
	if err != nil {
		s.logger.WithError(err).WithField("assessment_id", id).Warn("Submission rejected")
		return nil, fmt.Errorf("invalid submission: %w", err)
	}

	// Step 2: Classify
	result := s.classifier.Classify(record)

	assessment := &Assessment{
		ID:         id,
		AssessedAt: startTime.UTC(),
		Record:     record,
		Result:     result,
	}

	// Step 3: Build the export bundle
	if s.exporter != nil {
		assessment.Bundle = s.exporter.Build(record, result)
	}
	assessment.ProcessingTime = time.Since(startTime)

	s.logger.WithFields(logrus.Fields{
		"assessment_id":    id,
		"risk_level":       result.RiskLevel,
		"criterion":        result.Criterion,
		"matched_criteria": len(result.MatchedCriteria),
		"relatives":        len(record.Relatives),
		"genetic_tests":    len(record.GeneticTests),
		"processing_time":  assessment.ProcessingTime,
	}).Info("Risk assessment completed")

	return assessment, nil
}

// Export writes the assessment's bundle through the exporter and returns the file path.
func (s *AssessmentService) Export(a *Assessment) (string, error) {
	if a == nil {
		return "", domain.NewAssessmentError(domain.ErrExport, "no assessment to export", "")
	}
	if s.exporter == nil || a.Bundle == nil {
		return "", domain.NewAssessmentError(domain.ErrExport, "no export bundle available", a.ID)
	}
	path, err := s.exporter.WriteFile(a.Bundle)
	if err != nil {
		return "", domain.NewAssessmentError(domain.ErrExport, "failed to write export bundle", err.Error())
	}
	s.logger.WithFields(logrus.Fields{
		"assessment_id": a.ID,
		"path":          path,
	}).Info("Exported assessment bundle")
	return path, nil
}
