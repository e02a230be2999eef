package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breast-cancer-risk-assessment/internal/domain"
	"github.com/breast-cancer-risk-assessment/internal/fhir"
)

const highRiskSubmission = `{
	"personalInfo": {"age": 45},
	"hasFamilyHistory": true,
	"familyHistory": {
		"hasBreastCancerInFamily": true,
		"immediate": [{"relation": "immediate_sister_1700000000000", "diagnosisAge": 38}],
		"maternalGeneticTest": [{"relation": "maternal_aunt", "abnormality": "BRCA1"}]
	}
}`

func newTestService(t *testing.T, exporter *fhir.Exporter) (*AssessmentService, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return NewAssessmentService(logger, domain.LanguageEnglish, exporter), hook
}

func TestAssessmentService_AssessJSON(t *testing.T) {
	service, hook := newTestService(t, fhir.NewExporter(domain.ExportConfig{}))

	assessment, err := service.AssessJSON(context.Background(), []byte(highRiskSubmission))
	require.NoError(t, err)

	_, err = uuid.Parse(assessment.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), assessment.AssessedAt, time.Minute)

	assert.Equal(t, domain.RiskHigh, assessment.Result.RiskLevel)
	assert.Equal(t, domain.CriterionFirstDegreeUnder40, assessment.Result.Criterion)
	assert.Equal(t, []domain.CriterionCode{domain.CriterionFirstDegreeUnder40, domain.CriterionGeneticAbnormality}, assessment.Result.MatchedCriteria)
	assert.Equal(t, Recommendations(domain.RiskHigh, 45, domain.LanguageEnglish), assessment.Result.Recommendations)

	require.NotNil(t, assessment.Bundle)
	obs := assessment.Bundle.Observation()
	require.NotNil(t, obs)
	assert.Equal(t, "high", obs.ValueCodeableConcept.Coding[0].Code)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "Risk assessment completed", last.Message)
	assert.Equal(t, domain.RiskHigh, last.Data["risk_level"])
	assert.Equal(t, assessment.ID, last.Data["assessment_id"])
}

func TestAssessmentService_WithoutExporter(t *testing.T) {
	service, _ := newTestService(t, nil)

	assessment, err := service.AssessJSON(context.Background(), []byte(`{"personalInfo": {"age": 30}}`))
	require.NoError(t, err)

	assert.Nil(t, assessment.Bundle)
	assert.Equal(t, domain.RiskAverage, assessment.Result.RiskLevel)
	assert.Contains(t, assessment.Result.Explanation, NoHistoryText(domain.LanguageEnglish))

	_, err = service.Export(assessment)
	var assessErr *domain.AssessmentError
	require.True(t, errors.As(err, &assessErr))
	assert.Equal(t, domain.ErrExport, assessErr.Code)
}

func TestAssessmentService_ExportNilAssessment(t *testing.T) {
	service, _ := newTestService(t, fhir.NewExporter(domain.ExportConfig{Dir: t.TempDir(), FileName: "risk.json"}))

	path, err := service.Export(nil)
	assert.Empty(t, path)
	var assessErr *domain.AssessmentError
	require.True(t, errors.As(err, &assessErr))
	assert.Equal(t, domain.ErrExport, assessErr.Code)
}

func TestAssessmentService_ValidationError(t *testing.T) {
	service, hook := newTestService(t, nil)

	assessment, err := service.AssessJSON(context.Background(), []byte(`{"personalInfo": {"age": 12}}`))
	assert.Nil(t, assessment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid submission")

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"personalInfo.age"}, verrs.Fields())

	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestAssessmentService_MalformedDocument(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.AssessJSON(context.Background(), []byte(`{"personalInfo": [`))

	var assessErr *domain.AssessmentError
	require.True(t, errors.As(err, &assessErr))
	assert.Equal(t, domain.ErrInvalidInput, assessErr.Code)
}

func TestAssessmentService_CanceledContext(t *testing.T) {
	service, hook := newTestService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.AssessJSON(ctx, []byte(highRiskSubmission))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, hook.AllEntries())
}

func TestAssessmentService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	service, _ := newTestService(t, fhir.NewExporter(domain.ExportConfig{Dir: dir, FileName: "risk.json"}))

	assessment, err := service.AssessJSON(context.Background(), []byte(highRiskSubmission))
	require.NoError(t, err)

	path, err := service.Export(assessment)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "risk.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"genetic-test-maternal-maternal_aunt"`)
	assert.Contains(t, string(data), `"valueString": "BRCA1"`)
}
