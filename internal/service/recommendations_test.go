package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

func TestRecommendations(t *testing.T) {
	highBaseline := english.baseline[domain.RiskHigh][0]
	moderateBaseline := english.baseline[domain.RiskModerate][0]
	averageBaseline := english.baseline[domain.RiskAverage]

	tests := []struct {
		name  string
		level domain.RiskLevel
		age   int
		want  []string
	}{
		{"high below first band", domain.RiskHigh, 34, []string{highBaseline}},
		{"high at 35", domain.RiskHigh, 35, []string{english.bands[domain.RiskHigh][band35to40], highBaseline}},
		{"high at 39", domain.RiskHigh, 39, []string{english.bands[domain.RiskHigh][band35to40], highBaseline}},
		{"high at 40", domain.RiskHigh, 40, []string{english.bands[domain.RiskHigh][band40to50], highBaseline}},
		{"high at 45", domain.RiskHigh, 45, []string{english.bands[domain.RiskHigh][band40to50], highBaseline}},
		{"high at 50", domain.RiskHigh, 50, []string{english.bands[domain.RiskHigh][band50to60], highBaseline}},
		{"high at 60", domain.RiskHigh, 60, []string{english.bands[domain.RiskHigh][band60to75], highBaseline}},
		{"high at 74", domain.RiskHigh, 74, []string{english.bands[domain.RiskHigh][band60to75], highBaseline}},
		{"high at 75", domain.RiskHigh, 75, []string{highBaseline}},
		{"moderate has no band before 40", domain.RiskModerate, 37, []string{moderateBaseline}},
		{"moderate at 45", domain.RiskModerate, 45, []string{english.bands[domain.RiskModerate][band40to50], moderateBaseline}},
		{"moderate at 55", domain.RiskModerate, 55, []string{english.bands[domain.RiskModerate][band50to60], moderateBaseline}},
		{"average at 45", domain.RiskAverage, 45, averageBaseline},
		{"average at 80", domain.RiskAverage, 80, averageBaseline},
		{"unknown tier falls back to average", domain.RiskLevel("other"), 45, averageBaseline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommendations(tt.level, tt.age, domain.LanguageEnglish))
		})
	}
}

func TestRecommendations_BandBeforeBaseline(t *testing.T) {
	recs := Recommendations(domain.RiskHigh, 45, domain.LanguageEnglish)
	require.Len(t, recs, 2)

	assert.Equal(t, "Yearly alternating MRI and mammography, or MRI and a consultation once every 1.5 years", recs[0])
	assert.Equal(t, "Refer to clinical genetics for hereditary cancer counselling", recs[1])
}

func TestRecommendations_Average(t *testing.T) {
	assert.Equal(t, []string{
		"Screen via the national screening programme (BVO)",
		"Do not refer to clinical genetics",
	}, Recommendations(domain.RiskAverage, 52, domain.LanguageEnglish))
}

func TestRecommendations_Dutch(t *testing.T) {
	assert.Equal(t, []string{
		"1 maal per 1,5 jaar MRI en contactmoment",
		"Verwijs naar klinische genetica voor erfelijkheidsonderzoek",
	}, Recommendations(domain.RiskHigh, 36, domain.LanguageDutch))

	assert.Equal(t, []string{
		"Jaarlijks mammografie via huisarts",
		"Screen jaarlijks buiten het BVO met mammogram van 40 tot 50 jaar via de huisarts",
	}, Recommendations(domain.RiskModerate, 41, domain.LanguageDutch))
}

func TestRecommendations_DoNotShareBaseline(t *testing.T) {
	recs := Recommendations(domain.RiskAverage, 45, domain.LanguageEnglish)
	recs[0] = "changed"

	assert.NotEqual(t, "changed", english.baseline[domain.RiskAverage][0])
}
