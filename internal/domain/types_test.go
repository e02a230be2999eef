package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    RiskLevel
		expected string
		severity int
		code     string
	}{
		{"Average", RiskAverage, "Average", 0, "average"},
		{"Moderate", RiskModerate, "Moderate", 1, "moderate"},
		{"High", RiskHigh, "High", 2, "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if tt.value.Severity() != tt.severity {
				t.Errorf("Expected severity %d, got %d", tt.severity, tt.value.Severity())
			}
			if tt.value.Code() != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, tt.value.Code())
			}
			if !tt.value.IsValid() {
				t.Errorf("%s should be valid", tt.value)
			}
		})
	}

	assert.False(t, RiskLevel("Low").IsValid())
	assert.Equal(t, -1, RiskLevel("Low").Severity())
}

func TestGeneticAbnormality(t *testing.T) {
	assert.True(t, AbnormalityBRCA1.IsPathogenic())
	assert.True(t, AbnormalityBRCA2.IsPathogenic())
	assert.False(t, AbnormalityNone.IsPathogenic())
	assert.False(t, AbnormalityUnknown.IsPathogenic())

	assert.True(t, AbnormalityUnknown.IsValid())
	assert.False(t, GeneticAbnormality("brca1").IsValid())

	assert.Equal(t, "Geen afwijking", AbnormalityNone.Label(LanguageDutch))
	assert.Equal(t, "Unknown", AbnormalityUnknown.Label(LanguageEnglish))
	assert.Equal(t, "BRCA2", AbnormalityBRCA2.Label(LanguageDutch))
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage(" NL ")
	require.NoError(t, err)
	assert.Equal(t, LanguageDutch, l)

	_, err = ParseLanguage("de")
	assert.ErrorIs(t, err, ErrInvalidLanguage)
}

func TestRelationVocabulary(t *testing.T) {
	info, ok := LookupRelation(MaternalAunt)
	require.True(t, ok)
	assert.Equal(t, SideMaternal, info.Side)
	assert.Equal(t, SecondDegree, info.Degree)
	assert.Equal(t, Female, info.Sex)

	assert.Equal(t, "Tante (moederskant)", MaternalAunt.Label(LanguageDutch))
	assert.Equal(t, "Father", Father.Label(LanguageEnglish))
	assert.Equal(t, "cousin", Relation("cousin").Label(LanguageDutch), "unknown tags fall back to themselves")
	assert.Equal(t, "Niemand", NoRelation.Label(LanguageDutch))

	r, ok := RelationByLabel("moeder")
	require.True(t, ok)
	assert.Equal(t, Mother, r)

	r, ok = RelationByLabel("Halfbroer (vaderskant)")
	require.True(t, ok)
	assert.Equal(t, PaternalHalfBrother, r)

	r, ok = RelationByLabel("Geen van bovenstaande of onbekend")
	require.True(t, ok)
	assert.True(t, r.IsNone())

	assert.Len(t, FirstDegreeRelations(), 6)
	assert.Equal(t, []Relation{
		PaternalGrandmother, PaternalGrandfather, PaternalAunt,
		PaternalUncle, PaternalHalfSister, PaternalHalfBrother,
	}, SecondDegreeRelations(SidePaternal))
}

func TestAgeInput(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		set     bool
		want    int
		wantErr bool
	}{
		{"number", `45`, true, 45, false},
		{"string", `"45"`, true, 45, false},
		{"whole decimal", `"45.0"`, true, 45, false},
		{"fraction", `45.5`, true, 0, true},
		{"text", `"abc"`, true, 0, true},
		{"empty string", `""`, false, 0, true},
		{"null", `null`, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a AgeInput
			require.NoError(t, json.Unmarshal([]byte(tt.json), &a))
			assert.Equal(t, tt.set, a.Set)

			v, err := a.Int()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	var a AgeInput
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestDecodeSubmission(t *testing.T) {
	doc := `{
		"personalInfo": {"age": "52", "hasBreastCancer": false, "hadGeneticTest": false, "familyHadGeneticTest": true},
		"hasFamilyHistory": true,
		"familyHistory": {
			"personalInfo": {},
			"hasBreastCancerInFamily": true,
			"immediate": [{"relation": "immediate_Moeder_1700000000000", "diagnosisAge": 45}],
			"maternalFamilyMembers": [{"relation": "maternal_aunt_1700000000001", "diagnosisAge": "61"}],
			"paternalFamilyMembers": [],
			"maternal": ["maternal_aunt"],
			"paternal": [],
			"immediateGeneticTest": [{"relation": "mother", "abnormality": "BRCA2"}]
		}
	}`

	s, err := DecodeSubmission([]byte(doc))
	require.NoError(t, err)

	age, err := s.PersonalInfo.Age.Int()
	require.NoError(t, err)
	assert.Equal(t, 52, age)
	assert.True(t, s.HasFamilyHistory)
	require.NotNil(t, s.FamilyHistory.HasBreastCancerInFamily)
	assert.True(t, *s.FamilyHistory.HasBreastCancerInFamily)
	require.Len(t, s.FamilyHistory.Immediate, 1)
	assert.Equal(t, "immediate_Moeder_1700000000000", s.FamilyHistory.Immediate[0].Relation)
	assert.Equal(t, "BRCA2", s.FamilyHistory.ImmediateGeneticTest[0].Abnormality)

	_, err = DecodeSubmission([]byte(`{"personalInfo": `))
	var aerr *AssessmentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, ErrInvalidInput, aerr.Code)
}

func TestPatientHistoryRecordViews(t *testing.T) {
	record := &PatientHistoryRecord{
		Relatives: []RelativeRecord{
			{Relation: Mother, Degree: FirstDegree, Side: SideImmediate, DiagnosisAge: IntPtr(45), Cancer: CancerFlags{BreastCancer: true}},
			{Relation: MaternalAunt, Degree: SecondDegree, Side: SideMaternal, DiagnosisAge: IntPtr(60), Cancer: CancerFlags{BreastCancer: true}},
			{Relation: MaternalAunt, Degree: SecondDegree, Side: SideMaternal, DiagnosisAge: IntPtr(52), Cancer: CancerFlags{BreastCancer: true}},
			{Relation: PaternalUncle, Degree: SecondDegree, Side: SidePaternal, DiagnosisAge: IntPtr(70), Cancer: CancerFlags{BreastCancer: true}},
		},
	}

	assert.Len(t, record.FirstDegree(), 1)
	assert.Len(t, record.SecondDegree(SideMaternal), 2)
	assert.Len(t, record.SecondDegree(SidePaternal), 1)
	assert.True(t, record.HasReportedHistory())
	assert.False(t, (&PatientHistoryRecord{}).HasReportedHistory())

	sex, ok := record.Relatives[3].Sex()
	require.True(t, ok)
	assert.Equal(t, Male, sex)
}
