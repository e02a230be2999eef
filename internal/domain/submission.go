package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AgeInput is an age field as entered in the questionnaire. Form fields arrive either as
// JSON numbers or as strings; the raw text is kept so the normalizer can report it.
type AgeInput struct {
	Raw string
	Set bool
}

// Age builds an AgeInput from an integer.
func Age(v int) AgeInput {
	return AgeInput{Raw: strconv.Itoa(v), Set: true}
}

// UnmarshalJSON accepts numbers, strings and null.
func (a *AgeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = AgeInput{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		*a = AgeInput{Raw: s, Set: s != ""}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("age must be a number or string: %w", err)
	}
	*a = AgeInput{Raw: n.String(), Set: true}
	return nil
}

// MarshalJSON writes integers as numbers and anything else as a string.
func (a AgeInput) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	if v, err := strconv.Atoi(a.Raw); err == nil {
		return []byte(strconv.Itoa(v)), nil
	}
	return json.Marshal(a.Raw)
}

// Int parses the age as a whole number. Decimal forms such as "45.0" are accepted
// when they carry no fraction.
func (a AgeInput) Int() (int, error) {
	if !a.Set {
		return 0, fmt.Errorf("age not set")
	}
	if v, err := strconv.Atoi(a.Raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(a.Raw, 64)
	if err != nil {
		return 0, fmt.Errorf("age %q is not a number", a.Raw)
	}
	if math.IsNaN(f) || math.Abs(f) > 1e6 || f != math.Trunc(f) {
		return 0, fmt.Errorf("age %q is not a whole number", a.Raw)
	}
	return int(f), nil
}

// RawPersonalInfo is the personal step of the questionnaire.
type RawPersonalInfo struct {
	Age                  AgeInput `json:"age"`
	HasBreastCancer      bool     `json:"hasBreastCancer"`
	DiagnosisAge         AgeInput `json:"diagnosisAge"`
	HadGeneticTest       bool     `json:"hadGeneticTest"`
	FamilyHadGeneticTest bool     `json:"familyHadGeneticTest"`
}

// RawFamilyMember is a breast-cancer entry. HasBreastCancer defaults to true when absent.
type RawFamilyMember struct {
	Relation        string   `json:"relation"`
	DiagnosisAge    AgeInput `json:"diagnosisAge"`
	HasBreastCancer *bool    `json:"hasBreastCancer,omitempty"`
}

type RawGeneticTest struct {
	Relation    string `json:"relation"`
	Abnormality string `json:"abnormality"`
}

// RawRelativeRef is an entry of a category that records only who was affected.
type RawRelativeRef struct {
	Relation string `json:"relation"`
}

type RawMultipleBreastCancer struct {
	Relation          string   `json:"relation"`
	FirstDiagnosisAge AgeInput `json:"firstDiagnosisAge"`
}

type RawProstateCancer struct {
	Relation     string   `json:"relation"`
	DiagnosisAge AgeInput `json:"diagnosisAge"`
}

// RawFamilyHistory mirrors the family step. Each cancer type is a parallel collection keyed
// loosely by relation.
type RawFamilyHistory struct {
	HasBreastCancerInFamily *bool                     `json:"hasBreastCancerInFamily"`
	Immediate               []RawFamilyMember         `json:"immediate"`
	MaternalFamilyMembers   []RawFamilyMember         `json:"maternalFamilyMembers"`
	PaternalFamilyMembers   []RawFamilyMember         `json:"paternalFamilyMembers"`
	Maternal                []string                  `json:"maternal"`
	Paternal                []string                  `json:"paternal"`
	ImmediateGeneticTest    []RawGeneticTest          `json:"immediateGeneticTest"`
	MaternalGeneticTest     []RawGeneticTest          `json:"maternalGeneticTest"`
	PaternalGeneticTest     []RawGeneticTest          `json:"paternalGeneticTest"`
	OvarianCancer           []RawRelativeRef          `json:"ovarianCancer"`
	MaleBreastCancer        []RawRelativeRef          `json:"maleBreastCancer"`
	MultipleBreastCancer    []RawMultipleBreastCancer `json:"multipleBreastCancer"`
	ProstateCancer          []RawProstateCancer       `json:"prostateCancer"`
	PancreaticCancer        []RawRelativeRef          `json:"pancreaticCancer"`
}

// RawSubmission is one completed questionnaire as handed over by the form layer.
type RawSubmission struct {
	PersonalInfo     RawPersonalInfo  `json:"personalInfo"`
	HasFamilyHistory bool             `json:"hasFamilyHistory"`
	FamilyHistory    RawFamilyHistory `json:"familyHistory"`
}

// DecodeSubmission parses a raw submission document.
func DecodeSubmission(data []byte) (*RawSubmission, error) {
	var s RawSubmission
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, NewAssessmentError(ErrInvalidInput, "malformed submission", err.Error())
	}
	return &s, nil
}
