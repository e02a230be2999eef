// Package domain contains the core entities for breast cancer family-history risk assessment:
// the relation vocabulary used by the questionnaire, the normalized patient history record
// and the classification result handed to the report and export layers.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// RiskLevel is the risk tier assigned to a patient history.
type RiskLevel string

const (
	RiskAverage  RiskLevel = "Average"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Side is the lineage scope a relative or genetic test belongs to.
type Side string

const (
	SideImmediate Side = "immediate"
	SideMaternal  Side = "maternal"
	SidePaternal  Side = "paternal"
)

// Degree is the degree of kinship to the patient.
type Degree string

const (
	FirstDegree  Degree = "first"
	SecondDegree Degree = "second"
)

// Sex of a relation, used to check the sex-specific questionnaire categories.
type Sex string

const (
	Female Sex = "female"
	Male   Sex = "male"
)

// Language selects the label and text catalogue.
type Language string

const (
	LanguageDutch   Language = "nl"
	LanguageEnglish Language = "en"
)

// GeneticAbnormality is the outcome of a relative's genetic test.
type GeneticAbnormality string

const (
	AbnormalityBRCA1   GeneticAbnormality = "BRCA1"
	AbnormalityBRCA2   GeneticAbnormality = "BRCA2"
	AbnormalityNone    GeneticAbnormality = "none"
	AbnormalityUnknown GeneticAbnormality = "unknown"
)

// ErrInvalidLanguage is returned by ParseLanguage for anything but "nl" and "en".
var ErrInvalidLanguage = errors.New("invalid language")

// IsValid reports whether r is one of the three tiers.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskAverage, RiskModerate, RiskHigh:
		return true
	default:
		return false
	}
}

// Severity orders tiers: Average < Moderate < High. Unknown tiers rank below Average.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskModerate:
		return 1
	case RiskAverage:
		return 0
	default:
		return -1
	}
}

// Code returns the lowercase, hyphenated code used in exported records.
func (r RiskLevel) Code() string {
	return strings.ReplaceAll(strings.ToLower(string(r)), " ", "-")
}

func (r RiskLevel) String() string {
	return string(r)
}

func (s Side) IsValid() bool {
	switch s {
	case SideImmediate, SideMaternal, SidePaternal:
		return true
	default:
		return false
	}
}

func (s Side) String() string {
	return string(s)
}

func (l Language) IsValid() bool {
	return l == LanguageDutch || l == LanguageEnglish
}

// ParseLanguage accepts "nl" or "en" in any case.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
	return l, nil
}

func (a GeneticAbnormality) IsValid() bool {
	switch a {
	case AbnormalityBRCA1, AbnormalityBRCA2, AbnormalityNone, AbnormalityUnknown:
		return true
	default:
		return false
	}
}

// IsPathogenic reports whether the result is a BRCA1 or BRCA2 abnormality.
func (a GeneticAbnormality) IsPathogenic() bool {
	return a == AbnormalityBRCA1 || a == AbnormalityBRCA2
}

// Label returns the display label of the abnormality in the given language.
func (a GeneticAbnormality) Label(lang Language) string {
	switch a {
	case AbnormalityNone:
		if lang == LanguageDutch {
			return "Geen afwijking"
		}
		return "No abnormality"
	case AbnormalityUnknown:
		if lang == LanguageDutch {
			return "Onbekend"
		}
		return "Unknown"
	default:
		return string(a)
	}
}
