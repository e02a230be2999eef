package service

import (
	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// ageBand is the half-open interval [min, max).
type ageBand struct {
	min int
	max int
}

var (
	band35to40 = ageBand{35, 40}
	band40to50 = ageBand{40, 50}
	band50to60 = ageBand{50, 60}
	band60to75 = ageBand{60, 75}

	ageBands = []ageBand{band35to40, band40to50, band50to60, band60to75}
)

func (b ageBand) contains(age int) bool {
	return age >= b.min && age < b.max
}

func bandFor(age int) (ageBand, bool) {
	for _, b := range ageBands {
		if b.contains(age) {
			return b, true
		}
	}
	return ageBand{}, false
}

// Recommendations returns the follow-up advice for a tier and patient age. The band
// specific item, when the tier has one for the age, comes before the tier's baseline
// items. The result depends only on the tier and age.
func Recommendations(level domain.RiskLevel, age int, lang domain.Language) []string {
	texts := catalogueFor(lang)

	var out []string
	if band, ok := bandFor(age); ok {
		if text, ok := texts.bands[level][band]; ok {
			out = append(out, text)
		}
	}

	baseline, ok := texts.baseline[level]
	if !ok {
		baseline = texts.baseline[domain.RiskAverage]
	}
	return append(out, baseline...)
}
