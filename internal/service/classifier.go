package service

import (
	"fmt"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// RiskClassifier evaluates a patient history against the decision criteria.
// It holds no mutable state and is safe for concurrent use.
type RiskClassifier struct {
	criteria []Criterion
	lang     domain.Language
}

// NewRiskClassifier creates a classifier with the default criteria
func NewRiskClassifier(lang domain.Language) *RiskClassifier {
	return &RiskClassifier{
		criteria: DefaultCriteria(),
		lang:     lang,
	}
}

// Criteria returns a copy of the criteria in evaluation order.
func (c *RiskClassifier) Criteria() []Criterion {
	return append([]Criterion(nil), c.criteria...)
}

// Classify evaluates every criterion against record. The tier is the most severe tier
// among all matches; the explanation names the first matching criterion of that tier in
// priority order. Classify never modifies record and never fails.
func (c *RiskClassifier) Classify(record *domain.PatientHistoryRecord) domain.ClassificationResult {
	if record == nil {
		record = &domain.PatientHistoryRecord{}
	}
	view := newFamilyView(record)

	// First pass: match everything and escalate the tier.
	level := domain.RiskAverage
	matched := make([]domain.CriterionCode, 0, len(c.criteria))
	for _, criterion := range c.criteria {
		if !criterion.Evaluate(view) {
			continue
		}
		matched = append(matched, criterion.Code)
		if criterion.Level.Severity() > level.Severity() {
			level = criterion.Level
		}
	}

	// Second pass: the explanation comes from the first match of the winning tier.
	var trigger *Criterion
	for i := range c.criteria {
		if c.criteria[i].Level == level && containsCode(matched, c.criteria[i].Code) {
			trigger = &c.criteria[i]
			break
		}
	}

	texts := catalogueFor(c.lang)
	result := domain.ClassificationResult{
		RiskLevel:       level,
		MatchedCriteria: matched,
		Recommendations: Recommendations(level, record.Personal.Age, c.lang),
		Family:          view.summary(),
	}

	switch {
	case trigger != nil && level == domain.RiskHigh:
		result.Criterion = trigger.Code
		result.Reason = texts.reasons[trigger.Code]
		result.Explanation = fmt.Sprintf(texts.high, result.Reason)
	case trigger != nil && level == domain.RiskModerate:
		result.Criterion = trigger.Code
		result.Reason = texts.reasons[trigger.Code]
		result.Explanation = fmt.Sprintf(texts.moderate, result.Reason)
	case !record.HasReportedHistory():
		result.Explanation = texts.noHistory + " " + texts.average
	default:
		result.Explanation = texts.average
	}

	return result
}

func containsCode(codes []domain.CriterionCode, code domain.CriterionCode) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
