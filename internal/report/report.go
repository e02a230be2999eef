// Package report renders an assessment as the plain text result screen.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/breast-cancer-risk-assessment/internal/domain"
	"github.com/breast-cancer-risk-assessment/internal/service"
)

type labels struct {
	advice         map[domain.RiskLevel]string
	adviceTitle    string
	familyTitle    string
	recsTitle      string
	personal       string
	noPersonal     string
	geneticTests   string
	firstDegree    string
	maternal       string
	paternal       string
	ovarian        string
	maleBreast     string
	multiple       string
	pancreatic     string
	prostate       string
	years          string
	firstDiagnosis string
	scopes         map[domain.Side]string
}

var english = labels{
	advice: map[domain.RiskLevel]string{
		domain.RiskHigh:     "Refer to clinical genetics",
		domain.RiskModerate: "Yearly screening outside the BVO",
		domain.RiskAverage:  "Screening via the BVO",
	},
	adviceTitle:    "Advice",
	familyTitle:    "Reported history",
	recsTitle:      "Recommendations",
	personal:       "Personal breast cancer diagnosis at %d years",
	noPersonal:     "No personal breast cancer diagnosis",
	geneticTests:   "Genetic tests",
	firstDegree:    "First-degree relatives",
	maternal:       "Maternal side",
	paternal:       "Paternal side",
	ovarian:        "Ovarian cancer",
	maleBreast:     "Male breast cancer",
	multiple:       "Multiple breast cancer diagnoses",
	pancreatic:     "Pancreatic cancer",
	prostate:       "Prostate cancer under 60",
	years:          "%d years",
	firstDiagnosis: "first diagnosis at %d years",
	scopes: map[domain.Side]string{
		domain.SideImmediate: "immediate family",
		domain.SideMaternal:  "maternal side",
		domain.SidePaternal:  "paternal side",
	},
}

var dutch = labels{
	advice: map[domain.RiskLevel]string{
		domain.RiskHigh:     "Verwijs naar klinische genetica",
		domain.RiskModerate: "Jaarlijkse screening buiten het BVO",
		domain.RiskAverage:  "Screening via het BVO",
	},
	adviceTitle:    "Advies",
	familyTitle:    "Gemelde geschiedenis",
	recsTitle:      "Aanbevelingen",
	personal:       "Persoonlijke diagnose borstkanker op %d jaar",
	noPersonal:     "Geen persoonlijke diagnose borstkanker",
	geneticTests:   "Genetisch onderzoek",
	firstDegree:    "Eerstegraads familieleden",
	maternal:       "Moederskant",
	paternal:       "Vaderskant",
	ovarian:        "Eierstokkanker",
	maleBreast:     "Borstkanker bij mannen",
	multiple:       "Meerdere borstkankerdiagnoses",
	pancreatic:     "Alvleesklierkanker",
	prostate:       "Prostaatkanker onder 60 jaar",
	years:          "%d jaar",
	firstDiagnosis: "eerste diagnose op %d jaar",
	scopes: map[domain.Side]string{
		domain.SideImmediate: "directe familie",
		domain.SideMaternal:  "moederskant",
		domain.SidePaternal:  "vaderskant",
	},
}

func labelsFor(lang domain.Language) labels {
	if lang == domain.LanguageDutch {
		return dutch
	}
	return english
}

// AdviceLabel returns the short advice line shown for a tier.
func AdviceLabel(level domain.RiskLevel, lang domain.Language) string {
	if label, ok := labelsFor(lang).advice[level]; ok {
		return label
	}
	return labelsFor(lang).advice[domain.RiskAverage]
}

// printer keeps the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Render writes the result screen for a classified record.
func Render(w io.Writer, record *domain.PatientHistoryRecord, result domain.ClassificationResult, lang domain.Language) error {
	if record == nil {
		record = &domain.PatientHistoryRecord{}
	}
	l := labelsFor(lang)
	p := &printer{w: w}

	p.printf("%s: %s\n", l.adviceTitle, AdviceLabel(result.RiskLevel, lang))
	p.printf("%s\n\n", result.Explanation)

	p.printf("%s:\n", l.familyTitle)
	if !record.HasReportedHistory() && len(record.GeneticTests) == 0 {
		p.printf("  %s\n", service.NoHistoryText(lang))
	} else {
		for _, line := range historyLines(record, l, lang) {
			p.printf("  - %s\n", line)
		}
	}

	if len(result.Recommendations) > 0 {
		p.printf("\n%s:\n", l.recsTitle)
		for _, rec := range result.Recommendations {
			p.printf("  - %s\n", rec)
		}
	}
	return p.err
}

func historyLines(record *domain.PatientHistoryRecord, l labels, lang domain.Language) []string {
	var lines []string

	if record.Personal.HasBreastCancer && record.Personal.DiagnosisAge != nil {
		lines = append(lines, fmt.Sprintf(l.personal, *record.Personal.DiagnosisAge))
	} else {
		lines = append(lines, l.noPersonal)
	}

	if len(record.GeneticTests) > 0 {
		tests := make([]string, len(record.GeneticTests))
		for i, t := range record.GeneticTests {
			tests[i] = fmt.Sprintf("%s (%s): %s", t.Relation.Label(lang), l.scopes[t.Scope], t.Abnormality.Label(lang))
		}
		lines = append(lines, l.geneticTests+": "+strings.Join(tests, "; "))
	}

	breast := func(r domain.RelativeRecord) bool { return r.Cancer.BreastCancer }
	if first := filter(record.FirstDegree(), breast); len(first) > 0 {
		lines = append(lines, l.firstDegree+": "+withAges(first, l, lang))
	}
	for _, side := range []struct {
		title string
		side  domain.Side
	}{{l.maternal, domain.SideMaternal}, {l.paternal, domain.SidePaternal}} {
		relatives := filter(record.SecondDegree(side.side), breast)
		if len(relatives) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%d): %s", side.title, len(relatives), withAges(relatives, l, lang)))
	}

	categories := []struct {
		title string
		has   func(domain.RelativeRecord) bool
	}{
		{l.ovarian, func(r domain.RelativeRecord) bool { return r.Cancer.OvarianCancer }},
		{l.maleBreast, func(r domain.RelativeRecord) bool { return r.Cancer.MaleBreastCancer }},
		{l.pancreatic, func(r domain.RelativeRecord) bool { return r.Cancer.PancreaticCancer }},
		{l.prostate, func(r domain.RelativeRecord) bool { return r.Cancer.ProstateCancer }},
	}
	for _, cat := range categories {
		if names := uniqueLabels(record.Matching(cat.has), lang); len(names) > 0 {
			lines = append(lines, cat.title+": "+strings.Join(names, ", "))
		}
	}

	var multiple []string
	for _, r := range record.Matching(func(r domain.RelativeRecord) bool { return r.Cancer.MultipleBreastCancer }) {
		entry := r.Relation.Label(lang)
		if r.Cancer.FirstDiagnosisAge != nil {
			entry += " (" + fmt.Sprintf(l.firstDiagnosis, *r.Cancer.FirstDiagnosisAge) + ")"
		}
		multiple = append(multiple, entry)
	}
	if len(multiple) > 0 {
		lines = append(lines, l.multiple+": "+strings.Join(multiple, ", "))
	}

	return lines
}

func withAges(relatives []domain.RelativeRecord, l labels, lang domain.Language) string {
	parts := make([]string, len(relatives))
	for i, r := range relatives {
		parts[i] = r.Relation.Label(lang)
		if r.DiagnosisAge != nil {
			parts[i] += " (" + fmt.Sprintf(l.years, *r.DiagnosisAge) + ")"
		}
	}
	return strings.Join(parts, ", ")
}

func uniqueLabels(relatives []domain.RelativeRecord, lang domain.Language) []string {
	seen := make(map[domain.Relation]bool)
	var out []string
	for _, r := range relatives {
		if seen[r.Relation] {
			continue
		}
		seen[r.Relation] = true
		out = append(out, r.Relation.Label(lang))
	}
	return out
}

func filter(relatives []domain.RelativeRecord, keep func(domain.RelativeRecord) bool) []domain.RelativeRecord {
	var out []domain.RelativeRecord
	for _, r := range relatives {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
