package service

import (
	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// Criterion is one clinical decision criterion. Criteria are evaluated in slice order,
// which is also the order used to pick the explanation.
type Criterion struct {
	Code        domain.CriterionCode
	Level       domain.RiskLevel
	Description string
	Evaluate    func(v *familyView) bool
}

// familyView is the read-only projection of a record the criteria work on.
type familyView struct {
	firstDegree      []domain.RelativeRecord
	maternal         []domain.RelativeRecord
	paternal         []domain.RelativeRecord
	geneticTests     []domain.GeneticTestRecord
	all              []domain.RelativeRecord
	mostAffectedSide domain.Side
	mostAffected     []domain.RelativeRecord
}

func newFamilyView(record *domain.PatientHistoryRecord) *familyView {
	v := &familyView{
		firstDegree:  record.FirstDegree(),
		maternal:     record.SecondDegree(domain.SideMaternal),
		paternal:     record.SecondDegree(domain.SidePaternal),
		geneticTests: record.GeneticTests,
		all:          record.Relatives,
	}

	// Ties go to the paternal side.
	if len(v.maternal) > len(v.paternal) {
		v.mostAffectedSide, v.mostAffected = domain.SideMaternal, v.maternal
	} else {
		v.mostAffectedSide, v.mostAffected = domain.SidePaternal, v.paternal
	}
	return v
}

func (v *familyView) summary() domain.FamilySummary {
	return domain.FamilySummary{
		FirstDegreeAffected: len(v.firstDegree),
		MaternalAffected:    len(v.maternal),
		PaternalAffected:    len(v.paternal),
		TotalAffected:       len(v.firstDegree) + len(v.maternal) + len(v.paternal),
		MostAffectedSide:    v.mostAffectedSide,
	}
}

// validAge reports whether age holds a usable value. Invalid ages never satisfy a
// threshold comparison.
func validAge(age *int) bool {
	return age != nil && *age >= 0 && *age <= MaxAge
}

func ageBelow(age *int, limit int) bool {
	return validAge(age) && *age < limit
}

func breastBelow(limit int) func(domain.RelativeRecord) bool {
	return func(r domain.RelativeRecord) bool {
		return r.Cancer.BreastCancer && ageBelow(r.DiagnosisAge, limit)
	}
}

func hasBreastCancer(r domain.RelativeRecord) bool {
	return r.Cancer.BreastCancer
}

func anyRelative(records []domain.RelativeRecord, pred func(domain.RelativeRecord) bool) bool {
	for _, r := range records {
		if pred(r) {
			return true
		}
	}
	return false
}

func countRelatives(records []domain.RelativeRecord, pred func(domain.RelativeRecord) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

func filterRelatives(records []domain.RelativeRecord, pred func(domain.RelativeRecord) bool) []domain.RelativeRecord {
	var out []domain.RelativeRecord
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// DefaultCriteria returns the decision criteria in priority order: high risk first,
// then moderate.
func DefaultCriteria() []Criterion {
	var criteria []Criterion
	add := func(code domain.CriterionCode, level domain.RiskLevel, description string, evaluate func(*familyView) bool) {
		criteria = append(criteria, Criterion{Code: code, Level: level, Description: description, Evaluate: evaluate})
	}

	add(domain.CriterionFirstDegreeUnder40, domain.RiskHigh, "First-degree relative with breast cancer diagnosed before 40", evaluateFirstDegreeUnder40)
	add(domain.CriterionGeneticAbnormality, domain.RiskHigh, "BRCA1 or BRCA2 abnormality in any lineage scope", evaluateGeneticAbnormality)
	add(domain.CriterionBreastAndPancreatic, domain.RiskHigh, "First-degree relative with breast and pancreatic cancer", evaluateBreastAndPancreatic)
	add(domain.CriterionMaleBreastCancer, domain.RiskHigh, "First-degree male relative with breast cancer", evaluateMaleBreastCancer)
	add(domain.CriterionBreastUnder50AndProstate, domain.RiskHigh, "First-degree breast cancer before 50 with prostate cancer before 60", evaluateBreastUnder50AndProstate)
	add(domain.CriterionBreastUnder50AndPancreatic, domain.RiskHigh, "First-degree breast cancer before 50 with pancreatic cancer", evaluateBreastUnder50AndPancreatic)
	add(domain.CriterionTwoFirstDegreeUnder50, domain.RiskHigh, "Two or more first-degree relatives with breast cancer before 50", evaluateTwoFirstDegreeUnder50)
	add(domain.CriterionThreeCombinedOneUnder50, domain.RiskHigh, "Three or more first- and most-affected-side second-degree relatives, one before 50", evaluateThreeCombinedOneUnder50)

	add(domain.CriterionMultipleBreastCancer, domain.RiskModerate, "Relative with two breast cancer diagnoses, first before 60", evaluateMultipleBreastCancer)
	add(domain.CriterionAverageAgeUnder50, domain.RiskModerate, "Immediate plus one side averaging a diagnosis age under 50", evaluateAverageAgeUnder50)
	add(domain.CriterionThreeOnSameSide, domain.RiskModerate, "Three or more breast cancer relatives on the most affected side", evaluateThreeOnSameSide)

	return criteria
}

// evaluateFirstDegreeUnder40 - H1
func evaluateFirstDegreeUnder40(v *familyView) bool {
	return anyRelative(v.firstDegree, breastBelow(40))
}

// evaluateGeneticAbnormality - H2
func evaluateGeneticAbnormality(v *familyView) bool {
	for _, t := range v.geneticTests {
		if t.Abnormality.IsPathogenic() {
			return true
		}
	}
	return false
}

// evaluateBreastAndPancreatic - H3. The normalizer joins pancreatic entries onto the
// breast cancer records of the same relation, so both flags sit on one record.
func evaluateBreastAndPancreatic(v *familyView) bool {
	return anyRelative(v.firstDegree, func(r domain.RelativeRecord) bool {
		return r.Cancer.BreastCancer && r.Cancer.PancreaticCancer
	})
}

// evaluateMaleBreastCancer - H4
func evaluateMaleBreastCancer(v *familyView) bool {
	return anyRelative(v.firstDegree, func(r domain.RelativeRecord) bool {
		return r.Cancer.MaleBreastCancer
	})
}

func hasProstateCancer(r domain.RelativeRecord) bool {
	if !r.Cancer.ProstateCancer {
		return false
	}
	// An unrecorded age is accepted; the category itself is "under 60".
	return r.Cancer.ProstateDiagnosisAge == nil || ageBelow(r.Cancer.ProstateDiagnosisAge, ProstateAgeLimit)
}

func hasPancreaticCancer(r domain.RelativeRecord) bool {
	return r.Cancer.PancreaticCancer
}

// fatherAndMotherExclusion holds when the father carries the paired cancer and the
// mother had breast cancer before 50. H5 and H6 do not fire on that pattern.
func fatherAndMotherExclusion(v *familyView, paired func(domain.RelativeRecord) bool) bool {
	father := anyRelative(v.firstDegree, func(r domain.RelativeRecord) bool {
		return r.Relation == domain.Father && paired(r)
	})
	if !father {
		return false
	}
	return anyRelative(v.firstDegree, func(r domain.RelativeRecord) bool {
		return r.Relation == domain.Mother && breastBelow(50)(r)
	})
}

func breastUnder50With(v *familyView, paired func(domain.RelativeRecord) bool) bool {
	if !anyRelative(v.firstDegree, breastBelow(50)) || !anyRelative(v.all, paired) {
		return false
	}
	return !fatherAndMotherExclusion(v, paired)
}

// evaluateBreastUnder50AndProstate - H5
func evaluateBreastUnder50AndProstate(v *familyView) bool {
	return breastUnder50With(v, hasProstateCancer)
}

// evaluateBreastUnder50AndPancreatic - H6
func evaluateBreastUnder50AndPancreatic(v *familyView) bool {
	return breastUnder50With(v, hasPancreaticCancer)
}

// evaluateTwoFirstDegreeUnder50 - H7
func evaluateTwoFirstDegreeUnder50(v *familyView) bool {
	return countRelatives(v.firstDegree, breastBelow(50)) >= 2
}

// evaluateThreeCombinedOneUnder50 - H8. Second-degree relatives only count from the most
// affected side, even when the other side also qualifies.
func evaluateThreeCombinedOneUnder50(v *familyView) bool {
	combined := append(filterRelatives(v.firstDegree, hasBreastCancer), filterRelatives(v.mostAffected, hasBreastCancer)...)
	if len(combined) < 3 {
		return false
	}
	return anyRelative(combined, breastBelow(50))
}

// evaluateMultipleBreastCancer - M1
func evaluateMultipleBreastCancer(v *familyView) bool {
	return anyRelative(v.all, func(r domain.RelativeRecord) bool {
		return r.Cancer.MultipleBreastCancer && ageBelow(r.Cancer.FirstDiagnosisAge, 60)
	})
}

// averageBelow50 reports whether the breast cancer diagnosis ages of group hold at least
// two values with a mean under 50.
func averageBelow50(group []domain.RelativeRecord) bool {
	sum, n := 0, 0
	for _, r := range group {
		if r.Cancer.BreastCancer && validAge(r.DiagnosisAge) {
			sum += *r.DiagnosisAge
			n++
		}
	}
	mean := 0.0
	if n > 0 {
		mean = float64(sum) / float64(n)
	}
	return n >= 2 && mean < 50
}

// evaluateAverageAgeUnder50 - M2, computed per side with the first-degree relatives added.
func evaluateAverageAgeUnder50(v *familyView) bool {
	maternal := append(append([]domain.RelativeRecord{}, v.maternal...), v.firstDegree...)
	paternal := append(append([]domain.RelativeRecord{}, v.paternal...), v.firstDegree...)
	return averageBelow50(maternal) || averageBelow50(paternal)
}

// evaluateThreeOnSameSide - M3
func evaluateThreeOnSameSide(v *familyView) bool {
	if len(v.mostAffected) < 3 {
		return false
	}
	for _, r := range v.mostAffected {
		if !r.Cancer.BreastCancer {
			return false
		}
	}
	return true
}
