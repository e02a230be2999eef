package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// Age limits enforced on questionnaire input.
const (
	MinPatientAge    = 18
	MaxAge           = 120
	ProstateAgeLimit = 60
)

// relativeCategory describes which relations a questionnaire collection accepts.
type relativeCategory struct {
	field  string
	degree domain.Degree
	side   domain.Side
	sex    domain.Sex
}

var (
	immediateCategory  = relativeCategory{field: "familyHistory.immediate", degree: domain.FirstDegree, side: domain.SideImmediate}
	maternalCategory   = relativeCategory{field: "familyHistory.maternalFamilyMembers", degree: domain.SecondDegree, side: domain.SideMaternal}
	paternalCategory   = relativeCategory{field: "familyHistory.paternalFamilyMembers", degree: domain.SecondDegree, side: domain.SidePaternal}
	ovarianCategory    = relativeCategory{field: "familyHistory.ovarianCancer", degree: domain.FirstDegree, side: domain.SideImmediate, sex: domain.Female}
	maleBreastCategory = relativeCategory{field: "familyHistory.maleBreastCancer", degree: domain.FirstDegree, side: domain.SideImmediate, sex: domain.Male}
	multipleCategory   = relativeCategory{field: "familyHistory.multipleBreastCancer", degree: domain.FirstDegree, side: domain.SideImmediate, sex: domain.Female}
	prostateCategory   = relativeCategory{field: "familyHistory.prostateCancer", degree: domain.FirstDegree, side: domain.SideImmediate, sex: domain.Male}
	pancreaticCategory = relativeCategory{field: "familyHistory.pancreaticCancer", degree: domain.FirstDegree, side: domain.SideImmediate}
)

// HistoryNormalizer turns a raw questionnaire submission into a PatientHistoryRecord.
type HistoryNormalizer struct {
	logger   *logrus.Logger
	validate *validator.Validate
}

// NewHistoryNormalizer creates a new history normalizer
func NewHistoryNormalizer(logger *logrus.Logger) *HistoryNormalizer {
	return &HistoryNormalizer{
		logger:   logger,
		validate: validator.New(),
	}
}

// Normalize validates raw and builds the canonical record. All field errors are collected
// and returned together as domain.ValidationErrors.
//
// Family entries are only strictly validated when the submission says family history is
// present. Otherwise invalid entries are logged and left out of the record.
func (n *HistoryNormalizer) Normalize(raw *domain.RawSubmission) (*domain.PatientHistoryRecord, error) {
	if raw == nil {
		return nil, domain.ValidationErrors{domain.NewValidationError("submission", "is required", nil)}
	}

	run := &normalizeRun{
		n:      n,
		strict: raw.HasFamilyHistory,
		record: &domain.PatientHistoryRecord{HasFamilyHistory: raw.HasFamilyHistory},
	}

	run.personal(raw.PersonalInfo)
	run.family(raw.FamilyHistory)

	if len(run.errs) > 0 {
		n.logger.WithFields(logrus.Fields{
			"error_count": len(run.errs),
			"fields":      run.errs.Fields(),
		}).Debug("Submission failed validation")
		return nil, run.errs
	}
	return run.record, nil
}

type normalizeRun struct {
	n      *HistoryNormalizer
	strict bool
	errs   domain.ValidationErrors
	record *domain.PatientHistoryRecord
}

func (r *normalizeRun) fieldError(field, message string, value interface{}) {
	r.errs = append(r.errs, domain.NewValidationError(field, message, value))
}

// familyError rejects the submission in strict mode and only logs otherwise.
func (r *normalizeRun) familyError(field, message string, value interface{}) {
	if r.strict {
		r.fieldError(field, message, value)
		return
	}
	r.n.logger.WithFields(logrus.Fields{
		"field": field,
		"value": value,
	}).Warnf("Ignoring invalid family history entry: %s", message)
}

func (r *normalizeRun) inRange(value, min, max int) bool {
	return r.n.validate.Var(value, fmt.Sprintf("gte=%d,lte=%d", min, max)) == nil
}

func (r *normalizeRun) personal(in domain.RawPersonalInfo) {
	p := domain.PersonalHistory{
		HasBreastCancer:      in.HasBreastCancer,
		HadGeneticTest:       in.HadGeneticTest,
		FamilyHadGeneticTest: in.FamilyHadGeneticTest,
	}

	ageOK := false
	if !in.Age.Set {
		r.fieldError("personalInfo.age", "is required", nil)
	} else if age, err := in.Age.Int(); err != nil {
		r.fieldError("personalInfo.age", "must be a whole number", in.Age.Raw)
	} else if !r.inRange(age, MinPatientAge, MaxAge) {
		r.fieldError("personalInfo.age", fmt.Sprintf("must be between %d and %d", MinPatientAge, MaxAge), age)
	} else {
		p.Age = age
		ageOK = true
	}

	if in.HasBreastCancer {
		switch {
		case !in.DiagnosisAge.Set:
			r.fieldError("personalInfo.diagnosisAge", "is required when a personal diagnosis is reported", nil)
		default:
			diag, err := in.DiagnosisAge.Int()
			switch {
			case err != nil:
				r.fieldError("personalInfo.diagnosisAge", "must be a whole number", in.DiagnosisAge.Raw)
			case !r.inRange(diag, 0, MaxAge):
				r.fieldError("personalInfo.diagnosisAge", fmt.Sprintf("must be between 0 and %d", MaxAge), diag)
			case ageOK && diag > p.Age:
				r.fieldError("personalInfo.diagnosisAge", "cannot exceed current age", diag)
			default:
				p.DiagnosisAge = domain.IntPtr(diag)
			}
		}
	}

	r.record.Personal = p
}

func (r *normalizeRun) family(in domain.RawFamilyHistory) {
	if in.HasBreastCancerInFamily != nil {
		r.record.HasBreastCancerInFamily = *in.HasBreastCancerInFamily
	} else if r.strict {
		r.fieldError("familyHistory.hasBreastCancerInFamily", "is required when family history is reported", nil)
	}

	r.breastEntries(immediateCategory, in.Immediate)
	r.breastEntries(maternalCategory, in.MaternalFamilyMembers)
	r.breastEntries(paternalCategory, in.PaternalFamilyMembers)

	r.record.MaternalSelection = r.selection(in.Maternal)
	r.record.PaternalSelection = r.selection(in.Paternal)

	r.geneticTests("familyHistory.immediateGeneticTest", domain.SideImmediate, in.ImmediateGeneticTest)
	r.geneticTests("familyHistory.maternalGeneticTest", domain.SideMaternal, in.MaternalGeneticTest)
	r.geneticTests("familyHistory.paternalGeneticTest", domain.SidePaternal, in.PaternalGeneticTest)

	for i, e := range in.PancreaticCancer {
		r.joinRef(pancreaticCategory, i, e.Relation, func(rec *domain.RelativeRecord) {
			rec.Cancer.PancreaticCancer = true
		})
	}
	for i, e := range in.MaleBreastCancer {
		r.joinRef(maleBreastCategory, i, e.Relation, func(rec *domain.RelativeRecord) {
			rec.Cancer.MaleBreastCancer = true
		})
	}
	for i, e := range in.ProstateCancer {
		field := fmt.Sprintf("%s[%d].diagnosisAge", prostateCategory.field, i)
		age, ok := r.optionalAge(field, e.DiagnosisAge, ProstateAgeLimit-1)
		if !ok {
			continue
		}
		r.joinRef(prostateCategory, i, e.Relation, func(rec *domain.RelativeRecord) {
			rec.Cancer.ProstateCancer = true
			if age != nil {
				rec.Cancer.ProstateDiagnosisAge = age
			}
		})
	}
	for i, e := range in.OvarianCancer {
		r.joinRef(ovarianCategory, i, e.Relation, func(rec *domain.RelativeRecord) {
			rec.Cancer.OvarianCancer = true
		})
	}
	for i, e := range in.MultipleBreastCancer {
		field := fmt.Sprintf("%s[%d].firstDiagnosisAge", multipleCategory.field, i)
		var first *int
		if age, ok := r.requiredAge(field, e.FirstDiagnosisAge); ok {
			first = domain.IntPtr(age)
		} else if r.strict {
			continue
		}
		r.joinRef(multipleCategory, i, e.Relation, func(rec *domain.RelativeRecord) {
			rec.Cancer.MultipleBreastCancer = true
			rec.Cancer.FirstDiagnosisAge = first
		})
	}
}

// breastEntries appends one record per entry. Entries are never merged, so two aunts
// stay two relatives.
func (r *normalizeRun) breastEntries(cat relativeCategory, entries []domain.RawFamilyMember) {
	for i, e := range entries {
		rel, ok := r.relation(cat, i, e.Relation)
		if !ok {
			continue
		}

		rec := domain.RelativeRecord{
			Relation: rel,
			Degree:   cat.degree,
			Side:     cat.side,
			Cancer:   domain.CancerFlags{BreastCancer: e.HasBreastCancer == nil || *e.HasBreastCancer},
		}
		// A father, brother or son listed here is a male breast cancer case as well.
		if sex, known := rec.Sex(); known && sex == domain.Male && rec.IsFirstDegree() {
			rec.Cancer.MaleBreastCancer = rec.Cancer.BreastCancer
		}
		field := fmt.Sprintf("%s[%d].diagnosisAge", cat.field, i)
		if age, ok := r.requiredAge(field, e.DiagnosisAge); ok {
			rec.DiagnosisAge = domain.IntPtr(age)
		} else if r.strict {
			continue
		}
		r.record.Relatives = append(r.record.Relatives, rec)
	}
}

// joinRef flags every first-degree record with the same canonical relation, or appends
// a new record when there is none yet.
func (r *normalizeRun) joinRef(cat relativeCategory, index int, key string, apply func(*domain.RelativeRecord)) {
	rel, ok := r.relation(cat, index, key)
	if !ok {
		return
	}

	joined := false
	for i := range r.record.Relatives {
		rec := &r.record.Relatives[i]
		if rec.Relation == rel && rec.Side == cat.side {
			apply(rec)
			joined = true
		}
	}
	if joined {
		return
	}

	rec := domain.RelativeRecord{Relation: rel, Degree: cat.degree, Side: cat.side}
	apply(&rec)
	r.record.Relatives = append(r.record.Relatives, rec)
}

// relation resolves and checks a relation key. It returns false for the "none" answer and
// for entries that were rejected.
func (r *normalizeRun) relation(cat relativeCategory, index int, key string) (domain.Relation, bool) {
	field := fmt.Sprintf("%s[%d].relation", cat.field, index)
	rel := ResolveRelation(key)
	if rel == "" {
		r.familyError(field, "is required", key)
		return "", false
	}
	if rel.IsNone() {
		return "", false
	}

	info, known := domain.LookupRelation(rel)
	if !known {
		return rel, true
	}
	if info.Degree != cat.degree || (cat.degree == domain.SecondDegree && info.Side != cat.side) {
		r.familyError(field, fmt.Sprintf("%s is not a valid relative for this question", rel), key)
		return "", false
	}
	if cat.sex != "" && info.Sex != cat.sex {
		r.familyError(field, fmt.Sprintf("%s cannot be reported for a %s-only category", rel, cat.sex), key)
		return "", false
	}
	return rel, true
}

func (r *normalizeRun) requiredAge(field string, in domain.AgeInput) (int, bool) {
	if !in.Set {
		r.familyError(field, "is required", nil)
		return 0, false
	}
	age, err := in.Int()
	if err != nil {
		r.familyError(field, "must be a whole number", in.Raw)
		return 0, false
	}
	if !r.inRange(age, 0, MaxAge) {
		r.familyError(field, fmt.Sprintf("must be between 0 and %d", MaxAge), age)
		return 0, false
	}
	return age, true
}

// optionalAge parses an age that may be left blank. The bool result is false only when
// the entry has to be dropped.
func (r *normalizeRun) optionalAge(field string, in domain.AgeInput, max int) (*int, bool) {
	if !in.Set {
		return nil, true
	}
	age, err := in.Int()
	if err != nil {
		r.familyError(field, "must be a whole number", in.Raw)
		return nil, !r.strict
	}
	if !r.inRange(age, 0, max) {
		r.familyError(field, fmt.Sprintf("must be between 0 and %d", max), age)
		return nil, !r.strict
	}
	return domain.IntPtr(age), true
}

func (r *normalizeRun) geneticTests(field string, scope domain.Side, tests []domain.RawGeneticTest) {
	for i, t := range tests {
		rel := ResolveRelation(t.Relation)
		if rel.IsNone() {
			continue
		}
		abnormality := domain.GeneticAbnormality(t.Abnormality)
		if err := r.n.validate.Var(t.Abnormality, "required,oneof=BRCA1 BRCA2 none unknown"); err != nil {
			r.familyError(fmt.Sprintf("%s[%d].abnormality", field, i), "must be one of BRCA1, BRCA2, none, unknown", t.Abnormality)
			continue
		}
		r.record.GeneticTests = append(r.record.GeneticTests, domain.GeneticTestRecord{
			Relation:    rel,
			Scope:       scope,
			Abnormality: abnormality,
		})
	}
}

func (r *normalizeRun) selection(keys []string) []domain.Relation {
	var out []domain.Relation
	for _, key := range keys {
		rel := ResolveRelation(key)
		if rel == "" || rel.IsNone() {
			continue
		}
		out = append(out, rel)
	}
	return out
}
