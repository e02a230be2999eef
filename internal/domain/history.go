package domain

// CancerFlags records which cancers were reported for one relative.
type CancerFlags struct {
	BreastCancer         bool `json:"breastCancer"`
	MaleBreastCancer     bool `json:"maleBreastCancer"`
	MultipleBreastCancer bool `json:"multipleBreastCancer"`
	FirstDiagnosisAge    *int `json:"firstDiagnosisAge,omitempty"`
	OvarianCancer        bool `json:"ovarianCancer"`
	PancreaticCancer     bool `json:"pancreaticCancer"`
	ProstateCancer       bool `json:"prostateCancer"`
	ProstateDiagnosisAge *int `json:"prostateDiagnosisAge,omitempty"`
}

// Any reports whether at least one cancer is flagged.
func (f CancerFlags) Any() bool {
	return f.BreastCancer || f.MaleBreastCancer || f.MultipleBreastCancer ||
		f.OvarianCancer || f.PancreaticCancer || f.ProstateCancer
}

// RelativeRecord is one affected relative.
type RelativeRecord struct {
	Relation     Relation    `json:"relation"`
	Degree       Degree      `json:"degree"`
	Side         Side        `json:"side"`
	DiagnosisAge *int        `json:"diagnosisAge,omitempty"`
	Cancer       CancerFlags `json:"cancer"`
}

// IsFirstDegree reports whether the relative is a parent, sibling or child.
func (r RelativeRecord) IsFirstDegree() bool {
	return r.Degree == FirstDegree
}

// Sex returns the relation's sex and false when the relation is not in the vocabulary.
func (r RelativeRecord) Sex() (Sex, bool) {
	info, ok := LookupRelation(r.Relation)
	if !ok {
		return "", false
	}
	return info.Sex, true
}

// GeneticTestRecord is one relative's genetic test outcome.
type GeneticTestRecord struct {
	Relation    Relation           `json:"relation"`
	Scope       Side               `json:"scope"`
	Abnormality GeneticAbnormality `json:"abnormality"`
}

// PersonalHistory holds the patient's own answers.
type PersonalHistory struct {
	Age                  int  `json:"age"`
	HasBreastCancer      bool `json:"hasBreastCancer"`
	DiagnosisAge         *int `json:"diagnosisAge,omitempty"`
	HadGeneticTest       bool `json:"hadGeneticTest"`
	FamilyHadGeneticTest bool `json:"familyHadGeneticTest"`
}

// PatientHistoryRecord is the normalized, validated questionnaire. It is built once by the
// normalizer and only read afterwards.
type PatientHistoryRecord struct {
	Personal                PersonalHistory     `json:"personal"`
	HasFamilyHistory        bool                `json:"hasFamilyHistory"`
	HasBreastCancerInFamily bool                `json:"hasBreastCancerInFamily"`
	Relatives               []RelativeRecord    `json:"relatives"`
	GeneticTests            []GeneticTestRecord `json:"geneticTests"`

	// Relatives picked in the per-side questions, kept for display and export.
	MaternalSelection []Relation `json:"maternalSelection,omitempty"`
	PaternalSelection []Relation `json:"paternalSelection,omitempty"`
}

// FirstDegree returns the first-degree relatives in record order.
func (p *PatientHistoryRecord) FirstDegree() []RelativeRecord {
	var out []RelativeRecord
	for _, r := range p.Relatives {
		if r.Degree == FirstDegree {
			out = append(out, r)
		}
	}
	return out
}

// SecondDegree returns the second-degree relatives of one side in record order.
func (p *PatientHistoryRecord) SecondDegree(side Side) []RelativeRecord {
	var out []RelativeRecord
	for _, r := range p.Relatives {
		if r.Degree == SecondDegree && r.Side == side {
			out = append(out, r)
		}
	}
	return out
}

// Matching returns the relatives for which keep returns true.
func (p *PatientHistoryRecord) Matching(keep func(RelativeRecord) bool) []RelativeRecord {
	var out []RelativeRecord
	for _, r := range p.Relatives {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// HasReportedHistory reports whether the record carries any personal or family history.
func (p *PatientHistoryRecord) HasReportedHistory() bool {
	return p.Personal.HasBreastCancer || len(p.Relatives) > 0
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
