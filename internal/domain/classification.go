package domain

// CriterionCode identifies one clinical decision criterion.
type CriterionCode string

const (
	CriterionFirstDegreeUnder40         CriterionCode = "H1"
	CriterionGeneticAbnormality         CriterionCode = "H2"
	CriterionBreastAndPancreatic        CriterionCode = "H3"
	CriterionMaleBreastCancer           CriterionCode = "H4"
	CriterionBreastUnder50AndProstate   CriterionCode = "H5"
	CriterionBreastUnder50AndPancreatic CriterionCode = "H6"
	CriterionTwoFirstDegreeUnder50      CriterionCode = "H7"
	CriterionThreeCombinedOneUnder50    CriterionCode = "H8"

	CriterionMultipleBreastCancer CriterionCode = "M1"
	CriterionAverageAgeUnder50    CriterionCode = "M2"
	CriterionThreeOnSameSide      CriterionCode = "M3"
)

// FamilySummary holds the counters shown next to the result.
type FamilySummary struct {
	FirstDegreeAffected int  `json:"firstDegreeAffected"`
	MaternalAffected    int  `json:"maternalAffected"`
	PaternalAffected    int  `json:"paternalAffected"`
	TotalAffected       int  `json:"totalAffected"`
	MostAffectedSide    Side `json:"mostAffectedSide"`
}

// ClassificationResult is the outcome of classifying one patient history.
type ClassificationResult struct {
	RiskLevel       RiskLevel       `json:"riskLevel"`
	Explanation     string          `json:"explanation"`
	Criterion       CriterionCode   `json:"criterion,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	MatchedCriteria []CriterionCode `json:"matchedCriteria"`
	Recommendations []string        `json:"recommendations"`
	Family          FamilySummary   `json:"family"`
}

// Matched reports whether code is among the matched criteria.
func (r ClassificationResult) Matched(code CriterionCode) bool {
	for _, c := range r.MatchedCriteria {
		if c == code {
			return true
		}
	}
	return false
}
