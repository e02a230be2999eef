package service

import (
	"github.com/breast-cancer-risk-assessment/internal/domain"
)

// catalogue holds the user-facing texts of one language.
type catalogue struct {
	reasons   map[domain.CriterionCode]string
	high      string // takes the reason
	moderate  string // takes the reason
	average   string
	noHistory string
	baseline  map[domain.RiskLevel][]string
	bands     map[domain.RiskLevel]map[ageBand]string
}

var english = &catalogue{
	reasons: map[domain.CriterionCode]string{
		domain.CriterionFirstDegreeUnder40:         "First-degree relative diagnosed with breast cancer before age 40",
		domain.CriterionGeneticAbnormality:         "First- or second-degree relative with a genetic abnormality (BRCA1/2)",
		domain.CriterionBreastAndPancreatic:        "First-degree relative with breast cancer and pancreatic cancer",
		domain.CriterionMaleBreastCancer:           "First-degree male relative with breast cancer, regardless of age",
		domain.CriterionBreastUnder50AndProstate:   "First-degree relative with breast cancer under 50 and prostate cancer under 60 (same side of the family)",
		domain.CriterionBreastUnder50AndPancreatic: "First-degree relative with breast cancer under 50 and pancreatic cancer under 60 (same side of the family)",
		domain.CriterionTwoFirstDegreeUnder50:      "Two or more first-degree relatives with breast cancer under 50",
		domain.CriterionThreeCombinedOneUnder50:    "Three or more first- or second-degree relatives with breast cancer, at least one under 50",
		domain.CriterionMultipleBreastCancer:       "Relative with two breast cancer diagnoses, the first before age 60",
		domain.CriterionAverageAgeUnder50:          "First- and second-degree relatives with breast cancer, average age at diagnosis under 50",
		domain.CriterionThreeOnSameSide:            "Three or more relatives with breast cancer on the same side of the family",
	},
	high:      "Based on the reported history, referral to clinical genetics for hereditary testing is advised. Reason: %s",
	moderate:  "Yearly screening outside the national screening programme (BVO) is advised. Reason: %s",
	average:   "Screening via the national screening programme (BVO) is advised.",
	noHistory: "No reported history of breast or ovarian cancer.",
	baseline: map[domain.RiskLevel][]string{
		domain.RiskHigh:     {"Refer to clinical genetics for hereditary cancer counselling"},
		domain.RiskModerate: {"Yearly screening outside the national screening programme (BVO) with mammography from age 40 to 50 via the general practitioner"},
		domain.RiskAverage:  {"Screen via the national screening programme (BVO)", "Do not refer to clinical genetics"},
	},
	bands: map[domain.RiskLevel]map[ageBand]string{
		domain.RiskHigh: {
			band35to40: "MRI and a consultation once every 1.5 years",
			band40to50: "Yearly alternating MRI and mammography, or MRI and a consultation once every 1.5 years",
			band50to60: "Yearly alternating MRI and mammography, or MRI and a consultation once every 1.5 years",
			band60to75: "Mammography once every 2 years within the national screening programme (BVO)",
		},
		domain.RiskModerate: {
			band40to50: "Yearly mammography via the general practitioner",
			band50to60: "Mammography once every 2 years within the national screening programme (BVO)",
			band60to75: "Mammography once every 2 years within the national screening programme (BVO)",
		},
	},
}

var dutch = &catalogue{
	reasons: map[domain.CriterionCode]string{
		domain.CriterionFirstDegreeUnder40:         "1e graads verwante met borstkanker aangetoond op leeftijd < 40 jaar",
		domain.CriterionGeneticAbnormality:         "1e of 2e graads verwante met genetische abnormaliteit (BRCA1/2)",
		domain.CriterionBreastAndPancreatic:        "1e graads verwante met BK en alvleesklierkanker",
		domain.CriterionMaleBreastCancer:           "1e graads mannelijk verwante met BK ongeacht de leeftijd",
		domain.CriterionBreastUnder50AndProstate:   "1e graads verwante met BK onder 50 jaar en prostaatkanker onder 60 jaar (Aan dezelfde kant van de familie)",
		domain.CriterionBreastUnder50AndPancreatic: "1e graads verwante met BK onder 50 jaar en alvleesklierkanker onder 60 jaar (Aan dezelfde kant van de familie)",
		domain.CriterionTwoFirstDegreeUnder50:      "2 of meer 1e graads verwante met BK onder 50 jaar",
		domain.CriterionThreeCombinedOneUnder50:    "3 of meer 1e of 2e graads verwante met BK, met minimaal 1 onder 50 jaar",
		domain.CriterionMultipleBreastCancer:       "1e graads verwante met tweemaal borstkankerdiagnoses, waarvan ten minste 1 diagnose <60 jaar.",
		domain.CriterionAverageAgeUnder50:          "1e en 2e graads verwanten met borstkanker, met gemiddelde leeftijd diagnose < 50 jaar",
		domain.CriterionThreeOnSameSide:            "3 of meer 1e of 2e graads verwante met borstkanker, aan dezelfde kant van de familie",
	},
	high:      "Op basis van de gegevens is doorverwijzing naar klinische genetica voor erfelijkheidsonderzoek geadviseerd. Reden: %s",
	moderate:  "Jaarlijkse screening buiten het BVO wordt geadviseerd. Reden: %s",
	average:   "Screening via het BVO (bevolkingsonderzoek) wordt geadviseerd.",
	noHistory: "Geen gemelde geschiedenis van borst- of eierstokkanker.",
	baseline: map[domain.RiskLevel][]string{
		domain.RiskHigh:     {"Verwijs naar klinische genetica voor erfelijkheidsonderzoek"},
		domain.RiskModerate: {"Screen jaarlijks buiten het BVO met mammogram van 40 tot 50 jaar via de huisarts"},
		domain.RiskAverage:  {"Screen via het BVO (bevolkingsonderzoek)", "Verwijs niet naar klinische genetica"},
	},
	bands: map[domain.RiskLevel]map[ageBand]string{
		domain.RiskHigh: {
			band35to40: "1 maal per 1,5 jaar MRI en contactmoment",
			band40to50: "Jaarlijks afwisselend MRI en mammografie of 1 maal per 1,5 jaar MRI en contactmoment",
			band50to60: "Jaarlijks afwisselend MRI en mammografie of 1 maal per 1,5 jaar MRI en contactmoment",
			band60to75: "1 maal per 2 jaar mammografie binnen het bevolkingsonderzoek",
		},
		domain.RiskModerate: {
			band40to50: "Jaarlijks mammografie via huisarts",
			band50to60: "1 x per 2 jaar mammografie binnen het bevolkingsonderzoek",
			band60to75: "1 x per 2 jaar mammografie binnen het bevolkingsonderzoek",
		},
	},
}

// catalogueFor falls back to English for unknown languages.
func catalogueFor(lang domain.Language) *catalogue {
	if lang == domain.LanguageDutch {
		return dutch
	}
	return english
}

// NoHistoryText is the line shown when neither the patient nor any relative has a
// reported history.
func NoHistoryText(lang domain.Language) string {
	return catalogueFor(lang).noHistory
}
