// Package fhir builds the FHIR collection bundle used to export an assessment.
package fhir

// Resource type names
const (
	ResourceBundle      = "Bundle"
	ResourcePatient     = "Patient"
	ResourceObservation = "Observation"
)

const (
	BundleTypeCollection = "collection"
	ObservationFinal     = "final"
	GenderUnknown        = "unknown"

	LOINCSystem         = "http://loinc.org"
	LOINCRiskAssessment = "21156-8"
	RiskAssessmentTitle = "Breast Cancer Risk Assessment"
	DefaultCodeSystem   = "http://example.org/breast-cancer-assessment"
	DefaultRiskSystem   = "http://example.org/risk-assessment"
	DefaultPatientID    = "breast-cancer-risk-assessment"
	DefaultPatientName  = "Assessment Patient"
	DefaultExportFile   = "breast_cancer_risk_fhir.json"
)

// Bundle is a FHIR Bundle resource of type collection.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Timestamp    string        `json:"timestamp,omitempty"`
	Entry        []BundleEntry `json:"entry"`
}

// BundleEntry wraps one resource. Resource is a *Patient or an *Observation.
type BundleEntry struct {
	FullURL  string      `json:"fullUrl,omitempty"`
	Resource interface{} `json:"resource"`
}

// HumanName represents a FHIR HumanName.
type HumanName struct {
	Use  string `json:"use,omitempty"`
	Text string `json:"text,omitempty"`
}

// Patient is the anonymous patient the assessment belongs to.
type Patient struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id"`
	Active       bool        `json:"active"`
	Name         []HumanName `json:"name,omitempty"`
	Gender       string      `json:"gender,omitempty"`
	BirthDate    string      `json:"birthDate,omitempty"`
}

type Coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference string `json:"reference"`
}

// ObservationComponent carries one history fact. Exactly one value field is set.
type ObservationComponent struct {
	Code         CodeableConcept `json:"code"`
	ValueBoolean *bool           `json:"valueBoolean,omitempty"`
	ValueInteger *int            `json:"valueInteger,omitempty"`
	ValueString  *string         `json:"valueString,omitempty"`
}

// Observation holds the risk tier and the contributing history facts.
type Observation struct {
	ResourceType         string                 `json:"resourceType"`
	ID                   string                 `json:"id,omitempty"`
	Status               string                 `json:"status"`
	Code                 CodeableConcept        `json:"code"`
	Subject              Reference              `json:"subject"`
	EffectiveDateTime    string                 `json:"effectiveDateTime,omitempty"`
	ValueCodeableConcept CodeableConcept        `json:"valueCodeableConcept"`
	Component            []ObservationComponent `json:"component"`
}

// Patient returns the bundle's patient resource, or nil.
func (b *Bundle) Patient() *Patient {
	for _, e := range b.Entry {
		if p, ok := e.Resource.(*Patient); ok {
			return p
		}
	}
	return nil
}

// Observation returns the bundle's observation resource, or nil.
func (b *Bundle) Observation() *Observation {
	for _, e := range b.Entry {
		if o, ok := e.Resource.(*Observation); ok {
			return o
		}
	}
	return nil
}

// FindComponent returns the first component with the given code, or nil.
func (o *Observation) FindComponent(code string) *ObservationComponent {
	for i := range o.Component {
		for _, c := range o.Component[i].Code.Coding {
			if c.Code == code {
				return &o.Component[i]
			}
		}
	}
	return nil
}
