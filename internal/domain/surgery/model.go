package surgery

import (
	"time"

	"github.com/google/uuid"

	"github.com/ktreg/ktreg/internal/domain/clinical"
)

// Infection screen risk categories derived from the serology panel.
const (
	RiskHigh     = "high"
	RiskStandard = "standard"
	RiskLow      = "low"
)

// PatientSnapshot freezes the patient's identity at the time of surgery so
// later demographic edits never rewrite the transplant record.
type PatientSnapshot struct {
	PHN       string `json:"phn"`
	Name      string `json:"name"`
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Dob       string `json:"dob"`
	NicNo     string `json:"nicNo"`
	Address   string `json:"address"`
	ContactNo string `json:"contactNo"`
}

// MedicalHistory is the pre-transplant history flag set.
type MedicalHistory struct {
	DM                 bool   `json:"dm"`
	HTN                bool   `json:"htn"`
	IHD                bool   `json:"ihd"`
	DL                 bool   `json:"dl"`
	PreviousTransplant bool   `json:"previousTransplant"`
	Other              string `json:"other"`
}

// PreTransplantRRT summarizes the dialysis course leading up to surgery.
type PreTransplantRRT struct {
	Modality    string `json:"modality"`
	Duration    string `json:"duration"`
	LastDate    string `json:"lastDate"`
	Access      string `json:"access"`
	UrineOutput string `json:"urineOutput"`
}

// TransplantEvent is the operative detail block.
type TransplantEvent struct {
	Date              string `json:"date"`
	Surgeon           string `json:"surgeon"`
	Unit              string `json:"unit"`
	Side              string `json:"side"`
	Type              string `json:"type"`
	DonorRelationship string `json:"donorRelationship"`
	WarmIschemiaTime  string `json:"warmIschemiaTime"`
	ColdIschemiaTime  string `json:"coldIschemiaTime"`
}

// SerologyPair holds a donor/recipient result pair for one pathogen.
type SerologyPair struct {
	Donor     string `json:"donor"`
	Recipient string `json:"recipient"`
}

// InfectionScreen is the pre-transplant serology panel. RiskCategory is
// derived, never entered.
type InfectionScreen struct {
	CMV          SerologyPair `json:"cmv"`
	EBV          SerologyPair `json:"ebv"`
	TB           string       `json:"tb"`
	HIV          string       `json:"hiv"`
	HepatitisB   string       `json:"hepatitisB"`
	HepatitisC   string       `json:"hepatitisC"`
	RiskCategory string       `json:"riskCategory"`
}

// Immunosuppression is the protocol block: one induction choice plus
// maintenance drug flags.
type Immunosuppression struct {
	Induction    string `json:"induction"`
	Tacrolimus   bool   `json:"tacrolimus"`
	Cyclosporine bool   `json:"cyclosporine"`
	MMF          bool   `json:"mmf"`
	Azathioprine bool   `json:"azathioprine"`
	Prednisolone bool   `json:"prednisolone"`
	Everolimus   bool   `json:"everolimus"`
}

// ProphylaxisRow is one prophylactic agent with its planned course.
type ProphylaxisRow struct {
	Drug     string `json:"drug"`
	Duration string `json:"duration"`
	StopDate string `json:"stopDate"`
}

// PostOp records the immediate post-operative outcome.
type PostOp struct {
	DelayedGraftFunction bool   `json:"delayedGraftFunction"`
	DialysisRequired     bool   `json:"dialysisRequired"`
	AcuteRejection       bool   `json:"acuteRejection"`
	AcuteRejectionDetail string `json:"acuteRejectionDetail"`
}

// Medication is one entry in the discharge medication list.
type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
}

// complicationSlots is the fixed number of free-text complication entries a
// record carries.
const complicationSlots = 6

// Record is one kidney transplant event. A patient may have several; the
// latest is the most recently created one.
type Record struct {
	ID uuid.UUID `json:"id"`

	Patient           PatientSnapshot     `json:"patient"`
	MedicalHistory    MedicalHistory      `json:"medicalHistory"`
	RRT               PreTransplantRRT    `json:"rrt"`
	Transplant        TransplantEvent     `json:"transplant"`
	Immunology        clinical.Immunology `json:"immunology"`
	InfectionScreen   InfectionScreen     `json:"infectionScreen"`
	Immunosuppression Immunosuppression   `json:"immunosuppression"`
	Prophylaxis       []ProphylaxisRow    `json:"prophylaxis"`
	PreOpNotes        string              `json:"preOpNotes"`
	PostOp            PostOp              `json:"postOp"`
	Complications     []string            `json:"complications"`
	Medications       []Medication        `json:"medications"`
	CompletedBy       string              `json:"completedBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
