package recipient

import (
	"time"

	"github.com/google/uuid"

	"github.com/ktreg/ktreg/internal/domain/clinical"
)

// DMDetail captures diabetes sub-complications screened before listing.
type DMDetail struct {
	Duration    string `json:"duration"`
	Retinopathy bool   `json:"retinopathy"`
	Nephropathy bool   `json:"nephropathy"`
	Neuropathy  bool   `json:"neuropathy"`
	FootDisease bool   `json:"footDisease"`
}

// IHDDetail records the ischemic heart disease workup findings.
type IHDDetail struct {
	ECG        string `json:"ecg"`
	Echo       string `json:"echo"`
	Angiogram  string `json:"angiogram"`
	StressTest string `json:"stressTest"`
}

// CLDDetail captures chronic liver disease staging.
type CLDDetail struct {
	Present bool   `json:"present"`
	Cause   string `json:"cause"`
	Stage   string `json:"stage"`
}

// Comorbidities extends the shared flag set with the recipient-only detail
// blocks. The shared flags are promoted so the serialized shape stays flat
// alongside dmDetail/ihdDetail/cld.
type Comorbidities struct {
	clinical.Comorbidities
	DMDetail  DMDetail  `json:"dmDetail"`
	IHDDetail IHDDetail `json:"ihdDetail"`
	CLD       CLDDetail `json:"cld"`
}

// RRT describes the renal replacement therapy a recipient was on before
// transplant: modality and access flags plus start date and complications.
type RRT struct {
	Hemodialysis       bool   `json:"hemodialysis"`
	PeritonealDialysis bool   `json:"peritonealDialysis"`
	AVFistula          bool   `json:"avFistula"`
	AVGraft            bool   `json:"avGraft"`
	PermCatheter       bool   `json:"permCatheter"`
	TempCatheter       bool   `json:"tempCatheter"`
	StartDate          string `json:"startDate"`
	Complications      string `json:"complications"`
}

// AssessmentRecord is one recipient's full pre-transplant questionnaire.
// Structurally parallel to the donor record, with RRT details and the
// extended comorbidity set added.
type AssessmentRecord struct {
	ID  uuid.UUID `json:"id"`
	PHN string    `json:"phn"`

	Name       string `json:"name"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	Dob        string `json:"dob"`
	NicNo      string `json:"nicNo"`
	Address    string `json:"address"`
	ContactNo  string `json:"contactNo"`
	Email      string `json:"email"`
	Occupation string `json:"occupation"`

	DonorPhn          string `json:"donorPhn"`
	DonorRelationship string `json:"donorRelationship"`

	Comorbidities   Comorbidities            `json:"comorbidities"`
	SystemicInquiry clinical.SystemicInquiry `json:"systemicInquiry"`
	DrugHistory     clinical.DrugHistory     `json:"drugHistory"`
	FamilyHistory   clinical.FamilyHistory   `json:"familyHistory"`
	SubstanceUse    clinical.SubstanceUse    `json:"substanceUse"`
	SocialHistory   clinical.SocialHistory   `json:"socialHistory"`
	RRT             RRT                      `json:"rrt"`
	Examination     clinical.Examination     `json:"examination"`
	Immunology      clinical.Immunology      `json:"immunology"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
