package donor

import (
	"time"

	"github.com/google/uuid"

	"github.com/ktreg/ktreg/internal/domain/clinical"
)

// Assignment statuses a donor moves through while being worked up.
const (
	StatusAvailable  = "available"
	StatusEvaluating = "evaluating"
	StatusAssigned   = "assigned"
	StatusRejected   = "rejected"
)

// AssessmentRecord is one donor's full clinical questionnaire. Clinical
// leaves are value types: the zero record is the canonical default-filled
// shape, and serialization always emits every key.
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

	RecipientPhn string `json:"recipientPhn"`
	Relationship string `json:"relationship"`

	Comorbidities   clinical.Comorbidities   `json:"comorbidities"`
	SystemicInquiry clinical.SystemicInquiry `json:"systemicInquiry"`
	DrugHistory     clinical.DrugHistory     `json:"drugHistory"`
	FamilyHistory   clinical.FamilyHistory   `json:"familyHistory"`
	SubstanceUse    clinical.SubstanceUse    `json:"substanceUse"`
	SocialHistory   clinical.SocialHistory   `json:"socialHistory"`
	Examination     clinical.Examination     `json:"examination"`
	Immunology      clinical.Immunology      `json:"immunology"`

	Status            string `json:"status"`
	AssignedRecipient string `json:"assignedRecipient"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// validStatuses guards assignment transitions.
var validStatuses = map[string]bool{
	StatusAvailable: true, StatusEvaluating: true, StatusAssigned: true, StatusRejected: true,
}

// allowedTransitions maps a current status to the statuses it may move to.
// Rejection is reachable from anywhere; rejected is terminal.
var allowedTransitions = map[string][]string{
	StatusAvailable:  {StatusEvaluating, StatusRejected},
	StatusEvaluating: {StatusAssigned, StatusAvailable, StatusRejected},
	StatusAssigned:   {StatusAvailable, StatusRejected},
	StatusRejected:   {},
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
