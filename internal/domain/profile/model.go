package profile

import (
	"github.com/ktreg/ktreg/internal/domain/donor"
	"github.com/ktreg/ktreg/internal/domain/followup"
	"github.com/ktreg/ktreg/internal/domain/patient"
	"github.com/ktreg/ktreg/internal/domain/recipient"
	"github.com/ktreg/ktreg/internal/domain/surgery"
)

// DonorSection wraps the donor card. When Available is false the Record is
// the fully-typed empty shape, never a partially populated one.
type DonorSection struct {
	Available bool                   `json:"available"`
	Record    donor.AssessmentRecord `json:"record"`
}

type RecipientSection struct {
	Available bool                       `json:"available"`
	Record    recipient.AssessmentRecord `json:"record"`
}

type SurgerySection struct {
	Available bool           `json:"available"`
	Record    surgery.Record `json:"record"`
}

// PatientProfile is the read-only aggregation of one patient's clinical
// records. It is recomputed on every read and never stored. Every nested
// value is concrete, so renderers and exporters can walk it without nil
// checks.
type PatientProfile struct {
	Patient   patient.Patient  `json:"patient"`
	Donor     DonorSection     `json:"donor"`
	Recipient RecipientSection `json:"recipient"`
	Surgery   SurgerySection   `json:"surgery"`

	FollowUps      []*followup.Note `json:"followUps"`
	LatestFollowUp followup.Note    `json:"latestFollowUp"`
	HasFollowUps   bool             `json:"hasFollowUps"`
}
