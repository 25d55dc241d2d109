package donor

import (
	"github.com/ktreg/ktreg/internal/domain/clinical"
	"github.com/ktreg/ktreg/internal/forms"
)

// Normalize converts a possibly-partial donor record into the complete
// canonical shape. Total over any input: nil maps, missing sub-objects and
// null leaves all default. Identity and timestamps are repo-owned and not
// touched here.
func Normalize(partial map[string]any) *AssessmentRecord {
	v := forms.AsValues(partial)
	return &AssessmentRecord{
		PHN:        forms.Str(v, "phn"),
		Name:       forms.Str(v, "name"),
		Age:        forms.Str(v, "age"),
		Gender:     forms.Str(v, "gender"),
		Dob:        forms.Str(v, "dob"),
		NicNo:      forms.Str(v, "nicNo"),
		Address:    forms.Str(v, "address"),
		ContactNo:  forms.Str(v, "contactNo"),
		Email:      forms.Str(v, "email"),
		Occupation: forms.Str(v, "occupation"),

		RecipientPhn: forms.Str(v, "recipientPhn"),
		Relationship: forms.Str(v, "relationship"),

		Comorbidities:   clinical.NormalizeComorbidities(forms.Child(v, "comorbidities")),
		SystemicInquiry: clinical.NormalizeSystemicInquiry(forms.Child(v, "systemicInquiry")),
		DrugHistory:     clinical.NormalizeDrugHistory(forms.Child(v, "drugHistory")),
		FamilyHistory:   clinical.NormalizeFamilyHistory(forms.Child(v, "familyHistory")),
		SubstanceUse:    clinical.NormalizeSubstanceUse(forms.Child(v, "substanceUse")),
		SocialHistory:   clinical.NormalizeSocialHistory(forms.Child(v, "socialHistory")),
		Examination:     clinical.NormalizeExamination(forms.Child(v, "examination")),
		Immunology:      clinical.NormalizeImmunology(forms.Child(v, "immunology")),

		Status:            forms.Str(v, "status"),
		AssignedRecipient: forms.Str(v, "assignedRecipient"),
	}
}

// EmptyValues returns the wizard's default-filled form tree.
func EmptyValues() forms.Values {
	return forms.ToValues(Normalize(nil))
}
