package recipient

import (
	"github.com/ktreg/ktreg/internal/domain/clinical"
	"github.com/ktreg/ktreg/internal/forms"
)

// Normalize converts a possibly-partial recipient record into the complete
// canonical shape. Total over any input.
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

		DonorPhn:          forms.Str(v, "donorPhn"),
		DonorRelationship: forms.Str(v, "donorRelationship"),

		Comorbidities:   normalizeComorbidities(forms.Child(v, "comorbidities")),
		SystemicInquiry: clinical.NormalizeSystemicInquiry(forms.Child(v, "systemicInquiry")),
		DrugHistory:     clinical.NormalizeDrugHistory(forms.Child(v, "drugHistory")),
		FamilyHistory:   clinical.NormalizeFamilyHistory(forms.Child(v, "familyHistory")),
		SubstanceUse:    clinical.NormalizeSubstanceUse(forms.Child(v, "substanceUse")),
		SocialHistory:   clinical.NormalizeSocialHistory(forms.Child(v, "socialHistory")),
		RRT:             normalizeRRT(forms.Child(v, "rrt")),
		Examination:     clinical.NormalizeExamination(forms.Child(v, "examination")),
		Immunology:      clinical.NormalizeImmunology(forms.Child(v, "immunology")),
	}
}

func normalizeComorbidities(v forms.Values) Comorbidities {
	dm := forms.Child(v, "dmDetail")
	ihd := forms.Child(v, "ihdDetail")
	cld := forms.Child(v, "cld")
	return Comorbidities{
		Comorbidities: clinical.NormalizeComorbidities(v),
		DMDetail: DMDetail{
			Duration:    forms.Str(dm, "duration"),
			Retinopathy: forms.Flag(dm, "retinopathy"),
			Nephropathy: forms.Flag(dm, "nephropathy"),
			Neuropathy:  forms.Flag(dm, "neuropathy"),
			FootDisease: forms.Flag(dm, "footDisease"),
		},
		IHDDetail: IHDDetail{
			ECG:        forms.Str(ihd, "ecg"),
			Echo:       forms.Str(ihd, "echo"),
			Angiogram:  forms.Str(ihd, "angiogram"),
			StressTest: forms.Str(ihd, "stressTest"),
		},
		CLD: CLDDetail{
			Present: forms.Flag(cld, "present"),
			Cause:   forms.Str(cld, "cause"),
			Stage:   forms.Str(cld, "stage"),
		},
	}
}

func normalizeRRT(v forms.Values) RRT {
	return RRT{
		Hemodialysis:       forms.Flag(v, "hemodialysis"),
		PeritonealDialysis: forms.Flag(v, "peritonealDialysis"),
		AVFistula:          forms.Flag(v, "avFistula"),
		AVGraft:            forms.Flag(v, "avGraft"),
		PermCatheter:       forms.Flag(v, "permCatheter"),
		TempCatheter:       forms.Flag(v, "tempCatheter"),
		StartDate:          forms.Str(v, "startDate"),
		Complications:      forms.Str(v, "complications"),
	}
}

// EmptyValues returns the wizard's default-filled form tree.
func EmptyValues() forms.Values {
	return forms.ToValues(Normalize(nil))
}
