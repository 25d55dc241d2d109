package clinical

import "github.com/ktreg/ktreg/internal/forms"

// The normalize functions are total: they accept any partially-populated
// (or nil) object tree and return the complete canonical shape, defaulting
// absent booleans to false and absent strings to "".

func NormalizeComorbidities(v forms.Values) Comorbidities {
	return Comorbidities{
		DL:                 forms.Flag(v, "dl"),
		DM:                 forms.Flag(v, "dm"),
		PsychiatricIllness: forms.Flag(v, "psychiatricIllness"),
		HTN:                forms.Flag(v, "htn"),
		IHD:                forms.Flag(v, "ihd"),
	}
}

func NormalizeSystemicInquiry(v forms.Values) SystemicInquiry {
	cvs := forms.Child(v, "cardiovascular")
	resp := forms.Child(v, "respiratory")
	git := forms.Child(v, "gastrointestinal")
	neuro := forms.Child(v, "neurological")
	gu := forms.Child(v, "genitourinary")
	return SystemicInquiry{
		Cardiovascular: CardiovascularInquiry{
			ChestPain:     forms.Flag(cvs, "chestPain"),
			Dyspnoea:      forms.Flag(cvs, "dyspnoea"),
			Palpitations:  forms.Flag(cvs, "palpitations"),
			AnkleSwelling: forms.Flag(cvs, "ankleSwelling"),
		},
		Respiratory: RespiratoryInquiry{
			Cough:       forms.Flag(resp, "cough"),
			Haemoptysis: forms.Flag(resp, "haemoptysis"),
			Wheeze:      forms.Flag(resp, "wheeze"),
		},
		Gastrointestinal: GastroInquiry{
			Dyspepsia:    forms.Flag(git, "dyspepsia"),
			AlteredBowel: forms.Flag(git, "alteredBowel"),
			Melaena:      forms.Flag(git, "melaena"),
		},
		Neurological: NeuroInquiry{
			Headache:   forms.Flag(neuro, "headache"),
			Seizures:   forms.Flag(neuro, "seizures"),
			VisualLoss: forms.Flag(neuro, "visualLoss"),
			LimbWeak:   forms.Flag(neuro, "limbWeakness"),
		},
		Genitourinary: GenitourinaryInquiry{
			Dysuria:    forms.Flag(gu, "dysuria"),
			Haematuria: forms.Flag(gu, "haematuria"),
			Nocturia:   forms.Flag(gu, "nocturia"),
		},
		SexualHistory: forms.Str(v, "sexualHistory"),
	}
}

func NormalizeDrugHistory(v forms.Values) DrugHistory {
	return DrugHistory{
		CurrentMedications: forms.Str(v, "currentMedications"),
		Allergies:          forms.Str(v, "allergies"),
		NSAIDUse:           forms.Flag(v, "nsaidUse"),
		NativeMedicine:     forms.Flag(v, "nativeMedicine"),
	}
}

func NormalizeFamilyHistory(v forms.Values) FamilyHistory {
	return FamilyHistory{
		DM:           forms.Str(v, "dm"),
		HTN:          forms.Str(v, "htn"),
		RenalDisease: forms.Str(v, "renalDisease"),
		IHD:          forms.Str(v, "ihd"),
		Other:        forms.Str(v, "other"),
	}
}

func NormalizeSubstanceUse(v forms.Values) SubstanceUse {
	return SubstanceUse{
		Smoking:      forms.Flag(v, "smoking"),
		PackYears:    forms.Str(v, "packYears"),
		Alcohol:      forms.Flag(v, "alcohol"),
		AlcoholUnits: forms.Str(v, "alcoholUnits"),
		Other:        forms.Str(v, "other"),
	}
}

func NormalizeSocialHistory(v forms.Values) SocialHistory {
	return SocialHistory{
		Occupation:    forms.Str(v, "occupation"),
		MaritalStatus: forms.Str(v, "maritalStatus"),
		Dependents:    forms.Str(v, "dependents"),
		MonthlyIncome: forms.Str(v, "monthlyIncome"),
	}
}

func NormalizeExamination(v forms.Values) Examination {
	anthro := forms.Child(v, "anthropometry")
	general := forms.Child(v, "general")
	cvs := forms.Child(v, "cvs")
	resp := forms.Child(v, "respiratory")
	abd := forms.Child(v, "abdomen")
	neuro := forms.Child(v, "neurology")
	return Examination{
		Anthropometry: Anthropometry{
			Height: forms.Str(anthro, "height"),
			Weight: forms.Str(anthro, "weight"),
			BMI:    forms.Str(anthro, "bmi"),
		},
		General: GeneralExam{
			Pallor:          forms.Flag(general, "pallor"),
			Icterus:         forms.Flag(general, "icterus"),
			Clubbing:        forms.Flag(general, "clubbing"),
			Lymphadenopathy: forms.Flag(general, "lymphadenopathy"),
			Oedema:          forms.Flag(general, "oedema"),
		},
		CVS: CVSExam{
			BP:        forms.Str(cvs, "bp"),
			PulseRate: forms.Str(cvs, "pulseRate"),
			Murmurs:   forms.Flag(cvs, "murmurs"),
		},
		Respiratory: RespExam{
			Auscultation: forms.Str(resp, "auscultation"),
			Crepitations: forms.Flag(resp, "crepitations"),
		},
		Abdomen: AbdomenExam{
			Organomegaly:      forms.Flag(abd, "organomegaly"),
			BallotableKidneys: forms.Flag(abd, "ballotableKidneys"),
			Notes:             forms.Str(abd, "notes"),
		},
		Neurology: NeuroExam{
			FocalDeficit: forms.Flag(neuro, "focalDeficit"),
			Notes:        forms.Str(neuro, "notes"),
		},
		Notes: forms.Str(v, "notes"),
	}
}

func NormalizeHLARow(v forms.Values) HLARow {
	return HLARow{
		A:  forms.Str(v, "a"),
		B:  forms.Str(v, "b"),
		C:  forms.Str(v, "c"),
		DR: forms.Str(v, "dr"),
		DQ: forms.Str(v, "dq"),
		DP: forms.Str(v, "dp"),
	}
}

func NormalizeHLATyping(v forms.Values) HLATyping {
	return HLATyping{
		Donor:      NormalizeHLARow(forms.Child(v, "donor")),
		Recipient:  NormalizeHLARow(forms.Child(v, "recipient")),
		Conclusion: NormalizeHLARow(forms.Child(v, "conclusion")),
	}
}

func NormalizeImmunology(v forms.Values) Immunology {
	return Immunology{
		BloodGroup: forms.Str(v, "bloodGroup"),
		Crossmatch: forms.Str(v, "crossmatch"),
		HLATyping:  NormalizeHLATyping(forms.Child(v, "hlaTyping")),
		PRAPre:     forms.Str(v, "praPre"),
		PRAPost:    forms.Str(v, "praPost"),
		DSA:        forms.Str(v, "dsa"),
		RiskLevel:  forms.Str(v, "riskLevel"),
	}
}
