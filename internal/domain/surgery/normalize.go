package surgery

import (
	"strings"

	"github.com/ktreg/ktreg/internal/domain/clinical"
	"github.com/ktreg/ktreg/internal/forms"
)

// Normalize converts a possibly-partial surgery submission into the complete
// canonical record. Total over any input. Complication slots are always
// exactly six; the derived infection risk category is recomputed from the
// serology pairs regardless of what was submitted.
func Normalize(partial map[string]any) *Record {
	v := forms.AsValues(partial)

	rec := &Record{
		Patient:           normalizePatient(forms.Child(v, "patient")),
		MedicalHistory:    normalizeMedicalHistory(forms.Child(v, "medicalHistory")),
		RRT:               normalizeRRT(forms.Child(v, "rrt")),
		Transplant:        normalizeTransplant(forms.Child(v, "transplant")),
		Immunology:        clinical.NormalizeImmunology(forms.Child(v, "immunology")),
		InfectionScreen:   normalizeInfectionScreen(forms.Child(v, "infectionScreen")),
		Immunosuppression: normalizeImmunosuppression(forms.Child(v, "immunosuppression")),
		Prophylaxis:       normalizeProphylaxis(v),
		PreOpNotes:        forms.Str(v, "preOpNotes"),
		PostOp:            normalizePostOp(forms.Child(v, "postOp")),
		Complications:     normalizeComplications(v),
		Medications:       normalizeMedications(v),
		CompletedBy:       forms.Str(v, "completedBy"),
	}
	rec.InfectionScreen.RiskCategory = DeriveRiskCategory(rec.InfectionScreen)
	return rec
}

func normalizePatient(v forms.Values) PatientSnapshot {
	return PatientSnapshot{
		PHN:       forms.Str(v, "phn"),
		Name:      forms.Str(v, "name"),
		Age:       forms.Str(v, "age"),
		Gender:    forms.Str(v, "gender"),
		Dob:       forms.Str(v, "dob"),
		NicNo:     forms.Str(v, "nicNo"),
		Address:   forms.Str(v, "address"),
		ContactNo: forms.Str(v, "contactNo"),
	}
}

func normalizeMedicalHistory(v forms.Values) MedicalHistory {
	return MedicalHistory{
		DM:                 forms.Flag(v, "dm"),
		HTN:                forms.Flag(v, "htn"),
		IHD:                forms.Flag(v, "ihd"),
		DL:                 forms.Flag(v, "dl"),
		PreviousTransplant: forms.Flag(v, "previousTransplant"),
		Other:              forms.Str(v, "other"),
	}
}

func normalizeRRT(v forms.Values) PreTransplantRRT {
	return PreTransplantRRT{
		Modality:    forms.Str(v, "modality"),
		Duration:    forms.Str(v, "duration"),
		LastDate:    forms.Str(v, "lastDate"),
		Access:      forms.Str(v, "access"),
		UrineOutput: forms.Str(v, "urineOutput"),
	}
}

func normalizeTransplant(v forms.Values) TransplantEvent {
	return TransplantEvent{
		Date:              forms.Str(v, "date"),
		Surgeon:           forms.Str(v, "surgeon"),
		Unit:              forms.Str(v, "unit"),
		Side:              forms.Str(v, "side"),
		Type:              forms.Str(v, "type"),
		DonorRelationship: forms.Str(v, "donorRelationship"),
		WarmIschemiaTime:  forms.Str(v, "warmIschemiaTime"),
		ColdIschemiaTime:  forms.Str(v, "coldIschemiaTime"),
	}
}

func normalizeSerologyPair(v forms.Values) SerologyPair {
	return SerologyPair{
		Donor:     forms.Str(v, "donor"),
		Recipient: forms.Str(v, "recipient"),
	}
}

func normalizeInfectionScreen(v forms.Values) InfectionScreen {
	return InfectionScreen{
		CMV:        normalizeSerologyPair(forms.Child(v, "cmv")),
		EBV:        normalizeSerologyPair(forms.Child(v, "ebv")),
		TB:         forms.Str(v, "tb"),
		HIV:        forms.Str(v, "hiv"),
		HepatitisB: forms.Str(v, "hepatitisB"),
		HepatitisC: forms.Str(v, "hepatitisC"),
	}
}

func normalizeImmunosuppression(v forms.Values) Immunosuppression {
	return Immunosuppression{
		Induction:    forms.Str(v, "induction"),
		Tacrolimus:   forms.Flag(v, "tacrolimus"),
		Cyclosporine: forms.Flag(v, "cyclosporine"),
		MMF:          forms.Flag(v, "mmf"),
		Azathioprine: forms.Flag(v, "azathioprine"),
		Prednisolone: forms.Flag(v, "prednisolone"),
		Everolimus:   forms.Flag(v, "everolimus"),
	}
}

func normalizeProphylaxis(v forms.Values) []ProphylaxisRow {
	items := forms.List(v, "prophylaxis")
	rows := make([]ProphylaxisRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, ProphylaxisRow{
			Drug:     forms.Str(item, "drug"),
			Duration: forms.Str(item, "duration"),
			StopDate: forms.Str(item, "stopDate"),
		})
	}
	return rows
}

func normalizePostOp(v forms.Values) PostOp {
	return PostOp{
		DelayedGraftFunction: forms.Flag(v, "delayedGraftFunction"),
		DialysisRequired:     forms.Flag(v, "dialysisRequired"),
		AcuteRejection:       forms.Flag(v, "acuteRejection"),
		AcuteRejectionDetail: forms.Str(v, "acuteRejectionDetail"),
	}
}

func normalizeComplications(v forms.Values) []string {
	slots := make([]string, complicationSlots)
	raw, ok := forms.Get(v, "complications")
	if !ok {
		return slots
	}
	items, ok := raw.([]any)
	if !ok {
		return slots
	}
	for i := 0; i < len(items) && i < complicationSlots; i++ {
		if s, ok := items[i].(string); ok {
			slots[i] = s
		}
	}
	return slots
}

func normalizeMedications(v forms.Values) []Medication {
	items := forms.List(v, "medications")
	meds := make([]Medication, 0, len(items))
	for _, item := range items {
		meds = append(meds, Medication{
			Name:      forms.Str(item, "name"),
			Dose:      forms.Str(item, "dose"),
			Frequency: forms.Str(item, "frequency"),
		})
	}
	return meds
}

// DeriveRiskCategory classifies the serology panel. A CMV donor-positive,
// recipient-negative mismatch is the high-risk constellation; a fully
// negative panel is low risk; everything else is standard.
func DeriveRiskCategory(scr InfectionScreen) string {
	if positive(scr.CMV.Donor) && negative(scr.CMV.Recipient) {
		return RiskHigh
	}
	if positive(scr.EBV.Donor) && negative(scr.EBV.Recipient) {
		return RiskHigh
	}
	if negative(scr.CMV.Donor) && negative(scr.CMV.Recipient) &&
		negative(scr.EBV.Donor) && negative(scr.EBV.Recipient) &&
		!positive(scr.TB) && !positive(scr.HIV) &&
		!positive(scr.HepatitisB) && !positive(scr.HepatitisC) {
		return RiskLow
	}
	return RiskStandard
}

func positive(result string) bool {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "positive", "pos", "+", "reactive":
		return true
	}
	return false
}

func negative(result string) bool {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "negative", "neg", "-", "non-reactive", "nonreactive":
		return true
	}
	return false
}

// EmptyValues returns the wizard's default-filled form tree.
func EmptyValues() forms.Values {
	return forms.ToValues(Normalize(nil))
}
