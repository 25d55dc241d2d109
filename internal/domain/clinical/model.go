// Package clinical holds the questionnaire sub-shapes shared by the donor and
// recipient assessments and the surgery record. All leaves are value types so
// the zero value of every struct is its fully-defaulted canonical form: no
// pointer, no nil, every key present when serialized.
package clinical

// Comorbidities is the base named-flag set shared by donor and recipient.
type Comorbidities struct {
	DL                 bool `json:"dl"`
	DM                 bool `json:"dm"`
	PsychiatricIllness bool `json:"psychiatricIllness"`
	HTN                bool `json:"htn"`
	IHD                bool `json:"ihd"`
}

// SystemicInquiry groups named boolean findings by body system.
type SystemicInquiry struct {
	Cardiovascular   CardiovascularInquiry `json:"cardiovascular"`
	Respiratory      RespiratoryInquiry    `json:"respiratory"`
	Gastrointestinal GastroInquiry         `json:"gastrointestinal"`
	Neurological     NeuroInquiry          `json:"neurological"`
	Genitourinary    GenitourinaryInquiry  `json:"genitourinary"`
	SexualHistory    string                `json:"sexualHistory"`
}

type CardiovascularInquiry struct {
	ChestPain     bool `json:"chestPain"`
	Dyspnoea      bool `json:"dyspnoea"`
	Palpitations  bool `json:"palpitations"`
	AnkleSwelling bool `json:"ankleSwelling"`
}

type RespiratoryInquiry struct {
	Cough       bool `json:"cough"`
	Haemoptysis bool `json:"haemoptysis"`
	Wheeze      bool `json:"wheeze"`
}

type GastroInquiry struct {
	Dyspepsia    bool `json:"dyspepsia"`
	AlteredBowel bool `json:"alteredBowel"`
	Melaena      bool `json:"melaena"`
}

type NeuroInquiry struct {
	Headache   bool `json:"headache"`
	Seizures   bool `json:"seizures"`
	VisualLoss bool `json:"visualLoss"`
	LimbWeak   bool `json:"limbWeakness"`
}

type GenitourinaryInquiry struct {
	Dysuria    bool `json:"dysuria"`
	Haematuria bool `json:"haematuria"`
	Nocturia   bool `json:"nocturia"`
}

// DrugHistory covers current medication and allergy history.
type DrugHistory struct {
	CurrentMedications string `json:"currentMedications"`
	Allergies          string `json:"allergies"`
	NSAIDUse           bool   `json:"nsaidUse"`
	NativeMedicine     bool   `json:"nativeMedicine"`
}

// FamilyHistory is free text per tracked condition.
type FamilyHistory struct {
	DM           string `json:"dm"`
	HTN          string `json:"htn"`
	RenalDisease string `json:"renalDisease"`
	IHD          string `json:"ihd"`
	Other        string `json:"other"`
}

type SubstanceUse struct {
	Smoking      bool   `json:"smoking"`
	PackYears    string `json:"packYears"`
	Alcohol      bool   `json:"alcohol"`
	AlcoholUnits string `json:"alcoholUnits"`
	Other        string `json:"other"`
}

type SocialHistory struct {
	Occupation    string `json:"occupation"`
	MaritalStatus string `json:"maritalStatus"`
	Dependents    string `json:"dependents"`
	MonthlyIncome string `json:"monthlyIncome"`
}

// Examination is the physical examination: anthropometrics plus per-system
// findings and free text.
type Examination struct {
	Anthropometry Anthropometry `json:"anthropometry"`
	General       GeneralExam   `json:"general"`
	CVS           CVSExam       `json:"cvs"`
	Respiratory   RespExam      `json:"respiratory"`
	Abdomen       AbdomenExam   `json:"abdomen"`
	Neurology     NeuroExam     `json:"neurology"`
	Notes         string        `json:"notes"`
}

type Anthropometry struct {
	Height string `json:"height"`
	Weight string `json:"weight"`
	BMI    string `json:"bmi"`
}

type GeneralExam struct {
	Pallor          bool `json:"pallor"`
	Icterus         bool `json:"icterus"`
	Clubbing        bool `json:"clubbing"`
	Lymphadenopathy bool `json:"lymphadenopathy"`
	Oedema          bool `json:"oedema"`
}

type CVSExam struct {
	BP        string `json:"bp"`
	PulseRate string `json:"pulseRate"`
	Murmurs   bool   `json:"murmurs"`
}

type RespExam struct {
	Auscultation string `json:"auscultation"`
	Crepitations bool   `json:"crepitations"`
}

type AbdomenExam struct {
	Organomegaly      bool   `json:"organomegaly"`
	BallotableKidneys bool   `json:"ballotableKidneys"`
	Notes             string `json:"notes"`
}

type NeuroExam struct {
	FocalDeficit bool   `json:"focalDeficit"`
	Notes        string `json:"notes"`
}

// HLARow is one party's typing across the six compared loci. The six keys are
// always present; normalization can only fill them, never drop one.
type HLARow struct {
	A  string `json:"a"`
	B  string `json:"b"`
	C  string `json:"c"`
	DR string `json:"dr"`
	DQ string `json:"dq"`
	DP string `json:"dp"`
}

// HLATyping compares donor and recipient typing with the lab's conclusion.
type HLATyping struct {
	Donor      HLARow `json:"donor"`
	Recipient  HLARow `json:"recipient"`
	Conclusion HLARow `json:"conclusion"`
}

// Immunology is the immunological workup common to all three records.
type Immunology struct {
	BloodGroup string    `json:"bloodGroup"`
	Crossmatch string    `json:"crossmatch"`
	HLATyping  HLATyping `json:"hlaTyping"`
	PRAPre     string    `json:"praPre"`
	PRAPost    string    `json:"praPost"`
	DSA        string    `json:"dsa"`
	RiskLevel  string    `json:"riskLevel"`
}
