package forms

// Step sequences for the three clinical wizards. Paths are error keys; the
// per-kind canonical shapes live in the domain packages.

func hasRecipientSelected(v Values) bool { return !Empty(v, "recipientPhn") }
func hasDonorSelected(v Values) bool     { return !Empty(v, "donorPhn") }

var stepDefs = map[Kind][]Step{
	KindDonor: {
		{
			Name: "personal",
			Required: []Field{
				{Path: "name", Message: "name is required"},
				{Path: "age", Message: "age is required"},
				{Path: "nicNo", Message: "NIC number is required"},
				{Path: "gender", Message: "gender is required"},
				{Path: "contactNo", Message: "contact number is required"},
			},
		},
		{
			// The relation step only applies once the donor is being worked up
			// against a specific recipient.
			Name:    "relation",
			Visible: hasRecipientSelected,
			Required: []Field{
				{Path: "relationship", Message: "relationship to recipient is required", When: hasRecipientSelected},
			},
		},
		{Name: "history"},
		{Name: "examination"},
		{
			Name: "immunology",
			Required: []Field{
				{Path: "immunology.bloodGroup", Message: "blood group is required"},
			},
		},
		{Name: "confirm"},
	},

	KindRecipient: {
		{
			Name: "personal",
			Required: []Field{
				{Path: "name", Message: "name is required"},
				{Path: "age", Message: "age is required"},
				{Path: "nicNo", Message: "NIC number is required"},
				{Path: "gender", Message: "gender is required"},
				{Path: "dob", Message: "date of birth is required"},
				{Path: "contactNo", Message: "contact number is required"},
			},
		},
		{Name: "comorbidities"},
		{
			Name: "rrt",
			Required: []Field{
				{Path: "rrt.startDate", Message: "RRT start date is required"},
			},
		},
		{Name: "examination"},
		{
			Name: "immunology",
			Required: []Field{
				{Path: "immunology.bloodGroup", Message: "blood group is required"},
				{Path: "donorRelationship", Message: "donor relationship is required", When: hasDonorSelected},
			},
		},
		{Name: "confirm"},
	},

	KindSurgery: {
		{
			Name: "patient",
			Required: []Field{
				{Path: "phn", Message: "PHN is required"},
				{Path: "name", Message: "name is required"},
			},
		},
		{
			Name: "transplant",
			Required: []Field{
				{Path: "transplant.date", Message: "transplant date is required"},
				{Path: "transplant.surgeon", Message: "surgeon is required"},
				{Path: "transplant.unit", Message: "transplant unit is required"},
			},
		},
		{Name: "infectionScreen"},
		{Name: "immunosuppression"},
		{Name: "postOp"},
		{
			Name: "confirm",
			Required: []Field{
				{Path: "completedBy", Message: "completed by is required"},
			},
		},
	},
}
