package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the identity record all clinical entities hang off, keyed by the
// Personal Health Number. Demographics change through explicit updates only;
// patients are never deleted.
type Patient struct {
	ID         uuid.UUID `json:"id"`
	PHN        string    `json:"phn"`
	Name       string    `json:"name"`
	Age        string    `json:"age"`
	Gender     string    `json:"gender"`
	Dob        string    `json:"dob"`
	NicNo      string    `json:"nicNo"`
	Address    string    `json:"address"`
	ContactNo  string    `json:"contactNo"`
	Email      string    `json:"email"`
	Occupation string    `json:"occupation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
