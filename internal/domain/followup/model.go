package followup

import (
	"time"

	"github.com/google/uuid"
)

// Note is one dated clinical follow-up entry. Notes are append-only: they
// are never edited or removed once written.
type Note struct {
	ID        uuid.UUID `json:"id"`
	PHN       string    `json:"phn"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter narrows a patient's note list: case-insensitive free-text substring
// plus an inclusive date range, applied by the repository's query. Zero value
// matches everything.
type Filter struct {
	Text string
	From string
	To   string
}
