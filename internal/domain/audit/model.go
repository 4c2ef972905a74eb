// Package audit keeps a de-identified trail of completed consultations: which
// service was chosen and how it was triaged, never who the patient was.
package audit

import (
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RequestID   string    `db:"request_id" json:"request_id,omitempty"`
	Service     string    `db:"service" json:"service"`
	Disposition string    `db:"disposition" json:"disposition"`
	UTIStatus   string    `db:"uti_status" json:"uti_status"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}
