package receipts

import (
	"time"
)

// Receipt is what the registry answered for one submitted document
type Receipt struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"doc_id"`
	DocumentType string    `json:"doc_type,omitempty"`
	StatusCode   int       `json:"status_code"`
	Body         string    `json:"body,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Accepted reports whether the registry answered with a 2xx status
func (r Receipt) Accepted() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
