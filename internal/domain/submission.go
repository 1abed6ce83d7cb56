package domain

import (
	"strconv"
	"time"
)

// Submission represents one prejoin signup captured from the landing page.
type Submission struct {
	ID        string
	FullName  string
	Email     string
	Consent   bool
	UserAgent string
	IP        *string
	CreatedAt time.Time
}

// ExportHeader is the CSV header row for submission exports.
var ExportHeader = []string{"id", "full_name", "email", "consent", "created_at", "user_agent", "ip"}

// ExportRecord returns the submission as a CSV record matching
// ExportHeader's column order.
func (s *Submission) ExportRecord() []string {
	ip := ""
	if s.IP != nil {
		ip = *s.IP
	}
	return []string{
		s.ID,
		s.FullName,
		s.Email,
		strconv.FormatBool(s.Consent),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UserAgent,
		ip,
	}
}
