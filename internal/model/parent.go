package model

import (
	"time"

	"github.com/google/uuid"
)

type ParentStatus string

const (
	ParentStatusPending   ParentStatus = "pending"   // New lead, nobody has called back yet
	ParentStatusApproved  ParentStatus = "approved"  // Details checked by an admin
	ParentStatusMatched   ParentStatus = "matched"   // A tutor has been assigned
	ParentStatusCancelled ParentStatus = "cancelled" // Parent withdrew
	ParentStatusRejected  ParentStatus = "rejected"  // Spam or out of service area
)

// ParentStatuses lists every parent status in dashboard order.
var ParentStatuses = []ParentStatus{
	ParentStatusPending,
	ParentStatusApproved,
	ParentStatusMatched,
	ParentStatusCancelled,
	ParentStatusRejected,
}

func (s ParentStatus) Valid() bool {
	for _, known := range ParentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseParentStatus converts raw input into a known parent status.
func ParseParentStatus(raw string) (ParentStatus, error) {
	s := ParentStatus(normalizeStatus(raw))
	if !s.Valid() {
		return "", &StatusError{Kind: KindParent, Value: raw}
	}
	return s, nil
}

type Program string

const (
	ProgramTuition    Program = "tuition"
	ProgramEnrichment Program = "enrichment"
)

// ParentSubmission is a lead left by a parent through the signup form.
type ParentSubmission struct {
	ID               uuid.UUID    `json:"id"`
	ParentName       string       `json:"parent_name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	PreferredContact string       `json:"preferred_contact"` // whatsapp, phone, email
	ChildName        string       `json:"child_name"`
	ChildLevel       string       `json:"child_level"`
	ChildSchool      string       `json:"child_school"`
	Program          Program      `json:"program"`
	Subjects         []string     `json:"subjects"`
	Location         string       `json:"location"`
	Preferences      string       `json:"preferences"`
	Status           ParentStatus `json:"status"`
	AdminNotes       string       `json:"admin_notes"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
