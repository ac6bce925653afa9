package model

import (
	"time"

	"github.com/google/uuid"
)

type TutorStatus string

const (
	TutorStatusPending  TutorStatus = "pending"  // Application received
	TutorStatusVerified TutorStatus = "verified" // Certificates checked
	TutorStatusActive   TutorStatus = "active"   // Taking assignments
	TutorStatusRejected TutorStatus = "rejected"
)

var TutorStatuses = []TutorStatus{
	TutorStatusPending,
	TutorStatusVerified,
	TutorStatusActive,
	TutorStatusRejected,
}

func (s TutorStatus) Valid() bool {
	for _, known := range TutorStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Matchable reports whether the tutor may be proposed to parents.
func (s TutorStatus) Matchable() bool {
	return s == TutorStatusVerified || s == TutorStatusActive
}

func ParseTutorStatus(raw string) (TutorStatus, error) {
	s := TutorStatus(normalizeStatus(raw))
	if !s.Valid() {
		return "", &StatusError{Kind: KindTutor, Value: raw}
	}
	return s, nil
}

type TutorType string

const (
	TutorTypePartTime TutorType = "part_time"
	TutorTypeFullTime TutorType = "full_time"
	TutorTypeExMOE    TutorType = "ex_moe"
	TutorTypeMOE      TutorType = "moe"
)

// TutorSubmission is an application left by a tutor who wants assignments.
type TutorSubmission struct {
	ID                   uuid.UUID   `json:"id"`
	FullName             string      `json:"full_name"`
	Email                string      `json:"email"`
	Phone                string      `json:"phone"`
	HighestQualification string      `json:"highest_qualification"`
	TutorType            TutorType   `json:"tutor_type"`
	ExperienceYears      int         `json:"experience_years"`
	Subjects             []string    `json:"subjects"`
	Levels               []string    `json:"levels"`
	HourlyRate           int         `json:"hourly_rate"` // SGD per hour
	Bio                  string      `json:"bio"`
	Status               TutorStatus `json:"status"`
	AdminNotes           string      `json:"admin_notes"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}
