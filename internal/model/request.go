package model

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusAnalyzing RequestStatus = "analyzing" // Waiting for the matcher
	RequestStatusMatching  RequestStatus = "matching"  // Matcher ran, still looking
	RequestStatusMatched   RequestStatus = "matched"   // Candidates proposed
	RequestStatusCompleted RequestStatus = "completed" // Closed by an admin
)

var RequestStatuses = []RequestStatus{
	RequestStatusAnalyzing,
	RequestStatusMatching,
	RequestStatusMatched,
	RequestStatusCompleted,
}

func (s RequestStatus) Valid() bool {
	for _, known := range RequestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseRequestStatus(raw string) (RequestStatus, error) {
	s := RequestStatus(normalizeStatus(raw))
	if !s.Valid() {
		return "", &StatusError{Kind: KindRequest, Value: raw}
	}
	return s, nil
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// TutorRequest is a parent's ask for a tutor in one subject at one level.
type TutorRequest struct {
	ID                 uuid.UUID     `json:"id"`
	ParentSubmissionID *uuid.UUID    `json:"parent_submission_id,omitempty"`
	ParentName         string        `json:"parent_name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Subject            string        `json:"subject"`
	Level              string        `json:"level"`
	Urgency            Urgency       `json:"urgency"`
	BudgetMin          int           `json:"budget_min"` // SGD per hour, 0 = not given
	BudgetMax          int           `json:"budget_max"`
	Notes              string        `json:"notes"`
	Status             RequestStatus `json:"status"`
	MatchedTutorIDs    []uuid.UUID   `json:"matched_tutor_ids"`
	MatchSummary       string        `json:"match_summary"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// HasBudget reports whether the parent gave any budget bound.
func (r *TutorRequest) HasBudget() bool {
	return r.BudgetMin > 0 || r.BudgetMax > 0
}
