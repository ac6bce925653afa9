// Package matching proposes tutors for a parent's request. It is a
// placeholder: a fixed scoring rule, or a single call to a remote function.
package matching

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
)

// MaxCandidates caps how many tutors are proposed per request.
const MaxCandidates = 3

type Candidate struct {
	TutorID uuid.UUID `json:"tutor_id"`
	Score   int       `json:"score"`
	Reasons []string  `json:"reasons,omitempty"`
}

type Matcher interface {
	Match(ctx context.Context, req *model.TutorRequest, tutors []*model.TutorSubmission) ([]Candidate, error)
}

// Summary is the text stored on the request after a run.
func Summary(req *model.TutorRequest, candidates []Candidate) string {
	if len(candidates) == 0 {
		return fmt.Sprintf("No tutor fits %s %s yet, we will keep looking", req.Subject, req.Level)
	}
	return fmt.Sprintf("Matched %d tutor(s) for %s %s", len(candidates), req.Subject, req.Level)
}

// IDs extracts tutor ids in rank order.
func IDs(candidates []Candidate) []uuid.UUID {
	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.TutorID
	}
	return ids
}
