package matching

import (
	"context"
	"sort"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/content"
	"github.com/Freeeeeet/tuition_site/internal/model"
)

const (
	scoreSubject       = 40
	scoreLevelExact    = 30
	scoreLevelBand     = 15
	scoreBudget        = 20
	scoreMaxExp        = 10
	scoreUrgentFTBonus = 5
)

// RuleMatcher scores tutors with fixed weights. Tutors that do not teach
// the subject, or are not verified/active, are never proposed.
type RuleMatcher struct {
	limit int
}

func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{limit: MaxCandidates}
}

type scored struct {
	Candidate
	experience int
	name       string
}

func (m *RuleMatcher) Match(ctx context.Context, req *model.TutorRequest, tutors []*model.TutorSubmission) ([]Candidate, error) {
	var pool []scored
	for _, t := range tutors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c, ok := m.score(req, t); ok {
			pool = append(pool, scored{Candidate: c, experience: t.ExperienceYears, name: t.FullName})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		if pool[i].experience != pool[j].experience {
			return pool[i].experience > pool[j].experience
		}
		return pool[i].name < pool[j].name
	})

	if len(pool) > m.limit {
		pool = pool[:m.limit]
	}
	out := make([]Candidate, len(pool))
	for i, s := range pool {
		out[i] = s.Candidate
	}
	return out, nil
}

func (m *RuleMatcher) score(req *model.TutorRequest, t *model.TutorSubmission) (Candidate, bool) {
	if !t.Status.Matchable() || !containsFold(t.Subjects, req.Subject) {
		return Candidate{}, false
	}

	c := Candidate{TutorID: t.ID, Score: scoreSubject, Reasons: []string{"teaches " + req.Subject}}

	switch {
	case containsFold(t.Levels, req.Level):
		c.Score += scoreLevelExact
		c.Reasons = append(c.Reasons, "teaches "+req.Level)
	case teachesBand(t.Levels, model.LevelBand(req.Level)):
		c.Score += scoreLevelBand
		c.Reasons = append(c.Reasons, "teaches "+model.LevelBand(req.Level)+" levels")
	default:
		return Candidate{}, false
	}

	if withinBudget(req, t.HourlyRate) {
		c.Score += scoreBudget
		c.Reasons = append(c.Reasons, "within budget")
	}

	exp := t.ExperienceYears
	if exp > scoreMaxExp {
		exp = scoreMaxExp
	}
	if exp > 0 {
		c.Score += exp
	}

	if req.Urgency == model.UrgencyUrgent && t.TutorType == model.TutorTypeFullTime {
		c.Score += scoreUrgentFTBonus
		c.Reasons = append(c.Reasons, "full-time, available sooner")
	}
	return c, true
}

// withinBudget falls back to the pricing guide for the level when the
// parent gave no budget.
func withinBudget(req *model.TutorRequest, rate int) bool {
	if !req.HasBudget() {
		return content.BandFor(req.Level).Contains(rate)
	}
	if req.BudgetMin > 0 && rate < req.BudgetMin {
		return false
	}
	if req.BudgetMax > 0 && rate > req.BudgetMax {
		return false
	}
	return true
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

func teachesBand(levels []string, band string) bool {
	if band == model.BandOther {
		return false
	}
	for _, l := range levels {
		if model.LevelBand(l) == band {
			return true
		}
	}
	return false
}
