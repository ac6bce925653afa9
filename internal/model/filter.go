package model

import "strings"

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListFilter narrows an admin table view. Status is matched exactly,
// Query as a case-insensitive substring of the searchable text fields.
type ListFilter struct {
	Status string
	Query  string
	Limit  int
	Offset int
}

// Normalize clamps paging values and trims the query.
func (f ListFilter) Normalize() ListFilter {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.Query = strings.TrimSpace(f.Query)
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// MatchesQuery reports whether any of the fields contains the query.
func (f ListFilter) MatchesQuery(fields ...string) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// SearchFields returns the text columns used by free-text search.
func (p *ParentSubmission) SearchFields() []string {
	return append([]string{p.ParentName, p.Email, p.Phone, p.ChildName, p.ChildLevel, p.Location}, p.Subjects...)
}

func (t *TutorSubmission) SearchFields() []string {
	fields := []string{t.FullName, t.Email, t.Phone, t.HighestQualification}
	fields = append(fields, t.Subjects...)
	return append(fields, t.Levels...)
}

func (r *TutorRequest) SearchFields() []string {
	return []string{r.ParentName, r.Email, r.Phone, r.Subject, r.Level}
}

// StatusCounts maps a status value to the number of records holding it.
type StatusCounts map[string]int

func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
