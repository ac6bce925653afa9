package model

import (
	"fmt"
	"strings"
)

// Kind names one of the three record types.
type Kind string

const (
	KindParent  Kind = "parents"
	KindTutor   Kind = "tutors"
	KindRequest Kind = "requests"
)

// ParseKind accepts the plural form used in URLs.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(raw)) {
	case KindParent:
		return KindParent, true
	case KindTutor:
		return KindTutor, true
	case KindRequest:
		return KindRequest, true
	}
	return "", false
}

// StatusError is returned when a status string is not part of the enum.
type StatusError struct {
	Kind  Kind
	Value string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unknown %s status %q", strings.TrimSuffix(string(e.Kind), "s"), e.Value)
}

func normalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	// "canceled" is what the old admin screen sent
	if s == "canceled" {
		return string(ParentStatusCancelled)
	}
	return s
}

// StatusDisplay holds an emoji and label for a status.
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

var unknownDisplay = StatusDisplay{"❓", "Unknown"}

func (s ParentStatus) Display() StatusDisplay {
	displays := map[ParentStatus]StatusDisplay{
		ParentStatusPending:   {"⏳", "Pending"},
		ParentStatusApproved:  {"✅", "Approved"},
		ParentStatusMatched:   {"🤝", "Matched"},
		ParentStatusCancelled: {"❌", "Cancelled"},
		ParentStatusRejected:  {"🚫", "Rejected"},
	}
	if d, ok := displays[s]; ok {
		return d
	}
	return unknownDisplay
}

func (s TutorStatus) Display() StatusDisplay {
	displays := map[TutorStatus]StatusDisplay{
		TutorStatusPending:  {"⏳", "Pending review"},
		TutorStatusVerified: {"🔎", "Verified"},
		TutorStatusActive:   {"🟢", "Active"},
		TutorStatusRejected: {"🚫", "Rejected"},
	}
	if d, ok := displays[s]; ok {
		return d
	}
	return unknownDisplay
}

func (s RequestStatus) Display() StatusDisplay {
	displays := map[RequestStatus]StatusDisplay{
		RequestStatusAnalyzing: {"🧠", "Analyzing your request"},
		RequestStatusMatching:  {"🔍", "Looking for a tutor"},
		RequestStatusMatched:   {"🤝", "Tutor found"},
		RequestStatusCompleted: {"✔️", "Completed"},
	}
	if d, ok := displays[s]; ok {
		return d
	}
	return unknownDisplay
}
