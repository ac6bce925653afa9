package state

import "time"

// UserState is the dialog a user is currently in.
type UserState string

const (
	StateNone   UserState = ""       // no open dialog
	StateWizard UserState = "wizard" // filling in one of the forms
)

// Dialog data keys
const (
	KeySession = "session" // *wizard.Session
)

// UserData holds per-user values for the open dialog.
type UserData struct {
	State     UserState
	Data      map[string]interface{}
	UpdatedAt time.Time
}
