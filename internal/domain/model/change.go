package model

import "time"

// Actions recorded on the roster audit trail.
const (
	ActionSignup     = "signup"
	ActionUnregister = "unregister"
)

// RosterChange records one successful roster mutation.
type RosterChange struct {
	ID       string    // unique id assigned when the change is recorded
	Action   string    // ActionSignup or ActionUnregister
	Activity string    // activity name
	Email    string    // student email
	At       time.Time // when the registry applied the change
}
