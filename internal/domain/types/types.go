// Package types contains common types used across the application
package types

import "time"

// ActivityDetails represents one activity as served by /activities
type ActivityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// RosterChange represents one audit trail entry as served by /audit
type RosterChange struct {
	ID       string    `json:"id"`
	Action   string    `json:"action"`
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}
