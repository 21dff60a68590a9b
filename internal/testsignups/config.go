package testsignups

import "time"

// Config holds configuration for the signup test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumSignups int           // Number of signups to generate
	AuditLimit int           // Number of audit entries to fetch
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for signups
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Signup represents a signup request to be submitted
type Signup struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

// ActivityDetails represents one activity as returned by the service
type ActivityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse represents the response from a successful signup
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents the response from a rejected signup
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// RosterChange represents one audit trail entry
type RosterChange struct {
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
	Action   string    `json:"action"`
	At       time.Time `json:"at"`
}

// Stats holds test statistics
type Stats struct {
	SignupsGenerated  int
	SignupsSubmitted  int
	SignupsSuccessful int
	SignupsConflicted int
	SignupsFailed     int
	RostersRetrieved  int
	RosterEntries     int
	AuditEntries      int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
