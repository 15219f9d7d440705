// Package loadtest drives concurrent signups and unregistrations against a
// running activities server and verifies the resulting rosters.
package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL         string        // Base URL of the service
	NumStudents     int           // Number of generated students
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout
	DuplicateEvery  int           // Every Nth student also retries its signup; 0 disables
	UnregisterEvery int           // Every Nth student unregisters again; 0 disables
	EmailDomain     string        // Domain for generated emails
	LogFile         string        // Log file for run output
	Verbose         bool          // Enable verbose logging
}

// Job is one planned request against the signup endpoint.
type Job struct {
	Activity   string
	Email      string
	Unregister bool
}

// Outcome classifies a response to a Job.
type Outcome string

// Outcomes reported by the signup endpoint.
const (
	OutcomeOK            Outcome = "ok"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeFull          Outcome = "full"
	OutcomeNotRegistered Outcome = "not_registered"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeFailed        Outcome = "failed"
)

// Activity mirrors the listing payload.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Stats holds run statistics.
type Stats struct {
	Students    int
	Signups     int
	Duplicates  int
	Full        int
	Unregisters int
	Failed      int
	Violations  int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}
