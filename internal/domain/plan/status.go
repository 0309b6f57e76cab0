package plan

// Status represents the lifecycle status of a campaign plan.
type Status string

const (
	// StatusQueued is set at creation; the plan is waiting for a generation
	// worker to pick it up.
	StatusQueued Status = "QUEUED"
	// StatusInProgress is set by the worker when generation begins.
	StatusInProgress Status = "IN_PROGRESS"

	// Terminal states (no further transitions allowed)
	StatusComplete Status = "COMPLETE"
	StatusFailed   Status = "FAILED"
)

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// IsValid reports whether the value is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusQueued, StatusInProgress, StatusComplete, StatusFailed:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// validTransitions defines the transitions the generation worker drives.
// The service persists whatever the worker writes; the worker itself uses
// this table to avoid resurrecting terminal plans.
var validTransitions = map[Status][]Status{
	StatusQueued:     {StatusInProgress, StatusComplete, StatusFailed},
	StatusInProgress: {StatusComplete, StatusFailed},
	StatusComplete:   {},
	StatusFailed:     {},
}

// CanTransitionTo checks if a transition from current status to target status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}
