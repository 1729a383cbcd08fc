package models

import "fmt"

// Job statuses. A job starts open, is filled when an application is accepted,
// and can be closed from either state.
const (
	JobStatusOpen   = "open"
	JobStatusFilled = "filled"
	JobStatusClosed = "closed"
)

// Application statuses. Transitions only move out of pending.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

var jobTransitions = map[string][]string{
	JobStatusOpen:   {JobStatusFilled, JobStatusClosed},
	JobStatusFilled: {JobStatusClosed},
	JobStatusClosed: {},
}

var applicationTransitions = map[string][]string{
	ApplicationStatusPending:  {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted: {},
	ApplicationStatusRejected: {},
}

// IsValidJobStatus reports whether s is a known job status
func IsValidJobStatus(s string) bool {
	_, ok := jobTransitions[s]
	return ok
}

// IsValidApplicationStatus reports whether s is a known application status
func IsValidApplicationStatus(s string) bool {
	_, ok := applicationTransitions[s]
	return ok
}

// ValidateJobTransition returns an error when the move from one job status
// to another is not allowed
func ValidateJobTransition(from, to string) error {
	return validateTransition(jobTransitions, from, to)
}

// ValidateApplicationTransition returns an error when the move from one
// application status to another is not allowed
func ValidateApplicationTransition(from, to string) error {
	return validateTransition(applicationTransitions, from, to)
}

func validateTransition(table map[string][]string, from, to string) error {
	allowed, ok := table[from]
	if !ok {
		return fmt.Errorf("unknown status %q", from)
	}
	if from == to {
		return nil
	}
	for _, next := range allowed {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("cannot transition from %q to %q", from, to)
}
