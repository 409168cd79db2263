package scheduler

import "context"

// Job represents a unit of work that can be executed by the worker pool.
// This interface allows for extensibility - different types of jobs can be
// implemented (e.g., sweep jobs, cleanup jobs, reminder jobs).
type Job interface {
	// Execute runs the job with the given context.
	// Context should be respected for cancellation and timeouts.
	Execute(ctx context.Context) error

	// OwnerID returns the owner whose data this job processes.
	// Used for logging and tracking.
	OwnerID() int64

	// Description returns a human-readable description of the job.
	// Used for logging purposes.
	Description() string
}
