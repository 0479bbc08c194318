package domain

import "time"

// JobStatus is the state of a remote scrape run as reported by the backend,
// plus the two locally assigned outcomes FAILED (transport/decode errors are
// folded into it) and TIMED_OUT (wall-clock budget exceeded).
type JobStatus string

const (
	JobStatusSubmitted JobStatus = "SUBMITTED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusTimedOut  JobStatus = "TIMED_OUT"
)

// Terminal reports whether the remote job can make no further transition.
// TIMED_OUT is a local verdict, not a remote terminal state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// ScrapeJob tracks one hashtag's remote run for the duration of its polling
// loop. It is never persisted.
type ScrapeJob struct {
	Hashtag   string
	RunID     string
	Status    JobStatus
	StartedAt time.Time
}
