package domain

// BatchJobState is the coarse state of an asynchronous batch job as the
// reconciler sees it.
type BatchJobState string

const (
	BatchJobPending   BatchJobState = "pending"
	BatchJobCompleted BatchJobState = "completed"
	BatchJobFailed    BatchJobState = "failed"
)

// BatchJob is a snapshot of a submitted batch job.
type BatchJob struct {
	ID     string
	State  BatchJobState
	Status string // provider status, e.g. "in_progress", "expired"

	Total     int
	Completed int
	Failed    int
}

// BatchSubmission is one batch job to start: the JSONL task artifact and
// free-form metadata attached to the job.
type BatchSubmission struct {
	Name     string
	Tasks    []byte
	Metadata map[string]string
}
