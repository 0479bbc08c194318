package domain

// UploadResult accumulates the outcome of a best-effort bulk upload. A failed
// record is counted and identified but never aborts the rest of the batch.
type UploadResult struct {
	Uploaded  int
	Failed    int
	FailedIDs []string
}

// Merge folds another result into this one.
func (r *UploadResult) Merge(other UploadResult) {
	r.Uploaded += other.Uploaded
	r.Failed += other.Failed
	r.FailedIDs = append(r.FailedIDs, other.FailedIDs...)
}
