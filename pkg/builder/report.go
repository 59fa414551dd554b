package builder

// SkippedRecord identifies one record dropped from a batch and why, so the
// caller can audit omissions. ElabID is best-effort: empty when the record's
// identifier was the very thing that could not be extracted.
type SkippedRecord struct {
	Source string
	ElabID string
	Reason string
}

// Report summarizes one Build run: how many records made it into the graph,
// how many triples they contributed, and which records were skipped.
type Report struct {
	Records int
	Triples int
	Skipped []SkippedRecord
}

func (r *Report) skip(source, elabid string, err error) {
	r.Skipped = append(r.Skipped, SkippedRecord{Source: source, ElabID: elabid, Reason: err.Error()})
}

// SkippedCount returns the number of records dropped from the batch
func (r *Report) SkippedCount() int {
	return len(r.Skipped)
}
