package record

// Raw pairs one parsed-but-unnormalized export document with the name of the
// archive member it came from. The source name travels through normalization
// errors so skipped records can be traced back to their file.
type Raw struct {
	Source string
	Doc    map[string]any
}
