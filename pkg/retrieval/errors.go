package retrieval

// ValidationError reports invalid search input (e.g. non-positive k).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IndexCorruptError reports a persisted bundle whose header, vectors and
// metadata disagree. Fatal at load time: the process should refuse to start
// rather than serve wrong results.
type IndexCorruptError struct {
	Reason string
}

func (e *IndexCorruptError) Error() string {
	return "index bundle corrupt: " + e.Reason
}
