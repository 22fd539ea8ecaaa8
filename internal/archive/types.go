package archive

// Outcome is the terminal classification of one URL within one run. Every
// URL produces exactly one Outcome per run.
type Outcome int

const (
	// OutcomeSaved means the response body was written to the target file.
	OutcomeSaved Outcome = iota
	// OutcomeSkippedExisting means the target file already existed; no
	// network call was made.
	OutcomeSkippedExisting
	// OutcomeSkippedMalformed means the URL has no qualifying separator
	// and therefore no bucket key.
	OutcomeSkippedMalformed
	// OutcomeSkippedNoBucket means the URL had a bucket key but the
	// mapping carries no folder name for it.
	OutcomeSkippedNoBucket
	// OutcomeNotFound means the server answered 404; the URL is logged
	// durably and never retried.
	OutcomeNotFound
	// OutcomeRedirectLoop means redirects never settled; logged durably,
	// never retried.
	OutcomeRedirectLoop
	// OutcomeFatal means every attempt failed on a retryable error. The
	// run halts and the URL is retried from scratch on the next resume.
	OutcomeFatal
)

var outcomeNames = map[Outcome]string{
	OutcomeSaved:            "saved",
	OutcomeSkippedExisting:  "skipped_existing",
	OutcomeSkippedMalformed: "skipped_malformed",
	OutcomeSkippedNoBucket:  "skipped_no_bucket",
	OutcomeNotFound:         "not_found",
	OutcomeRedirectLoop:     "redirect_loop",
	OutcomeFatal:            "fatal",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Processed reports whether the outcome advances the progress marker.
// Everything except a fatal failure counts as processed, including skips
// and permanent failures.
func (o Outcome) Processed() bool {
	return o != OutcomeFatal
}

// Result captures what happened to a single URL.
type Result struct {
	URL     string
	Index   int
	Outcome Outcome
	// Path is the saved file location for OutcomeSaved and
	// OutcomeSkippedExisting.
	Path string
	// Err carries the final error for failure outcomes.
	Err error
	// Attempts is how many HTTP requests were issued.
	Attempts int
}

// Summary aggregates per-outcome counts for a finished (or halted) run.
type Summary struct {
	counts map[Outcome]int
}

func newSummary() Summary {
	return Summary{counts: make(map[Outcome]int)}
}

func (s *Summary) add(o Outcome) {
	s.counts[o]++
}

// Count returns how many URLs ended with outcome o.
func (s Summary) Count(o Outcome) int {
	return s.counts[o]
}

// Total returns how many URLs reached any outcome this run.
func (s Summary) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}
