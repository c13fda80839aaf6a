package export

import (
	"time"

	"imagepuller/internal/graph"
)

// Outcome classifies how one identifier's export ended.
type Outcome string

const (
	OutcomeSaved   Outcome = "saved"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Reasons recorded on skipped and failed results.
const (
	ReasonNotFound        = "not_found"
	ReasonNoPhotoMetadata = "no_photo_metadata"
	ReasonNoPhoto         = "no_photo"
	ReasonNoName          = "no_name"
	ReasonLookupFailed    = "lookup_failed"
	ReasonWriteFailed     = "write_failed"
	ReasonCanceled        = "canceled"
)

// Result describes a single identifier's export attempt.
type Result struct {
	Identifier    string
	CorrelationID string
	Outcome       Outcome
	Reason        string
	Person        graph.Person
	Match         graph.Match
	Path          string
	Bytes         int64
	Duration      time.Duration
	Err           error
}

// Summary aggregates the results of a batch. Results keep input order.
type Summary struct {
	Results  []Result
	Saved    int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Total returns the number of identifiers attempted.
func (s Summary) Total() int {
	return len(s.Results)
}

func summarize(results []Result, elapsed time.Duration) Summary {
	summary := Summary{Results: results, Duration: elapsed}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeSaved:
			summary.Saved++
		case OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	return summary
}
