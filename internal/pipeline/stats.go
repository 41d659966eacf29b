package pipeline

import "github.com/nguyentantai21042004/transcript-flow/internal/processor"

// Stats are the counters of one run. After a run,
// Converted+Skipped+Failed == Total.
type Stats struct {
	Converted int
	Skipped   int
	Failed    int
	Total     int
}

// Aggregator counts outcomes. It is owned by a single run.
type Aggregator struct {
	stats   Stats
	results []processor.Outcome
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record adds out to the counters.
func (a *Aggregator) Record(out processor.Outcome) {
	switch out.Status {
	case processor.StatusConverted:
		a.stats.Converted++
	case processor.StatusSkipped:
		a.stats.Skipped++
	default:
		a.stats.Failed++
	}
	a.stats.Total++
	a.results = append(a.results, out)
}

// Summarize returns the counters recorded so far.
func (a *Aggregator) Summarize() Stats {
	return a.stats
}

// Results returns the recorded outcomes in recording order.
func (a *Aggregator) Results() []processor.Outcome {
	return append([]processor.Outcome(nil), a.results...)
}
