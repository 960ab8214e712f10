package report

import "github.com/roach88/calcbench/internal/engine"

// Summary is the structured form of a line's results, used for JSON output.
type Summary struct {
	Calculation string          `json:"calculation"`
	Executions  int             `json:"executions"`
	Results     []ResultSummary `json:"results,omitempty"`
	TotalMillis string          `json:"total_ms,omitempty"`
	MeanMicros  string          `json:"average_us,omitempty"`
}

// ResultSummary is one record in a Summary.
type ResultSummary struct {
	Result        string `json:"result"`
	ElapsedMicros string `json:"elapsed_us"`
}

// Summarize builds a Summary following the same threshold rules as Report.
// Per-record results are omitted above threshold, and aggregates only
// appear for more than one execution.
func Summarize(name string, records []engine.Record, threshold int) Summary {
	s := Summary{Calculation: name, Executions: len(records)}
	if len(records) <= threshold {
		s.Results = make([]ResultSummary, len(records))
		for i, rec := range records {
			s.Results[i] = ResultSummary{
				Result:        FormatResult(rec.Result),
				ElapsedMicros: Microseconds(rec.Elapsed),
			}
		}
	}
	if len(records) > 1 {
		elapsed := Elapsed(records)
		s.TotalMillis = Milliseconds(Total(elapsed))
		s.MeanMicros = Microseconds(Mean(elapsed))
	}
	return s
}
