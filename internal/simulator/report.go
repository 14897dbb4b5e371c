package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/hit/internal/fileutil"
	"github.com/lox/hit/internal/statistics"
)

// Report is the JSON document written by `hit simulate --out`
type Report struct {
	Strategy  string            `json:"strategy"`
	Shoe      string            `json:"shoe"`
	BonusRule string            `json:"bonus_rule"`
	Seed      int64             `json:"seed"`
	Workers   int               `json:"workers"`
	Elapsed   string            `json:"elapsed"`
	Results   statistics.Report `json:"results"`
}

// NewReport describes a finished run
func (s *Simulator) NewReport(stats *statistics.Statistics, elapsed time.Duration) Report {
	return Report{
		Strategy:  s.config.Strategy.Name(),
		Shoe:      string(s.config.Shoe),
		BonusRule: s.config.BonusRule.String(),
		Seed:      s.config.Seed,
		Workers:   s.config.Workers,
		Elapsed:   elapsed.Round(time.Millisecond).String(),
		Results:   stats.Report(),
	}
}

// WriteReport writes the report atomically to path
func WriteReport(path string, r Report) error {
	if err := fileutil.WriteJSONAtomic(path, r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// PrintSummary prints a human-readable summary of simulation results
func PrintSummary(w io.Writer, r Report, stats *statistics.Statistics) {
	fmt.Fprintf(w, "\n=== RESULTS: %s on %s shoe (bonus %s) ===\n", r.Strategy, r.Shoe, r.BonusRule)
	fmt.Fprintf(w, "Seed: %d  Workers: %d  Elapsed: %s\n", r.Seed, r.Workers, r.Elapsed)
	fmt.Fprintln(w, stats.Summary())
	fmt.Fprintf(w, "Std Dev: %.4f  Std Error: %.4f\n", stats.StdDev(), stats.StdError())
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P50=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Median(), stats.Percentile(0.95))
}
