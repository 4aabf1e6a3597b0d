// Package report renders per-unit analysis results as a human-readable
// console table.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/2swap/kentoukai/internal/analysis"
)

// InconclusivePolicy controls how plies the evaluator could not score show
// up in the report. They are never classified as safe either way.
type InconclusivePolicy string

const (
	// PolicySkip drops inconclusive plies from the report entirely.
	PolicySkip InconclusivePolicy = "skip"
	// PolicyReport lists inconclusive plies as unknown.
	PolicyReport InconclusivePolicy = "report"
)

// ParsePolicy maps a config string onto a policy, defaulting to skip.
func ParsePolicy(s string) InconclusivePolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(PolicyReport)) {
		return PolicyReport
	}
	return PolicySkip
}

// Writer prints one table block per analyzed unit.
type Writer struct {
	out       io.Writer
	threshold int
	policy    InconclusivePolicy
}

func NewWriter(out io.Writer, threshold int, policy InconclusivePolicy) *Writer {
	return &Writer{out: out, threshold: threshold, policy: policy}
}

// Unit renders the records of one input unit.
func (w *Writer) Unit(name string, res analysis.GameResult) {
	fmt.Fprintln(w.out, strings.Repeat("-", 72))
	fmt.Fprintf(w.out, "File: %s\n", name)
	fmt.Fprintf(w.out, "%-4s %-6s %-7s %-10s %-5s %-11s %-5s %-7s %s\n",
		"ply", "color", "played", "eval(best)", "best", "eval(reply)", "reply", "swing", "")

	for _, rec := range res.Records {
		mark := ""
		if rec.IsBlunder(w.threshold) {
			mark = "BLUNDER"
		}
		fmt.Fprintf(w.out, "%-4d %-6s %-7s %+-10d %-5s %+-11d %-5s %+-7d %s\n",
			rec.Ply, rec.Mover, rec.Played,
			rec.BestScore, orDash(string(rec.BestMove)),
			rec.ReplyScore, orDash(string(rec.BestReply)),
			rec.Swing, mark)
	}

	if w.policy == PolicyReport {
		for _, ply := range res.SkippedPlys {
			fmt.Fprintf(w.out, "%-4d %-6s %s\n", ply, "?", "inconclusive evaluation (unknown, not classified)")
		}
	}
	fmt.Fprintln(w.out, strings.Repeat("-", 72))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
