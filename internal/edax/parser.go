package edax

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/2swap/kentoukai/internal/othello"
)

// hintPattern matches the evaluator's best-move line: search statistics,
// a depth@confidence marker, a signed score, filler, then the coordinate.
// The grammar is a compatibility boundary with the evaluator's output
// format; do not loosen it.
var hintPattern = regexp.MustCompile(`\d+@\d+%\s+([+-]?\d+).*?\s([A-Ha-h][1-8])`)

// Hint is the structured result of one evaluator session: the best move at
// the scripted position and its signed score.
type Hint struct {
	Move  othello.Move
	Score int
}

// ParseHint scans raw session output line by line and returns the first
// line matching the hint grammar; the evaluator ranks alternative replies
// below it, so the first match is the strongest line. A missing match or
// an unparsable score yields ok=false — an inconclusive session, not an
// error.
func ParseHint(output string) (Hint, bool) {
	for _, line := range strings.Split(output, "\n") {
		m := hintPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		move := othello.Move(strings.ToUpper(m[2]))
		score, err := strconv.Atoi(m[1])
		if err != nil {
			return Hint{Move: move}, false
		}
		return Hint{Move: move, Score: score}, true
	}
	return Hint{}, false
}
