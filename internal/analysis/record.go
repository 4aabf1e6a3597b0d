// Package analysis reconstructs position sequences from game records,
// scores each ply against the evaluator's best line and classifies moves
// whose evaluation swing crosses the configured threshold.
package analysis

import "github.com/2swap/kentoukai/internal/othello"

// Record is the evaluation of one ply: the move actually played, the best
// move available before it and the best reply after it, with their signed
// scores from the mover's perspective at each position.
type Record struct {
	// Ply is the 1-based index of the move under study.
	Ply int
	// Mover is the player who made the move, derived from prefix parity.
	Mover othello.Player
	// Played is the move that was actually made.
	Played othello.Move

	// BestMove and BestScore come from the position before the ply.
	BestMove  othello.Move
	BestScore int
	// BestReply and ReplyScore come from the position after the ply.
	BestReply  othello.Move
	ReplyScore int

	// Swing is BestScore + ReplyScore. The two scores are signed from
	// opposite sides of the move, so a large positive swing means the
	// mover gave away more than optimal play would allow.
	Swing int
}

// IsBlunder reports whether the record qualifies under the threshold.
func (r Record) IsBlunder(threshold int) bool {
	return r.Swing >= threshold
}

// Blunders filters records to those meeting the threshold, preserving
// order. Raising the threshold can only shrink the result.
func Blunders(records []Record, threshold int) []Record {
	var out []Record
	for _, r := range records {
		if r.IsBlunder(threshold) {
			out = append(out, r)
		}
	}
	return out
}
