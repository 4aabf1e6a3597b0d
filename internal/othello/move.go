// Package othello holds the board-coordinate domain model shared by the
// analysis pipeline: moves, move sequences and turn parity.
package othello

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Move is a single board coordinate, column A-H followed by row 1-8,
// always stored uppercase.
type Move string

var (
	ErrInvalidMove = errors.New("invalid board coordinate")

	movePattern = regexp.MustCompile(`^[A-Ha-h][1-8]$`)
	findPattern = regexp.MustCompile(`\b[A-Ha-h][1-8]\b`)
)

// ParseMove validates and canonicalizes a single coordinate.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if !movePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	return Move(strings.ToUpper(s)), nil
}

func (m Move) String() string { return string(m) }

// FindMoves extracts every coordinate occurring in text, in encounter
// order. Input files are free-form; anything that is not a coordinate is
// ignored.
func FindMoves(text string) Sequence {
	matches := findPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seq := make(Sequence, 0, len(matches))
	for _, m := range matches {
		seq = append(seq, Move(strings.ToUpper(m)))
	}
	return seq
}

// Sequence is an ordered list of moves from the opening position.
// Positions are derived by taking prefixes; a sequence is never mutated.
type Sequence []Move

// Prefix returns the first n moves. The returned slice aliases the
// original storage, which is safe because sequences are read-only.
func (s Sequence) Prefix(n int) Sequence {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// Encode concatenates the moves with no separator, uppercase. This is the
// flashcard position key.
func (s Sequence) Encode() string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, m := range s {
		b.WriteString(string(m))
	}
	return b.String()
}

// Strings returns the moves as plain strings for protocol assembly.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = string(m)
	}
	return out
}

// Player identifies whose turn a ply belongs to. Black moves first.
type Player string

const (
	Black Player = "B"
	White Player = "W"
)

// ToMove reports which player moves from a position reached by the given
// prefix: even prefix length means Black to move.
func ToMove(prefixLen int) Player {
	if prefixLen%2 == 0 {
		return Black
	}
	return White
}
