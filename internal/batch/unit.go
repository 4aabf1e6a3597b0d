// Package batch discovers recorded-game files, runs each through the
// analysis pipeline and cleans up afterwards. Failures are isolated per
// input unit: one bad file never stops the rest of the batch.
package batch

import (
	"fmt"
	"os"
	"strings"

	"github.com/2swap/kentoukai/internal/othello"
)

// UnitKind selects how a file's move text is analyzed.
type UnitKind int

const (
	// KindTransition is the two-line variant: line 1 holds the moves
	// before the move under study, line 2 the moves after it.
	KindTransition UnitKind = iota
	// KindGame is a full game record; every ply is analyzed.
	KindGame
)

// Unit is one input file parsed into move sequences.
type Unit struct {
	Path   string
	Kind   UnitKind
	Before othello.Sequence // transition variant only
	After  othello.Sequence // transition variant only
	Game   othello.Sequence // game variant only
}

// ReadUnit parses a move file. A file with exactly two lines (ignoring
// trailing blank lines) is the transition variant; the first line may be
// blank, meaning the move under study is the opening move. Anything else
// is treated as a full game record, taking every coordinate in encounter
// order.
func ReadUnit(path string) (Unit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Unit{}, fmt.Errorf("read move file: %w", err)
	}

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 2 {
		u := Unit{
			Path:   path,
			Kind:   KindTransition,
			Before: othello.FindMoves(lines[0]),
			After:  othello.FindMoves(lines[1]),
		}
		if len(u.After) == 0 {
			return Unit{}, fmt.Errorf("no moves found in %s", path)
		}
		return u, nil
	}

	game := othello.FindMoves(text)
	if len(game) == 0 {
		return Unit{}, fmt.Errorf("no moves found in %s", path)
	}
	return Unit{Path: path, Kind: KindGame, Game: game}, nil
}

// Sequence returns the full move sequence the unit covers: the after-line
// for transitions, the game record otherwise.
func (u Unit) Sequence() othello.Sequence {
	if u.Kind == KindTransition {
		return u.After
	}
	return u.Game
}
