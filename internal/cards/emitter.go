// Package cards turns qualifying blunder records into flashcards and hands
// them to the note service.
package cards

import (
	"context"

	"go.uber.org/zap"

	"github.com/2swap/kentoukai/internal/analysis"
	"github.com/2swap/kentoukai/internal/anki"
	"github.com/2swap/kentoukai/internal/othello"
)

// sentinelNoMove marks a missing recommendation in report rows; it must
// never end up on a card.
const sentinelNoMove = "-"

// Submitter is the note-service boundary.
type Submitter interface {
	AddNote(ctx context.Context, note anki.Note) error
}

type Emitter struct {
	submitter Submitter
	deck      string
	model     string
	dryRun    bool
	log       *zap.Logger
}

func NewEmitter(submitter Submitter, deck, model string, dryRun bool, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{submitter: submitter, deck: deck, model: model, dryRun: dryRun, log: log}
}

// Emit builds a flashcard for one blunder record and submits it. The card
// front is the concatenated prefix of moves strictly before the blundering
// ply; the answer is the best move at that position. Records without a
// usable recommendation are skipped, and submission failures are logged so
// one bad card cannot block the rest of the batch. It reports whether a
// card was actually added.
func (e *Emitter) Emit(ctx context.Context, rec analysis.Record, before othello.Sequence) bool {
	best := string(rec.BestMove)
	if best == "" || best == sentinelNoMove {
		e.log.Warn("no valid best move for card, skipping",
			zap.Int("ply", rec.Ply),
			zap.String("played", string(rec.Played)))
		return false
	}

	note := anki.Note{
		Deck:     e.deck,
		Model:    e.model,
		Sequence: before.Encode(),
		Solution: best,
	}

	if e.dryRun {
		e.log.Info("dry run: card not submitted",
			zap.String("sequence", note.Sequence),
			zap.String("solution", note.Solution))
		return false
	}

	if err := e.submitter.AddNote(ctx, note); err != nil {
		e.log.Warn("failed to add card",
			zap.String("sequence", note.Sequence),
			zap.String("solution", note.Solution),
			zap.Error(err))
		return false
	}

	e.log.Info("added card",
		zap.String("sequence", note.Sequence),
		zap.String("solution", note.Solution))
	return true
}
