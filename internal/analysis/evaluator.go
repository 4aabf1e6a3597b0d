package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/2swap/kentoukai/internal/edax"
	"github.com/2swap/kentoukai/internal/othello"
)

// Oracle is one position query against the external evaluator: replay the
// prefix, return the raw session output.
type Oracle interface {
	Evaluate(ctx context.Context, prefix othello.Sequence) (string, error)
}

// TransitionEvaluator derives one Record from a before/after position pair
// via two independent oracle sessions.
type TransitionEvaluator struct {
	oracle Oracle
	log    *zap.Logger
}

func NewTransitionEvaluator(oracle Oracle, log *zap.Logger) *TransitionEvaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransitionEvaluator{oracle: oracle, log: log}
}

// EvaluateTransition scores the move that turns before into after.
// after must equal before plus exactly one appended move; anything else is
// a *BoardFormatError. Sessions that cannot be parsed into a move and a
// score yield ErrInconclusive.
func (e *TransitionEvaluator) EvaluateTransition(ctx context.Context, before, after othello.Sequence) (Record, error) {
	if err := checkSingleStep(before, after); err != nil {
		return Record{}, err
	}

	rawBefore, err := e.oracle.Evaluate(ctx, before)
	if err != nil {
		return Record{}, fmt.Errorf("evaluate before-position: %w", err)
	}
	best, okBefore := edax.ParseHint(rawBefore)

	rawAfter, err := e.oracle.Evaluate(ctx, after)
	if err != nil {
		return Record{}, fmt.Errorf("evaluate after-position: %w", err)
	}
	reply, okAfter := edax.ParseHint(rawAfter)

	if !okBefore || !okAfter {
		e.log.Debug("inconclusive transition",
			zap.Int("ply", len(after)),
			zap.Bool("before_ok", okBefore),
			zap.Bool("after_ok", okAfter))
		return Record{}, ErrInconclusive
	}

	return Record{
		Ply:        len(after),
		Mover:      othello.ToMove(len(before)),
		Played:     after[len(after)-1],
		BestMove:   best.Move,
		BestScore:  best.Score,
		BestReply:  reply.Move,
		ReplyScore: reply.Score,
		Swing:      best.Score + reply.Score,
	}, nil
}

func checkSingleStep(before, after othello.Sequence) error {
	if len(after) != len(before)+1 {
		return &BoardFormatError{Reason: fmt.Sprintf(
			"not exactly one move added: before=%d after=%d", len(before), len(after))}
	}
	for i := range before {
		if before[i] != after[i] {
			return &BoardFormatError{Reason: fmt.Sprintf(
				"after-sequence diverges from before-sequence at move %d", i+1)}
		}
	}
	return nil
}
