package analysis

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/2swap/kentoukai/internal/othello"
)

// Analyzer walks a full move sequence ply by ply, building one Record per
// conclusive transition. Plies are evaluated strictly in increasing order;
// each evaluator session is independent, so an isolated hiccup only costs
// that ply.
type Analyzer struct {
	eval *TransitionEvaluator
	log  *zap.Logger
}

func NewAnalyzer(eval *TransitionEvaluator, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{eval: eval, log: log}
}

// GameResult collects the conclusive records of one game along with the
// plies that had to be skipped as inconclusive.
type GameResult struct {
	Records     []Record
	SkippedPlys []int
}

// AnalyzeGame evaluates plies 1..min(len(seq), plyLimit); plyLimit <= 0
// means the whole sequence. Inconclusive plies are logged and skipped.
// Any other evaluator failure aborts the game, since remaining plies would
// fail the same way.
func (a *Analyzer) AnalyzeGame(ctx context.Context, seq othello.Sequence, plyLimit int) (GameResult, error) {
	last := len(seq)
	if plyLimit > 0 && plyLimit < last {
		last = plyLimit
	}

	var res GameResult
	for ply := 1; ply <= last; ply++ {
		rec, err := a.eval.EvaluateTransition(ctx, seq.Prefix(ply-1), seq.Prefix(ply))
		if err != nil {
			if errors.Is(err, ErrInconclusive) {
				a.log.Warn("skipping inconclusive ply", zap.Int("ply", ply))
				res.SkippedPlys = append(res.SkippedPlys, ply)
				continue
			}
			return res, err
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}
