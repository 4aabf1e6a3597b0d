package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2swap/kentoukai/internal/analysis"
	"github.com/2swap/kentoukai/internal/cards"
	"github.com/2swap/kentoukai/internal/edax"
	"github.com/2swap/kentoukai/internal/report"
)

type Options struct {
	InputDir       string
	InputGlob      string
	SwingThreshold int
	PlyLimit       int
	// KeepFiles disables deletion of processed files.
	KeepFiles bool
}

// Runner processes every discovered input unit through the pipeline.
type Runner struct {
	opts     Options
	eval     *analysis.TransitionEvaluator
	analyzer *analysis.Analyzer
	emitter  *cards.Emitter
	reporter *report.Writer
	log      *zap.Logger
}

func NewRunner(opts Options, eval *analysis.TransitionEvaluator, analyzer *analysis.Analyzer, emitter *cards.Emitter, reporter *report.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{opts: opts, eval: eval, analyzer: analyzer, emitter: emitter, reporter: reporter, log: log}
}

// Summary counts what one batch run did.
type Summary struct {
	Units      int
	Failed     int
	Blunders   int
	CardsAdded int
}

// Run discovers input files and processes them in name order. A unit
// failure is counted and logged; it never aborts the remaining units.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	pattern := filepath.Join(r.opts.InputDir, r.opts.InputGlob)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return Summary{}, fmt.Errorf("discover input files: %w", err)
	}
	sort.Strings(files)

	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID))

	if len(files) == 0 {
		log.Info("no input files found", zap.String("pattern", pattern))
		return Summary{}, nil
	}

	var sum Summary
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Units++
		blunders, added, err := r.processFile(ctx, log, path)
		if err != nil {
			sum.Failed++
			log.Error("unit failed", zap.String("file", path), zap.Error(err))
			continue
		}
		sum.Blunders += blunders
		sum.CardsAdded += added
	}

	log.Info("batch finished",
		zap.Int("units", sum.Units),
		zap.Int("failed", sum.Failed),
		zap.Int("blunders", sum.Blunders),
		zap.Int("cards_added", sum.CardsAdded))
	return sum, nil
}

func (r *Runner) processFile(ctx context.Context, log *zap.Logger, path string) (blunders, added int, err error) {
	log = log.With(zap.String("file", path), zap.String("unit_id", uuid.NewString()))
	log.Info("processing file")

	unit, err := ReadUnit(path)
	if err != nil {
		return 0, 0, err
	}

	res, err := r.analyze(ctx, log, unit)
	if err != nil {
		// The evaluator being unlaunchable is the only failure worth
		// keeping the file for: a rerun with a fixed setup can retry it.
		// Structurally broken files would fail forever.
		if !errors.Is(err, edax.ErrEvaluatorUnavailable) {
			r.cleanup(log, path)
		}
		return 0, 0, err
	}

	r.reporter.Unit(filepath.Base(path), res)

	seq := unit.Sequence()
	qualifying := analysis.Blunders(res.Records, r.opts.SwingThreshold)
	for _, rec := range qualifying {
		if r.emitter.Emit(ctx, rec, seq.Prefix(rec.Ply-1)) {
			added++
		}
	}

	r.cleanup(log, path)
	return len(qualifying), added, nil
}

func (r *Runner) analyze(ctx context.Context, log *zap.Logger, unit Unit) (analysis.GameResult, error) {
	if unit.Kind == KindTransition {
		rec, err := r.eval.EvaluateTransition(ctx, unit.Before, unit.After)
		if err != nil {
			if errors.Is(err, analysis.ErrInconclusive) {
				log.Warn("transition inconclusive, nothing to classify")
				return analysis.GameResult{SkippedPlys: []int{len(unit.After)}}, nil
			}
			return analysis.GameResult{}, err
		}
		return analysis.GameResult{Records: []analysis.Record{rec}}, nil
	}
	return r.analyzer.AnalyzeGame(ctx, unit.Game, r.opts.PlyLimit)
}

func (r *Runner) cleanup(log *zap.Logger, path string) {
	if r.opts.KeepFiles {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Warn("could not delete move file", zap.Error(err))
		return
	}
	log.Info("deleted move file")
}
