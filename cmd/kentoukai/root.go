package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2swap/kentoukai/internal/analysis"
	"github.com/2swap/kentoukai/internal/anki"
	"github.com/2swap/kentoukai/internal/batch"
	"github.com/2swap/kentoukai/internal/cards"
	"github.com/2swap/kentoukai/internal/config"
	"github.com/2swap/kentoukai/internal/edax"
	"github.com/2swap/kentoukai/internal/obslog"
	"github.com/2swap/kentoukai/internal/report"
)

var (
	flagDir       string
	flagThreshold int
	flagLevel     int
	flagPlyLimit  int
	flagAnkiURL   string
	flagDryRun    bool
	flagKeepFiles bool
)

var rootCmd = &cobra.Command{
	Use:   "kentoukai",
	Short: "Turn Othello blunders into Anki flashcards",
	Long: `Kentoukai post-processes recorded Othello games. For every move it asks
the Edax evaluator for the best move before and after the move was played,
computes the evaluation swing, and files each blunder as a flashcard in a
local Anki deck via AnkiConnect.

Run without arguments it picks up every *.othello file from the configured
input directory (~/Downloads by default), analyzes them one by one and
deletes each file once it has been handled.`,
	SilenceUsage: true,
	RunE:         runBatch,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagDir, "dir", "", "input directory (overrides config)")
	f.IntVar(&flagThreshold, "threshold", 0, "evaluation swing that counts as a blunder (overrides config)")
	f.IntVar(&flagLevel, "level", 0, "evaluator search level (overrides config)")
	f.IntVar(&flagPlyLimit, "ply-limit", 0, "analyze at most this many opening plies of full games (overrides config)")
	f.StringVar(&flagAnkiURL, "anki-url", "", "AnkiConnect endpoint (overrides config)")
	f.BoolVar(&flagDryRun, "dry-run", false, "analyze and report but do not submit cards")
	f.BoolVar(&flagKeepFiles, "keep-files", false, "do not delete processed input files")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	if err := obslog.InitFromEnv(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	log := obslog.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	evaluator, err := edax.NewClient(edax.Config{
		BinaryPath: cfg.EdaxBinary,
		WorkDir:    cfg.EdaxDir,
		Level:      cfg.SearchLevel,
		Timeout:    time.Duration(cfg.EvalTimeoutSec) * time.Second,
	}, log.Named("edax"))
	if err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}

	noteClient := anki.NewClient(cfg.AnkiURL,
		anki.WithTimeout(time.Duration(cfg.NoteTimeoutSec)*time.Second))
	if !cfg.DryRun {
		pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.NoteTimeoutSec)*time.Second)
		err := noteClient.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure Anki is running with AnkiConnect installed: %w", err)
		}
	}

	eval := analysis.NewTransitionEvaluator(evaluator, log.Named("eval"))
	analyzer := analysis.NewAnalyzer(eval, log.Named("analyzer"))
	emitter := cards.NewEmitter(noteClient, cfg.DeckName, cfg.ModelName, cfg.DryRun, log.Named("cards"))
	reporter := report.NewWriter(os.Stdout, cfg.SwingThreshold, report.ParsePolicy(cfg.InconclusivePolicy))

	runner := batch.NewRunner(batch.Options{
		InputDir:       cfg.InputDir,
		InputGlob:      cfg.InputGlob,
		SwingThreshold: cfg.SwingThreshold,
		PlyLimit:       cfg.PlyLimit,
		KeepFiles:      cfg.KeepFiles,
	}, eval, analyzer, emitter, reporter, log.Named("batch"))

	sum, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		log.Warn("some input units failed",
			zap.Int("failed", sum.Failed),
			zap.Int("units", sum.Units))
		return fmt.Errorf("%d of %d input units failed", sum.Failed, sum.Units)
	}
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.AppConfig) {
	f := cmd.Flags()
	if f.Changed("dir") {
		cfg.InputDir = flagDir
	}
	if f.Changed("threshold") {
		cfg.SwingThreshold = flagThreshold
	}
	if f.Changed("level") {
		cfg.SearchLevel = flagLevel
	}
	if f.Changed("ply-limit") {
		cfg.PlyLimit = flagPlyLimit
	}
	if f.Changed("anki-url") {
		cfg.AnkiURL = flagAnkiURL
	}
	if f.Changed("dry-run") {
		cfg.DryRun = flagDryRun
	}
	if f.Changed("keep-files") {
		cfg.KeepFiles = flagKeepFiles
	}
}
