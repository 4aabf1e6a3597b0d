// Package edax drives the external Edax evaluator over its line-oriented
// stdin/stdout protocol. Every query runs in a fresh short-lived process so
// board state can never leak between unrelated positions.
package edax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/2swap/kentoukai/internal/othello"
)

const (
	defaultLevel   = 30
	defaultTimeout = 60 * time.Second
)

// ErrEvaluatorUnavailable means the evaluator binary could not be launched.
// This is fatal for the input unit being processed.
var ErrEvaluatorUnavailable = errors.New("evaluator unavailable")

type Config struct {
	// BinaryPath is the evaluator executable, resolved relative to WorkDir
	// when WorkDir is set.
	BinaryPath string
	// WorkDir is the directory the evaluator runs in (it loads its own data
	// files relative to it).
	WorkDir string
	// Level bounds search effort per query; prepended to every script.
	Level int
	// Timeout caps one whole evaluator session.
	Timeout time.Duration
}

// Client issues one-shot evaluator sessions. It holds no process state
// between calls.
type Client struct {
	cfg Config
	log *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BinaryPath) == "" {
		return nil, errors.New("evaluator binary path is required")
	}
	if cfg.Level <= 0 {
		cfg.Level = defaultLevel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, log: log}, nil
}

// Level reports the configured search effort.
func (c *Client) Level() int { return c.cfg.Level }

// Evaluate replays the given prefix in a fresh evaluator process and asks
// for its single best move. It returns the raw session output; diagnostic
// text on stderr is logged as a warning but does not fail the call.
func (c *Client) Evaluate(ctx context.Context, prefix othello.Sequence) (string, error) {
	script := BuildScript(c.cfg.Level, prefix)

	runCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.cfg.BinaryPath)
	if c.cfg.WorkDir != "" {
		cmd.Dir = c.cfg.WorkDir
	}
	cmd.Stdin = strings.NewReader(script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Safety net: kill the process if it keeps pipes open after exit or
	// ignores the scripted quit.
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: start %s: %v", ErrEvaluatorUnavailable, c.cfg.BinaryPath, err)
	}

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		// Caller abandoned the run; the process was already killed.
		return "", ctxErr
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		c.log.Warn("evaluator diagnostics", zap.String("stderr", truncate(msg, 512)))
	}
	if err != nil {
		// A killed or non-zero exit still produced output worth parsing;
		// the parser decides whether the session was conclusive.
		c.log.Warn("evaluator session ended abnormally",
			zap.Int("prefix_len", len(prefix)),
			zap.Error(err))
	}
	return stdout.String(), nil
}

// BuildScript assembles the command sequence for one session: a fixed
// search-effort directive, an optional prefix replay and a single
// best-move request.
func BuildScript(level int, prefix othello.Sequence) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "level %d\n", level)
	if len(prefix) > 0 {
		sb.WriteString("play ")
		sb.WriteString(strings.Join(prefix.Strings(), " "))
		sb.WriteString("\n")
	}
	sb.WriteString("hint 1\n")
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
