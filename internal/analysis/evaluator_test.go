package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/2swap/kentoukai/internal/othello"
)

// hintLine renders a synthetic evaluator best-move line in the shape the
// parser expects.
func hintLine(move string, score int) string {
	return fmt.Sprintf("  21@98%%  %+d        0:00.001      1234      5678  %s\n", score, move)
}

// stubOracle replays scripted output. Calls alternate before/after within
// each transition, so the script function sees a 1-based call counter.
type stubOracle struct {
	calls int
	fn    func(call int, prefix othello.Sequence) (string, error)
}

func (s *stubOracle) Evaluate(_ context.Context, prefix othello.Sequence) (string, error) {
	s.calls++
	return s.fn(s.calls, prefix)
}

func newStub(fn func(call int, prefix othello.Sequence) (string, error)) *stubOracle {
	return &stubOracle{fn: fn}
}

func TestEvaluateTransitionSwing(t *testing.T) {
	oracle := newStub(func(call int, prefix othello.Sequence) (string, error) {
		if call == 1 {
			return "noise\n" + hintLine("c4", 20), nil
		}
		return hintLine("d3", 5), nil
	})
	eval := NewTransitionEvaluator(oracle, nil)

	rec, err := eval.EvaluateTransition(context.Background(), othello.Sequence{"C4", "C3"}, othello.Sequence{"C4", "C3", "E6"})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if rec.Swing != 25 {
		t.Fatalf("swing = %d, want 25", rec.Swing)
	}
	if rec.Swing != rec.BestScore+rec.ReplyScore {
		t.Fatalf("swing must equal BestScore+ReplyScore exactly")
	}
	if rec.Ply != 3 || rec.Played != "E6" {
		t.Fatalf("ply/played = %d/%q, want 3/E6", rec.Ply, rec.Played)
	}
	if rec.Mover != othello.Black {
		t.Fatalf("mover = %q, want B (even before-prefix)", rec.Mover)
	}
	if rec.BestMove != "C4" || rec.BestReply != "D3" {
		t.Fatalf("best/reply = %q/%q, want C4/D3", rec.BestMove, rec.BestReply)
	}
}

func TestEvaluateTransitionInconclusive(t *testing.T) {
	for _, failOn := range []int{1, 2} {
		oracle := newStub(func(call int, prefix othello.Sequence) (string, error) {
			if call == failOn {
				return "nothing useful\n", nil
			}
			return hintLine("c4", 1), nil
		})
		eval := NewTransitionEvaluator(oracle, nil)
		_, err := eval.EvaluateTransition(context.Background(), nil, othello.Sequence{"C4"})
		if !errors.Is(err, ErrInconclusive) {
			t.Fatalf("failOn=%d: expected ErrInconclusive, got %v", failOn, err)
		}
	}
}

func TestEvaluateTransitionBoardFormat(t *testing.T) {
	eval := NewTransitionEvaluator(newStub(func(int, othello.Sequence) (string, error) {
		t.Fatalf("oracle must not be called for malformed pairs")
		return "", nil
	}), nil)

	cases := []struct {
		name          string
		before, after othello.Sequence
	}{
		{"two moves added", othello.Sequence{"C4", "C3", "D3"}, othello.Sequence{"C4", "C3", "D3", "C5", "E6"}},
		{"no move added", othello.Sequence{"C4"}, othello.Sequence{"C4"}},
		{"shrinking", othello.Sequence{"C4", "C3"}, othello.Sequence{"C4"}},
		{"diverging prefix", othello.Sequence{"C4", "C3"}, othello.Sequence{"C4", "D3", "C5"}},
	}
	for _, c := range cases {
		_, err := eval.EvaluateTransition(context.Background(), c.before, c.after)
		var bfe *BoardFormatError
		if !errors.As(err, &bfe) {
			t.Fatalf("%s: expected BoardFormatError, got %v", c.name, err)
		}
	}
}

func TestEvaluateTransitionEmptyBefore(t *testing.T) {
	// A blank before-line is a valid opening-move transition: 1 == 0 + 1.
	oracle := newStub(func(int, othello.Sequence) (string, error) {
		return hintLine("c4", 0), nil
	})
	eval := NewTransitionEvaluator(oracle, nil)
	rec, err := eval.EvaluateTransition(context.Background(), nil, othello.Sequence{"C4"})
	if err != nil {
		t.Fatalf("EvaluateTransition: %v", err)
	}
	if rec.Ply != 1 || rec.Mover != othello.Black {
		t.Fatalf("opening move record = %+v", rec)
	}
}

func TestEvaluateTransitionOracleFailure(t *testing.T) {
	boom := errors.New("boom")
	oracle := newStub(func(int, othello.Sequence) (string, error) { return "", boom })
	eval := NewTransitionEvaluator(oracle, nil)
	_, err := eval.EvaluateTransition(context.Background(), nil, othello.Sequence{"C4"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped oracle error, got %v", err)
	}
}
