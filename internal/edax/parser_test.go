package edax

import "testing"

const sampleHintOutput = `
Edax 4.4 (c) 1998 - 2018
  depth|score|       time   |  nodes (N)  |   N/s    | principal variation
 ------+-----+--------------+-------------+----------+---------------------
  21@98%  +04        0:00.480      7402713  15422318  d3 C5 f6 F5 e6
  21@98%  -02        0:00.102      1202713   9422318  c5 F6 e6
`

func TestParseHintFirstMatchWins(t *testing.T) {
	hint, ok := ParseHint(sampleHintOutput)
	if !ok {
		t.Fatalf("expected conclusive parse")
	}
	if hint.Move != "D3" {
		t.Fatalf("move = %q, want D3 (first ranked line, uppercased)", hint.Move)
	}
	if hint.Score != 4 {
		t.Fatalf("score = %d, want 4", hint.Score)
	}
}

func TestParseHintNegativeScore(t *testing.T) {
	hint, ok := ParseHint("  18@73%  -12        0:00.010   1234   5678  g7 H8")
	if !ok || hint.Move != "G7" || hint.Score != -12 {
		t.Fatalf("got %+v ok=%v, want G7/-12", hint, ok)
	}
}

func TestParseHintToleratesDiagnostics(t *testing.T) {
	out := "warning: book file not found\nsearching...\n  10@60%  +7  0:00.001  99  99  e6 F5\n"
	hint, ok := ParseHint(out)
	if !ok || hint.Move != "E6" || hint.Score != 7 {
		t.Fatalf("got %+v ok=%v, want E6/+7", hint, ok)
	}
}

func TestParseHintNoMatch(t *testing.T) {
	hint, ok := ParseHint("no best move here\njust chatter\n")
	if ok {
		t.Fatalf("expected inconclusive, got %+v", hint)
	}
	if hint.Move != "" {
		t.Fatalf("expected empty move, got %q", hint.Move)
	}

	if _, ok := ParseHint(""); ok {
		t.Fatalf("empty output must be inconclusive")
	}
}

func TestParseHintScoreOverflow(t *testing.T) {
	out := "  10@60%  +99999999999999999999999  0:00.001  1  1  e6 F5\n"
	hint, ok := ParseHint(out)
	if ok {
		t.Fatalf("overflowing score must be inconclusive, got %+v", hint)
	}
	if hint.Move != "E6" {
		t.Fatalf("move should still be captured, got %q", hint.Move)
	}
}
