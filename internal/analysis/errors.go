package analysis

import (
	"errors"
	"fmt"
)

// ErrInconclusive means the evaluator produced no usable move/score for a
// transition. The ply is excluded from blunder consideration; it is never
// treated as a non-blunder by default.
var ErrInconclusive = errors.New("inconclusive evaluation")

// BoardFormatError reports a structural violation in the supplied move
// sequences. It is fatal for the input unit that produced it.
type BoardFormatError struct {
	Reason string
}

func (e *BoardFormatError) Error() string {
	return fmt.Sprintf("board format error: %s", e.Reason)
}
