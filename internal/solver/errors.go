// internal/solver/errors.go
//
// Sentinel errors for the solving session. All are recoverable: invalid
// input can be corrected and resubmitted, and a contradiction is cleared
// by Reset. Callers match with errors.Is.

package solver

import "errors"

var (
	// ErrInvalidInput marks a caller error: guess/feedback length
	// mismatch, an unrecognized symbol, or feedback that contradicts an
	// already-pinned position. The session state is untouched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrContradiction is returned by AddFeedback when the accumulated
	// constraints eliminate every dictionary word. Prior feedback was
	// inconsistent (e.g. a transcription error); the constraints are
	// kept as-is and Reset is the way out.
	ErrContradiction = errors.New("constraints eliminate every word")

	// ErrNoCandidates is returned by ranking reads invoked while the
	// candidate set is empty. Same underlying condition as
	// ErrContradiction, surfaced on the read path.
	ErrNoCandidates = errors.New("no candidates remain")
)
