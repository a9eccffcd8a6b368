package speccheck

import (
	"errors"
	"fmt"
)

// Generation-time errors are unrecoverable: a partial vector set is
// meaningless for reporting, so callers should abort the run on any of
// these. Backend faults are not represented here; the harness records them
// per cell as OutcomeError.
var (
	// ErrConstruction reports that a requested point/scalar order-class or
	// canonicity combination could not be produced.
	ErrConstruction = errors.New("vector construction failed")

	// ErrEncoding reports that a point or scalar could not be serialized to
	// its byte form.
	ErrEncoding = errors.New("vector encoding failed")

	// ErrFormat reports a failure in the report rendering stage. The
	// already-computed matrix is unaffected.
	ErrFormat = errors.New("report formatting failed")
)

func constructionErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConstruction, fmt.Sprintf(format, args...))
}

func encodingErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrEncoding, fmt.Sprintf(format, args...))
}
