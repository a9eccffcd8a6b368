package speccheck

// Outcome is the tri-state result of running one verifier backend against
// one vector.
type Outcome int

const (
	// OutcomeAccept means the backend considered the signature valid.
	OutcomeAccept Outcome = iota
	// OutcomeReject means the backend considered it invalid, including
	// refusing to decode it.
	OutcomeReject
	// OutcomeError means the backend faulted or exceeded its time budget on
	// this cell.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccept:
		return "accept"
	case OutcomeReject:
		return "reject"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol is the single-character rendering used in report tables.
func (o Outcome) Symbol() string {
	switch o {
	case OutcomeAccept:
		return "V"
	case OutcomeReject:
		return "X"
	case OutcomeError:
		return "E"
	default:
		return " "
	}
}

// VerifierAdapter wraps one verification routine under one policy. Multiple
// adapters may wrap the same underlying library under different policies.
//
// Implementations must not mutate or depend on process-wide state, and must
// return identical outcomes for identical inputs: the harness relies on both
// to parallelize calls and to skip retries.
type VerifierAdapter interface {
	// Name identifies the backend/policy pair; it is the row key of the
	// compliance matrix and must be unique within a run.
	Name() string

	// Verify checks a 64-byte signature over message under a 32-byte public
	// key.
	Verify(publicKey, message, signature []byte) Outcome
}
