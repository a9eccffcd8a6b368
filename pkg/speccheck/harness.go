package speccheck

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// matrixKey addresses one cell of the compliance matrix.
type matrixKey struct {
	Backend string
	Index   int
}

// ComplianceMatrix maps (backend, vector index) to an Outcome. Both axes
// carry a stable total order (backends by name, vectors by index), so
// repeated runs render byte-identical reports regardless of completion
// order. The matrix is a pure value owned by the caller.
type ComplianceMatrix struct {
	outcomes map[matrixKey]Outcome
	backends []string
	vectors  int
}

// Backends returns the backend names in sorted order.
func (m *ComplianceMatrix) Backends() []string {
	return append([]string(nil), m.backends...)
}

// VectorCount returns the number of vector columns.
func (m *ComplianceMatrix) VectorCount() int {
	return m.vectors
}

// Outcome returns the cell for a backend and vector index.
func (m *ComplianceMatrix) Outcome(backend string, index int) (Outcome, bool) {
	o, ok := m.outcomes[matrixKey{Backend: backend, Index: index}]
	return o, ok
}

// Complete reports whether every (backend, vector) cell holds exactly one
// outcome.
func (m *ComplianceMatrix) Complete() bool {
	if len(m.outcomes) != len(m.backends)*m.vectors {
		return false
	}
	for _, name := range m.backends {
		for i := 0; i < m.vectors; i++ {
			if _, ok := m.outcomes[matrixKey{Backend: name, Index: i}]; !ok {
				return false
			}
		}
	}
	return true
}

// Harness executes the vector set against every registered adapter. Cells
// are independent: a backend fault on one vector is recorded as
// OutcomeError for that cell only.
type Harness struct {
	timeout time.Duration
	workers int
	logger  logrus.FieldLogger
}

// DefaultCallTimeout bounds a single backend call. Outcomes are
// deterministic functions of fixed inputs, so a call that runs this long is
// stuck, not slow.
const DefaultCallTimeout = 5 * time.Second

// NewHarness creates a harness with default settings.
func NewHarness() *Harness {
	return &Harness{
		timeout: DefaultCallTimeout,
		workers: runtime.NumCPU(),
		logger:  logrus.StandardLogger(),
	}
}

// WithTimeout sets the per-call time budget.
func (h *Harness) WithTimeout(d time.Duration) *Harness {
	h.timeout = d
	return h
}

// WithWorkers sets the number of parallel workers (0 = auto-detect).
func (h *Harness) WithWorkers(n int) *Harness {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	h.workers = n
	return h
}

// WithLogger sets the diagnostic logger.
func (h *Harness) WithLogger(logger logrus.FieldLogger) *Harness {
	h.logger = logger
	return h
}

type cellJob struct {
	backend VerifierAdapter
	vector  WireVector
}

// RunAll scores every backend against every vector and returns the full
// matrix. Vector and backend supply order does not affect the result. The
// returned error covers harness-level problems only (duplicate backend
// names, cancelled context); per-cell backend faults are recorded in the
// matrix as OutcomeError.
func (h *Harness) RunAll(ctx context.Context, vectors []WireVector, backends []VerifierAdapter) (*ComplianceMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(backends))
	seen := make(map[string]bool, len(backends))
	for _, b := range backends {
		if seen[b.Name()] {
			return nil, fmt.Errorf("duplicate backend name %q", b.Name())
		}
		seen[b.Name()] = true
		names = append(names, b.Name())
	}
	sort.Strings(names)

	matrix := &ComplianceMatrix{
		outcomes: make(map[matrixKey]Outcome, len(backends)*len(vectors)),
		backends: names,
		vectors:  len(vectors),
	}

	jobs := make(chan cellJob, h.workers)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < h.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcome := h.runCell(ctx, job.backend, job.vector)
				key := matrixKey{Backend: job.backend.Name(), Index: job.vector.Index}
				mu.Lock()
				// Write-once per key: completion order never affects the
				// final matrix.
				if _, exists := matrix.outcomes[key]; !exists {
					matrix.outcomes[key] = outcome
				}
				mu.Unlock()
			}
		}()
	}

	for _, b := range backends {
		for _, v := range vectors {
			select {
			case jobs <- cellJob{backend: b, vector: v}:
			case <-ctx.Done():
				close(jobs)
				wg.Wait()
				return nil, ctx.Err()
			}
		}
	}
	close(jobs)
	wg.Wait()

	if !matrix.Complete() {
		return nil, fmt.Errorf("compliance matrix incomplete: %d cells for %d backends x %d vectors",
			len(matrix.outcomes), len(matrix.backends), matrix.vectors)
	}
	return matrix, nil
}

// runCell executes one (backend, vector) call with panic isolation and the
// per-call timeout. A call that exceeds the budget is abandoned and recorded
// as an error; it can never block harness completion.
func (h *Harness) runCell(ctx context.Context, backend VerifierAdapter, v WireVector) Outcome {
	callCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	done := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithFields(logrus.Fields{
					"backend": backend.Name(),
					"vector":  v.Index,
				}).Warnf("backend panicked: %v", r)
				done <- OutcomeError
			}
		}()
		done <- backend.Verify(v.PublicKey, v.Message, v.Signature)
	}()

	select {
	case outcome := <-done:
		return outcome
	case <-callCtx.Done():
		h.logger.WithFields(logrus.Fields{
			"backend": backend.Name(),
			"vector":  v.Index,
		}).Warn("backend call timed out")
		return OutcomeError
	}
}
