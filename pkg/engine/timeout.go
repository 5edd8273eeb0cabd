package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/casework/pkg/cabinet"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// ErrSuperseded is returned when a newer evaluation started before this one
// finished.
var ErrSuperseded = errors.New("evaluation superseded by newer request")

// ErrTimeout is returned when an evaluation exceeds its time limit.
var ErrTimeout = errors.New("evaluation timed out")

// evalResult is the internal type used to pass evaluation results through channels.
type evalResult struct {
	specs  []cabinet.Spec
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns ErrTimeout if the
// evaluation exceeds timeout. It uses a generation counter to discard stale
// results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) ([]cabinet.Spec, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, ErrSuperseded
		}

		return res.specs, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
