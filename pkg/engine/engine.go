// Package engine evaluates cabinet descriptions written in a small Lisp.
// It wraps zygomys in a sandboxed environment and produces cabinet specs
// from user source code:
//
//	(def w (feet 4))
//	(cabinet (preset :wall) :width w :doors 2 :material :cherry)
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/casework/pkg/cabinet"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	timeout time.Duration
	logger  *log.Logger

	mu         sync.Mutex
	generation uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs source and returns the spec of every `cabinet` form it
// evaluated, in order. Specs are clamped and fitted to their type.
//
// Return semantics:
//   - On success: returns specs (possibly empty) + nil errors + nil error
//   - On parse/eval failure: returns nil specs + eval errors + nil error
//   - On fatal failure (timeout, superseded, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) ([]cabinet.Spec, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		specs, evalErrs, err := e.evaluate(source)
		ch <- evalResult{specs: specs, errors: evalErrs, err: err}
	}()

	specs, evalErrs, err := waitWithTimeout(ch, gen, e.timeout, &e.mu, &e.generation)
	switch {
	case err != nil:
		e.logger.Warn("evaluation failed", "generation", gen, "err", err)
	case len(evalErrs) > 0:
		e.logger.Debug("evaluation reported errors", "generation", gen, "errors", len(evalErrs))
	default:
		e.logger.Debug("evaluated source", "generation", gen, "cabinets", len(specs))
	}
	return specs, evalErrs, err
}

// Last evaluates source and returns the spec of its final `cabinet` form.
// Source that defines no cabinet is reported as an EvalError.
func (e *Engine) Last(source string) (cabinet.Spec, []EvalError, error) {
	specs, evalErrs, err := e.Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		return cabinet.Spec{}, evalErrs, err
	}
	if len(specs) == 0 {
		return cabinet.Spec{}, []EvalError{{Message: "source defines no cabinet"}}, nil
	}
	return specs[len(specs)-1], nil, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) ([]cabinet.Spec, []EvalError, error) {
	// Empty source is a valid program that defines nothing.
	if strings.TrimSpace(source) == "" {
		return []cabinet.Spec{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	c := &collector{}
	registerBuiltins(env, c)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	if c.specs == nil {
		return []cabinet.Spec{}, nil, nil
	}
	return c.specs, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
