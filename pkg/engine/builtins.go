package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/casework/pkg/cabinet"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpCabinet wraps a cabinet.Spec so it can be returned from `cabinet` or
// `preset` and used as the base of another `cabinet` call.
type sexpCabinet struct {
	spec cabinet.Spec
}

func (c *sexpCabinet) SexpString(ps *zygo.PrintState) string {
	s := c.spec
	return fmt.Sprintf("(cabinet :type :%s :width %g :height %g :depth %g :shelves %d :doors %d :drawers %d :material %q :finish :%s)",
		s.Type, s.Width, s.Height, s.Depth, s.Shelves, s.Doors, s.Drawers, s.Material, s.Finish)
}
func (c *sexpCabinet) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toCount extracts a whole, non-fractional number.
func toCount(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected a whole number, got %g", f)
	}
	return int(f), nil
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_walnut) and plain strings ("walnut").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toType converts a keyword or string to a cabinet.Type.
func toType(s zygo.Sexp) (cabinet.Type, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return "", err
	}
	t := cabinet.Type(strings.ToLower(name))
	if !t.Valid() {
		return "", fmt.Errorf("invalid type %q, expected base, wall, tall, vanity, bookshelf or display", name)
	}
	return t, nil
}

// toFinish converts a keyword or string to a cabinet.Finish.
func toFinish(s zygo.Sexp) (cabinet.Finish, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return "", err
	}
	f := cabinet.Finish(strings.ToLower(name))
	if !f.Valid() {
		return "", fmt.Errorf("invalid finish %q, expected natural, painted or stained", name)
	}
	return f, nil
}

// toCabinet extracts a Spec from a sexpCabinet.
func toCabinet(s zygo.Sexp) (cabinet.Spec, error) {
	if c, ok := s.(*sexpCabinet); ok {
		return c.spec, nil
	}
	return cabinet.Spec{}, fmt.Errorf("expected cabinet, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector receives every cabinet defined during one evaluation.
type collector struct {
	specs []cabinet.Spec
}

// applyArgs overlays keyword arguments onto spec. Unknown keywords are
// errors so a typo never silently falls back to a default.
func applyArgs(fn string, spec cabinet.Spec, kw map[string]zygo.Sexp) (cabinet.Spec, error) {
	keys := make([]string, 0, len(kw))
	for key := range kw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := kw[key]
		var err error
		switch key {
		case "width":
			spec.Width, err = toFloat64(v)
		case "height":
			spec.Height, err = toFloat64(v)
		case "depth":
			spec.Depth, err = toFloat64(v)
		case "shelves":
			spec.Shelves, err = toCount(v)
		case "doors":
			spec.Doors, err = toCount(v)
		case "drawers":
			spec.Drawers, err = toCount(v)
		case "material":
			var m string
			m, err = toKeywordString(v)
			spec.Material = strings.ToLower(m)
		case "finish":
			spec.Finish, err = toFinish(v)
		case "type":
			spec.Type, err = toType(v)
		default:
			err = fmt.Errorf("unknown keyword")
		}
		if err != nil {
			return cabinet.Spec{}, fmt.Errorf("%s: %s: %w", fn, key, err)
		}
	}
	return spec, nil
}

// registerBuiltins installs the cabinet DSL builtins into a zygomys
// environment. Every `cabinet` call appends its spec to c.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	// -----------------------------------------------------------------------
	// (cabinet :width 36 :height 30 :depth 24 :shelves 2 :doors 2
	//          :drawers 0 :material :oak :finish :natural :type :base)
	// (cabinet (preset :wall) :doors 1)
	// -----------------------------------------------------------------------
	env.AddFunction("cabinet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 1 {
			return zygo.SexpNull, fmt.Errorf("cabinet takes at most one base cabinet, got %d positional arguments", len(pa.positional))
		}

		base := cabinet.Default()
		if len(pa.positional) == 1 {
			b, err := toCabinet(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cabinet: base: %w", err)
			}
			base = b
		}

		spec, err := applyArgs("cabinet", base, pa.kw)
		if err != nil {
			return zygo.SexpNull, err
		}
		spec = spec.FitType().Clamp()
		c.specs = append(c.specs, spec)

		return &sexpCabinet{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (preset :tall)
	// -----------------------------------------------------------------------
	env.AddFunction("preset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("preset requires exactly 1 argument, got %d", len(args))
		}
		t, err := toType(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("preset: %w", err)
		}
		spec := cabinet.Default()
		spec.Type = t
		return &sexpCabinet{spec: spec.FitType()}, nil
	})

	// -----------------------------------------------------------------------
	// (feet 3) => 36
	// -----------------------------------------------------------------------
	env.AddFunction("feet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("feet requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("feet: %w", err)
		}
		return &zygo.SexpFloat{Val: f * 12}, nil
	})

	// -----------------------------------------------------------------------
	// (mm 914.4) => 36
	// -----------------------------------------------------------------------
	env.AddFunction("mm", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mm requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mm: %w", err)
		}
		return &zygo.SexpFloat{Val: f / 25.4}, nil
	})
}
