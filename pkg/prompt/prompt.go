// Package prompt extracts a cabinet specification from a free-text request
// such as "a 48 inch wide walnut kitchen cabinet with 3 drawers".
//
// Extraction is keyword driven. Anything the text does not mention keeps its
// default value, and the result is always clamped into the ranges every
// extractor guarantees.
package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/material"
)

// ErrEmptyPrompt is returned, together with the default spec, when the
// prompt is blank.
var ErrEmptyPrompt = errors.New("prompt: empty prompt")

var (
	widthWords  = []string{"width", "wide", "w:"}
	heightWords = []string{"height", "tall", "high", "h:"}
	depthWords  = []string{"depth", "deep", "d:"}

	shelfWords  = []string{"shelf", "shelves"}
	doorWords   = []string{"door", "doors"}
	drawerWords = []string{"drawer", "drawers"}
)

// dimensionPatterns match "width 36", "width: 36in", `36" wide` and
// "36 inches wide" for each keyword. The leading form needs a word boundary
// so "width: 36" is not also read as "h: 36".
var dimensionPatterns = map[string][]*regexp.Regexp{}

// countPatterns match "3 shelves".
var countPatterns = map[string]*regexp.Regexp{}

func init() {
	const unit = `(?:inches|inch|in|"|')?`
	for _, words := range [][]string{widthWords, heightWords, depthWords} {
		for _, w := range words {
			q := regexp.QuoteMeta(w)
			dimensionPatterns[w] = []*regexp.Regexp{
				regexp.MustCompile(`\b` + q + `\s*:?\s*(\d+\.?\d*)\s*` + unit),
				regexp.MustCompile(`(\d+\.?\d*)\s*` + unit + `\s*` + q),
			}
		}
	}
	for _, words := range [][]string{shelfWords, doorWords, drawerWords} {
		for _, w := range words {
			countPatterns[w] = regexp.MustCompile(`(\d+)\s*` + regexp.QuoteMeta(w))
		}
	}
}

// Parser turns prompts into specs. The zero value is not usable; call New.
type Parser struct {
	materials []string
}

// Option configures a Parser.
type Option func(*Parser)

// WithCatalog sets which material keys the parser recognizes. Keys are
// tried in catalog order and the first one found in the text wins.
func WithCatalog(c *material.Catalog) Option {
	return func(p *Parser) {
		if c != nil {
			p.materials = c.Keys()
		}
	}
}

// New returns a parser for the standard material catalog.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.materials == nil {
		p.materials = material.New().Keys()
	}
	return p
}

var std = New()

// Parse extracts a spec with the standard parser.
func Parse(text string) (cabinet.Spec, error) {
	return std.Parse(text)
}

// Parse extracts a clamped spec from text. A blank prompt returns the
// default spec and ErrEmptyPrompt. A number the text states explicitly is
// used even when it is zero.
func (p *Parser) Parse(text string) (cabinet.Spec, error) {
	spec := cabinet.Default()
	if strings.TrimSpace(text) == "" {
		return spec, ErrEmptyPrompt
	}
	lower := strings.ToLower(text)

	if v, ok := dimension(lower, widthWords); ok {
		spec.Width = v
	}
	if v, ok := dimension(lower, heightWords); ok {
		spec.Height = v
	}
	if v, ok := dimension(lower, depthWords); ok {
		spec.Depth = v
	}
	if n, ok := count(lower, shelfWords); ok {
		spec.Shelves = n
	}
	if n, ok := count(lower, doorWords); ok {
		spec.Doors = n
	}
	if n, ok := count(lower, drawerWords); ok {
		spec.Drawers = n
	}

	for _, key := range p.materials {
		if strings.Contains(lower, key) {
			spec.Material = key
			break
		}
	}

	for _, t := range cabinet.Types {
		if strings.Contains(lower, string(t)) {
			spec.Type = t
			break
		}
	}
	applyTypeKeywords(lower, &spec)

	switch {
	case containsAny(lower, "painted", "paint"):
		spec.Finish = cabinet.FinishPainted
	case containsAny(lower, "stained", "stain"):
		spec.Finish = cabinet.FinishStained
	case strings.Contains(lower, "natural"):
		spec.Finish = cabinet.FinishNatural
	}

	return spec.FitType().Clamp(), nil
}

// applyTypeKeywords maps room and usage words onto a cabinet type. Later
// rules override earlier ones.
func applyTypeKeywords(lower string, spec *cabinet.Spec) {
	if strings.Contains(lower, "kitchen") {
		spec.Type = cabinet.TypeBase
	}
	if strings.Contains(lower, "bathroom") {
		spec.Type = cabinet.TypeVanity
	}
	if strings.Contains(lower, "book") {
		spec.Type = cabinet.TypeBookshelf
	}
	if containsAny(lower, "display", "glass") {
		spec.Type = cabinet.TypeDisplay
		if spec.Doors < 2 {
			spec.Doors = 2
		}
	}
}

func dimension(text string, words []string) (float64, bool) {
	for _, w := range words {
		for _, re := range dimensionPatterns[w] {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64)
			if err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

func count(text string, words []string) (int, bool) {
	for _, w := range words {
		m := countPatterns[w].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Summary renders spec as a one-line description, e.g.
// `Base Cabinet, 36" W × 30" H × 24" D, oak, 2 shelves, 2 doors, 0 drawers`.
func Summary(spec cabinet.Spec) string {
	return fmt.Sprintf(`%s, %s" W × %s" H × %s" D, %s, %d shelves, %d doors, %d drawers`,
		spec.Type.DisplayName(),
		num(spec.Width), num(spec.Height), num(spec.Depth),
		spec.Material, spec.Shelves, spec.Doors, spec.Drawers)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
