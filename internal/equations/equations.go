// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package equations detects mathematical content in a document model. Four
// independent detectors run concurrently over the same read-only snapshot;
// their candidates are merged single-threaded by canonical form and
// position, keeping the highest-confidence candidate per group with ties
// broken by detector priority (markup > delimiter > contextual > symbol).
package equations

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/sourcegraph/conc"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Resolver runs the detectors and the merge step.
type Resolver struct {
	cfg     types.AnalysisConfig
	symbols *SymbolTable
}

// New returns a Resolver using the built-in symbol table.
func New(cfg types.AnalysisConfig) *Resolver {
	return &Resolver{cfg: cfg.WithDefaults(), symbols: DefaultSymbols()}
}

// candidate is one detector's report before the merge step.
type candidate struct {
	content    string
	eqType     types.EquationType
	canonical  string
	confidence float64
	method     types.DetectionMethod
	isDisplay  bool
	paraIdx    int
}

// Resolve runs all four detectors concurrently and merges their candidates
// deterministically. The returned equations are ordered by paragraph
// position and assigned stable ids starting at 1.
func (r *Resolver) Resolve(doc *types.DocumentModel) []types.Equation {
	results := make([][]candidate, 4)
	detectors := []func(*types.DocumentModel) []candidate{
		r.detectMarkup,
		r.detectDelimited,
		r.detectContextual,
		r.detectSymbolRuns,
	}

	var wg conc.WaitGroup
	for i, detect := range detectors {
		wg.Go(func() {
			results[i] = detect(doc)
		})
	}
	wg.Wait()

	// Merge is the single-threaded join: flatten in fixed detector order so
	// the outcome is independent of completion order.
	var all []candidate
	for _, rs := range results {
		all = append(all, rs...)
	}
	return r.merge(all)
}

// --- detectors ---

var (
	displayMath = regexp.MustCompile(`\$\$([^$]+)\$\$|\\\[([^\]]+)\\\]`)
	inlineMath  = regexp.MustCompile(`\$([^$\n]+)\$`)
	eqLabel     = regexp.MustCompile(`(?i)\(?(?:equation|eq\.?)\s*\(?(\d+)\)?`)
	relationExp = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_^()]*\s*[=<>≤≥≠]\s*[^\s].*`)
)

// detectMarkup extracts native math markup embedded in runs. It is the
// strongest signal: the loader only sets MathML for real equation objects.
func (r *Resolver) detectMarkup(doc *types.DocumentModel) []candidate {
	var out []candidate
	for i, p := range doc.Paragraphs {
		for _, run := range p.Runs {
			if run.MathML == "" {
				continue
			}
			text := strings.TrimSpace(stripMarkup(run.MathML))
			if text == "" {
				text = strings.TrimSpace(run.Text)
			}
			if text == "" {
				continue
			}
			out = append(out, candidate{
				content:    text,
				eqType:     types.EquationMarkup,
				canonical:  r.symbols.Canonicalize(text),
				confidence: 0.95,
				method:     types.MethodMarkup,
				isDisplay:  true,
				paraIdx:    i,
			})
		}
	}
	return out
}

// detectDelimited matches dollar-style and bracket display delimiters.
func (r *Resolver) detectDelimited(doc *types.DocumentModel) []candidate {
	var out []candidate
	for i, p := range doc.Paragraphs {
		text := p.Text
		consumed := make([]bool, len(text))

		for _, m := range displayMath.FindAllStringSubmatchIndex(text, -1) {
			body := submatch(text, m)
			if strings.TrimSpace(body) == "" {
				continue
			}
			markRange(consumed, m[0], m[1])
			out = append(out, candidate{
				content:    strings.TrimSpace(body),
				eqType:     types.EquationDisplay,
				canonical:  r.symbols.Canonicalize(body),
				confidence: 0.9,
				method:     types.MethodDelimiter,
				isDisplay:  true,
				paraIdx:    i,
			})
		}
		for _, m := range inlineMath.FindAllStringSubmatchIndex(text, -1) {
			if m[0] < len(consumed) && consumed[m[0]] {
				continue
			}
			body := text[m[2]:m[3]]
			if strings.TrimSpace(body) == "" {
				continue
			}
			out = append(out, candidate{
				content:    strings.TrimSpace(body),
				eqType:     types.EquationInline,
				canonical:  r.symbols.Canonicalize(body),
				confidence: 0.85,
				method:     types.MethodDelimiter,
				isDisplay:  false,
				paraIdx:    i,
			})
		}
	}
	return out
}

// detectContextual finds relation expressions adjacent to numbered equation
// labels like "(1)" or "Equation 2".
func (r *Resolver) detectContextual(doc *types.DocumentModel) []candidate {
	var out []candidate
	for i, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		labelled := eqLabel.MatchString(text) || strings.HasSuffix(text, ")") && eqNumberSuffix(text)
		if !labelled {
			continue
		}
		m := relationExp.FindString(text)
		if m == "" {
			continue
		}
		body := strings.TrimSpace(trimEqNumber(m))
		out = append(out, candidate{
			content:    body,
			eqType:     types.EquationContextual,
			canonical:  r.symbols.Canonicalize(body),
			confidence: 0.7,
			method:     types.MethodContextual,
			isDisplay:  true,
			paraIdx:    i,
		})
	}
	return out
}

// detectSymbolRuns applies the unicode math-symbol density heuristic.
func (r *Resolver) detectSymbolRuns(doc *types.DocumentModel) []candidate {
	var out []candidate
	for i, p := range doc.Paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" || strings.Contains(text, "$") {
			continue
		}
		total, mathy := 0, 0
		for _, r2 := range text {
			if unicode.IsSpace(r2) {
				continue
			}
			total++
			if isMathRune(r2) {
				mathy++
			}
		}
		if total == 0 || mathy == 0 {
			continue
		}
		density := float64(mathy) / float64(total)
		if density < r.cfg.SymbolDensityThreshold {
			continue
		}
		// Canonicalize without any trailing equation number so this
		// candidate merges with contextual and delimiter hits on the same
		// expression.
		out = append(out, candidate{
			content:    text,
			eqType:     types.EquationUnicodeMath,
			canonical:  r.symbols.Canonicalize(trimEqNumber(text)),
			confidence: 0.5 + 0.3*clamp01(density),
			method:     types.MethodSymbol,
			isDisplay:  false,
			paraIdx:    i,
		})
	}
	return out
}

// --- merge ---

// merge groups candidates by canonical form and positional proximity (same
// or adjacent paragraph), keeps the best candidate per group, and assigns
// final ids in document order.
func (r *Resolver) merge(cands []candidate) []types.Equation {
	type group struct {
		best candidate
	}
	var groups []group

	for _, c := range cands {
		placed := false
		for gi := range groups {
			g := &groups[gi]
			if g.best.canonical != c.canonical {
				continue
			}
			if abs(g.best.paraIdx-c.paraIdx) > 1 {
				continue
			}
			if better(c, g.best) {
				g.best = c
			}
			placed = true
			break
		}
		if !placed {
			groups = append(groups, group{best: c})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].best.paraIdx != groups[j].best.paraIdx {
			return groups[i].best.paraIdx < groups[j].best.paraIdx
		}
		return groups[i].best.method < groups[j].best.method
	})

	eqs := make([]types.Equation, 0, len(groups))
	for i, g := range groups {
		c := g.best
		eqs = append(eqs, types.Equation{
			ID:             i + 1,
			Content:        c.content,
			EquationType:   c.eqType,
			CanonicalForm:  c.canonical,
			Confidence:     clamp01(c.confidence),
			Method:         c.method,
			IsDisplay:      c.isDisplay,
			Variables:      extractVariables(c.content),
			ParagraphIndex: c.paraIdx,
		})
	}
	return eqs
}

// better reports whether a should replace b as a group's winner: higher
// confidence wins, equal confidence falls back to detector priority.
func better(a, b candidate) bool {
	if a.confidence != b.confidence {
		return a.confidence > b.confidence
	}
	return a.method < b.method
}

// extractVariables collects single-letter identifiers, preserving first-seen
// order.
func extractVariables(content string) []string {
	seen := map[string]bool{}
	var vars []string
	runes := []rune(content)
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		prevLetter := i > 0 && unicode.IsLetter(runes[i-1])
		nextLetter := i+1 < len(runes) && unicode.IsLetter(runes[i+1])
		if prevLetter || nextLetter {
			continue
		}
		v := string(r)
		if !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	return vars
}

// --- small helpers ---

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripMarkup reduces embedded math markup to its text content.
func stripMarkup(xml string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(xml, ""))
}

// submatch returns the first non-empty capture of a two-alternative match.
func submatch(text string, m []int) string {
	for g := 1; g*2+1 < len(m)+1 && g <= 2; g++ {
		if m[2*g] >= 0 {
			return text[m[2*g]:m[2*g+1]]
		}
	}
	return ""
}

func markRange(consumed []bool, from, to int) {
	for i := from; i < to && i < len(consumed); i++ {
		consumed[i] = true
	}
}

var eqNumberTail = regexp.MustCompile(`\(\d+\)\s*$`)

func eqNumberSuffix(text string) bool { return eqNumberTail.MatchString(text) }

func trimEqNumber(text string) string { return eqNumberTail.ReplaceAllString(text, "") }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// String satisfies fmt.Stringer for debugging candidate dumps in tests.
func (c candidate) String() string {
	return fmt.Sprintf("%s@%d %q (%.2f)", c.method, c.paraIdx, c.content, c.confidence)
}
