// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boundary

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ExclusionIndex records normalized table content so that prose echoing a
// table verbatim (a common artifact of word-processor exports) can be
// stripped from section text instead of appearing twice in the output.
type ExclusionIndex struct {
	exact     map[string]bool
	tokens    map[string]bool
	threshold float64
}

// exclusionMinTokens is the span length below which only exact folded
// equality counts; short spans make token overlap meaningless.
const exclusionMinTokens = 3

var foldCaser = cases.Fold()

// Fold normalizes text for comparison: NFKC normalization, case folding,
// and whitespace collapsing.
func Fold(s string) string {
	return strings.Join(strings.Fields(foldCaser.String(norm.NFKC.String(s))), " ")
}

// NewExclusionIndex folds every cell and caption of the given tables.
// threshold is the token-overlap ratio above which a span is treated as an
// echo of table content.
func NewExclusionIndex(cells []string, threshold float64) *ExclusionIndex {
	idx := &ExclusionIndex{
		exact:     make(map[string]bool),
		tokens:    make(map[string]bool),
		threshold: threshold,
	}
	for _, c := range cells {
		folded := Fold(c)
		if folded == "" {
			continue
		}
		idx.exact[folded] = true
		for _, tok := range strings.Fields(folded) {
			idx.tokens[tok] = true
		}
	}
	return idx
}

// Excludes reports whether span should be stripped from prose: either its
// folded form equals recorded table content exactly, or enough of its
// tokens appear in the table token set to exceed the similarity threshold.
func (idx *ExclusionIndex) Excludes(span string) bool {
	folded := Fold(span)
	if folded == "" {
		return false
	}
	if idx.exact[folded] {
		return true
	}

	toks := strings.Fields(folded)
	if len(toks) < exclusionMinTokens {
		return false
	}
	hit := 0
	for _, t := range toks {
		if idx.tokens[t] {
			hit++
		}
	}
	return float64(hit)/float64(len(toks)) >= idx.threshold
}
