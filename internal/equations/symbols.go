// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package equations

import (
	"strings"
	"unicode"
)

// SymbolTable maps recognized unicode math symbols to their LaTeX
// equivalents. It is built once at startup and never mutated; Canonicalize
// uses it to produce the detector-independent form equations are
// deduplicated and rendered by.
type SymbolTable struct {
	replacer *strings.Replacer
}

// symbolPairs is the static symbol mapping, from the Office-math conversion
// tables: Greek letters, big operators, radicals, relations.
var symbolPairs = []string{
	"∑", `\sum`,
	"∫", `\int`,
	"∏", `\prod`,
	"√", `\sqrt`,
	"∞", `\infty`,
	"∂", `\partial`,
	"∇", `\nabla`,
	"α", `\alpha`,
	"β", `\beta`,
	"γ", `\gamma`,
	"δ", `\delta`,
	"ε", `\epsilon`,
	"ζ", `\zeta`,
	"η", `\eta`,
	"θ", `\theta`,
	"λ", `\lambda`,
	"μ", `\mu`,
	"ξ", `\xi`,
	"π", `\pi`,
	"ρ", `\rho`,
	"σ", `\sigma`,
	"τ", `\tau`,
	"φ", `\phi`,
	"χ", `\chi`,
	"ψ", `\psi`,
	"ω", `\omega`,
	"Γ", `\Gamma`,
	"Δ", `\Delta`,
	"Θ", `\Theta`,
	"Λ", `\Lambda`,
	"Σ", `\Sigma`,
	"Φ", `\Phi`,
	"Ψ", `\Psi`,
	"Ω", `\Omega`,
	"≤", `\leq`,
	"≥", `\geq`,
	"≠", `\neq`,
	"≈", `\approx`,
	"≡", `\equiv`,
	"±", `\pm`,
	"×", `\times`,
	"÷", `\div`,
	"·", `\cdot`,
	"∈", `\in`,
	"∉", `\notin`,
	"⊂", `\subset`,
	"∪", `\cup`,
	"∩", `\cap`,
	"→", `\rightarrow`,
	"←", `\leftarrow`,
	"⇒", `\Rightarrow`,
}

// DefaultSymbols returns the built-in symbol table.
func DefaultSymbols() *SymbolTable {
	return &SymbolTable{replacer: strings.NewReplacer(symbolPairs...)}
}

// Canonicalize produces the normalized representation of an equation:
// symbols replaced by their LaTeX names, whitespace collapsed.
func (t *SymbolTable) Canonicalize(s string) string {
	return strings.Join(strings.Fields(t.replacer.Replace(strings.TrimSpace(s))), " ")
}

// mathRunes are symbols counted by the density heuristic that are not
// covered by the unicode Sm (math symbol) category.
var mathRunes = map[rune]bool{
	'=': true, '+': true, '^': true, '/': true,
	'(': true, ')': true, '<': true, '>': true,
}

// isMathRune reports whether r counts toward math-symbol density.
func isMathRune(r rune) bool {
	if mathRunes[r] {
		return true
	}
	if unicode.Is(unicode.Sm, r) {
		return true
	}
	// Greek letters outside the Sm category still signal math text.
	return unicode.Is(unicode.Greek, r)
}
