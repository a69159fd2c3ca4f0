// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50% & more_fun", `50\% \& more\_fun`},
		{"cost: $5 #1", `cost: \$5 \#1`},
		{"a^b ~ c", `a\textasciicircum{}b \textasciitilde{} c`},
		{`back\slash`, `back\textbackslash{}slash`},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapePreservingPlaceholders(t *testing.T) {
	got := EscapePreservingPlaceholders("50% done [TABLE_2] & counting")
	want := `50\% done [TABLE_2] \& counting`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewriteCitations(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"as shown in [1].", `as shown in \cite{1}.`},
		{"results [2, 5] agree", `results \cite{2,5} agree`},
		{"see [3-6]", `see \cite{3,6}`},
		{"array index [i] stays", "array index [i] stays"},
	}
	for _, tt := range tests {
		if got := RewriteCitations(tt.in); got != tt.want {
			t.Errorf("RewriteCitations(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertEmphasis(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** text", `\textbf{bold} text`},
		{"*italic* text", `\textit{italic} text`},
		{"`code` text", `\texttt{code} text`},
		// Underscores arrive escaped from the earlier escape pass.
		{`\_\_bold\_\_ text`, `\textbf{bold} text`},
	}
	for _, tt := range tests {
		if got := ConvertEmphasis(tt.in); got != tt.want {
			t.Errorf("ConvertEmphasis(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanSectionTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. Introduction", "Introduction"},
		{"2.3 Data  Collection", "Data Collection"},
		{"RELATED WORK", "Related Work"},
		{"Methods", "Methods"},
	}
	for _, tt := range tests {
		if got := CleanSectionTitle(tt.in); got != tt.want {
			t.Errorf("CleanSectionTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabelSlug(t *testing.T) {
	if got := LabelSlug("Data Collection & Cleaning"); got != "data_collection_cleaning" {
		t.Errorf("LabelSlug = %q", got)
	}
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, `1\textsuperscript{st}`},
		{2, `2\textsuperscript{nd}`},
		{3, `3\textsuperscript{rd}`},
		{4, `4\textsuperscript{th}`},
	}
	for _, tt := range tests {
		if got := Ordinal(tt.n); got != tt.want {
			t.Errorf("Ordinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRoman(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"}, {4, "IV"}, {9, "IX"}, {14, "XIV"}, {40, "XL"},
	}
	for _, tt := range tests {
		if got := Roman(tt.n); got != tt.want {
			t.Errorf("Roman(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSplitAffiliation(t *testing.T) {
	inst, city, country := SplitAffiliation("MIT, Cambridge, USA")
	if inst != "MIT" || city != "Cambridge" || country != "USA" {
		t.Errorf("got %q %q %q", inst, city, country)
	}

	inst, city, country = SplitAffiliation("MIT")
	if inst != "MIT" || city != "City" || country != "Country" {
		t.Errorf("fallbacks: got %q %q %q", inst, city, country)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantWarn int
	}{
		{
			name:     "clean document",
			content:  "\\begin{document}\nhello $x$\n\\end{document}",
			wantWarn: 0,
		},
		{
			name:     "odd dollars",
			content:  "\\begin{document}$x\\end{document}",
			wantWarn: 1,
		},
		{
			name:     "unbalanced environment",
			content:  "\\begin{document}\\begin{table}\\end{document}",
			wantWarn: 1,
		},
		{
			// Trips both the document check and environment balancing.
			name:     "missing end document",
			content:  "\\begin{document}text",
			wantWarn: 2,
		},
		{
			name:     "leftover token",
			content:  "\\begin{document}[LIST_3]\\end{document}",
			wantWarn: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warns := Validate(tt.content)
			if len(warns) != tt.wantWarn {
				t.Errorf("got %d warnings %v, want %d", len(warns), warns, tt.wantWarn)
			}
		})
	}
}
