// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boundary

import (
	"strings"
	"testing"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func para(text string) types.Paragraph {
	return types.Paragraph{Text: text, Style: "Normal"}
}

func section(id int, title string, level types.SectionLevel, conf float64, start, end int) types.Section {
	return types.Section{
		ID: id, Title: title, Level: level,
		Confidence: conf, StartLine: start, EndLine: end,
	}
}

func TestAssignThreadsPlaceholders(t *testing.T) {
	in := Input{
		Paragraphs: []types.Paragraph{
			para("Results"),        // 0: heading
			para("Body before."),   // 1
			para(""),               // 2: table sits here
			para("1. first step"),  // 3: list start
			para("2. second step"), // 4: list continuation
			para("Body after."),    // 5
		},
		Sections: []types.Section{
			section(1, "Results", types.LevelSection, 0.9, 0, 5),
		},
		Tables: []types.DocumentTable{{
			ID: 1, Rows: 1, Columns: 1,
			Cells:          [][]types.TableCell{{{Content: "cell"}}},
			ParagraphIndex: 2,
		}},
		Lists: []types.DocumentList{{
			ID:             1,
			ListType:       types.ListOrdered,
			Items:          []types.ListItem{{Content: "first step"}, {Content: "second step"}},
			ParagraphIndex: 3,
		}},
	}

	res := Assign(in, types.AnalysisConfig{})
	if len(res.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(res.Sections))
	}
	sec := res.Sections[0]

	want := "Body before.\n[TABLE_1]\n[LIST_1]\nBody after."
	if sec.Content != want {
		t.Errorf("content = %q, want %q", sec.Content, want)
	}
	if len(sec.ContainsTables) != 1 || sec.ContainsTables[0] != 1 {
		t.Errorf("ContainsTables = %v", sec.ContainsTables)
	}
	if len(sec.ContainsLists) != 1 {
		t.Errorf("ContainsLists = %v", sec.ContainsLists)
	}
	if res.Placeholders["[TABLE_1]"] != (Ref{Kind: "table", ID: 1}) {
		t.Errorf("placeholder map = %v", res.Placeholders)
	}
	if res.Placeholders["[LIST_1]"] != (Ref{Kind: "list", ID: 1}) {
		t.Errorf("placeholder map = %v", res.Placeholders)
	}
}

func TestAssignSubstitutesEquations(t *testing.T) {
	in := Input{
		Paragraphs: []types.Paragraph{
			para("Model"),
			para("We minimize $$L = y - f(x)$$ during training."),
		},
		Sections: []types.Section{
			section(1, "Model", types.LevelSection, 0.9, 0, 1),
		},
		Equations: []types.Equation{{
			ID: 1, Content: "L = y - f(x)", IsDisplay: true, ParagraphIndex: 1,
		}},
	}

	res := Assign(in, types.AnalysisConfig{})
	sec := res.Sections[0]
	if !strings.Contains(sec.Content, "[EQUATION_1]") {
		t.Fatalf("content = %q, want equation token", sec.Content)
	}
	if strings.Contains(sec.Content, "$$") {
		t.Errorf("content = %q, raw delimiters must be replaced", sec.Content)
	}
	if len(sec.ContainsEquations) != 1 {
		t.Errorf("ContainsEquations = %v", sec.ContainsEquations)
	}
}

func TestAssignDropsOverlappingSibling(t *testing.T) {
	in := Input{
		Paragraphs: []types.Paragraph{
			para("A"), para("body"), para("B"), para("body"),
		},
		Sections: []types.Section{
			section(1, "Strong", types.LevelSection, 0.9, 0, 3),
			section(2, "Weak", types.LevelSection, 0.4, 2, 3),
		},
	}

	res := Assign(in, types.AnalysisConfig{})
	if len(res.Sections) != 1 {
		t.Fatalf("got %d sections, want 1: %+v", len(res.Sections), res.Sections)
	}
	if res.Sections[0].Title != "Strong" {
		t.Errorf("kept %q, want the higher-confidence section", res.Sections[0].Title)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "boundary conflict") {
		t.Errorf("warnings = %v, want one conflict warning", res.Warnings)
	}
}

func TestAssignKeepsDifferentLevels(t *testing.T) {
	in := Input{
		Paragraphs: []types.Paragraph{
			para("A"), para("body"), para("A.1"), para("body"),
		},
		Sections: []types.Section{
			section(1, "Outer", types.LevelSection, 0.9, 0, 3),
			section(2, "Inner", types.LevelSubsection, 0.85, 2, 3),
		},
	}

	res := Assign(in, types.AnalysisConfig{})
	if len(res.Sections) != 2 {
		t.Fatalf("got %d sections, want 2 (nesting is not a conflict)", len(res.Sections))
	}
}

func TestAssignStripsTableEchoes(t *testing.T) {
	in := Input{
		Paragraphs: []types.Paragraph{
			para("Results"),
			para("Method Accuracy Baseline"), // echoes table tokens
			para("Genuine prose that should survive the exclusion filter entirely."),
		},
		Sections: []types.Section{
			section(1, "Results", types.LevelSection, 0.9, 0, 2),
		},
		Tables: []types.DocumentTable{{
			ID: 1, Rows: 1, Columns: 3,
			Cells: [][]types.TableCell{{
				{Content: "Method"}, {Content: "Accuracy"}, {Content: "Baseline"},
			}},
			ParagraphIndex: 0,
		}},
	}

	res := Assign(in, types.AnalysisConfig{})
	sec := res.Sections[0]
	if strings.Contains(sec.Content, "Method Accuracy Baseline") {
		t.Errorf("content = %q, table echo should be stripped", sec.Content)
	}
	if !strings.Contains(sec.Content, "Genuine prose") {
		t.Errorf("content = %q, real prose must survive", sec.Content)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "stripped table echo") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want stripped table echo", res.Warnings)
	}
}

func TestClampRange(t *testing.T) {
	sec := section(1, "S", types.LevelSection, 0.9, -2, 99)
	clampRange(&sec, 10)
	if sec.StartLine != 0 || sec.EndLine != 9 {
		t.Errorf("range = [%d, %d], want [0, 9]", sec.StartLine, sec.EndLine)
	}

	inverted := section(2, "T", types.LevelSection, 0.9, 5, 3)
	clampRange(&inverted, 10)
	if inverted.EndLine != 5 {
		t.Errorf("inverted EndLine = %d, want clamped to start", inverted.EndLine)
	}
}

func TestExclusionIndex(t *testing.T) {
	idx := NewExclusionIndex([]string{"Method", "Accuracy", "Ours", "0.89"}, 0.82)

	tests := []struct {
		name string
		span string
		want bool
	}{
		{name: "exact cell match", span: "Method", want: true},
		{name: "case and width folded", span: "ＭＥＴＨＯＤ", want: true},
		{name: "high token overlap", span: "method accuracy ours", want: true},
		{name: "short non-cell span kept", span: "our approach", want: false},
		{name: "prose with low overlap kept", span: "the method improves on prior work in several ways", want: false},
		{name: "empty", span: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Excludes(tt.span); got != tt.want {
				t.Errorf("Excludes(%q) = %v, want %v", tt.span, got, tt.want)
			}
		})
	}
}

func TestSubstituteEquationAppendsDisplay(t *testing.T) {
	e := &types.Equation{ID: 2, Content: "a = b", IsDisplay: true}
	got := substituteEquation("Unrelated prose line.", e, "[EQUATION_2]")
	if !strings.HasSuffix(got, "[EQUATION_2]") {
		t.Errorf("got %q, display equation should be appended", got)
	}

	inline := &types.Equation{ID: 3, Content: "a = b", IsDisplay: false}
	got = substituteEquation("Unrelated prose line.", inline, "[EQUATION_3]")
	if strings.Contains(got, "[EQUATION_3]") {
		t.Errorf("got %q, inline equation must not be appended", got)
	}
}
