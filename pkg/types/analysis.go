// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SectionLevel is the hierarchical depth of a detected section.
type SectionLevel int

const (
	LevelTitle SectionLevel = iota
	LevelSection
	LevelSubsection
	LevelSubsubsection
	LevelParagraph
)

// ListType distinguishes ordered from unordered lists.
type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// EquationType records which kind of mathematical content was detected.
type EquationType string

const (
	EquationMarkup      EquationType = "markup"
	EquationInline      EquationType = "latex_inline"
	EquationDisplay     EquationType = "latex_display"
	EquationUnicodeMath EquationType = "unicode_math"
	EquationContextual  EquationType = "contextual"
)

// DetectionMethod identifies which detector produced an equation candidate.
// The declaration order is the merge tie-break priority, strongest first.
type DetectionMethod int

const (
	MethodMarkup DetectionMethod = iota
	MethodDelimiter
	MethodContextual
	MethodSymbol
)

// String returns the method name used in reasoning strings.
func (m DetectionMethod) String() string {
	switch m {
	case MethodMarkup:
		return "markup"
	case MethodDelimiter:
		return "delimiter"
	case MethodContextual:
		return "contextual"
	case MethodSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// DetectedElement is the base shape for title, abstract, and keyword
// detections: the content plus a [0,1] confidence and the reasoning that
// produced it. Low-confidence elements are returned, never dropped; callers
// filter by score.
type DetectedElement struct {
	Content        string  `json:"content" yaml:"content"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
	Reasoning      string  `json:"reasoning" yaml:"reasoning"`
	Style          string  `json:"style,omitempty" yaml:"style,omitempty"`
	ParagraphIndex int     `json:"paragraph_index" yaml:"paragraph_index"`
}

// AuthorInfo holds the parallel author sequences. Affiliations, Departments,
// and Emails may be shorter than Names only by explicit empty-string padding;
// the resolver never silently truncates. CorrespondingIndices index into
// Names.
type AuthorInfo struct {
	Names                 []string `json:"names" yaml:"names"`
	Affiliations          []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Departments           []string `json:"departments,omitempty" yaml:"departments,omitempty"`
	Emails                []string `json:"emails,omitempty" yaml:"emails,omitempty"`
	CorrespondingIndices  []int    `json:"corresponding_indices,omitempty" yaml:"corresponding_indices,omitempty"`
	Identifiers           []string `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	StructuredBlockParsed bool     `json:"structured_block_parsed" yaml:"structured_block_parsed"`
}

// Section is a detected document section with its resolved line range and
// the structural elements whose placeholders appear in its content.
type Section struct {
	ID                int          `json:"id" yaml:"id"`
	Number            string       `json:"number,omitempty" yaml:"number,omitempty"`
	Title             string       `json:"title" yaml:"title"`
	Content           string       `json:"content" yaml:"content"`
	Level             SectionLevel `json:"level" yaml:"level"`
	Confidence        float64      `json:"confidence" yaml:"confidence"`
	Reasoning         string       `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Style             string       `json:"style,omitempty" yaml:"style,omitempty"`
	WordCount         int          `json:"word_count" yaml:"word_count"`
	StartLine         int          `json:"start_line_index" yaml:"start_line_index"`
	EndLine           int          `json:"end_line_index" yaml:"end_line_index"`
	ContainsTables    []int        `json:"contains_tables,omitempty" yaml:"contains_tables,omitempty"`
	ContainsLists     []int        `json:"contains_lists,omitempty" yaml:"contains_lists,omitempty"`
	ContainsEquations []int        `json:"contains_equations,omitempty" yaml:"contains_equations,omitempty"`
}

// ListItem is one entry of a DocumentList. Level starts at 1.
type ListItem struct {
	Content     string   `json:"content" yaml:"content"`
	Level       int      `json:"level" yaml:"level"`
	ItemType    ListType `json:"item_type" yaml:"item_type"`
	Index       int      `json:"index,omitempty" yaml:"index,omitempty"`
	HasSubitems bool     `json:"has_subitems,omitempty" yaml:"has_subitems,omitempty"`
}

// DocumentList is an ordered run of list items. MaxDepth equals the greatest
// item level; IsNested holds iff MaxDepth > 1.
type DocumentList struct {
	ID             int        `json:"id" yaml:"id"`
	ListType       ListType   `json:"list_type" yaml:"list_type"`
	Items          []ListItem `json:"items" yaml:"items"`
	Confidence     float64    `json:"confidence" yaml:"confidence"`
	IsNested       bool       `json:"is_nested" yaml:"is_nested"`
	MaxDepth       int        `json:"max_depth" yaml:"max_depth"`
	ParagraphIndex int        `json:"paragraph_index" yaml:"paragraph_index"`
}

// TableCell is a cell of an analyzed table.
type TableCell struct {
	Content  string `json:"content" yaml:"content"`
	RowSpan  int    `json:"row_span" yaml:"row_span"`
	ColSpan  int    `json:"col_span" yaml:"col_span"`
	IsHeader bool   `json:"is_header,omitempty" yaml:"is_header,omitempty"`
}

// DocumentTable is an analyzed table with its grid and caption.
type DocumentTable struct {
	ID             int           `json:"id" yaml:"id"`
	Rows           int           `json:"rows" yaml:"rows"`
	Columns        int           `json:"columns" yaml:"columns"`
	Cells          [][]TableCell `json:"cells" yaml:"cells"`
	Caption        string        `json:"caption,omitempty" yaml:"caption,omitempty"`
	Confidence     float64       `json:"confidence" yaml:"confidence"`
	HasHeaders     bool          `json:"has_headers" yaml:"has_headers"`
	ParagraphIndex int           `json:"paragraph_index" yaml:"paragraph_index"`
}

// Equation is a detected piece of mathematical content. CanonicalForm is the
// normalized detector-independent representation used for deduplication and
// LaTeX conversion.
type Equation struct {
	ID             int             `json:"id" yaml:"id"`
	Content        string          `json:"content" yaml:"content"`
	EquationType   EquationType    `json:"equation_type" yaml:"equation_type"`
	CanonicalForm  string          `json:"canonical_form,omitempty" yaml:"canonical_form,omitempty"`
	Confidence     float64         `json:"confidence" yaml:"confidence"`
	Method         DetectionMethod `json:"method" yaml:"method"`
	IsDisplay      bool            `json:"is_display" yaml:"is_display"`
	Variables      []string        `json:"variables,omitempty" yaml:"variables,omitempty"`
	ParagraphIndex int             `json:"paragraph_index" yaml:"paragraph_index"`
}

// DocumentAnalysis is the aggregate produced by the analysis pipeline. It is
// immutable once the boundary stage completes: the generator only reads it.
type DocumentAnalysis struct {
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	Title    *DetectedElement `json:"title,omitempty" yaml:"title,omitempty"`
	Authors  *AuthorInfo      `json:"authors,omitempty" yaml:"authors,omitempty"`
	Abstract *DetectedElement `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Keywords *DetectedElement `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	Sections  []Section       `json:"sections,omitempty" yaml:"sections,omitempty"`
	Lists     []DocumentList  `json:"lists,omitempty" yaml:"lists,omitempty"`
	Tables    []DocumentTable `json:"tables,omitempty" yaml:"tables,omitempty"`
	Equations []Equation      `json:"equations,omitempty" yaml:"equations,omitempty"`

	TotalParagraphs int     `json:"total_paragraphs" yaml:"total_paragraphs"`
	TotalWords      int     `json:"total_words" yaml:"total_words"`
	Confidence      float64 `json:"confidence" yaml:"confidence"`

	// Warnings accumulates non-fatal findings: ambiguous detections,
	// dropped overlapping sections, stripped table echoes.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// TableByID returns the table with the given id, or nil.
func (a *DocumentAnalysis) TableByID(id int) *DocumentTable {
	for i := range a.Tables {
		if a.Tables[i].ID == id {
			return &a.Tables[i]
		}
	}
	return nil
}

// ListByID returns the list with the given id, or nil.
func (a *DocumentAnalysis) ListByID(id int) *DocumentList {
	for i := range a.Lists {
		if a.Lists[i].ID == id {
			return &a.Lists[i]
		}
	}
	return nil
}

// EquationByID returns the equation with the given id, or nil.
func (a *DocumentAnalysis) EquationByID(id int) *Equation {
	for i := range a.Equations {
		if a.Equations[i].ID == id {
			return &a.Equations[i]
		}
	}
	return nil
}

// OverallConfidence averages the confidence of every detected element.
// Author info carries no score of its own and counts as 0.8 when present.
func (a *DocumentAnalysis) OverallConfidence() float64 {
	var scores []float64
	for _, e := range []*DetectedElement{a.Title, a.Abstract, a.Keywords} {
		if e != nil {
			scores = append(scores, e.Confidence)
		}
	}
	if a.Authors != nil {
		scores = append(scores, 0.8)
	}
	for _, s := range a.Sections {
		scores = append(scores, s.Confidence)
	}
	for _, l := range a.Lists {
		scores = append(scores, l.Confidence)
	}
	for _, t := range a.Tables {
		scores = append(scores, t.Confidence)
	}
	for _, e := range a.Equations {
		scores = append(scores, e.Confidence)
	}
	if len(scores) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
