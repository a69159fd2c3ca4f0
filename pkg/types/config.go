// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AnalysisConfig holds the tunable knobs of the analysis stages. Zero values
// are replaced by the listed defaults when the pipeline starts.
type AnalysisConfig struct {
	// TableSimilarityThreshold is the token-overlap ratio above which a
	// prose span is treated as an echo of table content and stripped
	// (default 0.82).
	TableSimilarityThreshold float64 `json:"table_similarity_threshold" yaml:"table_similarity_threshold"`

	// SymbolDensityThreshold is the fraction of math symbols a text run
	// must reach before the symbol heuristic reports an equation
	// (default 0.15).
	SymbolDensityThreshold float64 `json:"symbol_density_threshold" yaml:"symbol_density_threshold"`

	// MinConfidence is a display filter applied by callers; elements below
	// it are still present in the analysis record (default 0.5).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// DetectLists, DetectTables, and DetectEquations toggle the optional
	// structural detectors. All default to true.
	DetectLists     *bool `json:"detect_lists,omitempty" yaml:"detect_lists,omitempty"`
	DetectTables    *bool `json:"detect_tables,omitempty" yaml:"detect_tables,omitempty"`
	DetectEquations *bool `json:"detect_equations,omitempty" yaml:"detect_equations,omitempty"`
}

// CacheConfig controls the optional content-hash keyed analysis cache.
type CacheConfig struct {
	// Enabled turns the cache on. When false the pipeline recomputes every
	// analysis.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the cache database (default ".cache").
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// PipelineConfig aggregates the per-stage settings.
type PipelineConfig struct {
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
}

const (
	defaultTableSimilarity = 0.82
	defaultSymbolDensity   = 0.15
	defaultMinConfidence   = 0.5
)

// WithDefaults returns a copy with zero values replaced by defaults.
func (c AnalysisConfig) WithDefaults() AnalysisConfig {
	out := c
	if out.TableSimilarityThreshold <= 0 {
		out.TableSimilarityThreshold = defaultTableSimilarity
	}
	if out.SymbolDensityThreshold <= 0 {
		out.SymbolDensityThreshold = defaultSymbolDensity
	}
	if out.MinConfidence <= 0 {
		out.MinConfidence = defaultMinConfidence
	}
	return out
}

// ListsEnabled reports whether list detection is on (default true).
func (c AnalysisConfig) ListsEnabled() bool { return c.DetectLists == nil || *c.DetectLists }

// TablesEnabled reports whether table detection is on (default true).
func (c AnalysisConfig) TablesEnabled() bool { return c.DetectTables == nil || *c.DetectTables }

// EquationsEnabled reports whether equation detection is on (default true).
func (c AnalysisConfig) EquationsEnabled() bool {
	return c.DetectEquations == nil || *c.DetectEquations
}
