// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the analysis stages. Detection runs
// concurrently where stages are independent, then boundary assignment
// serializes the results into a single DocumentAnalysis. Rendering never
// sees raw detector output.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/sourcegraph/conc"

	"github.com/pdiddy/manuscript-engine/internal/analyze"
	"github.com/pdiddy/manuscript-engine/internal/authors"
	"github.com/pdiddy/manuscript-engine/internal/boundary"
	"github.com/pdiddy/manuscript-engine/internal/cache"
	"github.com/pdiddy/manuscript-engine/internal/equations"
	"github.com/pdiddy/manuscript-engine/internal/latex"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Engine runs the document pipeline. Progress lines go to the writer; pass
// io.Discard to silence them.
type Engine struct {
	cfg      types.PipelineConfig
	store    *cache.Store
	progress io.Writer
}

// New creates an engine with defaults applied. The cache is opened lazily
// on first use so an engine that never analyzes never touches disk.
func New(cfg types.PipelineConfig, progress io.Writer) *Engine {
	cfg.Analysis = cfg.Analysis.WithDefaults()
	if progress == nil {
		progress = io.Discard
	}
	return &Engine{cfg: cfg, progress: progress}
}

// Close releases the cache database if one was opened.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Analyze runs structural analysis over the document model and returns a
// complete DocumentAnalysis. Detection failures never abort the run; they
// surface as warnings on the result. Only malformed input is fatal.
func (e *Engine) Analyze(ctx context.Context, doc *types.DocumentModel) (*types.DocumentAnalysis, error) {
	if doc == nil || len(doc.Paragraphs) == 0 {
		return nil, types.NewStageError(types.StageAnalyze, "document model has no paragraphs", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, types.NewStageError(types.StageAnalyze, "canceled", err)
	}

	key, err := e.cacheKey(doc)
	if err == nil && key != "" {
		if cached := e.cacheGet(key); cached != nil {
			fmt.Fprintf(e.progress, "analysis cache hit for %s\n", doc.Filename)
			return cached, nil
		}
	}

	fmt.Fprintf(e.progress, "analyzing %s (%d paragraphs)\n", doc.Filename, len(doc.Paragraphs))

	// Structure, equations, and element detection are independent of one
	// another; fan them out and join before boundary assignment.
	var (
		structure analyze.Result
		authInfo  *types.AuthorInfo
		eqs       []types.Equation
		tables    []types.DocumentTable
		lists     []types.DocumentList
	)

	analyzer := analyze.New(e.cfg.Analysis)

	var wg conc.WaitGroup
	wg.Go(func() {
		structure = analyzer.Analyze(doc)
	})
	wg.Go(func() {
		if e.cfg.Analysis.EquationsEnabled() {
			eqs = equations.New(e.cfg.Analysis).Resolve(doc)
		}
	})
	wg.Go(func() {
		if e.cfg.Analysis.TablesEnabled() {
			tables = analyze.BuildTables(doc)
		}
	})
	wg.Go(func() {
		if e.cfg.Analysis.ListsEnabled() {
			lists = analyze.DetectLists(doc.Paragraphs)
		}
	})
	wg.Wait()

	// Author resolution needs the title position, so it runs after the
	// structural pass.
	titleIdx := -1
	if structure.Title != nil {
		titleIdx = structure.Title.ParagraphIndex
	}
	authInfo = authors.Resolve(doc.Paragraphs, titleIdx)

	bounded := boundary.Assign(boundary.Input{
		Sections:   structure.Sections,
		Tables:     tables,
		Lists:      lists,
		Equations:  eqs,
		Paragraphs: doc.Paragraphs,
	}, e.cfg.Analysis)

	analysis := &types.DocumentAnalysis{
		Filename:        doc.Filename,
		Title:           structure.Title,
		Authors:         authInfo,
		Abstract:        structure.Abstract,
		Keywords:        structure.Keywords,
		Sections:        bounded.Sections,
		Lists:           lists,
		Tables:          tables,
		Equations:       eqs,
		TotalParagraphs: len(doc.Paragraphs),
		TotalWords:      doc.WordCount(),
	}
	analysis.Warnings = append(analysis.Warnings, structure.Warnings...)
	analysis.Warnings = append(analysis.Warnings, bounded.Warnings...)
	analysis.Confidence = analysis.OverallConfidence()

	fmt.Fprintf(e.progress, "analysis complete: %d sections, %d tables, %d lists, %d equations (confidence %.2f)\n",
		len(analysis.Sections), len(analysis.Tables), len(analysis.Lists), len(analysis.Equations), analysis.Confidence)

	if key != "" {
		e.cachePut(key, analysis)
	}
	return analysis, nil
}

// Generate renders a completed analysis with the named template.
func (e *Engine) Generate(analysis *types.DocumentAnalysis, template types.Template) (*types.LatexOutput, error) {
	if analysis == nil {
		return nil, types.NewStageError(types.StageRender, "no analysis to render", nil)
	}

	renderer, err := latex.ForTemplate(template, authors.DefaultDepartments())
	if err != nil {
		return nil, types.NewStageError(types.StageRender, "selecting template", err)
	}

	fmt.Fprintf(e.progress, "rendering %s with template %s\n", analysis.Filename, template)
	out := latex.Generate(renderer, analysis)
	for _, w := range out.ValidationWarnings {
		fmt.Fprintf(e.progress, "validation: %s\n", w)
	}
	return out, nil
}

// Run executes the full pipeline over an already loaded document model.
func (e *Engine) Run(ctx context.Context, doc *types.DocumentModel, template types.Template) (*types.LatexOutput, error) {
	analysis, err := e.Analyze(ctx, doc)
	if err != nil {
		return nil, err
	}
	return e.Generate(analysis, template)
}

// cacheKey returns the content hash, or "" when the cache is disabled.
// Cache failures are non-fatal: the pipeline recomputes instead.
func (e *Engine) cacheKey(doc *types.DocumentModel) (string, error) {
	if !e.cfg.Cache.Enabled {
		return "", nil
	}
	if e.store == nil {
		dir := e.cfg.Cache.Dir
		if dir == "" {
			dir = ".cache"
		}
		store, err := cache.Open(dir)
		if err != nil {
			fmt.Fprintf(e.progress, "cache unavailable: %v\n", err)
			e.cfg.Cache.Enabled = false
			return "", err
		}
		e.store = store
	}
	return cache.Key(doc, e.cfg.Analysis)
}

func (e *Engine) cacheGet(key string) *types.DocumentAnalysis {
	analysis, err := e.store.Get(key)
	if err != nil {
		fmt.Fprintf(e.progress, "cache read failed: %v\n", err)
		return nil
	}
	return analysis
}

func (e *Engine) cachePut(key string, analysis *types.DocumentAnalysis) {
	if e.store == nil {
		return
	}
	if err := e.store.Put(key, analysis); err != nil {
		fmt.Fprintf(e.progress, "cache write failed: %v\n", err)
	}
}
