// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/internal/docmodel"
	"github.com/pdiddy/manuscript-engine/internal/pipeline"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [document]",
	Short: "Analyze a document model and report detected structure",
	Long: `Analyze reads a document model file (JSON or YAML) and runs structural
detection: title, authors, abstract, keywords, sections, tables, lists,
and equations. Every detection carries a confidence score and reasoning;
ambiguous findings surface as warnings rather than errors.

The full analysis is written to stdout as YAML, or JSON with --json.
--min-confidence hides low-confidence detections from the output; the
underlying analysis (and the cache entry, if enabled) always keeps them.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	doc, err := docmodel.Load(args[0])
	if err != nil {
		return err
	}

	engine := pipeline.New(pipelineConfig(), progressWriter(cmd))
	defer engine.Close()

	analysis, err := engine.Analyze(context.Background(), doc)
	if err != nil {
		return err
	}

	for _, w := range analysis.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if min, _ := cmd.Flags().GetFloat64("min-confidence"); min > 0 {
		analysis = filterByConfidence(analysis, min)
	}

	var out io.Writer = os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	return yaml.NewEncoder(out).Encode(analysis)
}

// filterByConfidence returns a copy of the analysis with detections below
// min removed. Display-only; totals and overall confidence are untouched.
func filterByConfidence(a *types.DocumentAnalysis, min float64) *types.DocumentAnalysis {
	out := *a
	if out.Title != nil && out.Title.Confidence < min {
		out.Title = nil
	}
	if out.Abstract != nil && out.Abstract.Confidence < min {
		out.Abstract = nil
	}
	if out.Keywords != nil && out.Keywords.Confidence < min {
		out.Keywords = nil
	}
	out.Sections = nil
	for _, s := range a.Sections {
		if s.Confidence >= min {
			out.Sections = append(out.Sections, s)
		}
	}
	out.Tables = nil
	for _, t := range a.Tables {
		if t.Confidence >= min {
			out.Tables = append(out.Tables, t)
		}
	}
	out.Lists = nil
	for _, l := range a.Lists {
		if l.Confidence >= min {
			out.Lists = append(out.Lists, l)
		}
	}
	out.Equations = nil
	for _, e := range a.Equations {
		if e.Confidence >= min {
			out.Equations = append(out.Equations, e)
		}
	}
	return &out
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "emit the analysis as JSON instead of YAML")
	analyzeCmd.Flags().StringP("output", "o", "", "write the analysis to a file instead of stdout")
	analyzeCmd.Flags().Float64("min-confidence", 0, "hide detections below this confidence (display only)")

	rootCmd.AddCommand(analyzeCmd)
}
