// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/docmodel"
	"github.com/pdiddy/manuscript-engine/internal/pipeline"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [document]",
	Short: "Run the full pipeline and emit LaTeX",
	Long: `Generate loads a document model, analyzes its structure, and renders
LaTeX for the requested publisher template (ieee, acm, or springer).

Output goes to stdout unless --output names a file. Analysis warnings
and validation findings go to stderr and never abort the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	templateName, _ := cmd.Flags().GetString("template")
	outPath, _ := cmd.Flags().GetString("output")

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

	out, err := engine.Generate(analysis, types.Template(templateName))
	if err != nil {
		return err
	}
	for _, w := range out.ValidationWarnings {
		fmt.Fprintf(os.Stderr, "validation: %s\n", w)
	}

	if outPath == "" {
		fmt.Fprintln(os.Stdout, out.Content)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(out.Content), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d sections, %d tables, %d equations)\n",
		outPath, out.SectionsCount, out.TablesCount, out.EquationsCount)
	return nil
}

func init() {
	generateCmd.Flags().StringP("template", "t", "ieee", "publisher template: ieee, acm, or springer")
	generateCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(generateCmd)
}
