// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/latex"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available publisher templates",
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	catalog := latex.Catalog()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-26s  %s\n", "ID", "Name", "Description")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, t := range catalog {
		fmt.Fprintf(os.Stdout, "%-10s  %-26s  %s\n", t.ID, t.Name, t.Description)
	}
	return nil
}

func init() {
	templatesCmd.Flags().Bool("json", false, "emit the catalog as JSON")

	rootCmd.AddCommand(templatesCmd)
}
