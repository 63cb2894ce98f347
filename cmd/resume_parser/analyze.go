package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-parser/internal/analysis"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/spf13/cobra"
)

var (
	analyzeFile   string
	analyzeFormat string
	analyzeHTML   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume from a file or stdin",
	Long: `Run the same analysis as POST /parse-resume on a local file.
With no --file (or --file -) the resume is read from stdin.
Files ending in .html or .htm are reduced to their visible text first.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to resume file (- for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format: json or text")
	analyzeCmd.Flags().BoolVar(&analyzeHTML, "html", false, "Treat input as HTML")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeFormat != "json" && analyzeFormat != "text" {
		return fmt.Errorf("invalid --format %q: must be json or text", analyzeFormat)
	}

	var (
		text string
		err  error
	)
	if analyzeFile == "" || analyzeFile == "-" {
		text, err = ingestion.Read(cmd.InOrStdin(), analyzeHTML)
	} else {
		text, err = ingestion.ReadFile(analyzeFile, analyzeHTML)
	}
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeFormat == "text" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
