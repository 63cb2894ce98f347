// Package main provides the entry point for the Resume Parser HTTP API and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "resume_parser",
	Short:        "Resume Parser HTTP API Server",
	Long:         "Resume Parser scans resume text for known skills, job titles and years of experience, and suggests improvements for common gaps.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
