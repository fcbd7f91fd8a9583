package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [files...]",
	Short: "Verify the signature chain of SAF-T audit files",
	Long: `Verify only the RSA signature chain of every document series: each
document's hash must sign over its own fields plus the previous
document's hash. The business rule checks are skipped.

A public key is required; without one every document is reported with a
warning instead of a verification result.

Examples:
  saft-validator verify saft.xml --public-key key.pem`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to verify")
	}
	if publicKeyPath == "" {
		printVerbose("no public key configured, signatures cannot be checked\n")
	}

	pipeline, err := buildPipeline()
	if err != nil {
		return err
	}

	results := make([]*FileResult, 0, len(files))
	allValid := true
	for _, file := range files {
		result := &FileResult{File: file}

		data, err := os.ReadFile(file)
		if err != nil {
			result.Error = fmt.Sprintf("failed to read file: %v", err)
			results = append(results, result)
			allValid = false
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		out := pipeline.Verify(ctx, data)
		cancel()
		if out.Error != nil {
			result.Error = fmt.Sprintf("parse error: %v", out.Error)
			results = append(results, result)
			allValid = false
			continue
		}

		result.Valid = out.Report.Valid
		result.Report = out.Report
		results = append(results, result)
		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		printResults(results)
	}

	if !allValid {
		return fmt.Errorf("chain verification failed for some files")
	}
	return nil
}
