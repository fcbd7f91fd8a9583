package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/saft-validator/internal/processor"
	"github.com/rezonia/saft-validator/internal/signature"
	"github.com/rezonia/saft-validator/internal/validate"
)

var noSignCheck bool

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate SAF-T audit files",
	Long: `Validate one or more SAF-T audit files against the billing rules.

Checks performed:
  - Document structure: number format, status, customer/supplier, dates
  - Line rules: numbering, amounts, tax codes against the tax table
  - Credit/debit note references and order references
  - Document and table totals within the configured tolerances
  - The RSA signature chain of every document series

Examples:
  saft-validator validate saft.xml
  saft-validator validate *.xml --public-key key.pem
  saft-validator validate saft.xml --no-sign-check -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&noSignCheck, "no-sign-check", false, "Skip signature chain verification")
}

// FileResult holds the validation outcome of a single file
type FileResult struct {
	File   string           `json:"file"`
	Valid  bool             `json:"valid"`
	Error  string           `json:"error,omitempty"`
	Report *validate.Report `json:"report,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	pipeline, err := buildPipeline()
	if err != nil {
		return err
	}

	results := make([]*FileResult, 0, len(files))
	allValid := true
	for _, file := range files {
		result := validateFile(pipeline, file)
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
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func validateFile(pipeline *processor.Pipeline, file string) *FileResult {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := &FileResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	out := pipeline.Process(ctx, data)
	if out.Error != nil {
		result.Error = fmt.Sprintf("parse error: %v", out.Error)
		return result
	}
	result.Valid = out.Report.Valid
	result.Report = out.Report
	return result
}

func printResults(results []*FileResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("✗ %s: %s\n", r.File, r.Error)
			continue
		}
		if r.Valid {
			fmt.Printf("✓ %s: VALID (%d documents)\n", r.File, len(r.Report.Documents))
		} else {
			fmt.Printf("✗ %s: INVALID (%d errors)\n", r.File, r.Report.Errors)
		}
		for _, d := range r.Report.Documents {
			if d.Valid {
				continue
			}
			fmt.Printf("  %s (%s):\n", d.Number, d.Type)
			for field, msg := range d.Errors {
				fmt.Printf("    - %s: %s\n", field, msg)
			}
		}
		for _, t := range r.Report.Tables {
			if t.Valid {
				continue
			}
			fmt.Printf("  table %s:\n", t.Table)
			for field, msg := range t.Errors {
				fmt.Printf("    - %s: %s\n", field, msg)
			}
		}
		for _, w := range r.Report.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	}
}

// buildPipeline assembles a pipeline from the global flags and config.
func buildPipeline() (*processor.Pipeline, error) {
	cfg, err := validationConfig()
	if err != nil {
		return nil, err
	}
	if noSignCheck {
		cfg.SignValidation = false
	}

	opts := []processor.Option{processor.WithConfig(cfg)}
	if publicKeyPath != "" {
		key, err := signature.LoadPublicKeyFile(publicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key: %w", err)
		}
		opts = append(opts, processor.WithVerifier(signature.NewVerifier(key)))
	}
	return processor.NewPipeline(opts...), nil
}

// collectFiles expands globs and directories into a list of XML files.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
				continue
			}
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
