package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/processor"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about SAF-T audit files",
	Long: `Display the header and table counts of audit files without
validating them.

Examples:
  saft-validator info saft.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	pipeline := processor.NewPipeline()
	for _, file := range files {
		printFileInfo(pipeline, file)
		fmt.Println()
	}
	return nil
}

func printFileInfo(pipeline *processor.Pipeline, file string) {
	fmt.Printf("File: %s\n", file)

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	af, err := pipeline.Parse(ctx, data)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	h := af.Header
	fmt.Printf("  Company:      %s (%s)\n", h.CompanyName, h.TaxRegistrationNumber)
	fmt.Printf("  Fiscal year:  %d\n", h.FiscalYear)
	fmt.Printf("  Period:       %s .. %s\n", h.StartDate.Format("2006-01-02"), h.EndDate.Format("2006-01-02"))
	fmt.Printf("  Software:     %s %s (cert %s)\n", h.ProductID, h.ProductVersion, h.SoftwareCertificateNumber)
	fmt.Printf("  Customers:    %d\n", len(af.MasterFiles.Customers))
	fmt.Printf("  Suppliers:    %d\n", len(af.MasterFiles.Suppliers))
	fmt.Printf("  Products:     %d\n", len(af.MasterFiles.Products))
	fmt.Printf("  Tax entries:  %d\n", len(af.MasterFiles.TaxTable))
	printTableInfo("Invoices", &af.SourceDocuments.Invoices)
	printTableInfo("Movements", &af.SourceDocuments.StockMovements)
	printTableInfo("Work docs", &af.SourceDocuments.WorkDocuments)
	printTableInfo("Payments", &af.SourceDocuments.Payments)
}

func printTableInfo(name string, col *model.DocumentCollection) {
	if len(col.Documents) == 0 && col.NumberOfEntries == 0 {
		return
	}
	fmt.Printf("  %-12s %d documents, debit %s, credit %s\n",
		name+":", len(col.Documents), col.TotalDebit.StringFixed(2), col.TotalCredit.StringFixed(2))
}
