// Package saftlib provides a public API for validating SAF-T (PT) audit
// files.
//
// This package exposes the core types for parsing audit files, running the
// business rule checks and verifying the document signature chain.
//
// Example usage:
//
//	v, err := saftlib.NewValidator(saftlib.Options{PublicKeyPEM: pem})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := v.ValidateFile(ctx, "saft.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.Valid)
package saftlib

import (
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/validate"
)

// Re-export core types for public API
type (
	AuditFile          = model.AuditFile
	Header             = model.Header
	MasterFiles        = model.MasterFiles
	Customer           = model.Customer
	Supplier           = model.Supplier
	Product            = model.Product
	TaxTableEntry      = model.TaxTableEntry
	SourceDocuments    = model.SourceDocuments
	DocumentCollection = model.DocumentCollection
	Document           = model.Document
	DocumentKind       = model.DocumentKind
	Line               = model.Line
	Totals             = model.Totals

	Config         = validate.Config
	Report         = validate.Report
	DocumentReport = validate.DocumentReport
	TableReport    = validate.TableReport
	SeriesType     = validate.SeriesType
)

// Re-export document kinds
const (
	KindInvoice       = model.KindInvoice
	KindStockMovement = model.KindStockMovement
	KindWorkDocument  = model.KindWorkDocument
	KindPayment       = model.KindPayment
)

// Re-export document status values
const (
	StatusNormal    = model.StatusNormal
	StatusCancelled = model.StatusCancelled
)

// Re-export error types
type ParseError = model.ParseError

// DefaultConfig returns the default validation configuration.
func DefaultConfig() Config {
	return validate.DefaultConfig()
}
