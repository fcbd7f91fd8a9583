package server

import (
	"github.com/rezonia/saft-validator/internal/validate"
)

// ValidateResponse is the response for the validate endpoint
type ValidateResponse struct {
	Company string           `json:"company"`
	Period  string           `json:"period"`
	Report  *validate.Report `json:"report"`
}

// VerifyResponse is the response for the chain verification endpoint
type VerifyResponse struct {
	Valid     bool                      `json:"valid"`
	Documents []validate.DocumentReport `json:"documents,omitempty"`
	Warnings  []string                  `json:"warnings,omitempty"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	Company        string `json:"company"`
	TaxID          string `json:"tax_id"`
	FiscalYear     int    `json:"fiscal_year"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Invoices       int    `json:"invoices"`
	StockMovements int    `json:"stock_movements"`
	WorkDocuments  int    `json:"work_documents"`
	Payments       int    `json:"payments"`
	Customers      int    `json:"customers"`
	Suppliers      int    `json:"suppliers"`
	Products       int    `json:"products"`
	TaxEntries     int    `json:"tax_entries"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
