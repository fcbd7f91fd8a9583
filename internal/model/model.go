// Package model defines the SAF-T (PT) audit file data model used by the
// parser and the validation engine.
//
// The model is a plain in-memory representation: documents are created by
// the parser (or directly by callers) and are never mutated by the
// validators. Optional monetary and date fields use pointers so that
// "absent" and "zero" stay distinguishable, which several legal rules
// depend on.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalcPrecision is the number of decimal places used for monetary
// calculations before tolerance comparisons.
const CalcPrecision = int32(4)

// AuditFile is the root of a parsed SAF-T file.
type AuditFile struct {
	Header          Header
	MasterFiles     MasterFiles
	SourceDocuments SourceDocuments
}

// Header holds the audit file header block.
type Header struct {
	AuditFileVersion          string
	CompanyID                 string
	TaxRegistrationNumber     string
	TaxAccountingBasis        string
	CompanyName               string
	FiscalYear                int
	StartDate                 time.Time
	EndDate                   time.Time
	CurrencyCode              string
	DateCreated               time.Time
	TaxEntity                 string
	ProductCompanyTaxID       string
	SoftwareCertificateNumber string
	ProductID                 string
	ProductVersion            string
}

// MasterFiles holds the master data tables referenced by source documents.
type MasterFiles struct {
	Customers []Customer
	Suppliers []Supplier
	Products  []Product
	TaxTable  []TaxTableEntry
}

// Customer is a customer master entry.
type Customer struct {
	ID          string
	AccountID   string
	TaxID       string
	CompanyName string
	CountryCode string
}

// Supplier is a supplier master entry.
type Supplier struct {
	ID          string
	AccountID   string
	TaxID       string
	CompanyName string
	CountryCode string
}

// Product is a product/service master entry.
type Product struct {
	Type        string
	Code        string
	Group       string
	Description string
	NumberCode  string
}

// TaxTableEntry is one row of the tax table, keyed by (type, code, region).
type TaxTableEntry struct {
	Type           string
	CountryRegion  string
	Code           string
	Description    string
	ExpirationDate *time.Time
	Percentage     *decimal.Decimal
	Amount         *decimal.Decimal
}

// SourceDocuments groups the four source document collections.
type SourceDocuments struct {
	Invoices       DocumentCollection
	StockMovements DocumentCollection
	WorkDocuments  DocumentCollection
	Payments       DocumentCollection
}

// DocumentCollection is one source document table with its declared
// aggregate totals.
type DocumentCollection struct {
	NumberOfEntries int
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	Documents       []Document
}

// Document is a single source document of any kind. Kind-specific rules
// dispatch on Kind and Type; the shared fields are validated uniformly.
type Document struct {
	Kind              DocumentKind
	Number            string
	Type              string
	Status            *Status
	Hash              string
	HashControl       string
	Period            int
	Date              time.Time
	SystemEntryDate   time.Time
	CustomerID        string
	SupplierID        string
	SourceID          string
	MovementStartTime *time.Time
	MovementEndTime   *time.Time
	ShipFrom          *ShipPoint
	ShipTo            *ShipPoint
	Lines             []Line
	Totals            *Totals
}

// Status is the document status block.
type Status struct {
	Value         string
	Date          time.Time
	Reason        string
	SourceBilling string
}

// Document status values.
const (
	StatusNormal    = "N"
	StatusCancelled = "A"
)

// Cancelled reports whether the document was annulled.
func (s *Status) Cancelled() bool {
	return s != nil && s.Value == StatusCancelled
}

// Line is one document line.
type Line struct {
	Number             int
	OrderReferences    []OrderReference
	References         []Reference
	ProductCode        string
	ProductDescription string
	Quantity           *decimal.Decimal
	UnitOfMeasure      string
	UnitPrice          *decimal.Decimal
	TaxBase            *decimal.Decimal
	TaxPointDate       time.Time
	Description        string
	DebitAmount        *decimal.Decimal
	CreditAmount       *decimal.Decimal
	Tax                *Tax
	TaxExemptionReason string
	TaxExemptionCode   string
	SettlementAmount   *decimal.Decimal
}

// Debit returns the line debit amount, zero when absent.
func (l *Line) Debit() decimal.Decimal {
	if l.DebitAmount == nil {
		return decimal.Zero
	}
	return *l.DebitAmount
}

// Credit returns the line credit amount, zero when absent.
func (l *Line) Credit() decimal.Decimal {
	if l.CreditAmount == nil {
		return decimal.Zero
	}
	return *l.CreditAmount
}

// Reference links a credit/debit note line to the corrected document.
type Reference struct {
	Reference string
	Reason    string
}

// OrderReference links a line to an originating document (order, delivery
// note) on non-correcting documents.
type OrderReference struct {
	OriginatingON string
	OrderDate     time.Time
}

// Tax is the line tax block, resolved against the tax table.
type Tax struct {
	Type          string
	CountryRegion string
	Code          string
	Percentage    *decimal.Decimal
	Amount        *decimal.Decimal
}

// Tax types and the exemption tax code.
const (
	TaxTypeVAT        = "IVA"
	TaxTypeStampDuty  = "IS"
	TaxTypeNotSubject = "NS"

	TaxCodeExempt = "ISE"
)

// Totals is the document totals block.
type Totals struct {
	TaxPayable  decimal.Decimal
	NetTotal    decimal.Decimal
	GrossTotal  decimal.Decimal
	Currency    *Currency
	Payments    []PaymentMethod
	Withholding []WithholdingTax
}

// Currency is the optional foreign currency block.
type Currency struct {
	Code         string
	Amount       decimal.Decimal
	ExchangeRate decimal.Decimal
}

// PaymentMethod is one payment entry on the document totals.
type PaymentMethod struct {
	Mechanism string
	Amount    decimal.Decimal
	Date      time.Time
}

// WithholdingTax is one withholding entry on the document totals.
type WithholdingTax struct {
	Type        string
	Description string
	Amount      *decimal.Decimal
}

// ShipPoint is a shipment endpoint (ship-from or ship-to).
type ShipPoint struct {
	DeliveryIDs  []string
	DeliveryDate *time.Time
	Address      *Address
}

// Address is a shipment address.
type Address struct {
	AddressDetail string
	StreetName    string
	City          string
	PostalCode    string
	Country       string
}
