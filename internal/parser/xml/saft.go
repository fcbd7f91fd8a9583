// Package xml parses SAF-T (PT) audit files into the internal model.
//
// The wire structs mirror the fiscal schema element names; the convert
// layer turns them into model types, rejecting malformed dates and
// amounts with parse errors instead of silently zeroing them.
package xml

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"

	"github.com/rezonia/saft-validator/internal/model"
)

type saftAuditFile struct {
	XMLName         xml.Name            `xml:"AuditFile"`
	Header          saftHeader          `xml:"Header"`
	MasterFiles     saftMasterFiles     `xml:"MasterFiles"`
	SourceDocuments saftSourceDocuments `xml:"SourceDocuments"`
}

type saftHeader struct {
	AuditFileVersion          string `xml:"AuditFileVersion"`
	CompanyID                 string `xml:"CompanyID"`
	TaxRegistrationNumber     string `xml:"TaxRegistrationNumber"`
	TaxAccountingBasis        string `xml:"TaxAccountingBasis"`
	CompanyName               string `xml:"CompanyName"`
	FiscalYear                int    `xml:"FiscalYear"`
	StartDate                 string `xml:"StartDate"`
	EndDate                   string `xml:"EndDate"`
	CurrencyCode              string `xml:"CurrencyCode"`
	DateCreated               string `xml:"DateCreated"`
	TaxEntity                 string `xml:"TaxEntity"`
	ProductCompanyTaxID       string `xml:"ProductCompanyTaxID"`
	SoftwareCertificateNumber string `xml:"SoftwareCertificateNumber"`
	ProductID                 string `xml:"ProductID"`
	ProductVersion            string `xml:"ProductVersion"`
}

type saftMasterFiles struct {
	Customers []saftCustomer `xml:"Customer"`
	Suppliers []saftSupplier `xml:"Supplier"`
	Products  []saftProduct  `xml:"Product"`
	TaxTable  saftTaxTable   `xml:"TaxTable"`
}

type saftCustomer struct {
	CustomerID     string      `xml:"CustomerID"`
	AccountID      string      `xml:"AccountID"`
	CustomerTaxID  string      `xml:"CustomerTaxID"`
	CompanyName    string      `xml:"CompanyName"`
	BillingAddress saftAddress `xml:"BillingAddress"`
}

type saftSupplier struct {
	SupplierID     string      `xml:"SupplierID"`
	AccountID      string      `xml:"AccountID"`
	SupplierTaxID  string      `xml:"SupplierTaxID"`
	CompanyName    string      `xml:"CompanyName"`
	BillingAddress saftAddress `xml:"BillingAddress"`
}

type saftProduct struct {
	ProductType        string `xml:"ProductType"`
	ProductCode        string `xml:"ProductCode"`
	ProductGroup       string `xml:"ProductGroup"`
	ProductDescription string `xml:"ProductDescription"`
	ProductNumberCode  string `xml:"ProductNumberCode"`
}

type saftTaxTable struct {
	Entries []saftTaxTableEntry `xml:"TaxTableEntry"`
}

type saftTaxTableEntry struct {
	TaxType           string `xml:"TaxType"`
	TaxCountryRegion  string `xml:"TaxCountryRegion"`
	TaxCode           string `xml:"TaxCode"`
	Description       string `xml:"Description"`
	TaxExpirationDate string `xml:"TaxExpirationDate"`
	TaxPercentage     string `xml:"TaxPercentage"`
	TaxAmount         string `xml:"TaxAmount"`
}

type saftSourceDocuments struct {
	SalesInvoices    *saftSalesInvoices    `xml:"SalesInvoices"`
	MovementOfGoods  *saftMovementOfGoods  `xml:"MovementOfGoods"`
	WorkingDocuments *saftWorkingDocuments `xml:"WorkingDocuments"`
	Payments         *saftPayments         `xml:"Payments"`
}

type saftSalesInvoices struct {
	NumberOfEntries int           `xml:"NumberOfEntries"`
	TotalDebit      string        `xml:"TotalDebit"`
	TotalCredit     string        `xml:"TotalCredit"`
	Invoices        []saftInvoice `xml:"Invoice"`
}

type saftMovementOfGoods struct {
	NumberOfEntries int                 `xml:"NumberOfMovementLines"`
	TotalDebit      string              `xml:"TotalDebit"`
	TotalCredit     string              `xml:"TotalCredit"`
	Movements       []saftStockMovement `xml:"StockMovement"`
}

type saftWorkingDocuments struct {
	NumberOfEntries int                `xml:"NumberOfEntries"`
	TotalDebit      string             `xml:"TotalDebit"`
	TotalCredit     string             `xml:"TotalCredit"`
	WorkDocuments   []saftWorkDocument `xml:"WorkDocument"`
}

type saftPayments struct {
	NumberOfEntries int           `xml:"NumberOfEntries"`
	TotalDebit      string        `xml:"TotalDebit"`
	TotalCredit     string        `xml:"TotalCredit"`
	Payments        []saftPayment `xml:"Payment"`
}

type saftInvoice struct {
	InvoiceNo         string            `xml:"InvoiceNo"`
	DocumentStatus    saftInvoiceStatus `xml:"DocumentStatus"`
	Hash              string            `xml:"Hash"`
	HashControl       string            `xml:"HashControl"`
	Period            int               `xml:"Period"`
	InvoiceDate       string            `xml:"InvoiceDate"`
	InvoiceType       string            `xml:"InvoiceType"`
	SourceID          string            `xml:"SourceID"`
	SystemEntryDate   string            `xml:"SystemEntryDate"`
	CustomerID        string            `xml:"CustomerID"`
	ShipTo            *saftShipPoint    `xml:"ShipTo"`
	ShipFrom          *saftShipPoint    `xml:"ShipFrom"`
	MovementStartTime string            `xml:"MovementStartTime"`
	MovementEndTime   string            `xml:"MovementEndTime"`
	Lines             []saftLine        `xml:"Line"`
	DocumentTotals    *saftTotals       `xml:"DocumentTotals"`
	WithholdingTax    []saftWithholding `xml:"WithholdingTax"`
}

type saftInvoiceStatus struct {
	Status        string `xml:"InvoiceStatus"`
	StatusDate    string `xml:"InvoiceStatusDate"`
	Reason        string `xml:"Reason"`
	SourceID      string `xml:"SourceID"`
	SourceBilling string `xml:"SourceBilling"`
}

type saftStockMovement struct {
	DocumentNumber    string             `xml:"DocumentNumber"`
	DocumentStatus    saftMovementStatus `xml:"DocumentStatus"`
	Hash              string             `xml:"Hash"`
	HashControl       string             `xml:"HashControl"`
	Period            int                `xml:"Period"`
	MovementDate      string             `xml:"MovementDate"`
	MovementType      string             `xml:"MovementType"`
	SourceID          string             `xml:"SourceID"`
	SystemEntryDate   string             `xml:"SystemEntryDate"`
	CustomerID        string             `xml:"CustomerID"`
	SupplierID        string             `xml:"SupplierID"`
	ShipTo            *saftShipPoint     `xml:"ShipTo"`
	ShipFrom          *saftShipPoint     `xml:"ShipFrom"`
	MovementStartTime string             `xml:"MovementStartTime"`
	MovementEndTime   string             `xml:"MovementEndTime"`
	Lines             []saftLine         `xml:"Line"`
	DocumentTotals    *saftTotals        `xml:"DocumentTotals"`
}

type saftMovementStatus struct {
	Status        string `xml:"MovementStatus"`
	StatusDate    string `xml:"MovementStatusDate"`
	Reason        string `xml:"Reason"`
	SourceID      string `xml:"SourceID"`
	SourceBilling string `xml:"SourceBilling"`
}

type saftWorkDocument struct {
	DocumentNumber  string            `xml:"DocumentNumber"`
	DocumentStatus  saftWorkStatus    `xml:"DocumentStatus"`
	Hash            string            `xml:"Hash"`
	HashControl     string            `xml:"HashControl"`
	Period          int               `xml:"Period"`
	WorkDate        string            `xml:"WorkDate"`
	WorkType        string            `xml:"WorkType"`
	SourceID        string            `xml:"SourceID"`
	SystemEntryDate string            `xml:"SystemEntryDate"`
	CustomerID      string            `xml:"CustomerID"`
	Lines           []saftLine        `xml:"Line"`
	DocumentTotals  *saftTotals       `xml:"DocumentTotals"`
	WithholdingTax  []saftWithholding `xml:"WithholdingTax"`
}

type saftWorkStatus struct {
	Status        string `xml:"WorkStatus"`
	StatusDate    string `xml:"WorkStatusDate"`
	Reason        string `xml:"Reason"`
	SourceID      string `xml:"SourceID"`
	SourceBilling string `xml:"SourceBilling"`
}

type saftPayment struct {
	PaymentRefNo    string            `xml:"PaymentRefNo"`
	Hash            string            `xml:"Hash"`
	HashControl     string            `xml:"HashControl"`
	Period          int               `xml:"Period"`
	TransactionDate string            `xml:"TransactionDate"`
	PaymentType     string            `xml:"PaymentType"`
	DocumentStatus  saftPaymentStatus `xml:"DocumentStatus"`
	PaymentMethods  []saftPayMethod   `xml:"PaymentMethod"`
	SourceID        string            `xml:"SourceID"`
	SystemEntryDate string            `xml:"SystemEntryDate"`
	CustomerID      string            `xml:"CustomerID"`
	Lines           []saftLine        `xml:"Line"`
	DocumentTotals  *saftTotals       `xml:"DocumentTotals"`
	WithholdingTax  []saftWithholding `xml:"WithholdingTax"`
}

type saftPaymentStatus struct {
	Status        string `xml:"PaymentStatus"`
	StatusDate    string `xml:"PaymentStatusDate"`
	Reason        string `xml:"Reason"`
	SourceID      string `xml:"SourceID"`
	SourcePayment string `xml:"SourcePayment"`
}

type saftLine struct {
	LineNumber         int                 `xml:"LineNumber"`
	OrderReferences    []saftOrderRef      `xml:"OrderReferences"`
	References         []saftReference     `xml:"References"`
	ProductCode        string              `xml:"ProductCode"`
	ProductDescription string              `xml:"ProductDescription"`
	Quantity           string              `xml:"Quantity"`
	UnitOfMeasure      string              `xml:"UnitOfMeasure"`
	UnitPrice          string              `xml:"UnitPrice"`
	TaxBase            string              `xml:"TaxBase"`
	TaxPointDate       string              `xml:"TaxPointDate"`
	Description        string              `xml:"Description"`
	DebitAmount        string              `xml:"DebitAmount"`
	CreditAmount       string              `xml:"CreditAmount"`
	Tax                *saftTax            `xml:"Tax"`
	TaxExemptionReason string              `xml:"TaxExemptionReason"`
	TaxExemptionCode   string              `xml:"TaxExemptionCode"`
	SettlementAmount   string              `xml:"SettlementAmount"`
}

type saftOrderRef struct {
	OriginatingON string `xml:"OriginatingON"`
	OrderDate     string `xml:"OrderDate"`
}

type saftReference struct {
	Reference string `xml:"Reference"`
	Reason    string `xml:"Reason"`
}

type saftTax struct {
	TaxType          string `xml:"TaxType"`
	TaxCountryRegion string `xml:"TaxCountryRegion"`
	TaxCode          string `xml:"TaxCode"`
	TaxPercentage    string `xml:"TaxPercentage"`
	TaxAmount        string `xml:"TaxAmount"`
}

type saftTotals struct {
	TaxPayable string        `xml:"TaxPayable"`
	NetTotal   string        `xml:"NetTotal"`
	GrossTotal string        `xml:"GrossTotal"`
	Currency   *saftCurrency `xml:"Currency"`
}

type saftCurrency struct {
	CurrencyCode   string `xml:"CurrencyCode"`
	CurrencyAmount string `xml:"CurrencyAmount"`
	ExchangeRate   string `xml:"ExchangeRate"`
}

type saftPayMethod struct {
	PaymentMechanism string `xml:"PaymentMechanism"`
	PaymentAmount    string `xml:"PaymentAmount"`
	PaymentDate      string `xml:"PaymentDate"`
}

type saftWithholding struct {
	WithholdingTaxType        string `xml:"WithholdingTaxType"`
	WithholdingTaxDescription string `xml:"WithholdingTaxDescription"`
	WithholdingTaxAmount      string `xml:"WithholdingTaxAmount"`
}

type saftShipPoint struct {
	DeliveryID   []string     `xml:"DeliveryID"`
	DeliveryDate string       `xml:"DeliveryDate"`
	Address      *saftAddress `xml:"Address"`
}

type saftAddress struct {
	AddressDetail string `xml:"AddressDetail"`
	StreetName    string `xml:"StreetName"`
	City          string `xml:"City"`
	PostalCode    string `xml:"PostalCode"`
	Country       string `xml:"Country"`
}

// Parser decodes SAF-T (PT) XML audit files.
type Parser struct{}

// NewParser creates a SAF-T parser.
func NewParser() *Parser {
	return &Parser{}
}

// CanParse checks whether content looks like a SAF-T audit file.
func (p *Parser) CanParse(content []byte) bool {
	return bytes.Contains(content, []byte("<AuditFile"))
}

// Parse decodes a complete audit file.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*model.AuditFile, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError("AuditFile", "content", "failed to read content", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw saftAuditFile
	if err := xml.Unmarshal(content, &raw); err != nil {
		return nil, model.NewParseError("AuditFile", "xml", "failed to parse XML", err)
	}
	return convertAuditFile(&raw)
}
