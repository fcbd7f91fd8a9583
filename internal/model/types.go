package model

import "time"

// DocumentKind identifies which source document table a document belongs to.
type DocumentKind string

// Document kinds.
const (
	KindInvoice       DocumentKind = "invoice"
	KindStockMovement DocumentKind = "stock_movement"
	KindWorkDocument  DocumentKind = "work_document"
	KindPayment       DocumentKind = "payment"
)

// Invoice type codes.
const (
	TypeInvoice           = "FT"
	TypeSimplifiedInvoice = "FS"
	TypeInvoiceReceipt    = "FR"
	TypeDebitNote         = "ND"
	TypeCreditNote        = "NC"
)

// Deprecated invoice type codes, legal only up to DeprecatedTypeCutoff.
const (
	TypeCashSale     = "VD"
	TypeShopTicket   = "TV"
	TypeReturnTicket = "TD"
	TypeAssetSale    = "AA"
	TypeAssetReturn  = "DA"
)

// DeprecatedTypeCutoff is the last document date on which the deprecated
// invoice types may be used.
var DeprecatedTypeCutoff = time.Date(2012, 12, 31, 23, 59, 59, 0, time.UTC)

var invoiceTypes = map[string]bool{
	TypeInvoice: true, TypeSimplifiedInvoice: true, TypeInvoiceReceipt: true,
	TypeDebitNote: true, TypeCreditNote: true,
	TypeCashSale: true, TypeShopTicket: true, TypeReturnTicket: true,
	TypeAssetSale: true, TypeAssetReturn: true,
}

var deprecatedInvoiceTypes = map[string]bool{
	TypeCashSale: true, TypeShopTicket: true, TypeReturnTicket: true,
	TypeAssetSale: true, TypeAssetReturn: true,
}

var movementTypes = map[string]bool{
	"GR": true, "GT": true, "GA": true, "GC": true, "GD": true,
}

var workTypes = map[string]bool{
	"CM": true, "CC": true, "FC": true, "FO": true,
	"NE": true, "OU": true, "OR": true, "PF": true,
}

var paymentTypes = map[string]bool{
	"RC": true, "RG": true,
}

// Invoice types that document a physical movement of goods and therefore
// may carry a shipment block.
var goodsInvoiceTypes = map[string]bool{
	TypeInvoice: true, TypeSimplifiedInvoice: true, TypeInvoiceReceipt: true,
}

// ValidType reports whether code is a known type for the given kind.
func ValidType(kind DocumentKind, code string) bool {
	switch kind {
	case KindInvoice:
		return invoiceTypes[code]
	case KindStockMovement:
		return movementTypes[code]
	case KindWorkDocument:
		return workTypes[code]
	case KindPayment:
		return paymentTypes[code]
	}
	return false
}

// IsDeprecatedType reports whether code is one of the invoice types retired
// at the end of 2012.
func IsDeprecatedType(code string) bool {
	return deprecatedInvoiceTypes[code]
}

// IsCreditDebitNote reports whether the document corrects another document.
// Only these documents may carry line References; all other documents carry
// OrderReferences instead.
func (d *Document) IsCreditDebitNote() bool {
	return d.Kind == KindInvoice && (d.Type == TypeCreditNote || d.Type == TypeDebitNote)
}

// AllowsShipment reports whether the document type may carry a shipment
// block. Stock movements always do; invoices only when they document goods
// leaving the premises.
func (d *Document) AllowsShipment() bool {
	switch d.Kind {
	case KindStockMovement:
		return true
	case KindInvoice:
		return goodsInvoiceTypes[d.Type]
	}
	return false
}

// IsInvoiceReceipt reports whether the document is an FR invoice-receipt,
// which must reconcile its payment entries against the gross total.
func (d *Document) IsInvoiceReceipt() bool {
	return d.Kind == KindInvoice && d.Type == TypeInvoiceReceipt
}
