package validate

import "fmt"

// Translator resolves a message key into a display message. Injected so the
// registers stay deterministic and free of locale state; the default
// translator renders English.
type Translator interface {
	Translate(key string, args ...interface{}) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key string, args ...interface{}) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(key string, args ...interface{}) string {
	return f(key, args...)
}

// DefaultTranslator returns the built-in English catalog. Unknown keys
// render as the key itself so a missing entry is visible, not silent.
func DefaultTranslator() Translator {
	return TranslatorFunc(func(key string, args ...interface{}) string {
		format, ok := catalog[key]
		if !ok {
			return key
		}
		return fmt.Sprintf(format, args...)
	})
}

var catalog = map[string]string{
	// document status
	MsgStatusMissing:         "document has no status block",
	MsgStatusReasonMissing:   "cancelled document has no cancellation reason",
	MsgStatusDateBeforeDoc:   "status date %s precedes the document date %s",
	MsgStatusDateBeforeEntry: "status date %s precedes the system entry date %s",
	MsgStatusSourceMissing:   "document status has no source billing indicator",

	// party
	MsgCustomerIDMissing: "document has no customer identifier",
	MsgCustomerUnknown:   "customer %q does not exist in the customer table",
	MsgSupplierIDMissing: "document has no supplier identifier",
	MsgSupplierUnknown:   "supplier %q does not exist in the supplier table",

	// lines
	MsgNoLines:                "document has no lines",
	MsgLineNumberSequence:     "line number %d breaks the continuous numbering, expected %d",
	MsgLineNumberDuplicate:    "line number %d appears more than once",
	MsgQuantityMissing:        "line has no quantity",
	MsgUnitPriceMissing:       "line has no unit price",
	MsgProductUnknown:         "product %q does not exist in the product table",
	MsgDebitAndCreditSet:      "line carries both a debit and a credit amount",
	MsgOppositeSignNotAllowed: "line amount is on the opposite side of the document and mixed lines are not allowed",
	MsgAnulationNoReference:   "reversal line has no preceding line with product %q to reverse",
	MsgAnulationQuantity:      "reversal quantity %s exceeds the reversed line quantity %s",
	MsgAnulationUnitPrice:     "reversal unit price %s exceeds the reversed line unit price %s",

	// tax
	MsgTaxMissing:           "line has no tax block",
	MsgTaxTypeMissing:       "tax has no type",
	MsgTaxCodeMissing:       "tax has no code",
	MsgTaxRegionMissing:     "tax has no country/region",
	MsgTaxPercentageMissing: "VAT tax has no percentage",
	MsgTaxExemptionRequired: "zero tax requires both an exemption code and an exemption reason",
	MsgTaxExemptNonZero:     "exemption tax code requires a zero percentage, got %s",
	MsgTaxNotInTable:        "tax (%s, %s, %s) does not match any tax table entry",
	MsgTaxEntryExpired:      "tax table entry (%s, %s, %s) expired on %s, before the tax point date %s",

	// references
	MsgReferenceMissing:       "credit/debit note line has no reference to a corrected document",
	MsgReferenceReasonMissing: "credit/debit note line has no correction reason",
	MsgReferenceNotAllowed:    "references are only legal on credit and debit notes",
	MsgOrderRefIncomplete:     "order reference needs both an originating document and an order date",
	MsgOrderRefDateAfterDoc:   "order date %s is after the document date %s",
	MsgOrderRefFormat:         "originating document %q does not match the document number format",
	MsgOrderRefNotAllowed:     "order references are not legal on credit and debit notes",

	// totals
	MsgTotalsMissing:    "document has no totals block",
	MsgGrossMismatch:    "gross total %s differs from net %s plus tax %s beyond the tolerance",
	MsgNetLinesMismatch: "net total %s differs from the line amounts %s beyond the tolerance",
	MsgCurrencyMismatch: "currency amount %s at rate %s does not convert to the gross total %s",

	// withholding
	MsgWithholdingAmountMissing: "withholding tax entry has no amount",
	MsgWithholdingExceedsGross:  "withheld total %s exceeds the gross total %s",
	MsgWithholdingAboveHalf:     "withholding amount %s exceeds half of the gross total %s",

	// payments
	MsgPaymentMissingFR: "invoice-receipt has no payment entries",
	MsgPaymentMismatch:  "payments total %s differs from gross minus withholding %s beyond the tolerance",

	// shipment
	MsgShipmentNotAllowed:    "document type %s does not allow a shipment block",
	MsgShipmentStartMissing:  "shipment requires a movement start time",
	MsgShipFromIncomplete:    "ship-from block is incomplete: %s",
	MsgShipToIncomplete:      "ship-to block is incomplete: %s",
	MsgShipmentStartEarly:    "movement start %s precedes the document dates",
	MsgShipmentStartAfterEnd: "movement start %s is after the movement end %s",

	// dates
	MsgDateOutsideHeader:      "document date %s is outside the header period %s..%s",
	MsgEntryDateOutsideHeader: "system entry date %s is outside the header period %s..%s",
	MsgDateNotMonotonic:       "document date %s precedes the previous document's date %s",
	MsgEntryDateNotMonotonic:  "system entry date %s precedes the previous document's entry date %s",

	// types
	MsgTypeDeprecated: "document type %s is only legal up to 2012-12-31, document is dated %s",
	MsgTypeUnknown:    "unknown document type %s",

	// document identity and signature
	MsgNumberMissing:      "document has no number",
	MsgNumberFormat:       "document number %q does not match the legal format",
	MsgHashMissing:        "document has no signature hash",
	MsgSignatureBroken:    "document signature does not verify against the previous document's hash",
	MsgSignatureNoContext: "document signature does not verify, previous chain link unknown",
	MsgSignatureNoKey:     "signature not verified, no public key configured",

	// tables
	MsgSeriesTypeConflict:  "series %q is mapped to both type %s and type %s",
	MsgSeriesWrongType:     "document %s declares type %s but series %q is mapped to type %s",
	MsgNumberTypeConflict:  "document number %q appears with both type %s and type %s",
	MsgNumberDuplicate:     "document number %q appears more than once",
	MsgEntriesMismatch:     "table declares %d entries but contains %d documents",
	MsgTableDebitMismatch:  "table declares a debit total of %s but the documents sum to %s",
	MsgTableCreditMismatch: "table declares a credit total of %s but the documents sum to %s",
}
