package validate

// Message keys. Translators map these to display text; the validators never
// embed literal messages.
const (
	MsgStatusMissing         = "status_missing"
	MsgStatusReasonMissing   = "status_reason_missing"
	MsgStatusDateBeforeDoc   = "status_date_before_document_date"
	MsgStatusDateBeforeEntry = "status_date_before_entry_date"
	MsgStatusSourceMissing   = "status_source_missing"

	MsgCustomerIDMissing = "customer_id_missing"
	MsgCustomerUnknown   = "customer_unknown"
	MsgSupplierIDMissing = "supplier_id_missing"
	MsgSupplierUnknown   = "supplier_unknown"

	MsgNoLines                = "no_lines"
	MsgLineNumberSequence     = "line_number_sequence"
	MsgLineNumberDuplicate    = "line_number_duplicate"
	MsgQuantityMissing        = "quantity_missing"
	MsgUnitPriceMissing       = "unit_price_missing"
	MsgProductUnknown         = "product_unknown"
	MsgDebitAndCreditSet      = "debit_and_credit_set"
	MsgOppositeSignNotAllowed = "opposite_sign_not_allowed"
	MsgAnulationNoReference   = "anulation_no_reference_line"
	MsgAnulationQuantity      = "anulation_quantity_exceeded"
	MsgAnulationUnitPrice     = "anulation_unit_price_exceeded"

	MsgTaxMissing           = "tax_missing"
	MsgTaxTypeMissing       = "tax_type_missing"
	MsgTaxCodeMissing       = "tax_code_missing"
	MsgTaxRegionMissing     = "tax_region_missing"
	MsgTaxPercentageMissing = "tax_percentage_missing"
	MsgTaxExemptionRequired = "tax_exemption_required"
	MsgTaxExemptNonZero     = "tax_exemption_nonzero_percentage"
	MsgTaxNotInTable        = "tax_not_in_table"
	MsgTaxEntryExpired      = "tax_entry_expired"

	MsgReferenceMissing       = "reference_missing"
	MsgReferenceReasonMissing = "reference_reason_missing"
	MsgReferenceNotAllowed    = "reference_not_allowed"
	MsgOrderRefIncomplete     = "order_reference_incomplete"
	MsgOrderRefDateAfterDoc   = "order_reference_date_after_document"
	MsgOrderRefFormat         = "order_reference_format"
	MsgOrderRefNotAllowed     = "order_reference_not_allowed"

	MsgTotalsMissing    = "totals_missing"
	MsgGrossMismatch    = "gross_total_mismatch"
	MsgNetLinesMismatch = "net_total_lines_mismatch"
	MsgCurrencyMismatch = "currency_conversion_mismatch"

	MsgWithholdingAmountMissing = "withholding_amount_missing"
	MsgWithholdingExceedsGross  = "withholding_exceeds_gross"
	MsgWithholdingAboveHalf     = "withholding_above_half_gross"

	MsgPaymentMissingFR = "payment_missing_invoice_receipt"
	MsgPaymentMismatch  = "payment_sum_mismatch"

	MsgShipmentNotAllowed    = "shipment_not_allowed"
	MsgShipmentStartMissing  = "shipment_start_missing"
	MsgShipFromIncomplete    = "ship_from_incomplete"
	MsgShipToIncomplete      = "ship_to_incomplete"
	MsgShipmentStartEarly    = "shipment_start_early"
	MsgShipmentStartAfterEnd = "shipment_start_after_end"

	MsgDateOutsideHeader      = "date_outside_header_period"
	MsgEntryDateOutsideHeader = "entry_date_outside_header_period"
	MsgDateNotMonotonic       = "date_not_monotonic"
	MsgEntryDateNotMonotonic  = "entry_date_not_monotonic"

	MsgTypeDeprecated = "type_deprecated"
	MsgTypeUnknown    = "type_unknown"

	MsgNumberMissing      = "number_missing"
	MsgNumberFormat       = "number_format"
	MsgHashMissing        = "hash_missing"
	MsgSignatureBroken    = "signature_broken"
	MsgSignatureNoContext = "signature_no_context"
	MsgSignatureNoKey     = "signature_no_key"

	MsgSeriesTypeConflict  = "series_type_conflict"
	MsgSeriesWrongType     = "series_wrong_type"
	MsgNumberTypeConflict  = "number_type_conflict"
	MsgNumberDuplicate     = "number_duplicate"
	MsgEntriesMismatch     = "entries_count_mismatch"
	MsgTableDebitMismatch  = "table_debit_mismatch"
	MsgTableCreditMismatch = "table_credit_mismatch"
)
