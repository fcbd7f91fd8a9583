package validate

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/saft-validator/internal/decimal"
	"github.com/rezonia/saft-validator/internal/masterdata"
	"github.com/rezonia/saft-validator/internal/model"
	"github.com/rezonia/saft-validator/internal/signature"
)

// Deps are the collaborators a document validator reads from. Nil lookup
// interfaces default to an empty in-memory store, so a missing master table
// resolves nothing rather than panicking.
type Deps struct {
	TaxTable   masterdata.TaxTable
	Parties    masterdata.PartyDirectory
	Products   masterdata.ProductCatalog
	Verifier   *signature.Verifier
	Translator Translator
}

// DocumentValidator runs every per-document stage. Each stage is
// independent and public so callers can exercise one rule at a time; the
// aggregate Validate drives them all in document order.
type DocumentValidator struct {
	cfg      Config
	header   *model.Header
	taxes    masterdata.TaxTable
	parties  masterdata.PartyDirectory
	products masterdata.ProductCatalog
	verifier *signature.Verifier
	tr       Translator
}

// NewDocumentValidator creates a validator for one run.
func NewDocumentValidator(cfg Config, header *model.Header, deps Deps) *DocumentValidator {
	empty := masterdata.NewStore(nil)
	v := &DocumentValidator{
		cfg:      cfg,
		header:   header,
		taxes:    deps.TaxTable,
		parties:  deps.Parties,
		products: deps.Products,
		verifier: deps.Verifier,
		tr:       deps.Translator,
	}
	if v.taxes == nil {
		v.taxes = empty
	}
	if v.parties == nil {
		v.parties = empty
	}
	if v.products == nil {
		v.products = empty
	}
	if v.tr == nil {
		v.tr = DefaultTranslator()
	}
	return v
}

func (v *DocumentValidator) msg(key string, args ...interface{}) string {
	return v.tr.Translate(key, args...)
}

// Validate runs all stages on doc, writing outcomes into reg, and returns
// the chain state advanced past doc plus the document's validity. Every
// stage runs even after a failure so all problems surface at once.
func (v *DocumentValidator) Validate(doc *model.Document, st ChainState, reg *Register) (ChainState, bool) {
	ok := v.identity(doc, reg)
	if !v.DocumentStatus(doc, reg) {
		ok = false
	}
	if !v.CustomerOrSupplierID(doc, reg) {
		ok = false
	}
	if !v.OutOfDateType(doc, reg) {
		ok = false
	}
	if !v.Dates(doc, st, reg) {
		ok = false
	}
	if !v.Lines(doc, reg) {
		ok = false
	}
	if !v.Totals(doc, reg) {
		ok = false
	}
	if !v.WithholdingTax(doc, reg) {
		ok = false
	}
	if !v.Payment(doc, reg) {
		ok = false
	}
	if !v.Shipment(doc, reg) {
		ok = false
	}
	if !v.Sign(doc, st, reg) {
		ok = false
	}
	return st.Advance(doc), ok
}

// identity checks the mandatory number and type. A document without them
// cannot be chained or dispatched, but the remaining stages still run.
func (v *DocumentValidator) identity(doc *model.Document, reg *Register) bool {
	ok := true
	if doc.Number == "" {
		reg.AddError("number", v.msg(MsgNumberMissing))
		ok = false
	} else if !model.ValidNumberFormat(doc.Number) {
		reg.AddError("number", v.msg(MsgNumberFormat, doc.Number))
		ok = false
	}
	if !model.ValidType(doc.Kind, doc.Type) {
		reg.AddError("type", v.msg(MsgTypeUnknown, doc.Type))
		ok = false
	}
	return ok
}

// DocumentStatus validates the status block: presence, cancellation
// reason, and the status date not preceding the document dates.
func (v *DocumentValidator) DocumentStatus(doc *model.Document, reg *Register) bool {
	st := doc.Status
	if st == nil {
		reg.AddError("status", v.msg(MsgStatusMissing))
		return false
	}
	ok := true
	if st.Cancelled() && strings.TrimSpace(st.Reason) == "" {
		reg.AddError("status.reason", v.msg(MsgStatusReasonMissing))
		ok = false
	}
	if !st.Date.IsZero() {
		if st.Date.Before(doc.Date) {
			reg.AddError("status.date", v.msg(MsgStatusDateBeforeDoc, fmtDateTime(st.Date), fmtDate(doc.Date)))
			ok = false
		}
		if st.Date.Before(doc.SystemEntryDate) {
			reg.AddError("status.date", v.msg(MsgStatusDateBeforeEntry, fmtDateTime(st.Date), fmtDateTime(doc.SystemEntryDate)))
			ok = false
		}
	}
	if st.SourceBilling == "" {
		reg.AddError("status.source_billing", v.msg(MsgStatusSourceMissing))
		ok = false
	}
	return ok
}

// CustomerOrSupplierID resolves the party on the document against the
// master tables. Documents reference either a customer or a supplier.
func (v *DocumentValidator) CustomerOrSupplierID(doc *model.Document, reg *Register) bool {
	switch {
	case doc.CustomerID != "":
		if !v.parties.CustomerExists(doc.CustomerID) {
			reg.AddError("customer_id", v.msg(MsgCustomerUnknown, doc.CustomerID))
			return false
		}
	case doc.SupplierID != "":
		if !v.parties.SupplierExists(doc.SupplierID) {
			reg.AddError("supplier_id", v.msg(MsgSupplierUnknown, doc.SupplierID))
			return false
		}
	default:
		reg.AddError("customer_id", v.msg(MsgCustomerIDMissing))
		return false
	}
	return true
}

// Totals checks the totals block: gross = net + tax within DeltaTotalDoc,
// net against the line amounts within DeltaLine, and the optional foreign
// currency conversion within DeltaCurrency.
func (v *DocumentValidator) Totals(doc *model.Document, reg *Register) bool {
	t := doc.Totals
	if t == nil {
		reg.AddError("totals", v.msg(MsgTotalsMissing))
		return false
	}
	ok := true

	expected := t.NetTotal.Add(t.TaxPayable)
	if !dec.WithinDelta(t.GrossTotal, expected, v.cfg.DeltaTotalDoc) {
		reg.AddError("totals.gross_total", v.msg(MsgGrossMismatch,
			dec.FormatAmount(t.GrossTotal), dec.FormatAmount(t.NetTotal), dec.FormatAmount(t.TaxPayable)))
		ok = false
	}

	debit, credit := lineTotals(doc)
	fromLines := credit.Sub(debit).Abs()
	if !dec.WithinDelta(t.NetTotal, fromLines, v.cfg.DeltaLine) {
		reg.AddError("totals.net_total", v.msg(MsgNetLinesMismatch,
			dec.FormatAmount(t.NetTotal), dec.FormatAmount(fromLines)))
		ok = false
	}

	if c := t.Currency; c != nil {
		converted := dec.Mul(c.Amount, c.ExchangeRate)
		if !dec.WithinDelta(converted, t.GrossTotal, v.cfg.DeltaCurrency) {
			reg.AddError("totals.currency", v.msg(MsgCurrencyMismatch,
				dec.FormatAmount(c.Amount), c.ExchangeRate.String(), dec.FormatAmount(t.GrossTotal)))
			ok = false
		}
	}
	return ok
}

// WithholdingTax checks the withholding entries: every entry needs an
// amount, the withheld total may not exceed the gross total, and a single
// entry above half of the gross total is suspicious but not disqualifying.
func (v *DocumentValidator) WithholdingTax(doc *model.Document, reg *Register) bool {
	t := doc.Totals
	if t == nil || len(t.Withholding) == 0 {
		return true
	}
	ok := true
	half := t.GrossTotal.Div(decimal.New(2, 0))
	sum := decimal.Zero
	for i := range t.Withholding {
		w := &t.Withholding[i]
		if w.Amount == nil {
			reg.AddError(field("totals.withholding", i, "amount"), v.msg(MsgWithholdingAmountMissing))
			ok = false
			continue
		}
		sum = sum.Add(*w.Amount)
		if w.Amount.GreaterThan(half) {
			reg.AddWarning(v.msg(MsgWithholdingAboveHalf, dec.FormatAmount(*w.Amount), dec.FormatAmount(t.GrossTotal)))
		}
	}
	if sum.GreaterThan(t.GrossTotal) {
		reg.AddError("totals.withholding", v.msg(MsgWithholdingExceedsGross,
			dec.FormatAmount(sum), dec.FormatAmount(t.GrossTotal)))
		ok = false
	}
	return ok
}

// Payment reconciles payment entries. Only invoice-receipts must balance:
// their payments must sum to gross minus withholding, and having none at
// all earns a warning. Payment entries on any other type are informational.
func (v *DocumentValidator) Payment(doc *model.Document, reg *Register) bool {
	t := doc.Totals
	if t == nil || !doc.IsInvoiceReceipt() {
		return true
	}
	if len(t.Payments) == 0 {
		reg.AddWarning(v.msg(MsgPaymentMissingFR))
		return true
	}
	paid := decimal.Zero
	for i := range t.Payments {
		paid = paid.Add(t.Payments[i].Amount)
	}
	expected := t.GrossTotal.Sub(withholdingSum(t))
	if !dec.WithinDelta(paid, expected, v.cfg.DeltaTotalDoc) {
		reg.AddError("totals.payments", v.msg(MsgPaymentMismatch,
			dec.FormatAmount(paid), dec.FormatAmount(expected)))
		return false
	}
	return true
}

// Shipment checks the shipment block. Presence of any shipment field makes
// the whole block mandatory: a movement start time and complete ship-from
// and ship-to addresses. Only goods-moving document types may carry one.
func (v *DocumentValidator) Shipment(doc *model.Document, reg *Register) bool {
	present := doc.MovementStartTime != nil || doc.MovementEndTime != nil ||
		doc.ShipFrom != nil || doc.ShipTo != nil
	if !present {
		return true
	}
	ok := true
	if !doc.AllowsShipment() {
		reg.AddError("shipment", v.msg(MsgShipmentNotAllowed, doc.Type))
		ok = false
	}
	if doc.MovementStartTime == nil {
		reg.AddError("shipment.movement_start_time", v.msg(MsgShipmentStartMissing))
		ok = false
	} else {
		start := *doc.MovementStartTime
		if start.Before(doc.Date) || start.Before(doc.SystemEntryDate) {
			reg.AddError("shipment.movement_start_time", v.msg(MsgShipmentStartEarly, fmtDateTime(start)))
			ok = false
		}
		if doc.MovementEndTime != nil && start.After(*doc.MovementEndTime) {
			reg.AddError("shipment.movement_end_time", v.msg(MsgShipmentStartAfterEnd,
				fmtDateTime(start), fmtDateTime(*doc.MovementEndTime)))
			ok = false
		}
	}
	if missing := incompleteShipPoint(doc.ShipFrom); missing != "" {
		reg.AddError("shipment.ship_from", v.msg(MsgShipFromIncomplete, missing))
		ok = false
	}
	if missing := incompleteShipPoint(doc.ShipTo); missing != "" {
		reg.AddError("shipment.ship_to", v.msg(MsgShipToIncomplete, missing))
		ok = false
	}
	return ok
}

// Dates checks that both document dates fall inside the header period and
// do not precede the previous document of the series.
func (v *DocumentValidator) Dates(doc *model.Document, st ChainState, reg *Register) bool {
	ok := true
	if v.header != nil && !v.header.StartDate.IsZero() && !v.header.EndDate.IsZero() {
		window := fmtWindow(v.header.StartDate, v.header.EndDate)
		docDay := day(doc.Date)
		if docDay.Before(v.header.StartDate) || docDay.After(v.header.EndDate) {
			reg.AddError("date", v.msg(MsgDateOutsideHeader, fmtDate(doc.Date), window[0], window[1]))
			ok = false
		}
		entryDay := day(doc.SystemEntryDate)
		if entryDay.Before(v.header.StartDate) || entryDay.After(v.header.EndDate) {
			reg.AddError("system_entry_date", v.msg(MsgEntryDateOutsideHeader, fmtDateTime(doc.SystemEntryDate), window[0], window[1]))
			ok = false
		}
	}
	if !st.LastDocDate.IsZero() && doc.Date.Before(st.LastDocDate) {
		reg.AddError("date", v.msg(MsgDateNotMonotonic, fmtDate(doc.Date), fmtDate(st.LastDocDate)))
		ok = false
	}
	if !st.LastSystemEntryDate.IsZero() && doc.SystemEntryDate.Before(st.LastSystemEntryDate) {
		reg.AddError("system_entry_date", v.msg(MsgEntryDateNotMonotonic,
			fmtDateTime(doc.SystemEntryDate), fmtDateTime(st.LastSystemEntryDate)))
		ok = false
	}
	return ok
}

// OutOfDateType rejects the invoice types retired at the end of 2012 on
// documents dated after the cutoff.
func (v *DocumentValidator) OutOfDateType(doc *model.Document, reg *Register) bool {
	if doc.Kind != model.KindInvoice || !model.IsDeprecatedType(doc.Type) {
		return true
	}
	if doc.Date.After(model.DeprecatedTypeCutoff) {
		reg.AddError("type", v.msg(MsgTypeDeprecated, doc.Type, fmtDate(doc.Date)))
		return false
	}
	return true
}

// Sign verifies the document's position in the hash chain. The first
// document of a series always signs against an empty previous hash; later
// documents sign against the carried chain state. When the prior link is
// unknown (validation started mid-series) a mismatch degrades to a
// warning, because a broken signature cannot be told apart from missing
// context. Disabled entirely by configuration.
func (v *DocumentValidator) Sign(doc *model.Document, st ChainState, reg *Register) bool {
	if !v.cfg.SignValidation {
		return true
	}
	if doc.Hash == "" {
		reg.AddError("hash", v.msg(MsgHashMissing))
		return false
	}
	seq, err := model.SequenceNumber(doc.Number)
	if err != nil {
		reg.AddError("number", v.msg(MsgNumberFormat, doc.Number))
		return false
	}
	if v.verifier == nil {
		reg.AddWarning(v.msg(MsgSignatureNoKey))
		return true
	}

	previous := ""
	if seq != 1 {
		previous = st.LastHash
	}
	gross := decimal.Zero
	if doc.Totals != nil {
		gross = doc.Totals.GrossTotal
	}
	message := signature.BuildMessage(doc.Date, doc.SystemEntryDate, doc.Number, gross, previous)
	if err := v.verifier.Verify(message, doc.Hash); err != nil {
		if seq != 1 && st.LastHash == "" {
			reg.AddWarning(v.msg(MsgSignatureNoContext))
			return true
		}
		reg.AddError("hash", v.msg(MsgSignatureBroken))
		return false
	}
	return true
}

// helpers

func lineTotals(doc *model.Document) (debit, credit decimal.Decimal) {
	for i := range doc.Lines {
		line := &doc.Lines[i]
		debit = debit.Add(line.Debit())
		credit = credit.Add(line.Credit())
	}
	return debit, credit
}

func withholdingSum(t *model.Totals) decimal.Decimal {
	sum := decimal.Zero
	for i := range t.Withholding {
		if t.Withholding[i].Amount != nil {
			sum = sum.Add(*t.Withholding[i].Amount)
		}
	}
	return sum
}

// incompleteShipPoint names what a shipment endpoint is missing, or ""
// when the endpoint is complete.
func incompleteShipPoint(p *model.ShipPoint) string {
	if p == nil {
		return "block missing"
	}
	var missing []string
	if p.Address == nil {
		missing = append(missing, "address")
	} else {
		if p.Address.AddressDetail == "" && p.Address.StreetName == "" {
			missing = append(missing, "address detail or street")
		}
		if p.Address.City == "" {
			missing = append(missing, "city")
		}
		if p.Address.Country == "" {
			missing = append(missing, "country")
		}
	}
	if len(p.DeliveryIDs) == 0 {
		missing = append(missing, "delivery identifier")
	}
	if p.DeliveryDate == nil {
		missing = append(missing, "delivery date")
	}
	return strings.Join(missing, ", ")
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func fmtDateTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

func fmtWindow(start, end time.Time) [2]string {
	return [2]string{fmtDate(start), fmtDate(end)}
}
