package xml

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/saft-validator/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

func convertAuditFile(raw *saftAuditFile) (*model.AuditFile, error) {
	af := &model.AuditFile{}

	header, err := convertHeader(&raw.Header)
	if err != nil {
		return nil, err
	}
	af.Header = *header

	if err := convertMasterFiles(&raw.MasterFiles, &af.MasterFiles); err != nil {
		return nil, err
	}

	src := &raw.SourceDocuments
	if src.SalesInvoices != nil {
		col, err := convertInvoices(src.SalesInvoices)
		if err != nil {
			return nil, err
		}
		af.SourceDocuments.Invoices = *col
	}
	if src.MovementOfGoods != nil {
		col, err := convertMovements(src.MovementOfGoods)
		if err != nil {
			return nil, err
		}
		af.SourceDocuments.StockMovements = *col
	}
	if src.WorkingDocuments != nil {
		col, err := convertWorkDocuments(src.WorkingDocuments)
		if err != nil {
			return nil, err
		}
		af.SourceDocuments.WorkDocuments = *col
	}
	if src.Payments != nil {
		col, err := convertPayments(src.Payments)
		if err != nil {
			return nil, err
		}
		af.SourceDocuments.Payments = *col
	}
	return af, nil
}

func convertHeader(h *saftHeader) (*model.Header, error) {
	out := &model.Header{
		AuditFileVersion:          h.AuditFileVersion,
		CompanyID:                 h.CompanyID,
		TaxRegistrationNumber:     h.TaxRegistrationNumber,
		TaxAccountingBasis:        h.TaxAccountingBasis,
		CompanyName:               h.CompanyName,
		FiscalYear:                h.FiscalYear,
		CurrencyCode:              h.CurrencyCode,
		TaxEntity:                 h.TaxEntity,
		ProductCompanyTaxID:       h.ProductCompanyTaxID,
		SoftwareCertificateNumber: h.SoftwareCertificateNumber,
		ProductID:                 h.ProductID,
		ProductVersion:            h.ProductVersion,
	}
	var err error
	if out.StartDate, err = parseDate("Header", "StartDate", h.StartDate); err != nil {
		return nil, err
	}
	if out.EndDate, err = parseDate("Header", "EndDate", h.EndDate); err != nil {
		return nil, err
	}
	if h.DateCreated != "" {
		if out.DateCreated, err = parseDate("Header", "DateCreated", h.DateCreated); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func convertMasterFiles(mf *saftMasterFiles, out *model.MasterFiles) error {
	for _, c := range mf.Customers {
		out.Customers = append(out.Customers, model.Customer{
			ID:          c.CustomerID,
			AccountID:   c.AccountID,
			TaxID:       c.CustomerTaxID,
			CompanyName: c.CompanyName,
			CountryCode: c.BillingAddress.Country,
		})
	}
	for _, s := range mf.Suppliers {
		out.Suppliers = append(out.Suppliers, model.Supplier{
			ID:          s.SupplierID,
			AccountID:   s.AccountID,
			TaxID:       s.SupplierTaxID,
			CompanyName: s.CompanyName,
			CountryCode: s.BillingAddress.Country,
		})
	}
	for _, p := range mf.Products {
		out.Products = append(out.Products, model.Product{
			Type:        p.ProductType,
			Code:        p.ProductCode,
			Group:       p.ProductGroup,
			Description: p.ProductDescription,
			NumberCode:  p.ProductNumberCode,
		})
	}
	for _, e := range mf.TaxTable.Entries {
		entry := model.TaxTableEntry{
			Type:          e.TaxType,
			CountryRegion: e.TaxCountryRegion,
			Code:          e.TaxCode,
			Description:   e.Description,
		}
		var err error
		if entry.ExpirationDate, err = optionalDate("TaxTableEntry", "TaxExpirationDate", e.TaxExpirationDate); err != nil {
			return err
		}
		if entry.Percentage, err = optionalAmount("TaxTableEntry", "TaxPercentage", e.TaxPercentage); err != nil {
			return err
		}
		if entry.Amount, err = optionalAmount("TaxTableEntry", "TaxAmount", e.TaxAmount); err != nil {
			return err
		}
		out.TaxTable = append(out.TaxTable, entry)
	}
	return nil
}

func convertInvoices(t *saftSalesInvoices) (*model.DocumentCollection, error) {
	col, err := newCollection("SalesInvoices", t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	if err != nil {
		return nil, err
	}
	for i := range t.Invoices {
		inv := &t.Invoices[i]
		doc := model.Document{
			Kind:        model.KindInvoice,
			Number:      inv.InvoiceNo,
			Type:        inv.InvoiceType,
			Hash:        inv.Hash,
			HashControl: inv.HashControl,
			Period:      inv.Period,
			CustomerID:  inv.CustomerID,
			SourceID:    inv.SourceID,
		}
		if err := convertCommon(&doc, inv.InvoiceNo, commonFields{
			date:       inv.InvoiceDate,
			entryDate:  inv.SystemEntryDate,
			status:     statusFields(inv.DocumentStatus),
			shipFrom:   inv.ShipFrom,
			shipTo:     inv.ShipTo,
			moveStart:  inv.MovementStartTime,
			moveEnd:    inv.MovementEndTime,
			lines:      inv.Lines,
			totals:     inv.DocumentTotals,
			withheld:   inv.WithholdingTax,
			payments:   nil,
		}); err != nil {
			return nil, err
		}
		col.Documents = append(col.Documents, doc)
	}
	return col, nil
}

func convertMovements(t *saftMovementOfGoods) (*model.DocumentCollection, error) {
	col, err := newCollection("MovementOfGoods", t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	if err != nil {
		return nil, err
	}
	for i := range t.Movements {
		mv := &t.Movements[i]
		doc := model.Document{
			Kind:        model.KindStockMovement,
			Number:      mv.DocumentNumber,
			Type:        mv.MovementType,
			Hash:        mv.Hash,
			HashControl: mv.HashControl,
			Period:      mv.Period,
			CustomerID:  mv.CustomerID,
			SupplierID:  mv.SupplierID,
			SourceID:    mv.SourceID,
		}
		if err := convertCommon(&doc, mv.DocumentNumber, commonFields{
			date:      mv.MovementDate,
			entryDate: mv.SystemEntryDate,
			status: statusParts{
				value: mv.DocumentStatus.Status, date: mv.DocumentStatus.StatusDate,
				reason: mv.DocumentStatus.Reason, source: mv.DocumentStatus.SourceBilling,
			},
			shipFrom:  mv.ShipFrom,
			shipTo:    mv.ShipTo,
			moveStart: mv.MovementStartTime,
			moveEnd:   mv.MovementEndTime,
			lines:     mv.Lines,
			totals:    mv.DocumentTotals,
		}); err != nil {
			return nil, err
		}
		col.Documents = append(col.Documents, doc)
	}
	return col, nil
}

func convertWorkDocuments(t *saftWorkingDocuments) (*model.DocumentCollection, error) {
	col, err := newCollection("WorkingDocuments", t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	if err != nil {
		return nil, err
	}
	for i := range t.WorkDocuments {
		wd := &t.WorkDocuments[i]
		doc := model.Document{
			Kind:        model.KindWorkDocument,
			Number:      wd.DocumentNumber,
			Type:        wd.WorkType,
			Hash:        wd.Hash,
			HashControl: wd.HashControl,
			Period:      wd.Period,
			CustomerID:  wd.CustomerID,
			SourceID:    wd.SourceID,
		}
		if err := convertCommon(&doc, wd.DocumentNumber, commonFields{
			date:      wd.WorkDate,
			entryDate: wd.SystemEntryDate,
			status: statusParts{
				value: wd.DocumentStatus.Status, date: wd.DocumentStatus.StatusDate,
				reason: wd.DocumentStatus.Reason, source: wd.DocumentStatus.SourceBilling,
			},
			lines:    wd.Lines,
			totals:   wd.DocumentTotals,
			withheld: wd.WithholdingTax,
		}); err != nil {
			return nil, err
		}
		col.Documents = append(col.Documents, doc)
	}
	return col, nil
}

func convertPayments(t *saftPayments) (*model.DocumentCollection, error) {
	col, err := newCollection("Payments", t.NumberOfEntries, t.TotalDebit, t.TotalCredit)
	if err != nil {
		return nil, err
	}
	for i := range t.Payments {
		pay := &t.Payments[i]
		doc := model.Document{
			Kind:        model.KindPayment,
			Number:      pay.PaymentRefNo,
			Type:        pay.PaymentType,
			Hash:        pay.Hash,
			HashControl: pay.HashControl,
			Period:      pay.Period,
			CustomerID:  pay.CustomerID,
			SourceID:    pay.SourceID,
		}
		if err := convertCommon(&doc, pay.PaymentRefNo, commonFields{
			date:      pay.TransactionDate,
			entryDate: pay.SystemEntryDate,
			status: statusParts{
				value: pay.DocumentStatus.Status, date: pay.DocumentStatus.StatusDate,
				reason: pay.DocumentStatus.Reason, source: pay.DocumentStatus.SourcePayment,
			},
			lines:    pay.Lines,
			totals:   pay.DocumentTotals,
			withheld: pay.WithholdingTax,
			payments: pay.PaymentMethods,
		}); err != nil {
			return nil, err
		}
		col.Documents = append(col.Documents, doc)
	}
	return col, nil
}

type statusParts struct {
	value  string
	date   string
	reason string
	source string
}

func statusFields(s saftInvoiceStatus) statusParts {
	return statusParts{value: s.Status, date: s.StatusDate, reason: s.Reason, source: s.SourceBilling}
}

// commonFields carries the fields shared by all four document kinds so the
// conversion runs through one code path.
type commonFields struct {
	date      string
	entryDate string
	status    statusParts
	shipFrom  *saftShipPoint
	shipTo    *saftShipPoint
	moveStart string
	moveEnd   string
	lines     []saftLine
	totals    *saftTotals
	withheld  []saftWithholding
	payments  []saftPayMethod
}

func convertCommon(doc *model.Document, number string, f commonFields) error {
	var err error
	if doc.Date, err = parseDate(number, "date", f.date); err != nil {
		return err
	}
	if doc.SystemEntryDate, err = parseDateTime(number, "SystemEntryDate", f.entryDate); err != nil {
		return err
	}

	if f.status.value != "" || f.status.date != "" {
		st := &model.Status{
			Value:         f.status.value,
			Reason:        f.status.reason,
			SourceBilling: f.status.source,
		}
		if f.status.date != "" {
			if st.Date, err = parseDateTime(number, "StatusDate", f.status.date); err != nil {
				return err
			}
		}
		doc.Status = st
	}

	if doc.MovementStartTime, err = optionalDateTime(number, "MovementStartTime", f.moveStart); err != nil {
		return err
	}
	if doc.MovementEndTime, err = optionalDateTime(number, "MovementEndTime", f.moveEnd); err != nil {
		return err
	}
	if doc.ShipFrom, err = convertShipPoint(number, f.shipFrom); err != nil {
		return err
	}
	if doc.ShipTo, err = convertShipPoint(number, f.shipTo); err != nil {
		return err
	}

	for i := range f.lines {
		line, err := convertLine(number, &f.lines[i])
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, *line)
	}

	if f.totals != nil {
		totals, err := convertTotals(number, f.totals)
		if err != nil {
			return err
		}
		doc.Totals = totals
	}
	if len(f.withheld) > 0 || len(f.payments) > 0 {
		if doc.Totals == nil {
			doc.Totals = &model.Totals{}
		}
		for _, w := range f.withheld {
			entry := model.WithholdingTax{Type: w.WithholdingTaxType, Description: w.WithholdingTaxDescription}
			if entry.Amount, err = optionalAmount(number, "WithholdingTaxAmount", w.WithholdingTaxAmount); err != nil {
				return err
			}
			doc.Totals.Withholding = append(doc.Totals.Withholding, entry)
		}
		for _, p := range f.payments {
			method := model.PaymentMethod{Mechanism: p.PaymentMechanism}
			if method.Amount, err = parseAmount(number, "PaymentAmount", p.PaymentAmount); err != nil {
				return err
			}
			if p.PaymentDate != "" {
				if method.Date, err = parseDate(number, "PaymentDate", p.PaymentDate); err != nil {
					return err
				}
			}
			doc.Totals.Payments = append(doc.Totals.Payments, method)
		}
	}
	return nil
}

func convertLine(number string, l *saftLine) (*model.Line, error) {
	out := &model.Line{
		Number:             l.LineNumber,
		ProductCode:        l.ProductCode,
		ProductDescription: l.ProductDescription,
		UnitOfMeasure:      l.UnitOfMeasure,
		Description:        l.Description,
		TaxExemptionReason: l.TaxExemptionReason,
		TaxExemptionCode:   l.TaxExemptionCode,
	}
	var err error
	if out.Quantity, err = optionalAmount(number, "Quantity", l.Quantity); err != nil {
		return nil, err
	}
	if out.UnitPrice, err = optionalAmount(number, "UnitPrice", l.UnitPrice); err != nil {
		return nil, err
	}
	if out.TaxBase, err = optionalAmount(number, "TaxBase", l.TaxBase); err != nil {
		return nil, err
	}
	if out.DebitAmount, err = optionalAmount(number, "DebitAmount", l.DebitAmount); err != nil {
		return nil, err
	}
	if out.CreditAmount, err = optionalAmount(number, "CreditAmount", l.CreditAmount); err != nil {
		return nil, err
	}
	if out.SettlementAmount, err = optionalAmount(number, "SettlementAmount", l.SettlementAmount); err != nil {
		return nil, err
	}
	if l.TaxPointDate != "" {
		if out.TaxPointDate, err = parseDate(number, "TaxPointDate", l.TaxPointDate); err != nil {
			return nil, err
		}
	}
	for _, r := range l.OrderReferences {
		ref := model.OrderReference{OriginatingON: r.OriginatingON}
		if r.OrderDate != "" {
			if ref.OrderDate, err = parseDate(number, "OrderDate", r.OrderDate); err != nil {
				return nil, err
			}
		}
		out.OrderReferences = append(out.OrderReferences, ref)
	}
	for _, r := range l.References {
		out.References = append(out.References, model.Reference{Reference: r.Reference, Reason: r.Reason})
	}
	if l.Tax != nil {
		tax := &model.Tax{
			Type:          l.Tax.TaxType,
			CountryRegion: l.Tax.TaxCountryRegion,
			Code:          l.Tax.TaxCode,
		}
		if tax.Percentage, err = optionalAmount(number, "TaxPercentage", l.Tax.TaxPercentage); err != nil {
			return nil, err
		}
		if tax.Amount, err = optionalAmount(number, "TaxAmount", l.Tax.TaxAmount); err != nil {
			return nil, err
		}
		out.Tax = tax
	}
	return out, nil
}

func convertTotals(number string, t *saftTotals) (*model.Totals, error) {
	out := &model.Totals{}
	var err error
	if out.TaxPayable, err = parseAmount(number, "TaxPayable", t.TaxPayable); err != nil {
		return nil, err
	}
	if out.NetTotal, err = parseAmount(number, "NetTotal", t.NetTotal); err != nil {
		return nil, err
	}
	if out.GrossTotal, err = parseAmount(number, "GrossTotal", t.GrossTotal); err != nil {
		return nil, err
	}
	if t.Currency != nil {
		cur := &model.Currency{Code: t.Currency.CurrencyCode}
		if cur.Amount, err = parseAmount(number, "CurrencyAmount", t.Currency.CurrencyAmount); err != nil {
			return nil, err
		}
		if cur.ExchangeRate, err = parseAmount(number, "ExchangeRate", t.Currency.ExchangeRate); err != nil {
			return nil, err
		}
		out.Currency = cur
	}
	return out, nil
}

func convertShipPoint(number string, p *saftShipPoint) (*model.ShipPoint, error) {
	if p == nil {
		return nil, nil
	}
	out := &model.ShipPoint{DeliveryIDs: p.DeliveryID}
	var err error
	if out.DeliveryDate, err = optionalDate(number, "DeliveryDate", p.DeliveryDate); err != nil {
		return nil, err
	}
	if p.Address != nil {
		out.Address = &model.Address{
			AddressDetail: p.Address.AddressDetail,
			StreetName:    p.Address.StreetName,
			City:          p.Address.City,
			PostalCode:    p.Address.PostalCode,
			Country:       p.Address.Country,
		}
	}
	return out, nil
}

func newCollection(element string, entries int, debit, credit string) (*model.DocumentCollection, error) {
	col := &model.DocumentCollection{NumberOfEntries: entries}
	var err error
	if col.TotalDebit, err = parseAmount(element, "TotalDebit", debit); err != nil {
		return nil, err
	}
	if col.TotalCredit, err = parseAmount(element, "TotalCredit", credit); err != nil {
		return nil, err
	}
	return col, nil
}

// parse helpers

func parseDate(element, field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, model.NewParseError(element, field, "invalid date", err)
	}
	return t, nil
}

func parseDateTime(element, field, s string) (time.Time, error) {
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return time.Time{}, model.NewParseError(element, field, "invalid date-time", err)
	}
	return t, nil
}

func optionalDate(element, field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(element, field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalDateTime(element, field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDateTime(element, field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseAmount(element, field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, model.NewParseError(element, field, "invalid amount", err)
	}
	return d, nil
}

func optionalAmount(element, field, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseAmount(element, field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
