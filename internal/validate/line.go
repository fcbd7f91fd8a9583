package validate

import (
	"fmt"

	dec "github.com/rezonia/saft-validator/internal/decimal"
	"github.com/rezonia/saft-validator/internal/model"
)

// Lines validates every document line in stored order: numbering,
// quantity/price presence, product resolution, debit/credit exclusivity
// (with the reversal allowance), tax resolution and reference rules.
func (v *DocumentValidator) Lines(doc *model.Document, reg *Register) bool {
	if len(doc.Lines) == 0 {
		reg.AddError("lines", v.msg(MsgNoLines))
		return false
	}
	ok := true
	seen := make(map[int]bool, len(doc.Lines))
	// docSide is the side of the first non-zero line: +1 credit, -1 debit.
	docSide := 0
	// lastByProduct tracks the nearest preceding dominant-side line per
	// product code, the baseline a reversal line is compared against.
	lastByProduct := make(map[string]*model.Line)

	for i := range doc.Lines {
		line := &doc.Lines[i]

		if v.cfg.ContinuesLines {
			if line.Number != i+1 {
				reg.AddError(field("lines", i, "number"), v.msg(MsgLineNumberSequence, line.Number, i+1))
				ok = false
			}
		} else {
			if seen[line.Number] {
				reg.AddError(field("lines", i, "number"), v.msg(MsgLineNumberDuplicate, line.Number))
				ok = false
			}
			seen[line.Number] = true
		}

		if line.Quantity == nil {
			reg.AddError(field("lines", i, "quantity"), v.msg(MsgQuantityMissing))
			ok = false
		}
		if line.UnitPrice == nil {
			reg.AddError(field("lines", i, "unit_price"), v.msg(MsgUnitPriceMissing))
			ok = false
		}
		if line.ProductCode != "" && !v.products.ProductExists(line.ProductCode) {
			reg.AddError(field("lines", i, "product_code"), v.msg(MsgProductUnknown, line.ProductCode))
			ok = false
		}

		debitSet := !dec.IsZero(line.DebitAmount)
		creditSet := !dec.IsZero(line.CreditAmount)
		switch {
		case debitSet && creditSet:
			reg.AddError(field("lines", i, "amount"), v.msg(MsgDebitAndCreditSet))
			ok = false
		case debitSet || creditSet:
			side := -1
			if creditSet {
				side = 1
			}
			switch {
			case docSide == 0:
				docSide = side
				lastByProduct[line.ProductCode] = line
			case side == docSide:
				lastByProduct[line.ProductCode] = line
			case !v.cfg.AllowDebitAndCredit:
				reg.AddError(field("lines", i, "amount"), v.msg(MsgOppositeSignNotAllowed))
				ok = false
			default:
				if !v.anulation(line, lastByProduct[line.ProductCode], i, reg) {
					ok = false
				}
			}
		}

		if !v.tax(line, i, reg) {
			ok = false
		}
		if !v.references(doc, line, i, reg) {
			ok = false
		}
	}
	return ok
}

// anulation bounds a reversal line against the line it reverses: neither
// the quantity nor the unit price may exceed the reversed line's values.
// The baseline is the nearest preceding line with the same product code;
// whether the legal rule wants a running per-product total instead is an
// open verification item, so this stays the literal adjacent comparison.
func (v *DocumentValidator) anulation(line, ref *model.Line, i int, reg *Register) bool {
	if ref == nil {
		reg.AddError(field("lines", i, "product_code"), v.msg(MsgAnulationNoReference, line.ProductCode))
		return false
	}
	ok := true
	if line.Quantity != nil && ref.Quantity != nil && line.Quantity.GreaterThan(*ref.Quantity) {
		reg.AddError(field("lines", i, "quantity"), v.msg(MsgAnulationQuantity,
			line.Quantity.String(), ref.Quantity.String()))
		ok = false
	}
	if line.UnitPrice != nil && ref.UnitPrice != nil && line.UnitPrice.GreaterThan(*ref.UnitPrice) {
		reg.AddError(field("lines", i, "unit_price"), v.msg(MsgAnulationUnitPrice,
			line.UnitPrice.String(), ref.UnitPrice.String()))
		ok = false
	}
	return ok
}

// tax validates the line tax block and resolves it against the tax table.
func (v *DocumentValidator) tax(line *model.Line, i int, reg *Register) bool {
	t := line.Tax
	if t == nil {
		reg.AddError(field("lines", i, "tax"), v.msg(MsgTaxMissing))
		return false
	}
	ok := true
	if t.Type == "" {
		reg.AddError(field("lines", i, "tax.type"), v.msg(MsgTaxTypeMissing))
		ok = false
	}
	if t.Code == "" {
		reg.AddError(field("lines", i, "tax.code"), v.msg(MsgTaxCodeMissing))
		ok = false
	}
	if t.CountryRegion == "" {
		reg.AddError(field("lines", i, "tax.country_region"), v.msg(MsgTaxRegionMissing))
		ok = false
	}
	if t.Type == model.TaxTypeVAT && t.Percentage == nil {
		reg.AddError(field("lines", i, "tax.percentage"), v.msg(MsgTaxPercentageMissing))
		ok = false
	}

	zeroRate := t.Percentage != nil && t.Percentage.IsZero()
	zeroAmount := t.Amount != nil && t.Amount.IsZero()
	if zeroRate || zeroAmount {
		if line.TaxExemptionCode == "" || line.TaxExemptionReason == "" {
			reg.AddError(field("lines", i, "tax_exemption"), v.msg(MsgTaxExemptionRequired))
			ok = false
		}
	}
	if t.Code == model.TaxCodeExempt && t.Percentage != nil && !t.Percentage.IsZero() {
		reg.AddError(field("lines", i, "tax.percentage"), v.msg(MsgTaxExemptNonZero, t.Percentage.String()))
		ok = false
	}

	if t.Type != "" && t.Code != "" && t.CountryRegion != "" {
		entry, found := v.taxes.Lookup(t.Type, t.Code, t.CountryRegion)
		if !found {
			reg.AddError(field("lines", i, "tax"), v.msg(MsgTaxNotInTable, t.Type, t.Code, t.CountryRegion))
			ok = false
		} else if entry.ExpirationDate != nil && !line.TaxPointDate.IsZero() &&
			entry.ExpirationDate.Before(line.TaxPointDate) {
			reg.AddError(field("lines", i, "tax"), v.msg(MsgTaxEntryExpired,
				t.Type, t.Code, t.CountryRegion, fmtDate(*entry.ExpirationDate), fmtDate(line.TaxPointDate)))
			ok = false
		}
	}
	return ok
}

// references enforces the reference rules: credit/debit notes must point
// at the corrected document through References and may not carry
// OrderReferences; every other document type is the exact opposite.
func (v *DocumentValidator) references(doc *model.Document, line *model.Line, i int, reg *Register) bool {
	if doc.IsCreditDebitNote() {
		ok := true
		hasReference := false
		hasReason := false
		for j := range line.References {
			if line.References[j].Reference != "" {
				hasReference = true
			}
			if line.References[j].Reason != "" {
				hasReason = true
			}
		}
		if !hasReference {
			reg.AddError(field("lines", i, "references"), v.msg(MsgReferenceMissing))
			ok = false
		}
		if !hasReason {
			reg.AddError(field("lines", i, "references.reason"), v.msg(MsgReferenceReasonMissing))
			ok = false
		}
		if len(line.OrderReferences) > 0 {
			reg.AddError(field("lines", i, "order_references"), v.msg(MsgOrderRefNotAllowed))
			ok = false
		}
		return ok
	}

	ok := true
	if len(line.References) > 0 {
		reg.AddError(field("lines", i, "references"), v.msg(MsgReferenceNotAllowed))
		ok = false
	}
	for j := range line.OrderReferences {
		or := &line.OrderReferences[j]
		name := fmt.Sprintf("order_references[%d]", j)
		if or.OriginatingON == "" || or.OrderDate.IsZero() {
			reg.AddError(field("lines", i, name), v.msg(MsgOrderRefIncomplete))
			ok = false
			continue
		}
		if or.OrderDate.After(doc.Date) {
			reg.AddError(field("lines", i, name), v.msg(MsgOrderRefDateAfterDoc,
				fmtDate(or.OrderDate), fmtDate(doc.Date)))
			ok = false
		}
		if !model.ValidNumberFormat(or.OriginatingON) {
			reg.AddWarning(v.msg(MsgOrderRefFormat, or.OriginatingON))
		}
	}
	return ok
}

func field(prefix string, i int, name string) string {
	return fmt.Sprintf("%s[%d].%s", prefix, i, name)
}
