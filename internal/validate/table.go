package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/saft-validator/internal/decimal"
	"github.com/rezonia/saft-validator/internal/model"
)

// SeriesType is one caller-supplied mapping entry: the expected document
// type code for a numbering series.
type SeriesType struct {
	Series string
	Type   string
}

// TableValidator checks invariants across a whole document collection:
// declared aggregates against actual content, series/type consistency and
// duplicate numbers.
type TableValidator struct {
	cfg Config
	tr  Translator
}

// NewTableValidator creates a table validator for one run.
func NewTableValidator(cfg Config, tr Translator) *TableValidator {
	if tr == nil {
		tr = DefaultTranslator()
	}
	return &TableValidator{cfg: cfg, tr: tr}
}

func (t *TableValidator) msg(key string, args ...interface{}) string {
	return t.tr.Translate(key, args...)
}

// CheckInvoicesType validates series/type consistency for the invoice table.
func (t *TableValidator) CheckInvoicesType(col *model.DocumentCollection, mapping []SeriesType, reg *Register) bool {
	return t.checkTypes(col, mapping, reg)
}

// CheckStockMovementType validates series/type consistency for the
// movement-of-goods table.
func (t *TableValidator) CheckStockMovementType(col *model.DocumentCollection, mapping []SeriesType, reg *Register) bool {
	return t.checkTypes(col, mapping, reg)
}

// CheckWorkDocumentType validates series/type consistency for the working
// documents table.
func (t *TableValidator) CheckWorkDocumentType(col *model.DocumentCollection, mapping []SeriesType, reg *Register) bool {
	return t.checkTypes(col, mapping, reg)
}

// CheckPaymentType validates series/type consistency for the payments table.
func (t *TableValidator) CheckPaymentType(col *model.DocumentCollection, mapping []SeriesType, reg *Register) bool {
	return t.checkTypes(col, mapping, reg)
}

func (t *TableValidator) checkTypes(col *model.DocumentCollection, mapping []SeriesType, reg *Register) bool {
	ok := true

	expected := make(map[string]string, len(mapping))
	for _, m := range mapping {
		if prev, dup := expected[m.Series]; dup {
			if prev != m.Type {
				reg.AddError(fmt.Sprintf("series[%s]", m.Series),
					t.msg(MsgSeriesTypeConflict, m.Series, prev, m.Type))
				ok = false
			}
			continue
		}
		expected[m.Series] = m.Type
	}

	byNumber := make(map[string]string, len(col.Documents))
	for i := range col.Documents {
		d := &col.Documents[i]
		series := model.Series(d.Number)
		if want, known := expected[series]; known && want != d.Type {
			reg.AddError(fmt.Sprintf("documents[%d].type", i),
				t.msg(MsgSeriesWrongType, d.Number, d.Type, series, want))
			ok = false
		}
		norm := model.NormalizeNumber(d.Number)
		if prevType, seen := byNumber[norm]; seen && prevType != d.Type {
			reg.AddError(fmt.Sprintf("documents[%d].type", i),
				t.msg(MsgNumberTypeConflict, norm, prevType, d.Type))
			ok = false
		} else if !seen {
			byNumber[norm] = d.Type
		}
	}
	return ok
}

// NumberOfEntries checks the declared entry count against the actual
// number of documents. Exact match, no tolerance.
func (t *TableValidator) NumberOfEntries(col *model.DocumentCollection, reg *Register) bool {
	if col.NumberOfEntries != len(col.Documents) {
		reg.AddError("number_of_entries", t.msg(MsgEntriesMismatch, col.NumberOfEntries, len(col.Documents)))
		return false
	}
	return true
}

// Totals checks the declared table debit/credit totals against the
// accumulated line amounts of the collection's series, within DeltaTable.
func (t *TableValidator) Totals(col *model.DocumentCollection, debit, credit decimal.Decimal, reg *Register) bool {
	ok := true
	if !dec.WithinDelta(col.TotalDebit, debit, t.cfg.DeltaTable) {
		reg.AddError("total_debit", t.msg(MsgTableDebitMismatch,
			dec.FormatAmount(col.TotalDebit), dec.FormatAmount(debit)))
		ok = false
	}
	if !dec.WithinDelta(col.TotalCredit, credit, t.cfg.DeltaTable) {
		reg.AddError("total_credit", t.msg(MsgTableCreditMismatch,
			dec.FormatAmount(col.TotalCredit), dec.FormatAmount(credit)))
		ok = false
	}
	return ok
}

// Duplicates flags any normalized document number appearing more than once
// across the supplied documents. The caller passes the whole file's
// documents, so duplicates across tables are caught too.
func (t *TableValidator) Duplicates(docs []*model.Document, reg *Register) bool {
	ok := true
	seen := make(map[string]bool, len(docs))
	flagged := make(map[string]bool)
	for _, d := range docs {
		norm := model.NormalizeNumber(d.Number)
		if norm == "" {
			continue
		}
		if seen[norm] && !flagged[norm] {
			reg.AddError(fmt.Sprintf("documents[%s]", norm), t.msg(MsgNumberDuplicate, norm))
			flagged[norm] = true
			ok = false
		}
		seen[norm] = true
	}
	return ok
}
