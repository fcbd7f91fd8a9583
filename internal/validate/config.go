package validate

import "github.com/shopspring/decimal"

// Config holds the tolerances and toggles of one validation run. Treat as
// immutable once the run starts.
type Config struct {
	// DeltaLine is the tolerance between the line amounts and the declared
	// net total of a document.
	DeltaLine decimal.Decimal
	// DeltaCurrency is the tolerance on foreign currency conversion.
	DeltaCurrency decimal.Decimal
	// DeltaTable is the tolerance on table-level debit/credit totals.
	DeltaTable decimal.Decimal
	// DeltaTotalDoc is the tolerance between gross and net+tax.
	DeltaTotalDoc decimal.Decimal

	// ContinuesLines requires strictly contiguous line numbers; when off,
	// line numbers only need to be unique within the document.
	ContinuesLines bool
	// AllowDebitAndCredit permits reversal lines of the opposite sign
	// within one document.
	AllowDebitAndCredit bool
	// SignValidation enables hash chain verification.
	SignValidation bool
}

// DefaultConfig returns the configuration used by the CLI when nothing is
// overridden: one cent of tolerance everywhere, continuous line numbering,
// no mixed-sign lines, signatures verified.
func DefaultConfig() Config {
	cent := decimal.New(1, -2)
	return Config{
		DeltaLine:      cent,
		DeltaCurrency:  cent,
		DeltaTable:     cent,
		DeltaTotalDoc:  cent,
		ContinuesLines: true,
		SignValidation: true,
	}
}
