package validate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/saft-validator/internal/model"
)

// ChainState is the context carried from one document of a series to the
// next: the previous signature hash, the previous dates for monotonicity
// checks, and the running table totals. It is threaded explicitly through
// the validator calls so independent series can run in parallel; a zero
// ChainState means "start of series" (or unknown prior context).
type ChainState struct {
	LastHash            string
	LastDocDate         time.Time
	LastSystemEntryDate time.Time

	NumberOfEntries int
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
}

// Advance returns the state after processing doc: the document becomes the
// chain's last link and its line amounts join the running table totals.
// Cancelled documents count as entries but contribute nothing to the
// debit/credit totals.
func (s ChainState) Advance(doc *model.Document) ChainState {
	s.LastHash = doc.Hash
	s.LastDocDate = doc.Date
	s.LastSystemEntryDate = doc.SystemEntryDate
	s.NumberOfEntries++

	if !doc.Status.Cancelled() {
		for i := range doc.Lines {
			line := &doc.Lines[i]
			s.TotalDebit = s.TotalDebit.Add(line.Debit())
			s.TotalCredit = s.TotalCredit.Add(line.Credit())
		}
	}
	return s
}
