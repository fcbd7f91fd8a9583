// Package signature implements the document hash chain of certified
// Portuguese billing software: each document carries an RSA signature over
// its own identifying fields plus the previous document's signature,
// linking a series into a tamper-evident chain.
package signature

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field formats fixed by the certification rules.
const (
	dateFormat      = "2006-01-02"
	entryDateFormat = "2006-01-02T15:04:05"
)

// BuildMessage assembles the string that gets signed for one document:
// the document date, the system entry date, the document number, the gross
// total with two decimal places and the previous document's hash (empty
// for the first document of a series).
func BuildMessage(docDate, systemEntryDate time.Time, documentNo string, grossTotal decimal.Decimal, previousHash string) string {
	parts := []string{
		docDate.Format(dateFormat),
		systemEntryDate.Format(entryDateFormat),
		documentNo,
		grossTotal.StringFixed(2),
		previousHash,
	}
	return strings.Join(parts, ";")
}
