package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// documentNoPattern is the legal document number format: a type code, a
// space, a series identifier and the sequence number after "/".
var documentNoPattern = regexp.MustCompile(`^[^ ]{1,10} [^/^ ]{1,30}/[0-9]+$`)

// ValidNumberFormat reports whether no matches the legal document number
// format, e.g. "FT FT/3".
func ValidNumberFormat(no string) bool {
	return documentNoPattern.MatchString(no)
}

// Series returns the series part of a document number, the text before the
// final "/". Series("FT FT/3") is "FT FT".
func Series(no string) string {
	idx := strings.LastIndex(no, "/")
	if idx < 0 {
		return no
	}
	return no[:idx]
}

// SequenceNumber returns the numeric suffix after the final "/" in a
// document number. SequenceNumber("FT FT/3") is 3.
func SequenceNumber(no string) (int, error) {
	idx := strings.LastIndex(no, "/")
	if idx < 0 || idx == len(no)-1 {
		return 0, fmt.Errorf("document number %q has no sequence suffix", no)
	}
	n, err := strconv.Atoi(no[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("document number %q has a non-numeric sequence suffix", no)
	}
	return n, nil
}

// NormalizeNumber collapses interior whitespace so that numbers differing
// only in spacing compare equal for duplicate detection.
func NormalizeNumber(no string) string {
	return strings.Join(strings.Fields(no), " ")
}
