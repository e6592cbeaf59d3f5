package ledger

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	invoicePrefix       = "INV"
	purchaseOrderPrefix = "PO"
)

// NextDocumentNumber returns "<prefix>-<year>-<seq>" where seq is one more than the
// highest sequence among existing numbers of that year, zero-padded to three digits.
// Gaps are kept: given 001 and 003 the next number is 004.
func NextDocumentNumber(prefix string, year int, existing []string) string {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(yearPrefix(prefix, year)) + `(\d{3,})$`)
	highest := 0
	for _, n := range existing {
		m := pattern.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err == nil && seq > highest {
			highest = seq
		}
	}
	return fmt.Sprintf("%s%03d", yearPrefix(prefix, year), highest+1)
}

func yearPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%04d-", prefix, year)
}
