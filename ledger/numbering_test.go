package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDocumentNumber(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		year     int
		existing []string
		want     string
	}{
		{"first of year", "INV", 2025, nil, "INV-2025-001"},
		{"max plus one keeps gaps", "INV", 2025, []string{"INV-2025-001", "INV-2025-003"}, "INV-2025-004"},
		{"other years ignored", "INV", 2025, []string{"INV-2024-017", "INV-2025-002"}, "INV-2025-003"},
		{"other prefixes ignored", "PO", 2025, []string{"INV-2025-009", "PO-2025-001"}, "PO-2025-002"},
		{"malformed ignored", "INV", 2025, []string{"INV-2025-1", "INV-2025-00x", "inv-2025-005"}, "INV-2025-001"},
		{"grows past three digits", "INV", 2025, []string{"INV-2025-999"}, "INV-2025-1000"},
		{"wide sequences parsed", "INV", 2025, []string{"INV-2025-1000"}, "INV-2025-1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDocumentNumber(tt.prefix, tt.year, tt.existing))
		})
	}
}

func TestRejectionNote(t *testing.T) {
	reason := "pricing mismatch"
	empty := ""
	assert.Equal(t, "Rejected: pricing mismatch", rejectionNote(&reason))
	assert.Equal(t, "Rejected", rejectionNote(&empty))
	assert.Equal(t, "Rejected", rejectionNote(nil))
}
