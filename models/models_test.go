package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseInvoiceStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    InvoiceStatus
		wantErr bool
	}{
		{in: "paid", want: InvoicePaid},
		{in: "Paid", want: InvoicePaid},
		{in: " APPROVED ", want: InvoiceApproved},
		{in: "pending", want: InvoicePending},
		{in: "Rejected", want: InvoiceRejected},
		{in: "settled", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInvoiceStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvoiceTransitions(t *testing.T) {
	all := []InvoiceStatus{InvoicePending, InvoiceApproved, InvoicePaid, InvoiceRejected}
	allowed := map[InvoiceStatus][]InvoiceStatus{
		InvoicePending:  {InvoiceApproved, InvoiceRejected},
		InvoiceApproved: {InvoicePaid},
	}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				want = want || a == to
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, InvoicePaid.Terminal())
	assert.True(t, InvoiceRejected.Terminal())
	assert.False(t, InvoiceApproved.Terminal())
}

func TestPurchaseOrderTransitions(t *testing.T) {
	assert.True(t, PurchaseOrderDraft.CanTransitionTo(PurchaseOrderPending))
	assert.False(t, PurchaseOrderDraft.CanTransitionTo(PurchaseOrderApproved))
	assert.True(t, PurchaseOrderPending.CanTransitionTo(PurchaseOrderRejected))
	assert.True(t, PurchaseOrderApproved.CanTransitionTo(PurchaseOrderClosed))
	assert.False(t, PurchaseOrderRejected.CanTransitionTo(PurchaseOrderPending))
	assert.False(t, PurchaseOrderClosed.CanTransitionTo(PurchaseOrderApproved))

	st, err := ParsePurchaseOrderStatus("CLOSED")
	require.NoError(t, err)
	assert.Equal(t, PurchaseOrderClosed, st)
}

func TestInvoiceInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    InvoiceInput
		field string
	}{
		{name: "missing description", in: InvoiceInput{Amount: 10}, field: "description"},
		{name: "zero amount", in: InvoiceInput{Description: "x"}, field: "amount"},
		{name: "negative amount", in: InvoiceInput{Description: "x", Amount: -5}, field: "amount"},
		{name: "bad currency", in: InvoiceInput{Description: "x", Amount: 1, Currency: "dollars"}, field: "currency"},
		{name: "bad due date", in: InvoiceInput{Description: "x", Amount: 1, DueDate: ptr("31/12/2025")}, field: "dueDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate("USD")
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	in := InvoiceInput{Description: "  Cement  ", Amount: 100, Currency: "kes", VendorID: ptr("  ")}
	require.NoError(t, in.Validate("USD"))
	assert.Equal(t, "Cement", in.Description)
	assert.Equal(t, DefaultCategory, in.Category)
	assert.Equal(t, "KES", in.Currency)
	assert.Nil(t, in.VendorID)
}

func TestPaymentInputValidate(t *testing.T) {
	today := time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)

	p := PaymentInput{PaymentMethod: "Bank_Transfer"}
	require.NoError(t, p.Validate(today))
	assert.Equal(t, PaymentBankTransfer, p.PaymentMethod)
	require.NotNil(t, p.PaidDate)
	assert.Equal(t, "2025-06-01", *p.PaidDate)

	p = PaymentInput{PaymentMethod: "cash", PaidDate: ptr("2025-05-20")}
	require.NoError(t, p.Validate(today))
	assert.Equal(t, "2025-05-20", *p.PaidDate)

	for _, bad := range []PaymentInput{
		{},
		{PaymentMethod: "barter"},
		{PaymentMethod: "cash", PaidDate: ptr("yesterday")},
	} {
		assert.ErrorIs(t, bad.Validate(today), ErrValidation)
	}
}

func TestInvoiceOverdue(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status InvoiceStatus
		due    *string
		want   bool
	}{
		{name: "no due date", status: InvoicePending},
		{name: "due today", status: InvoicePending, due: ptr("2025-06-10")},
		{name: "past due pending", status: InvoicePending, due: ptr("2025-06-09"), want: true},
		{name: "past due approved", status: InvoiceApproved, due: ptr("2025-01-01"), want: true},
		{name: "past due paid", status: InvoicePaid, due: ptr("2025-01-01")},
		{name: "past due rejected", status: InvoiceRejected, due: ptr("2025-01-01")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, inv.Overdue(today))
		})
	}
}

func TestAppendNote(t *testing.T) {
	var inv Invoice
	inv.AppendNote("one")
	assert.Equal(t, "one", *inv.Notes)
	inv.AppendNote("two")
	assert.Equal(t, "one\ntwo", *inv.Notes)

	po := PurchaseOrder{Notes: ptr("")}
	po.AppendNote("Rejected: over budget")
	assert.Equal(t, "Rejected: over budget", *po.Notes)
	po.AppendNote("Rejected")
	assert.Equal(t, "Rejected: over budget\nRejected", *po.Notes)
}

func TestInvoiceSummaryAdd(t *testing.T) {
	var s InvoiceSummary
	for _, inv := range []Invoice{
		{Status: InvoicePending, Amount: 100},
		{Status: InvoiceApproved, Amount: 200},
		{Status: InvoicePaid, Amount: 300},
		{Status: InvoiceRejected, Amount: 400},
	} {
		s.Add(inv)
	}
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, Money(100), s.PendingAmount)
	assert.Equal(t, Money(200), s.ApprovedAmount)
	assert.Equal(t, Money(300), s.PaidAmount)
	assert.Equal(t, 1, s.ByStatus[InvoiceRejected].Count)
}

func TestPurchaseOrderInputTotals(t *testing.T) {
	in := PurchaseOrderInput{
		Description: "Timber",
		Items: []PurchaseOrderItemInput{
			{Description: "Planks", Quantity: decimal.RequireFromString("1.5"), UnitPrice: 333},
			{Description: "Nails", Quantity: decimal.NewFromInt(3), UnitPrice: 10, TotalPrice: 25},
		},
	}
	require.NoError(t, in.Validate("USD"))
	assert.Equal(t, Money(500), in.Items[0].TotalPrice)
	assert.Equal(t, Money(25), in.Items[1].TotalPrice)
	assert.Equal(t, Money(525), in.TotalAmount)
	assert.Equal(t, PurchaseOrderPending, in.Status)

	explicit := PurchaseOrderInput{Description: "Timber", TotalAmount: 900, Items: in.Items}
	require.NoError(t, explicit.Validate("USD"))
	assert.Equal(t, Money(900), explicit.TotalAmount)

	bad := PurchaseOrderInput{Description: "Timber", Status: PurchaseOrderApproved, TotalAmount: 1}
	assert.ErrorIs(t, bad.Validate("USD"), ErrValidation)
}

func TestVendorInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    VendorInput
		field string
	}{
		{name: "missing name", in: VendorInput{Type: VendorSupplier}, field: "name"},
		{name: "bad type", in: VendorInput{Name: "A", Type: "plumber"}, field: "vendorType"},
		{name: "bad email", in: VendorInput{Name: "A", Type: VendorSupplier, Email: ptr("nope")}, field: "email"},
		{name: "rating too high", in: VendorInput{Name: "A", Type: VendorSupplier, Rating: ptr(5.1)}, field: "rating"},
		{name: "rating negative", in: VendorInput{Name: "A", Type: VendorSupplier, Rating: ptr(-0.1)}, field: "rating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *ValidationError
			require.ErrorAs(t, tt.in.Validate(), &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	ok := VendorInput{Name: "A", Type: VendorConsultant, Email: ptr(" a@b.co "), Rating: ptr(5.0)}
	require.NoError(t, ok.Validate())
	assert.Equal(t, VendorActive, ok.Status)
	assert.Equal(t, "a@b.co", *ok.Email)
}

func TestAttachmentPresent(t *testing.T) {
	a := InvoiceAttachment{Path: "t/invoice-attachments/x.pdf", FileSize: 2_500_000}
	a.Present()
	assert.Equal(t, "2.5 MB", a.FileSizeFormatted)
	assert.Equal(t, "/api/storage/files/t/invoice-attachments/x.pdf", a.URL)

	assert.Equal(t, Quota{UsedBytes: 120, LimitBytes: 100, RemainingBytes: 0}, NewQuota(120, 100))
}
