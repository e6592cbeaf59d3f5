package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*Store, models.Project) {
	t.Helper()
	s := New()
	p := models.Project{ID: "p-1", TenantID: "t-1", Name: "Depot", Currency: "USD", Budget: 1000}
	require.NoError(t, s.CreateProject(context.Background(), &p))
	return s, p
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx ledger.Store) error {
		require.NoError(t, tx.AddProjectSpend(ctx, p.ID, 400))
		inv := models.Invoice{ID: "i-1", ProjectID: p.ID, InvoiceNumber: "INV-2025-001", Status: models.InvoicePending, CreatedAt: created}
		require.NoError(t, tx.CreateInvoice(ctx, &inv))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetProject(ctx, "t-1", p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ActualSpend)
	_, err = s.GetInvoice(ctx, p.ID, "i-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWithTxCommitAndNesting(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)

	err := s.WithTx(ctx, func(tx ledger.Store) error {
		if err := tx.AddProjectSpend(ctx, p.ID, 100); err != nil {
			return err
		}
		return tx.WithTx(ctx, func(inner ledger.Store) error {
			return inner.AddProjectSpend(ctx, p.ID, 50)
		})
	})
	require.NoError(t, err)

	got, err := s.GetProject(ctx, "t-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(150), got.ActualSpend)
}

func TestSaveInvoiceIsConditional(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)
	inv := models.Invoice{ID: "i-1", ProjectID: p.ID, Status: models.InvoicePending, CreatedAt: created}
	require.NoError(t, s.CreateInvoice(ctx, &inv))

	inv.Status = models.InvoiceApproved
	require.NoError(t, s.SaveInvoice(ctx, &inv, models.InvoicePending))
	assert.ErrorIs(t, s.SaveInvoice(ctx, &inv, models.InvoicePending), models.ErrInvalidState)

	other := inv
	other.ProjectID = "p-2"
	assert.ErrorIs(t, s.SaveInvoice(ctx, &other, models.InvoiceApproved), models.ErrNotFound)
}

func TestCreateExpenseOncePerInvoice(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)

	e := models.Expense{ID: "e-1", ProjectID: p.ID, InvoiceID: "i-1", Amount: 10}
	require.NoError(t, s.CreateExpense(ctx, &e))
	dup := models.Expense{ID: "e-2", ProjectID: p.ID, InvoiceID: "i-1", Amount: 10}
	assert.ErrorIs(t, s.CreateExpense(ctx, &dup), models.ErrConflict)

	list, err := s.ListExpenses(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAttachmentPathHeldByOneInvoice(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)
	att := models.InvoiceAttachment{ID: "a-1", InvoiceID: "i-1", Path: "t-1/invoice-attachments/quote.pdf"}

	inUse, err := s.AttachmentInUse(ctx, att.Path)
	require.NoError(t, err)
	assert.False(t, inUse)

	inv := models.Invoice{ID: "i-1", ProjectID: p.ID, InvoiceNumber: "INV-2025-001", Attachments: []models.InvoiceAttachment{att}, CreatedAt: created}
	require.NoError(t, s.CreateInvoice(ctx, &inv))
	inUse, err = s.AttachmentInUse(ctx, att.Path)
	require.NoError(t, err)
	assert.True(t, inUse)

	att.ID, att.InvoiceID = "a-2", "i-2"
	other := models.Invoice{ID: "i-2", ProjectID: p.ID, InvoiceNumber: "INV-2025-002", Attachments: []models.InvoiceAttachment{att}, CreatedAt: created}
	assert.ErrorIs(t, s.CreateInvoice(ctx, &other), models.ErrConflict)

	require.NoError(t, s.DeleteInvoice(ctx, p.ID, "i-1"))
	inUse, err = s.AttachmentInUse(ctx, att.Path)
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestDeletePaidInvoice(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)
	inv := models.Invoice{ID: "i-1", ProjectID: p.ID, Status: models.InvoicePaid, CreatedAt: created}
	require.NoError(t, s.CreateInvoice(ctx, &inv))

	assert.ErrorIs(t, s.DeleteInvoice(ctx, p.ID, "i-1"), models.ErrInvalidState)
	assert.ErrorIs(t, s.DeleteInvoice(ctx, p.ID, "missing"), models.ErrNotFound)
}

func TestReserveStorageNeverPassesLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	const limit = 1000

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ReserveStorage(ctx, "t-1", 30, limit); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, models.ErrQuotaExceeded)
			}
		}()
	}
	wg.Wait()

	used, err := s.StorageUsed(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, 33, granted)
	assert.Equal(t, int64(990), used)

	require.NoError(t, s.ReleaseStorage(ctx, "t-1", 2000))
	used, err = s.StorageUsed(ctx, "t-1")
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestInvoicesFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	s, p := seed(t)
	vendor := models.Vendor{ID: "v-1", TenantID: "t-1", Name: "Northwind Aggregates", Type: models.VendorSupplier, Status: models.VendorActive}
	require.NoError(t, s.CreateVendor(ctx, &vendor))

	for i, inv := range []models.Invoice{
		{ID: "a", InvoiceNumber: "INV-2025-001", Status: models.InvoicePending, Category: "materials", Description: "Gravel", VendorID: &vendor.ID},
		{ID: "b", InvoiceNumber: "INV-2025-002", Status: models.InvoicePaid, Category: "labour", Description: "Crew"},
		{ID: "c", InvoiceNumber: "INV-2025-003", Status: models.InvoicePending, Category: "Materials", Description: "Sand"},
	} {
		inv.ProjectID = p.ID
		inv.CreatedAt = created.Add(time.Duration(i) * time.Hour)
		inv.Attachments = []models.InvoiceAttachment{{ID: "att-" + inv.ID}}
		require.NoError(t, s.CreateInvoice(ctx, &inv))
	}

	collect := func(f models.InvoiceFilter) []string {
		f.ProjectID = p.ID
		var ids []string
		for inv, err := range s.Invoices(ctx, f) {
			require.NoError(t, err)
			assert.Empty(t, inv.Attachments)
			ids = append(ids, inv.ID)
		}
		return ids
	}
	assert.Equal(t, []string{"c", "b", "a"}, collect(models.InvoiceFilter{}))
	assert.Equal(t, []string{"c", "a"}, collect(models.InvoiceFilter{Status: models.InvoicePending}))
	assert.Equal(t, []string{"c", "a"}, collect(models.InvoiceFilter{Category: "materials"}))
	assert.Equal(t, []string{"a"}, collect(models.InvoiceFilter{Search: "northwind"}))
	assert.Equal(t, []string{"b"}, collect(models.InvoiceFilter{Search: "inv-2025-002"}))
}
