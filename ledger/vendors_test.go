package ledger_test

import (
	"testing"

	"github.com/satheeshds/buildledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorRatingBounds(t *testing.T) {
	tests := []struct {
		rating  float64
		wantErr bool
	}{
		{5.1, true},
		{-0.1, true},
		{0, false},
		{5, false},
		{3.7, false},
	}
	for _, tt := range tests {
		t.Run("create", func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Vendors.Create(f.ctx, admin, models.VendorInput{
				Name: "Rated", Type: models.VendorContractor, Rating: ptr(tt.rating),
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
		t.Run("update", func(t *testing.T) {
			f := newFixture(t)
			v := f.createVendor(t, "Rated", "")
			_, err := f.svc.Vendors.Update(f.ctx, admin, v.ID, models.VendorPatch{Rating: ptr(tt.rating)})
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				got, err := f.svc.Vendors.Get(f.ctx, admin, v.ID)
				require.NoError(t, err)
				assert.Nil(t, got.Rating)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVendorValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name  string
		in    models.VendorInput
		field string
	}{
		{"missing name", models.VendorInput{Type: models.VendorSupplier}, "name"},
		{"unknown type", models.VendorInput{Name: "x", Type: "wholesaler"}, "vendorType"},
		{"bad email", models.VendorInput{Name: "x", Type: models.VendorSupplier, Email: ptr("not-an-email")}, "email"},
		{"unknown status", models.VendorInput{Name: "x", Type: models.VendorSupplier, Status: "paused"}, "status"},
		{"bad currency", models.VendorInput{Name: "x", Type: models.VendorSupplier, Currency: "dollars"}, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Vendors.Create(f.ctx, admin, tt.in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestVendorDefaultsAndAggregates(t *testing.T) {
	f := newFixture(t)
	v, err := f.svc.Vendors.Create(f.ctx, admin, models.VendorInput{
		Name: "  Acme Concrete ", Type: models.VendorSupplier, Email: ptr(" ops@acme.test "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Concrete", v.Name)
	assert.Equal(t, "ops@acme.test", *v.Email)
	assert.Equal(t, models.VendorActive, v.Status)
	assert.Equal(t, "USD", v.Currency)

	approved, err := f.svc.PurchaseOrders.Create(f.ctx, admin, f.project.ID, models.PurchaseOrderInput{VendorID: &v.ID, Description: "Slab", TotalAmount: 70_000})
	require.NoError(t, err)
	_, err = f.svc.PurchaseOrders.Approve(f.ctx, admin, f.project.ID, approved.ID)
	require.NoError(t, err)
	_, err = f.svc.PurchaseOrders.Create(f.ctx, admin, f.project.ID, models.PurchaseOrderInput{VendorID: &v.ID, Description: "Walls", TotalAmount: 30_000})
	require.NoError(t, err)

	got, err := f.svc.Vendors.Get(f.ctx, admin, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ContractCount)
	assert.Equal(t, models.Money(70_000), got.TotalValue)
}

func TestListVendors(t *testing.T) {
	f := newFixture(t)
	f.createVendor(t, "Bravo Electrical", "")
	f.createVendor(t, "Alpha Plumbing", models.VendorInactive)
	_, err := f.svc.Vendors.Create(f.ctx, admin, models.VendorInput{Name: "Charlie Consulting", Type: models.VendorConsultant})
	require.NoError(t, err)
	_, err = f.svc.Vendors.Create(f.ctx, stranger, models.VendorInput{Name: "Elsewhere", Type: models.VendorSupplier})
	require.NoError(t, err)

	all, err := f.svc.Vendors.List(f.ctx, admin, models.VendorFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha Plumbing", all[0].Name)

	consultants, err := f.svc.Vendors.List(f.ctx, admin, models.VendorFilter{Type: models.VendorConsultant})
	require.NoError(t, err)
	assert.Len(t, consultants, 1)

	inactive, err := f.svc.Vendors.List(f.ctx, admin, models.VendorFilter{Status: models.VendorInactive})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)

	search, err := f.svc.Vendors.List(f.ctx, admin, models.VendorFilter{Search: "ELECT"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Bravo Electrical", search[0].Name)

	_, err = f.svc.Vendors.Get(f.ctx, stranger, all[0].ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteVendor(t *testing.T) {
	f := newFixture(t)
	v := f.createVendor(t, "Acme Concrete", "")
	inv := f.createInvoice(t, models.InvoiceInput{VendorID: &v.ID})

	err := f.svc.Vendors.Delete(f.ctx, admin, v.ID)
	require.ErrorIs(t, err, models.ErrConflict, "pending invoice references the vendor")

	_, err = f.svc.Invoices.Reject(f.ctx, admin, f.project.ID, inv.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.Vendors.Delete(f.ctx, admin, v.ID))

	_, err = f.svc.Vendors.Get(f.ctx, admin, v.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	got, err := f.svc.Invoices.Get(f.ctx, admin, f.project.ID, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VendorID, "closed documents keep no dangling vendor reference")

	assert.ErrorIs(t, f.svc.Vendors.Delete(f.ctx, admin, v.ID), models.ErrNotFound)
}

func TestBlacklistedVendorRejectedOnNewDocuments(t *testing.T) {
	f := newFixture(t)
	v := f.createVendor(t, "Acme Concrete", "")
	_, err := f.svc.Vendors.Update(f.ctx, admin, v.ID, models.VendorPatch{Status: ptr(models.VendorBlacklisted)})
	require.NoError(t, err)

	_, err = f.svc.PurchaseOrders.Create(f.ctx, admin, f.project.ID, models.PurchaseOrderInput{VendorID: &v.ID, Description: "x", TotalAmount: 10})
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = f.svc.Invoices.Create(f.ctx, admin, f.project.ID, models.InvoiceInput{VendorID: &v.ID, Description: "x", Amount: 10})
	assert.ErrorIs(t, err, models.ErrValidation)
}
