package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/satheeshds/buildledger/internal/memstore"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
	"github.com/stretchr/testify/require"
)

var (
	testNow  = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	admin    = ledger.Actor{UserID: "user-admin", TenantID: "tenant-a", Role: "admin"}
	member   = ledger.Actor{UserID: "user-member", TenantID: "tenant-a", Role: "member"}
	stranger = ledger.Actor{UserID: "user-b", TenantID: "tenant-b", Role: "owner"}
)

type fixture struct {
	ctx     context.Context
	store   *memstore.Store
	svc     *ledger.Service
	project models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, memstore.New())
}

func newFixtureWithStore(t *testing.T, store *memstore.Store, wrap ...func(ledger.Store) ledger.Store) *fixture {
	t.Helper()
	var s ledger.Store = store
	for _, w := range wrap {
		s = w(s)
	}
	f := &fixture{
		ctx:   context.Background(),
		store: store,
		svc:   ledger.New(s, nil, ledger.WithClock(func() time.Time { return testNow })),
	}
	p, err := f.svc.Projects.Create(f.ctx, admin, models.ProjectInput{Name: "Harbour View", Currency: "usd", Budget: 5_000_000})
	require.NoError(t, err)
	f.project = p
	return f
}

func (f *fixture) createInvoice(t *testing.T, in models.InvoiceInput) models.Invoice {
	t.Helper()
	if in.Description == "" {
		in.Description = "Concrete delivery"
	}
	if in.Amount == 0 {
		in.Amount = 25_000
	}
	inv, err := f.svc.Invoices.Create(f.ctx, admin, f.project.ID, in)
	require.NoError(t, err)
	return inv
}

func (f *fixture) createVendor(t *testing.T, name string, status models.VendorStatus) models.Vendor {
	t.Helper()
	v, err := f.svc.Vendors.Create(f.ctx, admin, models.VendorInput{Name: name, Type: models.VendorSupplier, Status: status})
	require.NoError(t, err)
	return v
}

func ptr[T any](v T) *T { return &v }
