// Package ledger implements the project ledgers: vendors, purchase orders, invoices and
// the reconciliation of paid invoices into project expenses.
package ledger

import (
	"context"
	"iter"
	"time"

	"github.com/satheeshds/buildledger/models"
)

// Store persists ledger entities. Save methods are conditional on the expected status and
// return models.ErrInvalidState when the stored row no longer has it.
type Store interface {
	// WithTx runs fn against a transactional view of the store. fn's writes commit
	// together when it returns nil and are discarded otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, tenantID, id string) (models.Project, error)
	ListProjects(ctx context.Context, tenantID string) ([]models.Project, error)
	SaveProjectBudget(ctx context.Context, tenantID, id string, budget models.Money) error
	AddProjectSpend(ctx context.Context, projectID string, amount models.Money) error
	// LockProject serializes document numbering within a project until the
	// surrounding transaction ends.
	LockProject(ctx context.Context, projectID string) error

	CreateVendor(ctx context.Context, v *models.Vendor) error
	GetVendor(ctx context.Context, tenantID, id string) (models.Vendor, error)
	ListVendors(ctx context.Context, f models.VendorFilter) ([]models.Vendor, error)
	SaveVendor(ctx context.Context, v *models.Vendor) error
	DeleteVendor(ctx context.Context, tenantID, id string) error
	// CountOpenVendorReferences counts pending/approved invoices and purchase orders
	// naming the vendor.
	CountOpenVendorReferences(ctx context.Context, vendorID string) (int, error)

	PurchaseOrderNumbers(ctx context.Context, projectID, prefix string) ([]string, error)
	CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, projectID, id string) (models.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, f models.PurchaseOrderFilter) ([]models.PurchaseOrder, error)
	SavePurchaseOrder(ctx context.Context, po *models.PurchaseOrder, expected models.PurchaseOrderStatus, replaceItems bool) error
	DeletePurchaseOrder(ctx context.Context, projectID, id string) error
	CountPurchaseOrderInvoices(ctx context.Context, purchaseOrderID string) (int, error)

	InvoiceNumbers(ctx context.Context, projectID, prefix string) ([]string, error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoice(ctx context.Context, projectID, id string) (models.Invoice, error)
	// Invoices yields matching invoices newest first, without attachments.
	Invoices(ctx context.Context, f models.InvoiceFilter) iter.Seq2[models.Invoice, error]
	SaveInvoice(ctx context.Context, inv *models.Invoice, expected models.InvoiceStatus) error
	// DeleteInvoice removes an unpaid invoice and its attachment rows.
	DeleteInvoice(ctx context.Context, projectID, id string) error
	InvoiceAttachments(ctx context.Context, invoiceID string) ([]models.InvoiceAttachment, error)
	// AttachmentInUse reports whether any invoice holds the stored file at path.
	AttachmentInUse(ctx context.Context, path string) (bool, error)

	// CreateExpense returns models.ErrConflict when the invoice already has an expense.
	CreateExpense(ctx context.Context, e *models.Expense) error
	ListExpenses(ctx context.Context, projectID string) ([]models.Expense, error)
}

// Attachments resolves and removes files held by the attachment store.
type Attachments interface {
	Describe(ctx context.Context, tenantID, path string) (models.StoredFile, error)
	Remove(ctx context.Context, tenantID, path string) error
}

// Actor is the authenticated user an operation runs on behalf of.
type Actor struct {
	UserID   string
	TenantID string
	Role     string
}

var approverRoles = map[string]bool{"owner": true, "admin": true, "manager": true}

// CanApprove reports whether the actor may approve or reject documents.
func (a Actor) CanApprove() bool {
	return approverRoles[a.Role]
}

// Service bundles the ledgers over one store.
type Service struct {
	Projects       *ProjectBook
	Vendors        *VendorRegistry
	PurchaseOrders *PurchaseOrderLedger
	Invoices       *InvoiceLedger
	Reconciler     *Reconciler

	now func() time.Time
}

// Now is the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Option configures a Service.
type Option func(*core)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *core) { c.now = now }
}

type core struct {
	store Store
	files Attachments
	now   func() time.Time
}

// New wires the ledgers. files may be nil when attachments are not used.
func New(store Store, files Attachments, opts ...Option) *Service {
	c := &core{store: store, files: files, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(c)
	}
	rec := &Reconciler{core: c}
	return &Service{
		Projects:       &ProjectBook{core: c},
		Vendors:        &VendorRegistry{core: c},
		PurchaseOrders: &PurchaseOrderLedger{core: c},
		Invoices:       &InvoiceLedger{core: c, reconciler: rec},
		Reconciler:     rec,
		now:            c.now,
	}
}
