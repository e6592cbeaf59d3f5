// Package memstore is an in-memory ledger.Store used in development mode and tests.
// Transactions are serialized and applied copy-on-write.
package memstore

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
)

var _ ledger.Store = (*Store)(nil)

type state struct {
	projects       map[string]models.Project
	vendors        map[string]models.Vendor
	purchaseOrders map[string]models.PurchaseOrder
	invoices       map[string]models.Invoice
	expenses       map[string]models.Expense
	storageUsed    map[string]int64
}

func (s *state) clone() *state {
	return &state{
		projects:       cloneMap(s.projects),
		vendors:        cloneMap(s.vendors),
		purchaseOrders: cloneMap(s.purchaseOrders),
		invoices:       cloneMap(s.invoices),
		expenses:       cloneMap(s.expenses),
		storageUsed:    cloneMap(s.storageUsed),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store keeps every entity in maps guarded by one mutex.
type Store struct {
	mu   *sync.Mutex
	root **state
	inTx bool
}

// New returns an empty store.
func New() *Store {
	st := &state{
		projects:       map[string]models.Project{},
		vendors:        map[string]models.Vendor{},
		purchaseOrders: map[string]models.PurchaseOrder{},
		invoices:       map[string]models.Invoice{},
		expenses:       map[string]models.Expense{},
		storageUsed:    map[string]int64{},
	}
	return &Store{mu: &sync.Mutex{}, root: &st}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) data() *state { return *s.root }

// WithTx runs fn on a private copy of the data and publishes it when fn succeeds.
// Nested calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx ledger.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	draft := s.data().clone()
	tx := &Store{mu: s.mu, root: &draft, inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	*s.root = draft
	return nil
}

// Projects

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	defer s.lock()()
	s.data().projects[p.ID] = *p
	return nil
}

func (s *Store) GetProject(ctx context.Context, tenantID, id string) (models.Project, error) {
	defer s.lock()()
	p, ok := s.data().projects[id]
	if !ok || p.TenantID != tenantID {
		return models.Project{}, models.NotFound("project")
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, tenantID string) ([]models.Project, error) {
	defer s.lock()()
	var out []models.Project
	for _, p := range s.data().projects {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Project) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *Store) SaveProjectBudget(ctx context.Context, tenantID, id string, budget models.Money) error {
	defer s.lock()()
	p, ok := s.data().projects[id]
	if !ok || p.TenantID != tenantID {
		return models.NotFound("project")
	}
	p.Budget = budget
	s.data().projects[id] = p
	return nil
}

func (s *Store) AddProjectSpend(ctx context.Context, projectID string, amount models.Money) error {
	defer s.lock()()
	p, ok := s.data().projects[projectID]
	if !ok {
		return models.NotFound("project")
	}
	p.ActualSpend += amount
	s.data().projects[projectID] = p
	return nil
}

// LockProject is a no-op: every transaction already holds the store lock.
func (s *Store) LockProject(ctx context.Context, projectID string) error {
	return nil
}

// Vendors

func (s *Store) CreateVendor(ctx context.Context, v *models.Vendor) error {
	defer s.lock()()
	s.data().vendors[v.ID] = *v
	return nil
}

func (s *Store) GetVendor(ctx context.Context, tenantID, id string) (models.Vendor, error) {
	defer s.lock()()
	v, ok := s.data().vendors[id]
	if !ok || v.TenantID != tenantID {
		return models.Vendor{}, models.NotFound("vendor")
	}
	return s.withVendorTotals(v), nil
}

func (s *Store) withVendorTotals(v models.Vendor) models.Vendor {
	v.ContractCount, v.TotalValue = 0, 0
	for _, po := range s.data().purchaseOrders {
		if po.VendorID == nil || *po.VendorID != v.ID {
			continue
		}
		v.ContractCount++
		if po.Status == models.PurchaseOrderApproved || po.Status == models.PurchaseOrderClosed {
			v.TotalValue += po.TotalAmount
		}
	}
	return v
}

func (s *Store) ListVendors(ctx context.Context, f models.VendorFilter) ([]models.Vendor, error) {
	defer s.lock()()
	var out []models.Vendor
	for _, v := range s.data().vendors {
		if v.TenantID != f.TenantID {
			continue
		}
		if f.Type != "" && v.Type != f.Type {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.Search != "" && !matches(f.Search, v.Name, deref(v.ContactPerson), deref(v.Email), deref(v.Specialization)) {
			continue
		}
		out = append(out, s.withVendorTotals(v))
	}
	slices.SortFunc(out, func(a, b models.Vendor) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

func (s *Store) SaveVendor(ctx context.Context, v *models.Vendor) error {
	defer s.lock()()
	old, ok := s.data().vendors[v.ID]
	if !ok || old.TenantID != v.TenantID {
		return models.NotFound("vendor")
	}
	s.data().vendors[v.ID] = *v
	return nil
}

func (s *Store) DeleteVendor(ctx context.Context, tenantID, id string) error {
	defer s.lock()()
	v, ok := s.data().vendors[id]
	if !ok || v.TenantID != tenantID {
		return models.NotFound("vendor")
	}
	delete(s.data().vendors, id)
	for k, po := range s.data().purchaseOrders {
		if po.VendorID != nil && *po.VendorID == id {
			po.VendorID = nil
			s.data().purchaseOrders[k] = po
		}
	}
	for k, inv := range s.data().invoices {
		if inv.VendorID != nil && *inv.VendorID == id {
			inv.VendorID = nil
			s.data().invoices[k] = inv
		}
	}
	return nil
}

func (s *Store) CountOpenVendorReferences(ctx context.Context, vendorID string) (int, error) {
	defer s.lock()()
	n := 0
	for _, po := range s.data().purchaseOrders {
		if po.VendorID != nil && *po.VendorID == vendorID &&
			(po.Status == models.PurchaseOrderPending || po.Status == models.PurchaseOrderApproved) {
			n++
		}
	}
	for _, inv := range s.data().invoices {
		if inv.VendorID != nil && *inv.VendorID == vendorID &&
			(inv.Status == models.InvoicePending || inv.Status == models.InvoiceApproved) {
			n++
		}
	}
	return n, nil
}

// Purchase orders

func (s *Store) PurchaseOrderNumbers(ctx context.Context, projectID, prefix string) ([]string, error) {
	defer s.lock()()
	var out []string
	for _, po := range s.data().purchaseOrders {
		if po.ProjectID == projectID && strings.HasPrefix(po.PONumber, prefix) {
			out = append(out, po.PONumber)
		}
	}
	return out, nil
}

func (s *Store) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	defer s.lock()()
	for _, other := range s.data().purchaseOrders {
		if other.ProjectID == po.ProjectID && other.PONumber == po.PONumber {
			return models.Conflict("purchase order number " + po.PONumber + " already exists")
		}
	}
	stored := *po
	stored.Items = slices.Clone(po.Items)
	stored.VendorName = nil
	s.data().purchaseOrders[po.ID] = stored
	return nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, projectID, id string) (models.PurchaseOrder, error) {
	defer s.lock()()
	po, ok := s.data().purchaseOrders[id]
	if !ok || po.ProjectID != projectID {
		return models.PurchaseOrder{}, models.NotFound("purchase order")
	}
	return s.presentPurchaseOrder(po), nil
}

func (s *Store) presentPurchaseOrder(po models.PurchaseOrder) models.PurchaseOrder {
	po.Items = slices.Clone(po.Items)
	if po.Items == nil {
		po.Items = []models.PurchaseOrderItem{}
	}
	po.VendorName = s.vendorName(po.VendorID)
	return po
}

func (s *Store) vendorName(id *string) *string {
	if id == nil {
		return nil
	}
	v, ok := s.data().vendors[*id]
	if !ok {
		return nil
	}
	return &v.Name
}

func (s *Store) ListPurchaseOrders(ctx context.Context, f models.PurchaseOrderFilter) ([]models.PurchaseOrder, error) {
	defer s.lock()()
	var out []models.PurchaseOrder
	for _, po := range s.data().purchaseOrders {
		if po.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && po.Status != f.Status {
			continue
		}
		if f.VendorID != "" && (po.VendorID == nil || *po.VendorID != f.VendorID) {
			continue
		}
		po = s.presentPurchaseOrder(po)
		if f.Search != "" && !matches(f.Search, po.PONumber, po.Description, deref(po.VendorName)) {
			continue
		}
		out = append(out, po)
	}
	slices.SortFunc(out, func(a, b models.PurchaseOrder) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.PONumber, a.PONumber))
	})
	return out, nil
}

func (s *Store) SavePurchaseOrder(ctx context.Context, po *models.PurchaseOrder, expected models.PurchaseOrderStatus, replaceItems bool) error {
	defer s.lock()()
	old, ok := s.data().purchaseOrders[po.ID]
	if !ok || old.ProjectID != po.ProjectID {
		return models.NotFound("purchase order")
	}
	if old.Status != expected {
		return models.ErrInvalidState
	}
	stored := *po
	stored.VendorName = nil
	if replaceItems {
		stored.Items = slices.Clone(po.Items)
	} else {
		stored.Items = old.Items
	}
	s.data().purchaseOrders[po.ID] = stored
	return nil
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, projectID, id string) error {
	defer s.lock()()
	po, ok := s.data().purchaseOrders[id]
	if !ok || po.ProjectID != projectID {
		return models.NotFound("purchase order")
	}
	delete(s.data().purchaseOrders, id)
	return nil
}

func (s *Store) CountPurchaseOrderInvoices(ctx context.Context, purchaseOrderID string) (int, error) {
	defer s.lock()()
	n := 0
	for _, inv := range s.data().invoices {
		if inv.PurchaseOrderID != nil && *inv.PurchaseOrderID == purchaseOrderID {
			n++
		}
	}
	return n, nil
}

// Invoices

func (s *Store) InvoiceNumbers(ctx context.Context, projectID, prefix string) ([]string, error) {
	defer s.lock()()
	var out []string
	for _, inv := range s.data().invoices {
		if inv.ProjectID == projectID && strings.HasPrefix(inv.InvoiceNumber, prefix) {
			out = append(out, inv.InvoiceNumber)
		}
	}
	return out, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	defer s.lock()()
	for _, other := range s.data().invoices {
		if other.ProjectID == inv.ProjectID && other.InvoiceNumber == inv.InvoiceNumber {
			return models.Conflict("invoice number " + inv.InvoiceNumber + " already exists")
		}
		for _, a := range inv.Attachments {
			if attached(other, a.Path) {
				return models.Conflict("file " + a.Path + " is already attached")
			}
		}
	}
	stored := *inv
	stored.Attachments = slices.Clone(inv.Attachments)
	stored.VendorName, stored.PurchaseOrderNumber = nil, nil
	s.data().invoices[inv.ID] = stored
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, projectID, id string) (models.Invoice, error) {
	defer s.lock()()
	inv, ok := s.data().invoices[id]
	if !ok || inv.ProjectID != projectID {
		return models.Invoice{}, models.NotFound("invoice")
	}
	return s.presentInvoice(inv), nil
}

func (s *Store) presentInvoice(inv models.Invoice) models.Invoice {
	inv.Attachments = slices.Clone(inv.Attachments)
	if inv.Attachments == nil {
		inv.Attachments = []models.InvoiceAttachment{}
	}
	inv.VendorName = s.vendorName(inv.VendorID)
	inv.PurchaseOrderNumber = nil
	if inv.PurchaseOrderID != nil {
		if po, ok := s.data().purchaseOrders[*inv.PurchaseOrderID]; ok {
			inv.PurchaseOrderNumber = &po.PONumber
		}
	}
	return inv
}

// Invoices snapshots the matching invoices and yields them without holding the lock.
// Listed invoices carry no attachments.
func (s *Store) Invoices(ctx context.Context, f models.InvoiceFilter) iter.Seq2[models.Invoice, error] {
	return func(yield func(models.Invoice, error) bool) {
		unlock := s.lock()
		var out []models.Invoice
		for _, inv := range s.data().invoices {
			if inv.ProjectID != f.ProjectID {
				continue
			}
			if f.Status != "" && inv.Status != f.Status {
				continue
			}
			if f.Category != "" && !strings.EqualFold(inv.Category, f.Category) {
				continue
			}
			inv = s.presentInvoice(inv)
			inv.Attachments = []models.InvoiceAttachment{}
			if f.Search != "" && !matches(f.Search, inv.InvoiceNumber, inv.Description, deref(inv.VendorName)) {
				continue
			}
			out = append(out, inv)
		}
		unlock()
		slices.SortFunc(out, func(a, b models.Invoice) int {
			return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.InvoiceNumber, a.InvoiceNumber))
		})
		for _, inv := range out {
			if err := ctx.Err(); err != nil {
				yield(models.Invoice{}, err)
				return
			}
			if !yield(inv, nil) {
				return
			}
		}
	}
}

// SaveInvoice keeps the stored attachments; they are bound only at creation.
func (s *Store) SaveInvoice(ctx context.Context, inv *models.Invoice, expected models.InvoiceStatus) error {
	defer s.lock()()
	old, ok := s.data().invoices[inv.ID]
	if !ok || old.ProjectID != inv.ProjectID {
		return models.NotFound("invoice")
	}
	if old.Status != expected {
		return models.ErrInvalidState
	}
	stored := *inv
	stored.Attachments = old.Attachments
	stored.VendorName, stored.PurchaseOrderNumber = nil, nil
	s.data().invoices[inv.ID] = stored
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, projectID, id string) error {
	defer s.lock()()
	inv, ok := s.data().invoices[id]
	if !ok || inv.ProjectID != projectID {
		return models.NotFound("invoice")
	}
	if inv.Status == models.InvoicePaid {
		return models.ErrInvalidState
	}
	delete(s.data().invoices, id)
	return nil
}

func (s *Store) InvoiceAttachments(ctx context.Context, invoiceID string) ([]models.InvoiceAttachment, error) {
	defer s.lock()()
	inv, ok := s.data().invoices[invoiceID]
	if !ok {
		return nil, models.NotFound("invoice")
	}
	out := slices.Clone(inv.Attachments)
	if out == nil {
		out = []models.InvoiceAttachment{}
	}
	return out, nil
}

func (s *Store) AttachmentInUse(ctx context.Context, path string) (bool, error) {
	defer s.lock()()
	for _, inv := range s.data().invoices {
		if attached(inv, path) {
			return true, nil
		}
	}
	return false, nil
}

func attached(inv models.Invoice, path string) bool {
	return slices.ContainsFunc(inv.Attachments, func(a models.InvoiceAttachment) bool { return a.Path == path })
}

// Expenses

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	defer s.lock()()
	for _, other := range s.data().expenses {
		if other.InvoiceID == e.InvoiceID {
			return models.Conflict("invoice " + e.InvoiceID + " already has an expense")
		}
	}
	s.data().expenses[e.ID] = *e
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, projectID string) ([]models.Expense, error) {
	defer s.lock()()
	out := []models.Expense{}
	for _, e := range s.data().expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.Expense) int {
		return cmp.Or(cmp.Compare(b.PaymentDate, a.PaymentDate), b.CreatedAt.Compare(a.CreatedAt))
	})
	return out, nil
}

// Storage quota

// ReserveStorage adds bytes to the tenant's usage unless that would pass limit.
func (s *Store) ReserveStorage(ctx context.Context, tenantID string, bytes, limit int64) error {
	defer s.lock()()
	used := s.data().storageUsed[tenantID]
	if used+bytes > limit {
		return models.ErrQuotaExceeded
	}
	s.data().storageUsed[tenantID] = used + bytes
	return nil
}

func (s *Store) ReleaseStorage(ctx context.Context, tenantID string, bytes int64) error {
	defer s.lock()()
	s.data().storageUsed[tenantID] = max(s.data().storageUsed[tenantID]-bytes, 0)
	return nil
}

func (s *Store) StorageUsed(ctx context.Context, tenantID string) (int64, error) {
	defer s.lock()()
	return s.data().storageUsed[tenantID], nil
}

func matches(search string, fields ...string) bool {
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
