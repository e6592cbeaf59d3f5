package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/satheeshds/buildledger/handlers"
	"github.com/satheeshds/buildledger/internal/auth"
	"github.com/satheeshds/buildledger/internal/memstore"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
	"github.com/satheeshds/buildledger/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret"
	quotaBytes  = 1024
	uploadBytes = 512
)

var devSession = auth.Session{UserID: "dev-user", TenantID: "tenant-a", Email: "dev@localhost", Role: "admin"}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type server struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newServer(t *testing.T, authn *auth.Authenticator) *server {
	t.Helper()
	store := memstore.New()
	files, err := storage.New(t.TempDir(), quotaBytes, store)
	require.NoError(t, err)
	h := &handlers.Handler{
		Ledger:         ledger.New(store, files),
		Files:          files,
		MaxUploadBytes: uploadBytes,
	}
	srv := httptest.NewServer(handlers.NewRouter(h, handlers.RouterConfig{
		Auth:           authn,
		DevSession:     devSession,
		RequestTimeout: 5 * time.Second,
	}))
	t.Cleanup(srv.Close)
	return &server{t: t, srv: srv}
}

func (s *server) do(method, path string, body any) (*http.Response, envelope) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, r)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req)
}

func (s *server) send(req *http.Request) (*http.Response, envelope) {
	s.t.Helper()
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

// ok asserts the status and decodes the envelope data into v.
func (s *server) ok(method, path string, body any, status int, v any) {
	s.t.Helper()
	resp, env := s.do(method, path, body)
	require.Equal(s.t, status, resp.StatusCode, env.Error)
	require.True(s.t, env.Success)
	if v != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, v))
	}
}

func (s *server) fails(method, path string, body any, status int) string {
	s.t.Helper()
	resp, env := s.do(method, path, body)
	require.Equal(s.t, status, resp.StatusCode)
	assert.False(s.t, env.Success)
	assert.NotEmpty(s.t, env.Error)
	return env.Error
}

func (s *server) upload(name string, content []byte) (*http.Response, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(s.t, err)
	_, err = fw.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, s.srv.URL+"/api/storage/upload-invoice-attachment", &buf)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.send(req)
}

func (s *server) project() string {
	s.t.Helper()
	var p models.Project
	s.ok(http.MethodPost, "/api/developer-dashboard/projects", map[string]any{"name": "Harbour View", "currency": "USD", "budget": 1_000_000}, http.StatusCreated, &p)
	return "/api/developer-dashboard/projects/" + p.ID
}

func (s *server) invoice(projectPath string, body map[string]any) models.Invoice {
	s.t.Helper()
	if body == nil {
		body = map[string]any{}
	}
	if _, ok := body["description"]; !ok {
		body["description"] = "Rebar delivery"
	}
	if _, ok := body["amount"]; !ok {
		body["amount"] = 40_000
	}
	var inv models.Invoice
	s.ok(http.MethodPost, projectPath+"/invoices", body, http.StatusCreated, &inv)
	return inv
}

var invoiceNumber = regexp.MustCompile(`^INV-\d{4}-\d{3}$`)

func TestInvoiceLifecycle(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	inv := s.invoice(pp, nil)
	assert.Regexp(t, invoiceNumber, inv.InvoiceNumber)
	assert.Equal(t, models.InvoicePending, inv.Status)
	assert.Equal(t, "dev-user", inv.CreatedBy)

	var approved models.Invoice
	s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/approve", nil, http.StatusOK, &approved)
	assert.Equal(t, models.InvoiceApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "dev-user", *approved.ApprovedBy)

	var paid models.Invoice
	s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/mark-as-paid", map[string]any{
		"paymentMethod":    "bank_transfer",
		"paymentReference": "TRX-991",
		"paidDate":         "2025-03-12",
	}, http.StatusOK, &paid)
	assert.Equal(t, models.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, "2025-03-12", *paid.PaidDate)

	s.fails(http.MethodPost, pp+"/invoices/"+inv.ID+"/mark-as-paid", map[string]any{"paymentMethod": "cash"}, http.StatusConflict)

	var expenses []models.Expense
	s.ok(http.MethodGet, pp+"/expenses", nil, http.StatusOK, &expenses)
	require.Len(t, expenses, 1)
	assert.Equal(t, inv.ID, expenses[0].InvoiceID)
	assert.Equal(t, models.Money(40_000), expenses[0].Amount)
	assert.Equal(t, "2025-03-12", expenses[0].PaymentDate)

	var project models.Project
	s.ok(http.MethodGet, pp, nil, http.StatusOK, &project)
	assert.Equal(t, models.Money(40_000), project.ActualSpend)
	assert.Equal(t, models.Money(960_000), project.RemainingBudget)

	s.fails(http.MethodDelete, pp+"/invoices/"+inv.ID, nil, http.StatusForbidden)
}

func TestRejectInvoice(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "with reason", body: map[string]string{"reason": "Wrong quantity"}, want: "Rejected: Wrong quantity"},
		{name: "without body", body: nil, want: "Rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := s.invoice(pp, nil)
			var rejected models.Invoice
			s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/reject", tt.body, http.StatusOK, &rejected)
			assert.Equal(t, models.InvoiceRejected, rejected.Status)
			require.NotNil(t, rejected.Notes)
			assert.Contains(t, *rejected.Notes, tt.want)

			s.fails(http.MethodPost, pp+"/invoices/"+inv.ID+"/approve", nil, http.StatusConflict)
		})
	}
}

func TestMarkAsPaidRequiresApproval(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()
	inv := s.invoice(pp, nil)

	s.fails(http.MethodPost, pp+"/invoices/"+inv.ID+"/mark-as-paid", map[string]any{"paymentMethod": "cash"}, http.StatusConflict)

	var expenses []models.Expense
	s.ok(http.MethodGet, pp+"/expenses", nil, http.StatusOK, &expenses)
	assert.Empty(t, expenses)
}

func TestMarkAsPaidValidation(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()
	inv := s.invoice(pp, nil)
	s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/approve", nil, http.StatusOK, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing method", body: map[string]any{}},
		{name: "unknown method", body: map[string]any{"paymentMethod": "barter"}},
		{name: "bad date", body: map[string]any{"paymentMethod": "cash", "paidDate": "12/03/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.fails(http.MethodPost, pp+"/invoices/"+inv.ID+"/mark-as-paid", tt.body, http.StatusBadRequest)
		})
	}

	var got models.Invoice
	s.ok(http.MethodGet, pp+"/invoices/"+inv.ID, nil, http.StatusOK, &got)
	assert.Equal(t, models.InvoiceApproved, got.Status)
}

func TestUpdateInvoice(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()
	inv := s.invoice(pp, nil)

	msg := s.fails(http.MethodPatch, pp+"/invoices/"+inv.ID, map[string]any{"status": "paid"}, http.StatusBadRequest)
	assert.Contains(t, msg, "status")

	var updated models.Invoice
	s.ok(http.MethodPatch, pp+"/invoices/"+inv.ID, map[string]any{"amount": 55_000, "category": "materials"}, http.StatusOK, &updated)
	assert.Equal(t, models.Money(55_000), updated.Amount)
	assert.Equal(t, "materials", updated.Category)
	assert.Equal(t, inv.InvoiceNumber, updated.InvoiceNumber)

	s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/approve", nil, http.StatusOK, nil)
	s.fails(http.MethodPatch, pp+"/invoices/"+inv.ID, map[string]any{"amount": 1}, http.StatusConflict)
}

func TestCreateInvoiceValidation(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	tests := []struct {
		name string
		body any
		code int
	}{
		{name: "missing description", body: map[string]any{"amount": 100}, code: http.StatusBadRequest},
		{name: "zero amount", body: map[string]any{"description": "x", "amount": 0}, code: http.StatusBadRequest},
		{name: "foreign currency", body: map[string]any{"description": "x", "amount": 100, "currency": "EUR"}, code: http.StatusBadRequest},
		{name: "unknown vendor", body: map[string]any{"description": "x", "amount": 100, "vendorId": "nope"}, code: http.StatusBadRequest},
		{name: "malformed json", body: "not an object", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.fails(http.MethodPost, pp+"/invoices", tt.body, tt.code)
		})
	}

	s.fails(http.MethodPost, "/api/developer-dashboard/projects/missing/invoices", map[string]any{"description": "x", "amount": 100}, http.StatusNotFound)
}

func TestListInvoices(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	first := s.invoice(pp, map[string]any{"description": "Scaffolding hire", "category": "equipment"})
	second := s.invoice(pp, map[string]any{"description": "Cement", "category": "materials"})
	s.ok(http.MethodPost, pp+"/invoices/"+second.ID+"/approve", nil, http.StatusOK, nil)
	s.ok(http.MethodPost, pp+"/invoices/"+second.ID+"/mark-as-paid", map[string]any{"paymentMethod": "cheque"}, http.StatusOK, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all newest first", query: "", want: []string{second.ID, first.ID}},
		{name: "status any case", query: "?status=PAID", want: []string{second.ID}},
		{name: "category", query: "?category=equipment", want: []string{first.ID}},
		{name: "search", query: "?search=scaffold", want: []string{first.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []models.Invoice
			s.ok(http.MethodGet, pp+"/invoices"+tt.query, nil, http.StatusOK, &got)
			ids := make([]string, 0, len(got))
			for _, inv := range got {
				ids = append(ids, inv.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	s.fails(http.MethodGet, pp+"/invoices?status=settled", nil, http.StatusBadRequest)

	var summary models.InvoiceSummary
	s.ok(http.MethodGet, pp+"/invoices/summary", nil, http.StatusOK, &summary)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, models.Money(40_000), summary.PendingAmount)
	assert.Equal(t, models.Money(40_000), summary.PaidAmount)
}

func TestDeleteInvoice(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()
	inv := s.invoice(pp, nil)

	resp, _ := s.do(http.MethodDelete, pp+"/invoices/"+inv.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	s.fails(http.MethodGet, pp+"/invoices/"+inv.ID, nil, http.StatusNotFound)
	s.fails(http.MethodDelete, pp+"/invoices/"+inv.ID, nil, http.StatusNotFound)
}

func TestInvoiceAttachments(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	content := []byte("%PDF-1.4 delivery note")
	resp, env := s.upload("delivery note.pdf", content)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var res storage.UploadResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, strings.HasPrefix(res.FilePath, "tenant-a/invoice-attachments/"))
	assert.Equal(t, int64(len(content)), res.Quota.UsedBytes)

	inv := s.invoice(pp, map[string]any{"attachmentPaths": []string{res.FilePath}})
	require.Len(t, inv.Attachments, 1)

	var atts []models.InvoiceAttachment
	s.ok(http.MethodGet, pp+"/invoices/"+inv.ID+"/attachments", nil, http.StatusOK, &atts)
	require.Len(t, atts, 1)
	assert.Equal(t, "delivery_note.pdf", atts[0].FileName)
	assert.Equal(t, int64(len(content)), atts[0].FileSize)
	assert.Equal(t, fmt.Sprintf("%d B", len(content)), atts[0].FileSizeFormatted)
	assert.Equal(t, "dev-user", atts[0].UploadedBy)
	assert.Equal(t, models.FilesURLPrefix+res.FilePath, atts[0].URL)

	req, err := http.NewRequest(http.MethodGet, s.srv.URL+atts[0].URL, nil)
	require.NoError(t, err)
	got, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer got.Body.Close()
	body, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, "application/pdf", got.Header.Get("Content-Type"))
	assert.Equal(t, content, body)

	s.fails(http.MethodPost, pp+"/invoices", map[string]any{
		"description": "x", "amount": 1, "attachmentPaths": []string{"tenant-b/invoice-attachments/x.pdf"},
	}, http.StatusBadRequest)
}

func TestAttachmentFileOwnership(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	var held, loose storage.UploadResult
	for _, r := range []*storage.UploadResult{&held, &loose} {
		resp, env := s.upload("quote.pdf", []byte("%PDF-1.4 quote"))
		require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
		require.NoError(t, json.Unmarshal(env.Data, r))
	}

	s.fails(http.MethodPost, pp+"/invoices", map[string]any{
		"description": "x", "amount": 1, "attachmentPaths": []string{held.FilePath, held.FilePath},
	}, http.StatusBadRequest)
	s.invoice(pp, map[string]any{"attachmentPaths": []string{held.FilePath}})
	msg := s.fails(http.MethodPost, pp+"/invoices", map[string]any{
		"description": "x", "amount": 1, "attachmentPaths": []string{held.FilePath},
	}, http.StatusBadRequest)
	assert.Contains(t, msg, "already attached")

	s.fails(http.MethodDelete, models.FilesURLPrefix+held.FilePath, nil, http.StatusConflict)
	resp, _ := s.do(http.MethodDelete, models.FilesURLPrefix+loose.FilePath, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	s.fails(http.MethodGet, models.FilesURLPrefix+loose.FilePath, nil, http.StatusNotFound)
	s.fails(http.MethodDelete, models.FilesURLPrefix+"tenant-b/invoice-attachments/x.pdf", nil, http.StatusBadRequest)

	var q models.Quota
	s.ok(http.MethodGet, "/api/storage/quota", nil, http.StatusOK, &q)
	assert.Equal(t, held.Quota.UsedBytes, q.UsedBytes)
}

func TestUploadLimits(t *testing.T) {
	s := newServer(t, nil)

	resp, env := s.upload("big.bin", bytes.Repeat([]byte("x"), uploadBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Contains(t, env.Error, "upload limit")

	for i := range 2 {
		resp, env := s.upload(fmt.Sprintf("part-%d.bin", i), bytes.Repeat([]byte("x"), 400))
		require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	}
	resp, env = s.upload("overflow.bin", bytes.Repeat([]byte("x"), 400))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Contains(t, env.Error, "quota")

	var q models.Quota
	s.ok(http.MethodGet, "/api/storage/quota", nil, http.StatusOK, &q)
	assert.Equal(t, models.Quota{UsedBytes: 800, LimitBytes: quotaBytes, RemainingBytes: 224}, q)

	resp, _ = s.do(http.MethodPost, "/api/storage/upload-invoice-attachment", map[string]string{"file": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPurchaseOrderFlow(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()

	var v models.Vendor
	s.ok(http.MethodPost, "/api/developer-dashboard/vendors", map[string]any{"name": "Acme Steel", "vendorType": "supplier"}, http.StatusCreated, &v)

	var po models.PurchaseOrder
	s.ok(http.MethodPost, pp+"/purchase-orders", map[string]any{
		"vendorId":    v.ID,
		"description": "Steel beams",
		"status":      "draft",
		"items": []map[string]any{
			{"description": "IPE 200", "quantity": "2.5", "unitPrice": 10_000},
			{"description": "Bolts", "quantity": "100", "unitPrice": 25},
		},
	}, http.StatusCreated, &po)
	assert.Equal(t, models.PurchaseOrderDraft, po.Status)
	assert.Equal(t, models.Money(27_500), po.TotalAmount)
	assert.Regexp(t, `^PO-\d{4}-001$`, po.PONumber)

	base := pp + "/purchase-orders/" + po.ID
	s.fails(http.MethodPost, base+"/approve", nil, http.StatusConflict)
	s.ok(http.MethodPost, base+"/submit", nil, http.StatusOK, &po)
	assert.Equal(t, models.PurchaseOrderPending, po.Status)
	s.ok(http.MethodPost, base+"/approve", nil, http.StatusOK, &po)
	assert.Equal(t, models.PurchaseOrderApproved, po.Status)

	inv := s.invoice(pp, map[string]any{"purchaseOrderId": po.ID})
	require.NotNil(t, inv.VendorID)
	assert.Equal(t, v.ID, *inv.VendorID)

	s.fails(http.MethodDelete, base, nil, http.StatusConflict)
	s.fails(http.MethodDelete, "/api/developer-dashboard/vendors/"+v.ID, nil, http.StatusConflict)

	s.ok(http.MethodPost, base+"/close", nil, http.StatusOK, &po)
	assert.Equal(t, models.PurchaseOrderClosed, po.Status)

	var listed []models.PurchaseOrder
	s.ok(http.MethodGet, pp+"/purchase-orders?status=Closed", nil, http.StatusOK, &listed)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Items, 2)

	var dash struct {
		PurchaseOrders  map[string]int `json:"purchaseOrders"`
		CommittedAmount models.Money   `json:"committedAmount"`
		RecentExpenses  []models.Expense
	}
	s.ok(http.MethodGet, pp+"/dashboard", nil, http.StatusOK, &dash)
	assert.Equal(t, map[string]int{"closed": 1}, dash.PurchaseOrders)
	assert.Zero(t, dash.CommittedAmount)
}

func TestVendors(t *testing.T) {
	s := newServer(t, nil)

	s.fails(http.MethodPost, "/api/developer-dashboard/vendors", map[string]any{"name": "Bad", "vendorType": "supplier", "rating": 5.5}, http.StatusBadRequest)

	var v models.Vendor
	s.ok(http.MethodPost, "/api/developer-dashboard/vendors", map[string]any{"name": "Stone & Co", "vendorType": "contractor", "rating": 4.5}, http.StatusCreated, &v)

	var updated models.Vendor
	s.ok(http.MethodPatch, "/api/developer-dashboard/vendors/"+v.ID, map[string]any{"status": "inactive"}, http.StatusOK, &updated)
	assert.Equal(t, models.VendorInactive, updated.Status)
	assert.Equal(t, "Stone & Co", updated.Name)

	var list []models.Vendor
	s.ok(http.MethodGet, "/api/developer-dashboard/vendors?status=inactive", nil, http.StatusOK, &list)
	assert.Len(t, list, 1)

	resp, _ := s.do(http.MethodDelete, "/api/developer-dashboard/vendors/"+v.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	s.fails(http.MethodGet, "/api/developer-dashboard/vendors/"+v.ID, nil, http.StatusNotFound)
}

func TestSpendReport(t *testing.T) {
	s := newServer(t, nil)
	pp := s.project()
	for _, c := range []string{"materials", "labour", "materials"} {
		inv := s.invoice(pp, map[string]any{"category": c, "amount": 100_000})
		s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/approve", nil, http.StatusOK, nil)
		s.ok(http.MethodPost, pp+"/invoices/"+inv.ID+"/mark-as-paid", map[string]any{"paymentMethod": "card", "paidDate": "2025-04-02"}, http.StatusOK, nil)
	}

	var rep struct {
		ActualSpend models.Money `json:"actualSpend"`
		ByCategory  []struct {
			Category string       `json:"category"`
			Amount   models.Money `json:"amount"`
		} `json:"byCategory"`
		ByMonth []struct {
			Month string `json:"month"`
		} `json:"byMonth"`
	}
	s.ok(http.MethodGet, pp+"/spend-report", nil, http.StatusOK, &rep)
	assert.Equal(t, models.Money(300_000), rep.ActualSpend)
	require.Len(t, rep.ByCategory, 2)
	assert.Equal(t, "materials", rep.ByCategory[0].Category)
	assert.Equal(t, models.Money(200_000), rep.ByCategory[0].Amount)
	require.Len(t, rep.ByMonth, 1)
	assert.Equal(t, "2025-04", rep.ByMonth[0].Month)
}

func TestAuthentication(t *testing.T) {
	authn := auth.New(testSecret, time.Hour)
	s := newServer(t, authn)

	resp, env := s.do(http.MethodGet, "/api/developer-dashboard/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Bearer realm="buildledger"`, resp.Header.Get("WWW-Authenticate"))
	assert.False(t, env.Success)

	s.token = "not-a-token"
	resp, _ = s.do(http.MethodGet, "/api/developer-dashboard/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := authn.Issue(auth.Session{UserID: "u-1", TenantID: "tenant-a", Role: "manager"})
	require.NoError(t, err)
	s.token = token
	pp := s.project()
	inv := s.invoice(pp, nil)

	memberToken, err := authn.Issue(auth.Session{UserID: "u-2", TenantID: "tenant-a", Role: "member"})
	require.NoError(t, err)
	s.token = memberToken
	s.fails(http.MethodPost, pp+"/invoices/"+inv.ID+"/approve", nil, http.StatusForbidden)

	otherTenant, err := authn.Issue(auth.Session{UserID: "u-3", TenantID: "tenant-b", Role: "owner"})
	require.NoError(t, err)
	s.token = otherTenant
	s.fails(http.MethodGet, pp+"/invoices/"+inv.ID, nil, http.StatusNotFound)

	s.token = ""
	resp, _ = s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
