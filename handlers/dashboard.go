package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/buildledger/models"
)

const recentExpenseCount = 5

type dashboardData struct {
	Project  models.Project        `json:"project"`
	Invoices models.InvoiceSummary `json:"invoices"`

	PurchaseOrders      map[models.PurchaseOrderStatus]int `json:"purchaseOrders"`
	CommittedAmount     models.Money                       `json:"committedAmount"` // approved purchase order totals
	OverdueInvoices     int                                `json:"overdueInvoices"`
	OutstandingPayables models.Money                       `json:"outstandingPayables"`

	RecentExpenses []models.Expense `json:"recentExpenses"`
}

// GetDashboard summarises one project
// @Summary      Get project dashboard
// @Description  Budget position, invoice totals, purchase order counts, overdue invoices and recent expenses.
// @Tags         dashboard
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  Response{data=dashboardData}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/dashboard [get]
// @Security     BearerAuth
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a := actor(r)
	projectID := chi.URLParam(r, "projectId")

	var d dashboardData
	var err error
	if d.Project, err = h.Ledger.Projects.Get(ctx, a, projectID); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if d.Invoices, err = h.Ledger.Invoices.Summary(ctx, a, projectID); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	d.OutstandingPayables = d.Invoices.ApprovedAmount

	today := h.Ledger.Now()
	for inv, err := range h.Ledger.Invoices.List(ctx, a, projectID, models.InvoiceFilter{}) {
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		if inv.Overdue(today) {
			d.OverdueInvoices++
		}
	}

	pos, err := h.Ledger.PurchaseOrders.List(ctx, a, projectID, models.PurchaseOrderFilter{})
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	d.PurchaseOrders = map[models.PurchaseOrderStatus]int{}
	for _, po := range pos {
		d.PurchaseOrders[po.Status]++
		if po.Status == models.PurchaseOrderApproved {
			d.CommittedAmount += po.TotalAmount
		}
	}

	expenses, err := h.Ledger.Projects.Expenses(ctx, a, projectID)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	d.RecentExpenses = expenses[:min(len(expenses), recentExpenseCount)]
	if d.RecentExpenses == nil {
		d.RecentExpenses = []models.Expense{}
	}

	writeJSON(w, http.StatusOK, d)
}
