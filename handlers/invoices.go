package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/buildledger/models"
)

// ListInvoices lists a project's invoices
// @Summary      List invoices
// @Description  Get a project's invoices, newest first. Status matching ignores letter case.
// @Tags         invoices
// @Produce      json
// @Param        projectId  path      string  true   "Project ID"
// @Param        status     query     string  false  "Filter by status (pending/approved/paid/rejected)"
// @Param        category   query     string  false  "Filter by budget category"
// @Param        search     query     string  false  "Search by invoice number, description, or vendor name"
// @Success      200        {object}  Response{data=[]models.Invoice}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices [get]
// @Security     BearerAuth
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	f := models.InvoiceFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		st, err := models.ParseInvoiceStatus(s)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		f.Status = st
	}

	invoices := []models.Invoice{}
	for inv, err := range h.Ledger.Invoices.List(r.Context(), actor(r), chi.URLParam(r, "projectId"), f) {
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		invoices = append(invoices, inv)
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice
// @Summary      Get invoice
// @Description  Get an invoice with its attachments.
// @Tags         invoices
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Invoice ID"
// @Success      200        {object}  Response{data=models.Invoice}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id} [get]
// @Security     BearerAuth
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Ledger.Invoices.Get(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// GetInvoiceSummary aggregates a project's invoices
// @Summary      Invoice summary
// @Description  Totals per status plus pending, approved (outstanding) and paid amounts. Rejected invoices are counted but not totalled.
// @Tags         invoices
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  Response{data=models.InvoiceSummary}
// @Router       /developer-dashboard/projects/{projectId}/invoices/summary [get]
// @Security     BearerAuth
func (h *Handler) GetInvoiceSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Ledger.Invoices.Summary(r.Context(), actor(r), chi.URLParam(r, "projectId"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Create a pending invoice. The invoice number (INV-YYYY-NNN) is assigned by the server.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        projectId  path      string               true  "Project ID"
// @Param        invoice    body      models.InvoiceInput  true  "Invoice contents"
// @Success      201        {object}  Response{data=models.Invoice}
// @Failure      400        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices [post]
// @Security     BearerAuth
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if !decodeJSON(w, r, &input) {
		return
	}
	inv, err := h.Ledger.Invoices.Create(r.Context(), actor(r), chi.URLParam(r, "projectId"), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

type invoicePatchRequest struct {
	models.InvoicePatch
	Status *string `json:"status"`
}

// UpdateInvoice edits a pending invoice
// @Summary      Update invoice
// @Description  Partially update a pending invoice. Status cannot be changed here; use approve, reject or mark-as-paid.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        projectId  path      string               true  "Project ID"
// @Param        id         path      string               true  "Invoice ID"
// @Param        invoice    body      models.InvoicePatch  true  "Fields to change"
// @Success      200        {object}  Response{data=models.Invoice}
// @Failure      400        {object}  Response{error=string}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id} [patch]
// @Security     BearerAuth
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var input invoicePatchRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Status != nil {
		writeError(w, http.StatusBadRequest, "status cannot be updated directly; use approve, reject or mark-as-paid")
		return
	}
	inv, err := h.Ledger.Invoices.Update(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"), input.InvoicePatch)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// ApproveInvoice approves a pending invoice
// @Summary      Approve invoice
// @Tags         invoices
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Invoice ID"
// @Success      200        {object}  Response{data=models.Invoice}
// @Failure      403        {object}  Response{error=string}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id}/approve [post]
// @Security     BearerAuth
func (h *Handler) ApproveInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Ledger.Invoices.Approve(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// RejectInvoice rejects a pending invoice
// @Summary      Reject invoice
// @Description  Reject a pending invoice. The optional reason is appended to the notes.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        projectId  path      string              true   "Project ID"
// @Param        id         path      string              true   "Invoice ID"
// @Param        body       body      models.RejectInput  false  "Rejection reason"
// @Success      200        {object}  Response{data=models.Invoice}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id}/reject [post]
// @Security     BearerAuth
func (h *Handler) RejectInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.RejectInput
	if r.ContentLength != 0 && !decodeJSON(w, r, &input) {
		return
	}
	inv, err := h.Ledger.Invoices.Reject(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"), input.Reason)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// MarkInvoicePaid settles an approved invoice
// @Summary      Mark invoice as paid
// @Description  Settle an approved invoice and record the matching project expense atomically. A second call fails with 409.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        projectId  path      string               true  "Project ID"
// @Param        id         path      string               true  "Invoice ID"
// @Param        payment    body      models.PaymentInput  true  "Payment details"
// @Success      200        {object}  Response{data=models.Invoice}
// @Failure      400        {object}  Response{error=string}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id}/mark-as-paid [post]
// @Security     BearerAuth
func (h *Handler) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	var input models.PaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}
	inv, err := h.Ledger.Invoices.MarkAsPaid(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DeleteInvoice deletes an unpaid invoice
// @Summary      Delete invoice
// @Description  Delete an invoice and its attachments. Paid invoices cannot be deleted.
// @Tags         invoices
// @Param        projectId  path  string  true  "Project ID"
// @Param        id         path  string  true  "Invoice ID"
// @Success      204
// @Failure      403  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Invoices.Delete(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id")); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInvoiceAttachments lists the files attached to an invoice
// @Summary      List invoice attachments
// @Tags         invoices
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Invoice ID"
// @Success      200        {object}  Response{data=[]models.InvoiceAttachment}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/invoices/{id}/attachments [get]
// @Security     BearerAuth
func (h *Handler) ListInvoiceAttachments(w http.ResponseWriter, r *http.Request) {
	atts, err := h.Ledger.Invoices.Attachments(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, atts)
}
