package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
)

// ListPurchaseOrders lists a project's purchase orders
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Produce      json
// @Param        projectId  path      string  true   "Project ID"
// @Param        status     query     string  false  "Filter by status (draft/pending/approved/rejected/closed)"
// @Param        vendorId   query     string  false  "Filter by vendor"
// @Param        search     query     string  false  "Search by PO number or description"
// @Success      200        {object}  Response{data=[]models.PurchaseOrder}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders [get]
// @Security     BearerAuth
func (h *Handler) ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	f := models.PurchaseOrderFilter{
		VendorID: r.URL.Query().Get("vendorId"),
		Search:   r.URL.Query().Get("search"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		st, err := models.ParsePurchaseOrderStatus(s)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		f.Status = st
	}
	pos, err := h.Ledger.PurchaseOrders.List(r.Context(), actor(r), chi.URLParam(r, "projectId"), f)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if pos == nil {
		pos = []models.PurchaseOrder{}
	}
	writeJSON(w, http.StatusOK, pos)
}

// GetPurchaseOrder retrieves a purchase order with its items
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Purchase order ID"
// @Success      200        {object}  Response{data=models.PurchaseOrder}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id} [get]
// @Security     BearerAuth
func (h *Handler) GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	po, err := h.Ledger.PurchaseOrders.Get(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, po)
}

// CreatePurchaseOrder creates a purchase order
// @Summary      Create purchase order
// @Description  Create a draft or pending purchase order. The total defaults to the sum of the item lines.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                     true  "Project ID"
// @Param        order      body      models.PurchaseOrderInput  true  "Purchase order"
// @Success      201        {object}  Response{data=models.PurchaseOrder}
// @Failure      400        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders [post]
// @Security     BearerAuth
func (h *Handler) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var input models.PurchaseOrderInput
	if !decodeJSON(w, r, &input) {
		return
	}
	po, err := h.Ledger.PurchaseOrders.Create(r.Context(), actor(r), chi.URLParam(r, "projectId"), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, po)
}

// UpdatePurchaseOrder edits a purchase order that is not closed
// @Summary      Update purchase order
// @Description  Partially update a purchase order that is not closed. Sending items replaces every line. Status cannot be changed here.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                     true  "Project ID"
// @Param        id         path      string                     true  "Purchase order ID"
// @Param        order      body      models.PurchaseOrderPatch  true  "Fields to change"
// @Success      200        {object}  Response{data=models.PurchaseOrder}
// @Failure      400        {object}  Response{error=string}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id} [patch]
// @Security     BearerAuth
func (h *Handler) UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var input models.PurchaseOrderPatch
	if !decodeJSON(w, r, &input) {
		return
	}
	po, err := h.Ledger.PurchaseOrders.Update(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, po)
}

// DeletePurchaseOrder deletes a purchase order
// @Summary      Delete purchase order
// @Description  Delete a purchase order that no invoice references.
// @Tags         purchase-orders
// @Param        projectId  path  string  true  "Project ID"
// @Param        id         path  string  true  "Purchase order ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.PurchaseOrders.Delete(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id")); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type purchaseOrderAction func(ctx context.Context, a ledger.Actor, projectID, id string) (models.PurchaseOrder, error)

func (h *Handler) purchaseOrderTransition(do purchaseOrderAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		po, err := do(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"))
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, po)
	}
}

// SubmitPurchaseOrder moves a draft purchase order to pending
// @Summary      Submit purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Purchase order ID"
// @Success      200        {object}  Response{data=models.PurchaseOrder}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id}/submit [post]
// @Security     BearerAuth
func (h *Handler) SubmitPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	h.purchaseOrderTransition(h.Ledger.PurchaseOrders.Submit)(w, r)
}

// ApprovePurchaseOrder approves a pending purchase order
// @Summary      Approve purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Purchase order ID"
// @Success      200        {object}  Response{data=models.PurchaseOrder}
// @Failure      403        {object}  Response{error=string}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id}/approve [post]
// @Security     BearerAuth
func (h *Handler) ApprovePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	h.purchaseOrderTransition(h.Ledger.PurchaseOrders.Approve)(w, r)
}

// RejectPurchaseOrder rejects a pending purchase order
// @Summary      Reject purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        projectId  path      string              true   "Project ID"
// @Param        id         path      string              true   "Purchase order ID"
// @Param        body       body      models.RejectInput  false  "Rejection reason"
// @Success      200        {object}  Response{data=models.PurchaseOrder}
// @Failure      403        {object}  Response{error=string}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id}/reject [post]
// @Security     BearerAuth
func (h *Handler) RejectPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var input models.RejectInput
	if r.ContentLength != 0 && !decodeJSON(w, r, &input) {
		return
	}
	po, err := h.Ledger.PurchaseOrders.Reject(r.Context(), actor(r), chi.URLParam(r, "projectId"), chi.URLParam(r, "id"), input.Reason)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, po)
}

// ClosePurchaseOrder closes an approved purchase order
// @Summary      Close purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Param        id         path      string  true  "Purchase order ID"
// @Success      200        {object}  Response{data=models.PurchaseOrder}
// @Failure      409        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/purchase-orders/{id}/close [post]
// @Security     BearerAuth
func (h *Handler) ClosePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	h.purchaseOrderTransition(h.Ledger.PurchaseOrders.Close)(w, r)
}
