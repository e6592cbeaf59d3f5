package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/buildledger/models"
)

// ListVendors lists the tenant's vendors
// @Summary      List vendors
// @Description  Get the tenant's vendors with contract counts and approved purchase order totals.
// @Tags         vendors
// @Produce      json
// @Param        vendorType  query     string  false  "Filter by type (contractor/supplier/consultant/subcontractor)"
// @Param        status      query     string  false  "Filter by status (active/inactive/blacklisted)"
// @Param        search      query     string  false  "Search by name, contact person, email, or specialization"
// @Success      200         {object}  Response{data=[]models.Vendor}
// @Router       /developer-dashboard/vendors [get]
// @Security     BearerAuth
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	f := models.VendorFilter{
		Type:   models.VendorType(r.URL.Query().Get("vendorType")),
		Status: models.VendorStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}
	vendors, err := h.Ledger.Vendors.List(r.Context(), actor(r), f)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// GetVendor retrieves a single vendor
// @Summary      Get vendor
// @Tags         vendors
// @Produce      json
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  Response{data=models.Vendor}
// @Failure      404  {object}  Response{error=string}
// @Router       /developer-dashboard/vendors/{id} [get]
// @Security     BearerAuth
func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	v, err := h.Ledger.Vendors.Get(r.Context(), actor(r), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVendor creates a new vendor
// @Summary      Create vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendor  body      models.VendorInput  true  "Vendor details"
// @Success      201     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Router       /developer-dashboard/vendors [post]
// @Security     BearerAuth
func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var input models.VendorInput
	if !decodeJSON(w, r, &input) {
		return
	}
	v, err := h.Ledger.Vendors.Create(r.Context(), actor(r), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVendor partially updates a vendor
// @Summary      Update vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id      path      string              true  "Vendor ID"
// @Param        vendor  body      models.VendorPatch  true  "Fields to change"
// @Success      200     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /developer-dashboard/vendors/{id} [patch]
// @Security     BearerAuth
func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var input models.VendorPatch
	if !decodeJSON(w, r, &input) {
		return
	}
	v, err := h.Ledger.Vendors.Update(r.Context(), actor(r), chi.URLParam(r, "id"), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVendor deletes a vendor
// @Summary      Delete vendor
// @Description  Delete a vendor. Fails with 409 while pending or approved invoices or purchase orders reference it.
// @Tags         vendors
// @Param        id   path  string  true  "Vendor ID"
// @Success      204
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /developer-dashboard/vendors/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Vendors.Delete(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
