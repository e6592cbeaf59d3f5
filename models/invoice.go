package models

import (
	"strings"
	"time"
)

// DefaultCategory is the budget category used when none is given.
const DefaultCategory = "general"

// Invoice is a vendor's bill against a project.
type Invoice struct {
	ID               string              `json:"id"`
	InvoiceNumber    string              `json:"invoiceNumber"`
	ProjectID        string              `json:"projectId"`
	PurchaseOrderID  *string             `json:"purchaseOrderId"`
	VendorID         *string             `json:"vendorId"`
	Description      string              `json:"description"`
	Category         string              `json:"category"`
	Amount           Money               `json:"amount"`
	Currency         string              `json:"currency"`
	Status           InvoiceStatus       `json:"status"`
	DueDate          *string             `json:"dueDate"`
	PaidDate         *string             `json:"paidDate"`
	PaymentMethod    *PaymentMethod      `json:"paymentMethod"`
	PaymentReference *string             `json:"paymentReference"`
	ApprovedBy       *string             `json:"approvedBy"`
	ApprovedAt       *time.Time          `json:"approvedAt"`
	Notes            *string             `json:"notes"`
	CreatedBy        string              `json:"createdBy"`
	Attachments      []InvoiceAttachment `json:"attachments"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
	// Computed fields
	VendorName          *string `json:"vendorName,omitempty"`
	PurchaseOrderNumber *string `json:"purchaseOrderNumber,omitempty"`
}

// AppendNote adds a line to the invoice notes.
func (inv *Invoice) AppendNote(line string) {
	inv.Notes = appendLine(inv.Notes, line)
}

// Overdue reports whether an unpaid, unrejected invoice is past its due date on today.
func (inv Invoice) Overdue(today time.Time) bool {
	if inv.DueDate == nil || (inv.Status != InvoicePending && inv.Status != InvoiceApproved) {
		return false
	}
	due, err := ParseDate(*inv.DueDate)
	if err != nil {
		return false
	}
	return due.Before(today.Truncate(24 * time.Hour))
}

// InvoiceInput is used for creating invoices.
type InvoiceInput struct {
	VendorID        *string  `json:"vendorId"`
	PurchaseOrderID *string  `json:"purchaseOrderId"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Amount          Money    `json:"amount"`
	Currency        string   `json:"currency"`
	DueDate         *string  `json:"dueDate"`
	Notes           *string  `json:"notes"`
	AttachmentPaths []string `json:"attachmentPaths"`
}

func (i *InvoiceInput) Validate(defaultCurrency string) error {
	i.Description = strings.TrimSpace(i.Description)
	if i.Description == "" {
		return NewValidationError("description", "description is required")
	}
	if i.Amount <= 0 {
		return NewValidationError("amount", "amount must be positive")
	}
	i.Category = strings.TrimSpace(i.Category)
	if i.Category == "" {
		i.Category = DefaultCategory
	}
	currency, err := NormalizeCurrency(i.Currency, defaultCurrency)
	if err != nil {
		return NewValidationError("currency", err.Error())
	}
	i.Currency = currency
	i.DueDate = trimmed(i.DueDate)
	if !validDate(i.DueDate) {
		return NewValidationError("dueDate", "dueDate must be YYYY-MM-DD")
	}
	i.VendorID = trimmed(i.VendorID)
	i.PurchaseOrderID = trimmed(i.PurchaseOrderID)
	i.Notes = trimmed(i.Notes)
	return nil
}

// Input returns the editable fields of inv.
func (inv Invoice) Input() InvoiceInput {
	return InvoiceInput{
		VendorID:        inv.VendorID,
		PurchaseOrderID: inv.PurchaseOrderID,
		Description:     inv.Description,
		Category:        inv.Category,
		Amount:          inv.Amount,
		Currency:        inv.Currency,
		DueDate:         inv.DueDate,
		Notes:           inv.Notes,
	}
}

// Apply copies validated input onto inv.
func (inv *Invoice) Apply(in InvoiceInput) {
	inv.VendorID = in.VendorID
	inv.PurchaseOrderID = in.PurchaseOrderID
	inv.Description = in.Description
	inv.Category = in.Category
	inv.Amount = in.Amount
	inv.Currency = in.Currency
	inv.DueDate = in.DueDate
	inv.Notes = in.Notes
}

// InvoicePatch edits a pending invoice. Absent fields are left unchanged; an empty
// vendorId or purchaseOrderId clears the reference.
type InvoicePatch struct {
	VendorID        *string `json:"vendorId"`
	PurchaseOrderID *string `json:"purchaseOrderId"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	Amount          *Money  `json:"amount"`
	Currency        *string `json:"currency"`
	DueDate         *string `json:"dueDate"`
	Notes           *string `json:"notes"`
}

func (p InvoicePatch) ApplyTo(in *InvoiceInput) {
	if p.VendorID != nil {
		in.VendorID = p.VendorID
	}
	if p.PurchaseOrderID != nil {
		in.PurchaseOrderID = p.PurchaseOrderID
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Amount != nil {
		in.Amount = *p.Amount
	}
	if p.Currency != nil {
		in.Currency = *p.Currency
	}
	if p.DueDate != nil {
		in.DueDate = p.DueDate
	}
	if p.Notes != nil {
		in.Notes = p.Notes
	}
}

// RejectInput carries the optional rejection reason.
type RejectInput struct {
	Reason *string `json:"reason"`
}

// PaymentInput settles an approved invoice.
type PaymentInput struct {
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	PaymentReference *string       `json:"paymentReference"`
	PaidDate         *string       `json:"paidDate"`
	Notes            *string       `json:"notes"`
}

// Validate requires a known payment method and defaults the paid date to today.
func (p *PaymentInput) Validate(today time.Time) error {
	p.PaymentMethod = PaymentMethod(strings.ToLower(strings.TrimSpace(string(p.PaymentMethod))))
	if p.PaymentMethod == "" {
		return NewValidationError("paymentMethod", "paymentMethod is required")
	}
	if !p.PaymentMethod.Valid() {
		return NewValidationError("paymentMethod", "paymentMethod must be one of: bank_transfer, cheque, cash, card, mobile_money, other")
	}
	p.PaidDate = trimmed(p.PaidDate)
	if p.PaidDate == nil {
		d := today.Format(DateLayout)
		p.PaidDate = &d
	}
	if !validDate(p.PaidDate) {
		return NewValidationError("paidDate", "paidDate must be YYYY-MM-DD")
	}
	p.PaymentReference = trimmed(p.PaymentReference)
	p.Notes = trimmed(p.Notes)
	return nil
}

// InvoiceFilter narrows invoice listings. Search matches invoice number, description and
// vendor name case-insensitively.
type InvoiceFilter struct {
	ProjectID string
	Status    InvoiceStatus
	Category  string
	Search    string
}

// StatusTotal aggregates the invoices in one status.
type StatusTotal struct {
	Count  int   `json:"count"`
	Amount Money `json:"amount"`
}

// InvoiceSummary aggregates a project's invoices.
type InvoiceSummary struct {
	Count          int                           `json:"count"`
	TotalAmount    Money                         `json:"totalAmount"`
	PendingAmount  Money                         `json:"pendingAmount"`
	ApprovedAmount Money                         `json:"approvedAmount"`
	PaidAmount     Money                         `json:"paidAmount"`
	ByStatus       map[InvoiceStatus]StatusTotal `json:"byStatus"`
}

// Add folds inv into the summary.
func (s *InvoiceSummary) Add(inv Invoice) {
	if s.ByStatus == nil {
		s.ByStatus = map[InvoiceStatus]StatusTotal{}
	}
	st := s.ByStatus[inv.Status]
	st.Count++
	st.Amount += inv.Amount
	s.ByStatus[inv.Status] = st

	s.Count++
	if inv.Status == InvoiceRejected {
		return
	}
	s.TotalAmount += inv.Amount
	switch inv.Status {
	case InvoicePending:
		s.PendingAmount += inv.Amount
	case InvoiceApproved:
		s.ApprovedAmount += inv.Amount
	case InvoicePaid:
		s.PaidAmount += inv.Amount
	}
}
