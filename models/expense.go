package models

import "time"

// Expense is actual spend recorded against a project when an invoice is paid.
type Expense struct {
	ID               string        `json:"id"`
	ProjectID        string        `json:"projectId"`
	InvoiceID        string        `json:"invoiceId"`
	VendorID         *string       `json:"vendorId"`
	Description      string        `json:"description"`
	Category         string        `json:"category"`
	Amount           Money         `json:"amount"`
	Currency         string        `json:"currency"`
	PaymentDate      string        `json:"paymentDate"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	PaymentReference *string       `json:"paymentReference"`
	CreatedBy        string        `json:"createdBy"`
	CreatedAt        time.Time     `json:"createdAt"`
}
