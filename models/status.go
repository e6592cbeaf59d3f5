package models

import (
	"fmt"
	"slices"
	"strings"
)

// InvoiceStatus is the canonical invoice lifecycle state.
type InvoiceStatus string

const (
	InvoicePending  InvoiceStatus = "pending"
	InvoiceApproved InvoiceStatus = "approved"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceRejected InvoiceStatus = "rejected"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoicePending:  {InvoiceApproved, InvoiceRejected},
	InvoiceApproved: {InvoicePaid},
}

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoicePending, InvoiceApproved, InvoicePaid, InvoiceRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s InvoiceStatus) Terminal() bool {
	return len(invoiceTransitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	return slices.Contains(invoiceTransitions[s], next)
}

// ParseInvoiceStatus accepts any letter case ("Paid", "PAID") and returns the canonical value.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	st := InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", NewValidationError("status", fmt.Sprintf("unknown invoice status %q", s))
	}
	return st, nil
}

// PurchaseOrderStatus is the canonical purchase order lifecycle state.
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft    PurchaseOrderStatus = "draft"
	PurchaseOrderPending  PurchaseOrderStatus = "pending"
	PurchaseOrderApproved PurchaseOrderStatus = "approved"
	PurchaseOrderRejected PurchaseOrderStatus = "rejected"
	PurchaseOrderClosed   PurchaseOrderStatus = "closed"
)

var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderDraft:    {PurchaseOrderPending},
	PurchaseOrderPending:  {PurchaseOrderApproved, PurchaseOrderRejected},
	PurchaseOrderApproved: {PurchaseOrderClosed},
}

func (s PurchaseOrderStatus) Valid() bool {
	switch s {
	case PurchaseOrderDraft, PurchaseOrderPending, PurchaseOrderApproved, PurchaseOrderRejected, PurchaseOrderClosed:
		return true
	}
	return false
}

func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	return slices.Contains(purchaseOrderTransitions[s], next)
}

// ParsePurchaseOrderStatus accepts any letter case and returns the canonical value.
func ParsePurchaseOrderStatus(s string) (PurchaseOrderStatus, error) {
	st := PurchaseOrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", NewValidationError("status", fmt.Sprintf("unknown purchase order status %q", s))
	}
	return st, nil
}

// PaymentMethod records how an invoice was settled.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentOther        PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBankTransfer, PaymentCheque, PaymentCash, PaymentCard, PaymentMobileMoney, PaymentOther:
		return true
	}
	return false
}
