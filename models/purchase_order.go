package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder pre-authorizes spend against a vendor on a project.
type PurchaseOrder struct {
	ID          string              `json:"id"`
	PONumber    string              `json:"poNumber"`
	ProjectID   string              `json:"projectId"`
	VendorID    *string             `json:"vendorId"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	TotalAmount Money               `json:"totalAmount"`
	Currency    string              `json:"currency"`
	Status      PurchaseOrderStatus `json:"status"`
	RequestedBy string              `json:"requestedBy"`
	ApprovedBy  *string             `json:"approvedBy"`
	ApprovedAt  *time.Time          `json:"approvedAt"`
	Notes       *string             `json:"notes"`
	Items       []PurchaseOrderItem `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	// Computed fields
	VendorName *string `json:"vendorName,omitempty"`
}

// AppendNote adds a line to the purchase order notes.
func (po *PurchaseOrder) AppendNote(line string) {
	po.Notes = appendLine(po.Notes, line)
}

// PurchaseOrderItem is a line of a purchase order.
type PurchaseOrderItem struct {
	ID              string          `json:"id"`
	PurchaseOrderID string          `json:"purchaseOrderId"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            *string         `json:"unit"`
	UnitPrice       Money           `json:"unitPrice"`
	TotalPrice      Money           `json:"totalPrice"`
	Category        *string         `json:"category"`
}

// PurchaseOrderItemInput is a line as submitted by a client.
type PurchaseOrderItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        *string         `json:"unit"`
	UnitPrice   Money           `json:"unitPrice"`
	TotalPrice  Money           `json:"totalPrice"`
	Category    *string         `json:"category"`
}

// LineTotal is quantity × unit price rounded to the minor unit.
func (i PurchaseOrderItemInput) LineTotal() Money {
	return Money(i.Quantity.Mul(decimal.NewFromInt(int64(i.UnitPrice))).Round(0).IntPart())
}

// PurchaseOrderInput is used for creating purchase orders.
type PurchaseOrderInput struct {
	VendorID    *string                  `json:"vendorId"`
	Description string                   `json:"description"`
	Category    string                   `json:"category"`
	TotalAmount Money                    `json:"totalAmount"`
	Currency    string                   `json:"currency"`
	Status      PurchaseOrderStatus      `json:"status"`
	Notes       *string                  `json:"notes"`
	Items       []PurchaseOrderItemInput `json:"items"`
}

// ItemsTotal sums the line totals.
func (p *PurchaseOrderInput) ItemsTotal() Money {
	var total Money
	for _, it := range p.Items {
		total += it.TotalPrice
	}
	return total
}

// Validate checks the order and its lines. Line totals default to quantity × unit price and
// the order total defaults to the sum of the lines; an explicit total may differ from it.
func (p *PurchaseOrderInput) Validate(defaultCurrency string) error {
	p.Description = strings.TrimSpace(p.Description)
	if p.Description == "" {
		return NewValidationError("description", "description is required")
	}
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	switch p.Status {
	case "":
		p.Status = PurchaseOrderPending
	case PurchaseOrderDraft, PurchaseOrderPending:
	default:
		return NewValidationError("status", "new purchase orders must be draft or pending")
	}
	for i := range p.Items {
		it := &p.Items[i]
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			return NewValidationError(fmt.Sprintf("items[%d].description", i), "description is required")
		}
		if !it.Quantity.IsPositive() {
			return NewValidationError(fmt.Sprintf("items[%d].quantity", i), "quantity must be positive")
		}
		if it.UnitPrice < 0 {
			return NewValidationError(fmt.Sprintf("items[%d].unitPrice", i), "unitPrice must be non-negative")
		}
		if it.TotalPrice == 0 {
			it.TotalPrice = it.LineTotal()
		}
		if it.TotalPrice < 0 {
			return NewValidationError(fmt.Sprintf("items[%d].totalPrice", i), "totalPrice must be non-negative")
		}
	}
	if p.TotalAmount == 0 && len(p.Items) > 0 {
		p.TotalAmount = p.ItemsTotal()
	}
	if p.TotalAmount <= 0 {
		return NewValidationError("totalAmount", "totalAmount must be positive")
	}
	currency, err := NormalizeCurrency(p.Currency, defaultCurrency)
	if err != nil {
		return NewValidationError("currency", err.Error())
	}
	p.Currency = currency
	p.VendorID = trimmed(p.VendorID)
	p.Notes = trimmed(p.Notes)
	return nil
}

// Input returns the editable fields of po. Status is not editable.
func (po PurchaseOrder) Input() PurchaseOrderInput {
	in := PurchaseOrderInput{
		VendorID:    po.VendorID,
		Description: po.Description,
		Category:    po.Category,
		TotalAmount: po.TotalAmount,
		Currency:    po.Currency,
		Notes:       po.Notes,
	}
	for _, it := range po.Items {
		in.Items = append(in.Items, PurchaseOrderItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Category:    it.Category,
		})
	}
	return in
}

// PurchaseOrderPatch is a partial update. A non-nil Items replaces every line.
type PurchaseOrderPatch struct {
	VendorID    *string                   `json:"vendorId"`
	Description *string                   `json:"description"`
	Category    *string                   `json:"category"`
	TotalAmount *Money                    `json:"totalAmount"`
	Currency    *string                   `json:"currency"`
	Notes       *string                   `json:"notes"`
	Items       *[]PurchaseOrderItemInput `json:"items"`
}

// ApplyTo overlays the patch on in. Replacing the lines without an explicit total
// recomputes the total from the new lines.
func (p PurchaseOrderPatch) ApplyTo(in *PurchaseOrderInput) {
	if p.VendorID != nil {
		in.VendorID = p.VendorID
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Currency != nil {
		in.Currency = *p.Currency
	}
	if p.Notes != nil {
		in.Notes = p.Notes
	}
	if p.Items != nil {
		in.Items = *p.Items
		if p.TotalAmount == nil && len(in.Items) > 0 {
			in.TotalAmount = 0
		}
	}
	if p.TotalAmount != nil {
		in.TotalAmount = *p.TotalAmount
	}
}

// PurchaseOrderFilter narrows purchase order listings.
type PurchaseOrderFilter struct {
	ProjectID string
	Status    PurchaseOrderStatus
	VendorID  string
	Search    string
}
