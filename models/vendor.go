package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// VendorType classifies what a vendor supplies.
type VendorType string

const (
	VendorContractor    VendorType = "contractor"
	VendorSupplier      VendorType = "supplier"
	VendorConsultant    VendorType = "consultant"
	VendorSubcontractor VendorType = "subcontractor"
)

// VendorStatus controls whether a vendor may be used on new documents.
type VendorStatus string

const (
	VendorActive      VendorStatus = "active"
	VendorInactive    VendorStatus = "inactive"
	VendorBlacklisted VendorStatus = "blacklisted"
)

// MaxVendorRating is the upper bound of the vendor rating scale.
const MaxVendorRating = 5.0

// Vendor represents a contractor, supplier or consultant of a tenant.
type Vendor struct {
	ID             string       `json:"id"`
	TenantID       string       `json:"tenantId"`
	Name           string       `json:"name"`
	ContactPerson  *string      `json:"contactPerson"`
	Email          *string      `json:"email"`
	Phone          *string      `json:"phone"`
	Address        *string      `json:"address"`
	Type           VendorType   `json:"vendorType"`
	Specialization *string      `json:"specialization"`
	Rating         *float64     `json:"rating"`
	Status         VendorStatus `json:"status"`
	Currency       string       `json:"currency"`
	Notes          *string      `json:"notes"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	// Computed fields
	ContractCount int   `json:"contractCount"` // purchase orders referencing the vendor
	TotalValue    Money `json:"totalValue"`    // approved and closed purchase order totals
}

// VendorInput is used for creating vendors.
type VendorInput struct {
	Name           string       `json:"name"`
	ContactPerson  *string      `json:"contactPerson"`
	Email          *string      `json:"email"`
	Phone          *string      `json:"phone"`
	Address        *string      `json:"address"`
	Type           VendorType   `json:"vendorType"`
	Specialization *string      `json:"specialization"`
	Rating         *float64     `json:"rating"`
	Status         VendorStatus `json:"status"`
	Currency       string       `json:"currency"`
	Notes          *string      `json:"notes"`
}

// Validate checks required fields, the email shape and the rating bounds,
// and fills in defaults.
func (v *VendorInput) Validate() error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return NewValidationError("name", "name is required")
	}
	switch v.Type {
	case VendorContractor, VendorSupplier, VendorConsultant, VendorSubcontractor:
	default:
		return NewValidationError("vendorType", "vendorType must be one of: contractor, supplier, consultant, subcontractor")
	}
	switch v.Status {
	case "":
		v.Status = VendorActive
	case VendorActive, VendorInactive, VendorBlacklisted:
	default:
		return NewValidationError("status", "status must be one of: active, inactive, blacklisted")
	}
	v.Email = trimmed(v.Email)
	if v.Email != nil {
		if _, err := mail.ParseAddress(*v.Email); err != nil {
			return NewValidationError("email", "email is not a valid address")
		}
	}
	if v.Rating != nil && (*v.Rating < 0 || *v.Rating > MaxVendorRating) {
		return NewValidationError("rating", fmt.Sprintf("rating must be between 0 and %.0f", MaxVendorRating))
	}
	currency, err := NormalizeCurrency(v.Currency, DefaultCurrency)
	if err != nil {
		return NewValidationError("currency", err.Error())
	}
	v.Currency = currency
	v.ContactPerson = trimmed(v.ContactPerson)
	v.Phone = trimmed(v.Phone)
	v.Address = trimmed(v.Address)
	v.Specialization = trimmed(v.Specialization)
	return nil
}

// Input returns the editable fields of v.
func (v Vendor) Input() VendorInput {
	return VendorInput{
		Name:           v.Name,
		ContactPerson:  v.ContactPerson,
		Email:          v.Email,
		Phone:          v.Phone,
		Address:        v.Address,
		Type:           v.Type,
		Specialization: v.Specialization,
		Rating:         v.Rating,
		Status:         v.Status,
		Currency:       v.Currency,
		Notes:          v.Notes,
	}
}

// Apply copies validated input onto v.
func (v *Vendor) Apply(in VendorInput) {
	v.Name = in.Name
	v.ContactPerson = in.ContactPerson
	v.Email = in.Email
	v.Phone = in.Phone
	v.Address = in.Address
	v.Type = in.Type
	v.Specialization = in.Specialization
	v.Rating = in.Rating
	v.Status = in.Status
	v.Currency = in.Currency
	v.Notes = in.Notes
}

// VendorPatch is a partial vendor update. Absent fields are left unchanged.
type VendorPatch struct {
	Name           *string       `json:"name"`
	ContactPerson  *string       `json:"contactPerson"`
	Email          *string       `json:"email"`
	Phone          *string       `json:"phone"`
	Address        *string       `json:"address"`
	Type           *VendorType   `json:"vendorType"`
	Specialization *string       `json:"specialization"`
	Rating         *float64      `json:"rating"`
	Status         *VendorStatus `json:"status"`
	Currency       *string       `json:"currency"`
	Notes          *string       `json:"notes"`
}

// ApplyTo overlays the patch on in.
func (p VendorPatch) ApplyTo(in *VendorInput) {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.ContactPerson != nil {
		in.ContactPerson = p.ContactPerson
	}
	if p.Email != nil {
		in.Email = p.Email
	}
	if p.Phone != nil {
		in.Phone = p.Phone
	}
	if p.Address != nil {
		in.Address = p.Address
	}
	if p.Type != nil {
		in.Type = *p.Type
	}
	if p.Specialization != nil {
		in.Specialization = p.Specialization
	}
	if p.Rating != nil {
		in.Rating = p.Rating
	}
	if p.Status != nil {
		in.Status = *p.Status
	}
	if p.Currency != nil {
		in.Currency = *p.Currency
	}
	if p.Notes != nil {
		in.Notes = p.Notes
	}
}

// VendorFilter narrows vendor listings.
type VendorFilter struct {
	TenantID string
	Type     VendorType
	Status   VendorStatus
	Search   string
}
