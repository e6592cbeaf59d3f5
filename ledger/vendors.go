package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/models"
)

// VendorRegistry owns a tenant's vendors.
type VendorRegistry struct {
	*core
}

func (r *VendorRegistry) Create(ctx context.Context, actor Actor, in models.VendorInput) (models.Vendor, error) {
	if err := in.Validate(); err != nil {
		return models.Vendor{}, err
	}
	now := r.now()
	v := models.Vendor{ID: uuid.NewString(), TenantID: actor.TenantID, CreatedAt: now, UpdatedAt: now}
	v.Apply(in)
	if err := r.store.CreateVendor(ctx, &v); err != nil {
		return models.Vendor{}, err
	}
	return r.store.GetVendor(ctx, actor.TenantID, v.ID)
}

func (r *VendorRegistry) Get(ctx context.Context, actor Actor, id string) (models.Vendor, error) {
	return r.store.GetVendor(ctx, actor.TenantID, id)
}

func (r *VendorRegistry) List(ctx context.Context, actor Actor, f models.VendorFilter) ([]models.Vendor, error) {
	f.TenantID = actor.TenantID
	return r.store.ListVendors(ctx, f)
}

// Update applies a partial update and revalidates the whole vendor.
func (r *VendorRegistry) Update(ctx context.Context, actor Actor, id string, patch models.VendorPatch) (models.Vendor, error) {
	v, err := r.store.GetVendor(ctx, actor.TenantID, id)
	if err != nil {
		return models.Vendor{}, err
	}
	in := v.Input()
	patch.ApplyTo(&in)
	if err := in.Validate(); err != nil {
		return models.Vendor{}, err
	}
	v.Apply(in)
	v.UpdatedAt = r.now()
	if err := r.store.SaveVendor(ctx, &v); err != nil {
		return models.Vendor{}, err
	}
	return r.store.GetVendor(ctx, actor.TenantID, id)
}

// Delete removes a vendor that no pending or approved document references.
func (r *VendorRegistry) Delete(ctx context.Context, actor Actor, id string) error {
	return r.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetVendor(ctx, actor.TenantID, id); err != nil {
			return err
		}
		n, err := tx.CountOpenVendorReferences(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return models.Conflict(fmt.Sprintf("vendor is referenced by %d open invoices or purchase orders", n))
		}
		if err := tx.DeleteVendor(ctx, actor.TenantID, id); err != nil {
			return err
		}
		log := logger.WithComponent("vendors")
		log.Info().Str("vendor_id", id).Str("user_id", actor.UserID).Msg("vendor deleted")
		return nil
	})
}

// usableVendor checks that vendorID names a tenant vendor that may appear on new documents.
func usableVendor(ctx context.Context, tx Store, tenantID string, vendorID *string) (*models.Vendor, error) {
	if vendorID == nil {
		return nil, nil
	}
	v, err := tx.GetVendor(ctx, tenantID, *vendorID)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewValidationError("vendorId", "unknown vendor")
		}
		return nil, err
	}
	if v.Status == models.VendorBlacklisted {
		return nil, models.NewValidationError("vendorId", "vendor is blacklisted")
	}
	return &v, nil
}
