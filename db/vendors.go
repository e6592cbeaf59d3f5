package db

import (
	"context"

	"github.com/satheeshds/buildledger/models"
)

const vendorSelectQuery = `SELECT v.id, v.tenant_id, v.name, v.contact_person, v.email, v.phone, v.address,
		v.vendor_type, v.specialization, v.rating, v.status, v.currency, v.notes, v.created_at, v.updated_at,
		(SELECT COUNT(*) FROM purchase_orders po WHERE po.vendor_id = v.id),
		COALESCE((SELECT SUM(po.total_amount) FROM purchase_orders po
			WHERE po.vendor_id = v.id AND po.status IN ('approved', 'closed')), 0)
		FROM vendors v`

func scanVendor(row scanner) (models.Vendor, error) {
	var v models.Vendor
	err := row.Scan(&v.ID, &v.TenantID, &v.Name, &v.ContactPerson, &v.Email, &v.Phone, &v.Address,
		&v.Type, &v.Specialization, &v.Rating, &v.Status, &v.Currency, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		&v.ContractCount, &v.TotalValue)
	return v, err
}

func (s *Store) CreateVendor(ctx context.Context, v *models.Vendor) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO vendors (id, tenant_id, name, contact_person, email, phone, address, vendor_type,
			specialization, rating, status, currency, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		v.ID, v.TenantID, v.Name, v.ContactPerson, v.Email, v.Phone, v.Address, v.Type,
		v.Specialization, v.Rating, v.Status, v.Currency, v.Notes, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return mapError("creating vendor", err)
	}
	return nil
}

func (s *Store) GetVendor(ctx context.Context, tenantID, id string) (models.Vendor, error) {
	v, err := scanVendor(s.q.QueryRow(ctx, vendorSelectQuery+" WHERE v.tenant_id = $1 AND v.id = $2", tenantID, id))
	if err != nil {
		return models.Vendor{}, notFound("vendor", err)
	}
	return v, nil
}

func (s *Store) ListVendors(ctx context.Context, f models.VendorFilter) ([]models.Vendor, error) {
	var w where
	w.add("v.tenant_id = ?", f.TenantID)
	if f.Type != "" {
		w.add("v.vendor_type = ?", f.Type)
	}
	if f.Status != "" {
		w.add("v.status = ?", f.Status)
	}
	if f.Search != "" {
		w.add("(v.name ILIKE ? OR v.contact_person ILIKE ? OR v.email ILIKE ? OR v.specialization ILIKE ?)",
			searchPattern(f.Search), searchPattern(f.Search), searchPattern(f.Search), searchPattern(f.Search))
	}

	rows, err := s.q.Query(ctx, vendorSelectQuery+w.String()+" ORDER BY lower(v.name)", w.args...)
	if err != nil {
		return nil, mapError("listing vendors", err)
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, mapError("scanning vendor", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (s *Store) SaveVendor(ctx context.Context, v *models.Vendor) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE vendors SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5,
			vendor_type = $6, specialization = $7, rating = $8, status = $9, currency = $10, notes = $11,
			updated_at = $12
		WHERE tenant_id = $13 AND id = $14`,
		v.Name, v.ContactPerson, v.Email, v.Phone, v.Address, v.Type, v.Specialization, v.Rating,
		v.Status, v.Currency, v.Notes, v.UpdatedAt, v.TenantID, v.ID)
	if err != nil {
		return mapError("updating vendor", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("vendor")
	}
	return nil
}

// DeleteVendor relies on ON DELETE SET NULL to clear references from closed documents.
func (s *Store) DeleteVendor(ctx context.Context, tenantID, id string) error {
	tag, err := s.q.Exec(ctx, "DELETE FROM vendors WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return mapError("deleting vendor", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("vendor")
	}
	return nil
}

func (s *Store) CountOpenVendorReferences(ctx context.Context, vendorID string) (int, error) {
	var n int
	err := s.q.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM purchase_orders WHERE vendor_id = $1 AND status IN ('pending', 'approved')) +
			(SELECT COUNT(*) FROM invoices WHERE vendor_id = $1 AND status IN ('pending', 'approved'))`,
		vendorID).Scan(&n)
	if err != nil {
		return 0, mapError("counting vendor references", err)
	}
	return n, nil
}
