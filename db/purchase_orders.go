package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/satheeshds/buildledger/models"
)

const purchaseOrderSelectQuery = `SELECT po.id, po.po_number, po.project_id, po.vendor_id, po.description, po.category,
		po.total_amount, po.currency, po.status, po.requested_by, po.approved_by, po.approved_at, po.notes,
		po.created_at, po.updated_at,
		v.name
		FROM purchase_orders po
		LEFT JOIN vendors v ON po.vendor_id = v.id`

func scanPurchaseOrder(row scanner) (models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := row.Scan(&po.ID, &po.PONumber, &po.ProjectID, &po.VendorID, &po.Description, &po.Category,
		&po.TotalAmount, &po.Currency, &po.Status, &po.RequestedBy, &po.ApprovedBy, &po.ApprovedAt, &po.Notes,
		&po.CreatedAt, &po.UpdatedAt,
		&po.VendorName)
	return po, err
}

func (s *Store) PurchaseOrderNumbers(ctx context.Context, projectID, prefix string) ([]string, error) {
	return s.numbers(ctx, "SELECT po_number FROM purchase_orders WHERE project_id = $1 AND po_number LIKE $2", projectID, prefix)
}

// numbers reads matching document numbers. Inside a transaction the read runs under a
// savepoint, so a failed lookup leaves the transaction usable for the fallback number.
func (s *Store) numbers(ctx context.Context, query, projectID, prefix string) ([]string, error) {
	tx, ok := s.q.(pgx.Tx)
	if !ok {
		return readNumbers(ctx, s.q, query, projectID, prefix)
	}
	var numbers []string
	err := pgx.BeginFunc(ctx, tx, func(sp pgx.Tx) error {
		var err error
		numbers, err = readNumbers(ctx, sp, query, projectID, prefix)
		return err
	})
	return numbers, err
}

func readNumbers(ctx context.Context, q querier, query, projectID, prefix string) ([]string, error) {
	rows, err := q.Query(ctx, query, projectID, searchPrefix(prefix))
	if err != nil {
		return nil, mapError("reading document numbers", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, mapError("scanning document number", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("reading document numbers", err)
	}
	return numbers, nil
}

func searchPrefix(prefix string) string {
	return searchPattern(prefix)[1:]
}

func (s *Store) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO purchase_orders (id, po_number, project_id, vendor_id, description, category, total_amount,
			currency, status, requested_by, approved_by, approved_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		po.ID, po.PONumber, po.ProjectID, po.VendorID, po.Description, po.Category, po.TotalAmount,
		po.Currency, po.Status, po.RequestedBy, po.ApprovedBy, po.ApprovedAt, po.Notes, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		return mapError("creating purchase order", err)
	}
	return s.insertItems(ctx, po)
}

func (s *Store) insertItems(ctx context.Context, po *models.PurchaseOrder) error {
	for i, it := range po.Items {
		_, err := s.q.Exec(ctx,
			`INSERT INTO purchase_order_items (id, purchase_order_id, position, description, quantity, unit,
				unit_price, total_price, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, po.ID, i, it.Description, it.Quantity, it.Unit, it.UnitPrice, it.TotalPrice, it.Category)
		if err != nil {
			return mapError("creating purchase order item", err)
		}
	}
	return nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, projectID, id string) (models.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(s.q.QueryRow(ctx, purchaseOrderSelectQuery+" WHERE po.project_id = $1 AND po.id = $2", projectID, id))
	if err != nil {
		return models.PurchaseOrder{}, notFound("purchase order", err)
	}
	if po.Items, err = s.items(ctx, po.ID); err != nil {
		return models.PurchaseOrder{}, err
	}
	return po, nil
}

func (s *Store) items(ctx context.Context, purchaseOrderID string) ([]models.PurchaseOrderItem, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, purchase_order_id, description, quantity, unit, unit_price, total_price, category
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY position`, purchaseOrderID)
	if err != nil {
		return nil, mapError("listing purchase order items", err)
	}
	defer rows.Close()

	items := []models.PurchaseOrderItem{}
	for rows.Next() {
		var it models.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.Description, &it.Quantity, &it.Unit,
			&it.UnitPrice, &it.TotalPrice, &it.Category); err != nil {
			return nil, mapError("scanning purchase order item", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListPurchaseOrders returns orders with their items, newest first.
func (s *Store) ListPurchaseOrders(ctx context.Context, f models.PurchaseOrderFilter) ([]models.PurchaseOrder, error) {
	var w where
	w.add("po.project_id = ?", f.ProjectID)
	if f.Status != "" {
		w.add("po.status = ?", f.Status)
	}
	if f.VendorID != "" {
		w.add("po.vendor_id = ?", f.VendorID)
	}
	if f.Search != "" {
		p := searchPattern(f.Search)
		w.add("(po.po_number ILIKE ? OR po.description ILIKE ? OR v.name ILIKE ?)", p, p, p)
	}

	rows, err := s.q.Query(ctx, purchaseOrderSelectQuery+w.String()+" ORDER BY po.created_at DESC, po.po_number DESC", w.args...)
	if err != nil {
		return nil, mapError("listing purchase orders", err)
	}
	orders := []models.PurchaseOrder{}
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, mapError("scanning purchase order", err)
		}
		orders = append(orders, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError("listing purchase orders", err)
	}

	for i := range orders {
		if orders[i].Items, err = s.items(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// SavePurchaseOrder updates po only while its stored status is expected.
func (s *Store) SavePurchaseOrder(ctx context.Context, po *models.PurchaseOrder, expected models.PurchaseOrderStatus, replaceItems bool) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE purchase_orders SET vendor_id = $1, description = $2, category = $3, total_amount = $4,
			currency = $5, status = $6, approved_by = $7, approved_at = $8, notes = $9, updated_at = $10
		WHERE project_id = $11 AND id = $12 AND status = $13`,
		po.VendorID, po.Description, po.Category, po.TotalAmount, po.Currency, po.Status, po.ApprovedBy,
		po.ApprovedAt, po.Notes, po.UpdatedAt, po.ProjectID, po.ID, expected)
	if err != nil {
		return mapError("updating purchase order", err)
	}
	if tag.RowsAffected() == 0 {
		return s.missingOrStale(ctx, "purchase_orders", "purchase order", po.ProjectID, po.ID)
	}
	if !replaceItems {
		return nil
	}
	if _, err := s.q.Exec(ctx, "DELETE FROM purchase_order_items WHERE purchase_order_id = $1", po.ID); err != nil {
		return mapError("replacing purchase order items", err)
	}
	return s.insertItems(ctx, po)
}

// missingOrStale explains a conditional update that touched no row.
func (s *Store) missingOrStale(ctx context.Context, table, entity, projectID, id string) error {
	var exists bool
	err := s.q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE project_id = $1 AND id = $2)", projectID, id).Scan(&exists)
	if err != nil {
		return mapError("reading "+entity, err)
	}
	if !exists {
		return models.NotFound(entity)
	}
	return models.ErrInvalidState
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, projectID, id string) error {
	tag, err := s.q.Exec(ctx, "DELETE FROM purchase_orders WHERE project_id = $1 AND id = $2", projectID, id)
	if err != nil {
		return mapError("deleting purchase order", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("purchase order")
	}
	return nil
}

func (s *Store) CountPurchaseOrderInvoices(ctx context.Context, purchaseOrderID string) (int, error) {
	var n int
	if err := s.q.QueryRow(ctx, "SELECT COUNT(*) FROM invoices WHERE purchase_order_id = $1", purchaseOrderID).Scan(&n); err != nil {
		return 0, mapError("counting purchase order invoices", err)
	}
	return n, nil
}
