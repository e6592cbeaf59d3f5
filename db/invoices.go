package db

import (
	"context"
	"iter"

	"github.com/satheeshds/buildledger/models"
)

const invoiceSelectQuery = `SELECT i.id, i.invoice_number, i.project_id, i.purchase_order_id, i.vendor_id,
		i.description, i.category, i.amount, i.currency, i.status,
		to_char(i.due_date, 'YYYY-MM-DD'), to_char(i.paid_date, 'YYYY-MM-DD'),
		i.payment_method, i.payment_reference, i.approved_by, i.approved_at, i.notes, i.created_by,
		i.created_at, i.updated_at,
		v.name, po.po_number
		FROM invoices i
		LEFT JOIN vendors v ON i.vendor_id = v.id
		LEFT JOIN purchase_orders po ON i.purchase_order_id = po.id`

func scanInvoice(row scanner) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ProjectID, &inv.PurchaseOrderID, &inv.VendorID,
		&inv.Description, &inv.Category, &inv.Amount, &inv.Currency, &inv.Status,
		&inv.DueDate, &inv.PaidDate,
		&inv.PaymentMethod, &inv.PaymentReference, &inv.ApprovedBy, &inv.ApprovedAt, &inv.Notes, &inv.CreatedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
		&inv.VendorName, &inv.PurchaseOrderNumber)
	inv.Attachments = []models.InvoiceAttachment{}
	return inv, err
}

func (s *Store) InvoiceNumbers(ctx context.Context, projectID, prefix string) ([]string, error) {
	return s.numbers(ctx, "SELECT invoice_number FROM invoices WHERE project_id = $1 AND invoice_number LIKE $2", projectID, prefix)
}

func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	due, err := dateArg(inv.DueDate)
	if err != nil {
		return err
	}
	paid, err := dateArg(inv.PaidDate)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx,
		`INSERT INTO invoices (id, invoice_number, project_id, purchase_order_id, vendor_id, description, category,
			amount, currency, status, due_date, paid_date, payment_method, payment_reference, approved_by,
			approved_at, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		inv.ID, inv.InvoiceNumber, inv.ProjectID, inv.PurchaseOrderID, inv.VendorID, inv.Description, inv.Category,
		inv.Amount, inv.Currency, inv.Status, due, paid, inv.PaymentMethod, inv.PaymentReference, inv.ApprovedBy,
		inv.ApprovedAt, inv.Notes, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return mapError("creating invoice", err)
	}
	for _, a := range inv.Attachments {
		_, err := s.q.Exec(ctx,
			`INSERT INTO invoice_attachments (id, invoice_id, path, file_name, file_size, mime_type, uploaded_by, uploaded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, inv.ID, a.Path, a.FileName, a.FileSize, a.MimeType, a.UploadedBy, a.UploadedAt)
		if err != nil {
			return mapError("creating invoice attachment", err)
		}
	}
	return nil
}

func (s *Store) AttachmentInUse(ctx context.Context, path string) (bool, error) {
	var inUse bool
	err := s.q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM invoice_attachments WHERE path = $1)", path).Scan(&inUse)
	if err != nil {
		return false, mapError("checking attachment path", err)
	}
	return inUse, nil
}

func (s *Store) GetInvoice(ctx context.Context, projectID, id string) (models.Invoice, error) {
	inv, err := scanInvoice(s.q.QueryRow(ctx, invoiceSelectQuery+" WHERE i.project_id = $1 AND i.id = $2", projectID, id))
	if err != nil {
		return models.Invoice{}, notFound("invoice", err)
	}
	if inv.Attachments, err = s.InvoiceAttachments(ctx, inv.ID); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// Invoices streams matching invoices. The rows stay open until iteration ends.
func (s *Store) Invoices(ctx context.Context, f models.InvoiceFilter) iter.Seq2[models.Invoice, error] {
	return func(yield func(models.Invoice, error) bool) {
		var w where
		w.add("i.project_id = ?", f.ProjectID)
		if f.Status != "" {
			w.add("i.status = ?", f.Status)
		}
		if f.Category != "" {
			w.add("lower(i.category) = lower(?)", f.Category)
		}
		if f.Search != "" {
			p := searchPattern(f.Search)
			w.add("(i.invoice_number ILIKE ? OR i.description ILIKE ? OR v.name ILIKE ?)", p, p, p)
		}

		rows, err := s.q.Query(ctx, invoiceSelectQuery+w.String()+" ORDER BY i.created_at DESC, i.invoice_number DESC", w.args...)
		if err != nil {
			yield(models.Invoice{}, mapError("listing invoices", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			inv, err := scanInvoice(rows)
			if err != nil {
				yield(models.Invoice{}, mapError("scanning invoice", err))
				return
			}
			if !yield(inv, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Invoice{}, mapError("listing invoices", err))
		}
	}
}

// SaveInvoice updates inv only while its stored status is expected. Attachments are not
// touched.
func (s *Store) SaveInvoice(ctx context.Context, inv *models.Invoice, expected models.InvoiceStatus) error {
	due, err := dateArg(inv.DueDate)
	if err != nil {
		return err
	}
	paid, err := dateArg(inv.PaidDate)
	if err != nil {
		return err
	}
	tag, err := s.q.Exec(ctx,
		`UPDATE invoices SET purchase_order_id = $1, vendor_id = $2, description = $3, category = $4,
			amount = $5, currency = $6, status = $7, due_date = $8, paid_date = $9, payment_method = $10,
			payment_reference = $11, approved_by = $12, approved_at = $13, notes = $14, updated_at = $15
		WHERE project_id = $16 AND id = $17 AND status = $18`,
		inv.PurchaseOrderID, inv.VendorID, inv.Description, inv.Category, inv.Amount, inv.Currency,
		inv.Status, due, paid, inv.PaymentMethod, inv.PaymentReference, inv.ApprovedBy, inv.ApprovedAt,
		inv.Notes, inv.UpdatedAt, inv.ProjectID, inv.ID, expected)
	if err != nil {
		return mapError("updating invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return s.missingOrStale(ctx, "invoices", "invoice", inv.ProjectID, inv.ID)
	}
	return nil
}

// DeleteInvoice never removes a paid invoice; attachment rows cascade.
func (s *Store) DeleteInvoice(ctx context.Context, projectID, id string) error {
	tag, err := s.q.Exec(ctx, "DELETE FROM invoices WHERE project_id = $1 AND id = $2 AND status <> 'paid'", projectID, id)
	if err != nil {
		return mapError("deleting invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return s.missingOrStale(ctx, "invoices", "invoice", projectID, id)
	}
	return nil
}

func (s *Store) InvoiceAttachments(ctx context.Context, invoiceID string) ([]models.InvoiceAttachment, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, invoice_id, path, file_name, file_size, mime_type, uploaded_by, uploaded_at
		FROM invoice_attachments WHERE invoice_id = $1 ORDER BY uploaded_at, file_name`, invoiceID)
	if err != nil {
		return nil, mapError("listing invoice attachments", err)
	}
	defer rows.Close()

	atts := []models.InvoiceAttachment{}
	for rows.Next() {
		var a models.InvoiceAttachment
		if err := rows.Scan(&a.ID, &a.InvoiceID, &a.Path, &a.FileName, &a.FileSize, &a.MimeType,
			&a.UploadedBy, &a.UploadedAt); err != nil {
			return nil, mapError("scanning invoice attachment", err)
		}
		atts = append(atts, a)
	}
	return atts, rows.Err()
}
