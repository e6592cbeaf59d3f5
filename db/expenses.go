package db

import (
	"context"

	"github.com/satheeshds/buildledger/models"
)

// CreateExpense relies on the unique invoice_id index to refuse a second expense.
func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	date, err := models.ParseDate(e.PaymentDate)
	if err != nil {
		return models.NewValidationError("paymentDate", "paymentDate must be YYYY-MM-DD")
	}
	_, err = s.q.Exec(ctx,
		`INSERT INTO expenses (id, project_id, invoice_id, vendor_id, description, category, amount, currency,
			payment_date, payment_method, payment_reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.ProjectID, e.InvoiceID, e.VendorID, e.Description, e.Category, e.Amount, e.Currency,
		date, e.PaymentMethod, e.PaymentReference, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return mapError("creating expense", err)
	}
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, projectID string) ([]models.Expense, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, project_id, invoice_id, vendor_id, description, category, amount, currency,
			to_char(payment_date, 'YYYY-MM-DD'), payment_method, payment_reference, created_by, created_at
		FROM expenses WHERE project_id = $1
		ORDER BY payment_date DESC, created_at DESC`, projectID)
	if err != nil {
		return nil, mapError("listing expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.InvoiceID, &e.VendorID, &e.Description, &e.Category,
			&e.Amount, &e.Currency, &e.PaymentDate, &e.PaymentMethod, &e.PaymentReference, &e.CreatedBy,
			&e.CreatedAt); err != nil {
			return nil, mapError("scanning expense", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
