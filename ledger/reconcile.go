package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/models"
)

// Reconciler turns a paid invoice into a project expense and adds it to the project's
// actual spend.
type Reconciler struct {
	*core
}

// Reconcile must run inside the transaction that moves inv to paid, so that a failure
// here leaves the invoice approved.
func (r *Reconciler) Reconcile(ctx context.Context, tx Store, actor Actor, inv models.Invoice) (models.Expense, error) {
	if inv.Status != models.InvoicePaid {
		return models.Expense{}, &models.StateError{Entity: "invoice", ID: inv.ID, From: string(inv.Status), Action: "reconcile"}
	}
	if inv.PaidDate == nil || inv.PaymentMethod == nil {
		return models.Expense{}, models.NewValidationError("paymentMethod", "paid invoices need a payment method and date")
	}
	e := models.Expense{
		ID:               uuid.NewString(),
		ProjectID:        inv.ProjectID,
		InvoiceID:        inv.ID,
		VendorID:         inv.VendorID,
		Description:      fmt.Sprintf("%s: %s", inv.InvoiceNumber, inv.Description),
		Category:         inv.Category,
		Amount:           inv.Amount,
		Currency:         inv.Currency,
		PaymentDate:      *inv.PaidDate,
		PaymentMethod:    *inv.PaymentMethod,
		PaymentReference: inv.PaymentReference,
		CreatedBy:        actor.UserID,
		CreatedAt:        r.now(),
	}
	if err := tx.CreateExpense(ctx, &e); err != nil {
		return models.Expense{}, fmt.Errorf("recording expense for %s: %w", inv.InvoiceNumber, err)
	}
	if err := tx.AddProjectSpend(ctx, inv.ProjectID, inv.Amount); err != nil {
		return models.Expense{}, fmt.Errorf("updating spend for project %s: %w", inv.ProjectID, err)
	}
	return e, nil
}
