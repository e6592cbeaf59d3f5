package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/models"
)

// PurchaseOrderLedger owns purchase orders and their approval workflow. It does not
// react to invoice activity.
type PurchaseOrderLedger struct {
	*core
}

func (l *PurchaseOrderLedger) Create(ctx context.Context, actor Actor, projectID string, in models.PurchaseOrderInput) (models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := l.store.WithTx(ctx, func(tx Store) error {
		project, err := tx.GetProject(ctx, actor.TenantID, projectID)
		if err != nil {
			return err
		}
		if err := in.Validate(project.Currency); err != nil {
			return err
		}
		if _, err := usableVendor(ctx, tx, actor.TenantID, in.VendorID); err != nil {
			return err
		}
		if err := tx.LockProject(ctx, projectID); err != nil {
			return err
		}
		now := l.now()
		po = models.PurchaseOrder{
			ID:          uuid.NewString(),
			PONumber:    l.nextNumber(ctx, tx, projectID, now.Year()),
			ProjectID:   projectID,
			Status:      in.Status,
			RequestedBy: actor.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		applyPurchaseOrderInput(&po, in)
		return tx.CreatePurchaseOrder(ctx, &po)
	})
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	return l.store.GetPurchaseOrder(ctx, projectID, po.ID)
}

func (l *PurchaseOrderLedger) nextNumber(ctx context.Context, tx Store, projectID string, year int) string {
	existing, err := tx.PurchaseOrderNumbers(ctx, projectID, yearPrefix(purchaseOrderPrefix, year))
	if err != nil {
		log := logger.WithComponent("purchase_orders")
		log.Warn().Err(err).Str("project_id", projectID).Msg("reading purchase order numbers failed, starting sequence at 001")
		existing = nil
	}
	return NextDocumentNumber(purchaseOrderPrefix, year, existing)
}

func (l *PurchaseOrderLedger) Get(ctx context.Context, actor Actor, projectID, id string) (models.PurchaseOrder, error) {
	if _, err := l.store.GetProject(ctx, actor.TenantID, projectID); err != nil {
		return models.PurchaseOrder{}, err
	}
	return l.store.GetPurchaseOrder(ctx, projectID, id)
}

func (l *PurchaseOrderLedger) List(ctx context.Context, actor Actor, projectID string, f models.PurchaseOrderFilter) ([]models.PurchaseOrder, error) {
	if _, err := l.store.GetProject(ctx, actor.TenantID, projectID); err != nil {
		return nil, err
	}
	f.ProjectID = projectID
	return l.store.ListPurchaseOrders(ctx, f)
}

// Update edits any purchase order that is not closed. Supplying items replaces every line.
func (l *PurchaseOrderLedger) Update(ctx context.Context, actor Actor, projectID, id string, patch models.PurchaseOrderPatch) (models.PurchaseOrder, error) {
	err := l.store.WithTx(ctx, func(tx Store) error {
		project, err := tx.GetProject(ctx, actor.TenantID, projectID)
		if err != nil {
			return err
		}
		po, err := tx.GetPurchaseOrder(ctx, projectID, id)
		if err != nil {
			return err
		}
		if po.Status == models.PurchaseOrderClosed {
			return &models.StateError{Entity: "purchase order", ID: id, From: string(po.Status), Action: "edit"}
		}
		in := po.Input()
		patch.ApplyTo(&in)
		if err := in.Validate(project.Currency); err != nil {
			return err
		}
		if _, err := usableVendor(ctx, tx, actor.TenantID, in.VendorID); err != nil {
			return err
		}
		applyPurchaseOrderInput(&po, in)
		po.UpdatedAt = l.now()
		if err := tx.SavePurchaseOrder(ctx, &po, po.Status, patch.Items != nil); err != nil {
			if errors.Is(err, models.ErrInvalidState) {
				return &models.StateError{Entity: "purchase order", ID: id, From: string(po.Status), Action: "edit"}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	return l.store.GetPurchaseOrder(ctx, projectID, id)
}

// Submit moves a draft to pending.
func (l *PurchaseOrderLedger) Submit(ctx context.Context, actor Actor, projectID, id string) (models.PurchaseOrder, error) {
	return l.transition(ctx, actor, projectID, id, models.PurchaseOrderPending, "submit", nil)
}

func (l *PurchaseOrderLedger) Approve(ctx context.Context, actor Actor, projectID, id string) (models.PurchaseOrder, error) {
	if !actor.CanApprove() {
		return models.PurchaseOrder{}, models.Forbidden("approving purchase orders requires an approver role")
	}
	return l.transition(ctx, actor, projectID, id, models.PurchaseOrderApproved, "approve", func(po *models.PurchaseOrder) {
		now := l.now()
		po.ApprovedBy = &actor.UserID
		po.ApprovedAt = &now
	})
}

// Reject records the optional reason in the purchase order notes.
func (l *PurchaseOrderLedger) Reject(ctx context.Context, actor Actor, projectID, id string, reason *string) (models.PurchaseOrder, error) {
	if !actor.CanApprove() {
		return models.PurchaseOrder{}, models.Forbidden("rejecting purchase orders requires an approver role")
	}
	return l.transition(ctx, actor, projectID, id, models.PurchaseOrderRejected, "reject", func(po *models.PurchaseOrder) {
		po.AppendNote(rejectionNote(reason))
	})
}

// Close marks an approved purchase order as fully invoiced.
func (l *PurchaseOrderLedger) Close(ctx context.Context, actor Actor, projectID, id string) (models.PurchaseOrder, error) {
	return l.transition(ctx, actor, projectID, id, models.PurchaseOrderClosed, "close", nil)
}

func (l *PurchaseOrderLedger) transition(ctx context.Context, actor Actor, projectID, id string, to models.PurchaseOrderStatus, action string, mutate func(*models.PurchaseOrder)) (models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := l.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetProject(ctx, actor.TenantID, projectID); err != nil {
			return err
		}
		var err error
		po, err = tx.GetPurchaseOrder(ctx, projectID, id)
		if err != nil {
			return err
		}
		from := po.Status
		if !from.CanTransitionTo(to) {
			return &models.StateError{Entity: "purchase order", ID: id, From: string(from), Action: action}
		}
		po.Status = to
		po.UpdatedAt = l.now()
		if mutate != nil {
			mutate(&po)
		}
		if err := tx.SavePurchaseOrder(ctx, &po, from, false); err != nil {
			if errors.Is(err, models.ErrInvalidState) {
				return &models.StateError{Entity: "purchase order", ID: id, From: string(from), Action: action}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	log := logger.WithComponent("purchase_orders")
	log.Info().Str("po_number", po.PONumber).Str("status", string(to)).Str("user_id", actor.UserID).Msg("purchase order " + action)
	return l.store.GetPurchaseOrder(ctx, projectID, id)
}

// Delete removes a purchase order no invoice references.
func (l *PurchaseOrderLedger) Delete(ctx context.Context, actor Actor, projectID, id string) error {
	return l.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetProject(ctx, actor.TenantID, projectID); err != nil {
			return err
		}
		if _, err := tx.GetPurchaseOrder(ctx, projectID, id); err != nil {
			return err
		}
		n, err := tx.CountPurchaseOrderInvoices(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return models.Conflict(fmt.Sprintf("purchase order is referenced by %d invoices", n))
		}
		return tx.DeletePurchaseOrder(ctx, projectID, id)
	})
}

func applyPurchaseOrderInput(po *models.PurchaseOrder, in models.PurchaseOrderInput) {
	po.VendorID = in.VendorID
	po.Description = in.Description
	po.Category = in.Category
	po.TotalAmount = in.TotalAmount
	po.Currency = in.Currency
	po.Notes = in.Notes
	po.Items = po.Items[:0:0]
	for _, it := range in.Items {
		po.Items = append(po.Items, models.PurchaseOrderItem{
			ID:              uuid.NewString(),
			PurchaseOrderID: po.ID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			UnitPrice:       it.UnitPrice,
			TotalPrice:      it.TotalPrice,
			Category:        it.Category,
		})
	}
}
