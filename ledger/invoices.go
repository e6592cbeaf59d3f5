package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/models"
)

// InvoiceLedger owns invoices and enforces their status machine:
// pending -> approved -> paid, pending -> rejected.
type InvoiceLedger struct {
	*core
	reconciler *Reconciler
}

// Create records a pending invoice numbered INV-<year>-<seq> within the project.
func (l *InvoiceLedger) Create(ctx context.Context, actor Actor, projectID string, in models.InvoiceInput) (models.Invoice, error) {
	var inv models.Invoice
	err := l.store.WithTx(ctx, func(tx Store) error {
		project, err := tx.GetProject(ctx, actor.TenantID, projectID)
		if err != nil {
			return err
		}
		if err := in.Validate(project.Currency); err != nil {
			return err
		}
		if err := l.checkInvoiceInput(ctx, tx, actor, project, &in); err != nil {
			return err
		}
		files, err := l.describe(ctx, tx, actor, in.AttachmentPaths)
		if err != nil {
			return err
		}
		if err := tx.LockProject(ctx, projectID); err != nil {
			return err
		}
		now := l.now()
		inv = models.Invoice{
			ID:            uuid.NewString(),
			InvoiceNumber: l.nextNumber(ctx, tx, projectID, now.Year()),
			ProjectID:     projectID,
			Status:        models.InvoicePending,
			CreatedBy:     actor.UserID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		inv.Apply(in)
		for _, f := range files {
			inv.Attachments = append(inv.Attachments, models.InvoiceAttachment{
				ID:         uuid.NewString(),
				InvoiceID:  inv.ID,
				Path:       f.Path,
				FileName:   f.FileName,
				FileSize:   f.Size,
				MimeType:   f.ContentType,
				UploadedBy: actor.UserID,
				UploadedAt: now,
			})
		}
		return tx.CreateInvoice(ctx, &inv)
	})
	if err != nil {
		return models.Invoice{}, err
	}
	log := logger.WithComponent("invoices")
	log.Info().Str("invoice_number", inv.InvoiceNumber).Str("project_id", projectID).Int64("amount", int64(inv.Amount)).Msg("invoice created")
	return l.get(ctx, projectID, inv.ID)
}

// nextNumber falls back to the first number of the year when existing numbers cannot be read.
func (l *InvoiceLedger) nextNumber(ctx context.Context, tx Store, projectID string, year int) string {
	existing, err := tx.InvoiceNumbers(ctx, projectID, yearPrefix(invoicePrefix, year))
	if err != nil {
		log := logger.WithComponent("invoices")
		log.Warn().Err(err).Str("project_id", projectID).Msg("reading invoice numbers failed, starting sequence at 001")
		existing = nil
	}
	return NextDocumentNumber(invoicePrefix, year, existing)
}

// checkInvoiceInput validates references against the project. An invoice against a
// purchase order inherits the order's vendor when none is given.
func (l *InvoiceLedger) checkInvoiceInput(ctx context.Context, tx Store, actor Actor, project models.Project, in *models.InvoiceInput) error {
	if in.Currency != project.Currency {
		return models.NewValidationError("currency", fmt.Sprintf("currency must match the project currency %s", project.Currency))
	}
	if in.PurchaseOrderID != nil {
		po, err := tx.GetPurchaseOrder(ctx, project.ID, *in.PurchaseOrderID)
		if err != nil {
			if isNotFound(err) {
				return models.NewValidationError("purchaseOrderId", "unknown purchase order")
			}
			return err
		}
		if in.VendorID == nil {
			in.VendorID = po.VendorID
		}
	}
	_, err := usableVendor(ctx, tx, actor.TenantID, in.VendorID)
	return err
}

// describe resolves the uploaded files to bind. Each file belongs to at most one invoice.
func (l *InvoiceLedger) describe(ctx context.Context, tx Store, actor Actor, paths []string) ([]models.StoredFile, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if l.files == nil {
		return nil, models.NewValidationError("attachmentPaths", "attachments are not supported")
	}
	files := make([]models.StoredFile, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for i, p := range paths {
		field := fmt.Sprintf("attachmentPaths[%d]", i)
		f, err := l.files.Describe(ctx, actor.TenantID, p)
		if err != nil {
			return nil, models.NewValidationError(field, err.Error())
		}
		if seen[f.Path] {
			return nil, models.NewValidationError(field, "file is listed more than once")
		}
		seen[f.Path] = true
		inUse, err := tx.AttachmentInUse(ctx, f.Path)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, models.NewValidationError(field, "file is already attached to another invoice")
		}
		files = append(files, f)
	}
	return files, nil
}

// DiscardUpload deletes an uploaded file that no invoice holds and releases its quota.
// Attached files go away with their invoice.
func (l *InvoiceLedger) DiscardUpload(ctx context.Context, actor Actor, path string) error {
	if l.files == nil {
		return models.NotFound("file")
	}
	f, err := l.files.Describe(ctx, actor.TenantID, path)
	if err != nil {
		return err
	}
	inUse, err := l.store.AttachmentInUse(ctx, f.Path)
	if err != nil {
		return err
	}
	if inUse {
		return models.Conflict("file is attached to an invoice; delete the invoice to remove it")
	}
	if err := l.files.Remove(ctx, actor.TenantID, f.Path); err != nil {
		return err
	}
	log := logger.WithComponent("invoices")
	log.Info().Str("tenant_id", actor.TenantID).Str("path", f.Path).Msg("unattached upload discarded")
	return nil
}

func (l *InvoiceLedger) Get(ctx context.Context, actor Actor, projectID, id string) (models.Invoice, error) {
	if _, err := l.store.GetProject(ctx, actor.TenantID, projectID); err != nil {
		return models.Invoice{}, err
	}
	return l.get(ctx, projectID, id)
}

func (l *InvoiceLedger) get(ctx context.Context, projectID, id string) (models.Invoice, error) {
	inv, err := l.store.GetInvoice(ctx, projectID, id)
	if err != nil {
		return models.Invoice{}, err
	}
	for i := range inv.Attachments {
		inv.Attachments[i].Present()
	}
	return inv, nil
}

// List yields the project's invoices matching f, newest first. The sequence stops at the
// first error.
func (l *InvoiceLedger) List(ctx context.Context, actor Actor, projectID string, f models.InvoiceFilter) iter.Seq2[models.Invoice, error] {
	return func(yield func(models.Invoice, error) bool) {
		if _, err := l.store.GetProject(ctx, actor.TenantID, projectID); err != nil {
			yield(models.Invoice{}, err)
			return
		}
		f.ProjectID = projectID
		for inv, err := range l.store.Invoices(ctx, f) {
			if !yield(inv, err) || err != nil {
				return
			}
		}
	}
}

// Summary aggregates the project's invoices by status.
func (l *InvoiceLedger) Summary(ctx context.Context, actor Actor, projectID string) (models.InvoiceSummary, error) {
	s := models.InvoiceSummary{ByStatus: map[models.InvoiceStatus]models.StatusTotal{}}
	for inv, err := range l.List(ctx, actor, projectID, models.InvoiceFilter{}) {
		if err != nil {
			return models.InvoiceSummary{}, err
		}
		s.Add(inv)
	}
	return s, nil
}

// Attachments lists the files bound to an invoice.
func (l *InvoiceLedger) Attachments(ctx context.Context, actor Actor, projectID, id string) ([]models.InvoiceAttachment, error) {
	if _, err := l.Get(ctx, actor, projectID, id); err != nil {
		return nil, err
	}
	atts, err := l.store.InvoiceAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range atts {
		atts[i].Present()
	}
	return atts, nil
}

// Update edits a pending invoice. Status changes only through the transition actions.
func (l *InvoiceLedger) Update(ctx context.Context, actor Actor, projectID, id string, patch models.InvoicePatch) (models.Invoice, error) {
	err := l.store.WithTx(ctx, func(tx Store) error {
		project, err := tx.GetProject(ctx, actor.TenantID, projectID)
		if err != nil {
			return err
		}
		inv, err := tx.GetInvoice(ctx, projectID, id)
		if err != nil {
			return err
		}
		if inv.Status != models.InvoicePending {
			return &models.StateError{Entity: "invoice", ID: id, From: string(inv.Status), Action: "edit"}
		}
		in := inv.Input()
		patch.ApplyTo(&in)
		if err := in.Validate(project.Currency); err != nil {
			return err
		}
		if err := l.checkInvoiceInput(ctx, tx, actor, project, &in); err != nil {
			return err
		}
		inv.Apply(in)
		inv.UpdatedAt = l.now()
		if err := tx.SaveInvoice(ctx, &inv, models.InvoicePending); err != nil {
			if errors.Is(err, models.ErrInvalidState) {
				return &models.StateError{Entity: "invoice", ID: id, From: string(models.InvoicePending), Action: "edit"}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	return l.get(ctx, projectID, id)
}

func (l *InvoiceLedger) Approve(ctx context.Context, actor Actor, projectID, id string) (models.Invoice, error) {
	if !actor.CanApprove() {
		return models.Invoice{}, models.Forbidden("approving invoices requires an approver role")
	}
	return l.transition(ctx, actor, projectID, id, models.InvoiceApproved, "approve", func(inv *models.Invoice) {
		now := l.now()
		inv.ApprovedBy = &actor.UserID
		inv.ApprovedAt = &now
	}, nil)
}

// Reject records the optional reason in the invoice notes.
func (l *InvoiceLedger) Reject(ctx context.Context, actor Actor, projectID, id string, reason *string) (models.Invoice, error) {
	if !actor.CanApprove() {
		return models.Invoice{}, models.Forbidden("rejecting invoices requires an approver role")
	}
	return l.transition(ctx, actor, projectID, id, models.InvoiceRejected, "reject", func(inv *models.Invoice) {
		inv.AppendNote(rejectionNote(reason))
	}, nil)
}

// MarkAsPaid settles an approved invoice and records the matching project expense in the
// same transaction. Paying an invoice twice fails with a StateError.
func (l *InvoiceLedger) MarkAsPaid(ctx context.Context, actor Actor, projectID, id string, in models.PaymentInput) (models.Invoice, error) {
	if err := in.Validate(l.now()); err != nil {
		return models.Invoice{}, err
	}
	return l.transition(ctx, actor, projectID, id, models.InvoicePaid, "mark as paid", func(inv *models.Invoice) {
		inv.PaidDate = in.PaidDate
		inv.PaymentMethod = &in.PaymentMethod
		inv.PaymentReference = in.PaymentReference
		if in.Notes != nil {
			inv.AppendNote(*in.Notes)
		}
	}, func(tx Store, inv models.Invoice) error {
		_, err := l.reconciler.Reconcile(ctx, tx, actor, inv)
		return err
	})
}

// transition moves the invoice to status to. The write is conditional on the status read,
// so a concurrent transition makes this one fail. after runs inside the same transaction.
func (l *InvoiceLedger) transition(ctx context.Context, actor Actor, projectID, id string, to models.InvoiceStatus, action string,
	mutate func(*models.Invoice), after func(tx Store, inv models.Invoice) error) (models.Invoice, error) {
	var inv models.Invoice
	err := l.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetProject(ctx, actor.TenantID, projectID); err != nil {
			return err
		}
		var err error
		inv, err = tx.GetInvoice(ctx, projectID, id)
		if err != nil {
			return err
		}
		from := inv.Status
		if !from.CanTransitionTo(to) {
			return &models.StateError{Entity: "invoice", ID: id, From: string(from), Action: action}
		}
		inv.Status = to
		inv.UpdatedAt = l.now()
		mutate(&inv)
		if err := tx.SaveInvoice(ctx, &inv, from); err != nil {
			if errors.Is(err, models.ErrInvalidState) {
				return &models.StateError{Entity: "invoice", ID: id, From: string(from), Action: action}
			}
			return err
		}
		if after != nil {
			return after(tx, inv)
		}
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	log := logger.WithComponent("invoices")
	log.Info().Str("invoice_number", inv.InvoiceNumber).Str("status", string(to)).Str("user_id", actor.UserID).Msg("invoice " + action)
	return l.get(ctx, projectID, id)
}

// Delete removes an unpaid invoice with its attachments. Stored files are removed after
// the rows are gone; a failed file removal is logged, not returned.
func (l *InvoiceLedger) Delete(ctx context.Context, actor Actor, projectID, id string) error {
	var atts []models.InvoiceAttachment
	err := l.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetProject(ctx, actor.TenantID, projectID); err != nil {
			return err
		}
		inv, err := tx.GetInvoice(ctx, projectID, id)
		if err != nil {
			return err
		}
		if inv.Status == models.InvoicePaid {
			return models.Forbidden("paid invoices cannot be deleted")
		}
		atts = inv.Attachments
		if err := tx.DeleteInvoice(ctx, projectID, id); err != nil {
			if errors.Is(err, models.ErrInvalidState) {
				return models.Forbidden("paid invoices cannot be deleted")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	if l.files == nil {
		return nil
	}
	log := logger.WithComponent("invoices")
	for _, a := range atts {
		if err := l.files.Remove(ctx, actor.TenantID, a.Path); err != nil {
			log.Warn().Err(err).Str("path", a.Path).Msg("removing attachment file failed")
		}
	}
	return nil
}

func rejectionNote(reason *string) string {
	if reason == nil || *reason == "" {
		return "Rejected"
	}
	return "Rejected: " + *reason
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
