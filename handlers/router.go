package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/satheeshds/buildledger/internal/auth"
	"github.com/satheeshds/buildledger/internal/logger"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the HTTP concerns that sit in front of the handlers.
type RouterConfig struct {
	// Auth validates bearer tokens. Nil injects DevSession into every request.
	Auth           *auth.Authenticator
	DevSession     auth.Session
	RequestTimeout time.Duration
}

// NewRouter mounts the API, health check and Swagger UI.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Use(auth.Middleware(cfg.Auth, cfg.DevSession, writeAuthError))

		r.Route("/developer-dashboard", func(r chi.Router) {
			// Vendors
			r.Get("/vendors", h.ListVendors)
			r.Post("/vendors", h.CreateVendor)
			r.Get("/vendors/{id}", h.GetVendor)
			r.Patch("/vendors/{id}", h.UpdateVendor)
			r.Delete("/vendors/{id}", h.DeleteVendor)

			// Projects
			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Route("/projects/{projectId}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Patch("/", h.UpdateProjectBudget)
				r.Get("/dashboard", h.GetDashboard)
				r.Get("/expenses", h.ListProjectExpenses)
				r.Get("/spend-report", h.GetSpendReport)

				// Purchase orders
				r.Get("/purchase-orders", h.ListPurchaseOrders)
				r.Post("/purchase-orders", h.CreatePurchaseOrder)
				r.Get("/purchase-orders/{id}", h.GetPurchaseOrder)
				r.Patch("/purchase-orders/{id}", h.UpdatePurchaseOrder)
				r.Delete("/purchase-orders/{id}", h.DeletePurchaseOrder)
				r.Post("/purchase-orders/{id}/submit", h.SubmitPurchaseOrder)
				r.Post("/purchase-orders/{id}/approve", h.ApprovePurchaseOrder)
				r.Post("/purchase-orders/{id}/reject", h.RejectPurchaseOrder)
				r.Post("/purchase-orders/{id}/close", h.ClosePurchaseOrder)

				// Invoices
				r.Get("/invoices", h.ListInvoices)
				r.Post("/invoices", h.CreateInvoice)
				r.Get("/invoices/summary", h.GetInvoiceSummary)
				r.Get("/invoices/{id}", h.GetInvoice)
				r.Patch("/invoices/{id}", h.UpdateInvoice)
				r.Delete("/invoices/{id}", h.DeleteInvoice)
				r.Post("/invoices/{id}/approve", h.ApproveInvoice)
				r.Post("/invoices/{id}/reject", h.RejectInvoice)
				r.Post("/invoices/{id}/mark-as-paid", h.MarkInvoicePaid)
				r.Get("/invoices/{id}/attachments", h.ListInvoiceAttachments)
			})
		})

		r.Route("/storage", func(r chi.Router) {
			r.Post("/upload-invoice-attachment", h.UploadInvoiceAttachment)
			r.Get("/quota", h.GetStorageQuota)
			r.Get("/files/*", h.ServeFile)
			r.Delete("/files/*", h.DeleteFile)
		})
	})

	return r
}
