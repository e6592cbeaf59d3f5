package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/buildledger/models"
	"github.com/satheeshds/buildledger/report"
)

// ListProjects lists the tenant's projects
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Project}
// @Router       /developer-dashboard/projects [get]
// @Security     BearerAuth
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Ledger.Projects.List(r.Context(), actor(r))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject retrieves a project with its budget position
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  Response{data=models.Project}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId} [get]
// @Security     BearerAuth
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Ledger.Projects.Get(r.Context(), actor(r), chi.URLParam(r, "projectId"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProject creates a project
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project  body      models.ProjectInput  true  "Project details"
// @Success      201      {object}  Response{data=models.Project}
// @Failure      400      {object}  Response{error=string}
// @Router       /developer-dashboard/projects [post]
// @Security     BearerAuth
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input models.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.Ledger.Projects.Create(r.Context(), actor(r), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProjectBudget changes a project's budget
// @Summary      Update project budget
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectId  path      string              true  "Project ID"
// @Param        budget     body      models.BudgetInput  true  "New budget"
// @Success      200        {object}  Response{data=models.Project}
// @Failure      400        {object}  Response{error=string}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId} [patch]
// @Security     BearerAuth
func (h *Handler) UpdateProjectBudget(w http.ResponseWriter, r *http.Request) {
	var input models.BudgetInput
	if !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.Ledger.Projects.UpdateBudget(r.Context(), actor(r), chi.URLParam(r, "projectId"), input)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListProjectExpenses lists the expenses recorded against a project
// @Summary      List project expenses
// @Description  Expenses are created when invoices are marked as paid, newest payment first.
// @Tags         projects
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  Response{data=[]models.Expense}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/expenses [get]
// @Security     BearerAuth
func (h *Handler) ListProjectExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Ledger.Projects.Expenses(r.Context(), actor(r), chi.URLParam(r, "projectId"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// GetSpendReport aggregates a project's expenses
// @Summary      Project spend report
// @Description  Spend by category and by payment month, with budget utilisation.
// @Tags         projects
// @Produce      json
// @Param        projectId  path      string  true  "Project ID"
// @Success      200        {object}  Response{data=report.SpendReport}
// @Failure      404        {object}  Response{error=string}
// @Router       /developer-dashboard/projects/{projectId}/spend-report [get]
// @Security     BearerAuth
func (h *Handler) GetSpendReport(w http.ResponseWriter, r *http.Request) {
	a := actor(r)
	projectID := chi.URLParam(r, "projectId")
	p, err := h.Ledger.Projects.Get(r.Context(), a, projectID)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	expenses, err := h.Ledger.Projects.Expenses(r.Context(), a, projectID)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	rep, err := report.Build(r.Context(), p, expenses)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
