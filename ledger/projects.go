package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/models"
)

// ProjectBook owns projects and their budgets.
type ProjectBook struct {
	*core
}

func (b *ProjectBook) Create(ctx context.Context, actor Actor, in models.ProjectInput) (models.Project, error) {
	if err := in.Validate(); err != nil {
		return models.Project{}, err
	}
	now := b.now()
	p := models.Project{
		ID:        uuid.NewString(),
		TenantID:  actor.TenantID,
		Name:      in.Name,
		Currency:  in.Currency,
		Budget:    in.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.store.CreateProject(ctx, &p); err != nil {
		return models.Project{}, err
	}
	return b.Get(ctx, actor, p.ID)
}

func (b *ProjectBook) Get(ctx context.Context, actor Actor, id string) (models.Project, error) {
	p, err := b.store.GetProject(ctx, actor.TenantID, id)
	if err != nil {
		return models.Project{}, err
	}
	p.RemainingBudget = p.Budget - p.ActualSpend
	return p, nil
}

func (b *ProjectBook) List(ctx context.Context, actor Actor) ([]models.Project, error) {
	projects, err := b.store.ListProjects(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].RemainingBudget = projects[i].Budget - projects[i].ActualSpend
	}
	return projects, nil
}

// UpdateBudget sets the project's budget. Actual spend is left untouched.
func (b *ProjectBook) UpdateBudget(ctx context.Context, actor Actor, id string, in models.BudgetInput) (models.Project, error) {
	if err := in.Validate(); err != nil {
		return models.Project{}, err
	}
	if err := b.store.SaveProjectBudget(ctx, actor.TenantID, id, in.Budget); err != nil {
		return models.Project{}, err
	}
	return b.Get(ctx, actor, id)
}

// Expenses lists the project's recorded expenses, newest payment first.
func (b *ProjectBook) Expenses(ctx context.Context, actor Actor, id string) ([]models.Expense, error) {
	if _, err := b.store.GetProject(ctx, actor.TenantID, id); err != nil {
		return nil, err
	}
	return b.store.ListExpenses(ctx, id)
}
