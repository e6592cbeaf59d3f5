package db

import (
	"context"

	"github.com/satheeshds/buildledger/models"
)

const projectSelectQuery = `SELECT id, tenant_id, name, currency, budget, actual_spend, created_at, updated_at
		FROM projects`

func scanProject(row scanner) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Currency, &p.Budget, &p.ActualSpend, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO projects (id, tenant_id, name, currency, budget, actual_spend, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)`,
		p.ID, p.TenantID, p.Name, p.Currency, p.Budget, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapError("creating project", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, tenantID, id string) (models.Project, error) {
	p, err := scanProject(s.q.QueryRow(ctx, projectSelectQuery+" WHERE tenant_id = $1 AND id = $2", tenantID, id))
	if err != nil {
		return models.Project{}, notFound("project", err)
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, tenantID string) ([]models.Project, error) {
	rows, err := s.q.Query(ctx, projectSelectQuery+" WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, mapError("listing projects", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, mapError("scanning project", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) SaveProjectBudget(ctx context.Context, tenantID, id string, budget models.Money) error {
	tag, err := s.q.Exec(ctx,
		"UPDATE projects SET budget = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3",
		budget, tenantID, id)
	if err != nil {
		return mapError("updating budget", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("project")
	}
	return nil
}

func (s *Store) AddProjectSpend(ctx context.Context, projectID string, amount models.Money) error {
	tag, err := s.q.Exec(ctx,
		"UPDATE projects SET actual_spend = actual_spend + $1, updated_at = now() WHERE id = $2",
		amount, projectID)
	if err != nil {
		return mapError("updating actual spend", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("project")
	}
	return nil
}

// LockProject takes a transaction-scoped advisory lock keyed by the project id.
func (s *Store) LockProject(ctx context.Context, projectID string) error {
	if _, err := s.q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", projectID); err != nil {
		return mapError("locking project", err)
	}
	return nil
}
