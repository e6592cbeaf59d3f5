// Package report aggregates a project's expenses into a spend report using an
// in-memory DuckDB database.
package report

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/satheeshds/buildledger/models"
)

// CategoryTotal is the spend in one budget category.
type CategoryTotal struct {
	Category string       `json:"category"`
	Amount   models.Money `json:"amount"`
	Count    int          `json:"count"`
	Share    float64      `json:"share"` // percent of total spend
}

// MonthTotal is the spend paid in one calendar month (YYYY-MM).
type MonthTotal struct {
	Month  string       `json:"month"`
	Amount models.Money `json:"amount"`
	Count  int          `json:"count"`
}

// SpendReport summarizes actual spend against budget.
type SpendReport struct {
	ProjectID       string          `json:"projectId"`
	ProjectName     string          `json:"projectName"`
	Currency        string          `json:"currency"`
	Budget          models.Money    `json:"budget"`
	ActualSpend     models.Money    `json:"actualSpend"`
	RemainingBudget models.Money    `json:"remainingBudget"`
	Utilisation     float64         `json:"utilisation"` // percent of budget spent, 0 without a budget
	ExpenseCount    int             `json:"expenseCount"`
	ExpenseTotal    models.Money    `json:"expenseTotal"`
	ByCategory      []CategoryTotal `json:"byCategory"`
	ByMonth         []MonthTotal    `json:"byMonth"`
}

// Build loads expenses into a fresh DuckDB database and aggregates them.
func Build(ctx context.Context, project models.Project, expenses []models.Expense) (SpendReport, error) {
	r := SpendReport{
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		Currency:        project.Currency,
		Budget:          project.Budget,
		ActualSpend:     project.ActualSpend,
		RemainingBudget: project.Budget - project.ActualSpend,
		ByCategory:      []CategoryTotal{},
		ByMonth:         []MonthTotal{},
	}
	if project.Budget > 0 {
		r.Utilisation = float64(project.ActualSpend) / float64(project.Budget) * 100
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return SpendReport{}, fmt.Errorf("opening duckdb: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := load(ctx, db, expenses); err != nil {
		return SpendReport{}, err
	}

	err = db.QueryRowContext(ctx, "SELECT COUNT(*), CAST(COALESCE(SUM(amount), 0) AS BIGINT) FROM expenses").
		Scan(&r.ExpenseCount, &r.ExpenseTotal)
	if err != nil {
		return SpendReport{}, fmt.Errorf("totalling expenses: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT category, CAST(SUM(amount) AS BIGINT), COUNT(*)
		FROM expenses GROUP BY category ORDER BY 2 DESC, 1`)
	if err != nil {
		return SpendReport{}, fmt.Errorf("grouping by category: %w", err)
	}
	for rows.Next() {
		var c CategoryTotal
		if err := rows.Scan(&c.Category, &c.Amount, &c.Count); err != nil {
			rows.Close()
			return SpendReport{}, fmt.Errorf("scanning category: %w", err)
		}
		if r.ExpenseTotal > 0 {
			c.Share = float64(c.Amount) / float64(r.ExpenseTotal) * 100
		}
		r.ByCategory = append(r.ByCategory, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return SpendReport{}, err
	}

	rows, err = db.QueryContext(ctx, `SELECT strftime(payment_date, '%Y-%m') AS month, CAST(SUM(amount) AS BIGINT), COUNT(*)
		FROM expenses GROUP BY month ORDER BY month`)
	if err != nil {
		return SpendReport{}, fmt.Errorf("grouping by month: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m MonthTotal
		if err := rows.Scan(&m.Month, &m.Amount, &m.Count); err != nil {
			return SpendReport{}, fmt.Errorf("scanning month: %w", err)
		}
		r.ByMonth = append(r.ByMonth, m)
	}
	return r, rows.Err()
}

func load(ctx context.Context, db *sql.DB, expenses []models.Expense) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE expenses (
		category VARCHAR NOT NULL,
		amount BIGINT NOT NULL,
		payment_date DATE NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating expenses table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO expenses VALUES (?, ?, CAST(? AS DATE))")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range expenses {
		if _, err := stmt.ExecContext(ctx, e.Category, int64(e.Amount), e.PaymentDate); err != nil {
			return fmt.Errorf("loading expense %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}
