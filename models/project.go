package models

import (
	"strings"
	"time"
)

// Project is a construction project that invoices, purchase orders and expenses belong to.
type Project struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Currency    string    `json:"currency"`
	Budget      Money     `json:"budget"`
	ActualSpend Money     `json:"actualSpend"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// Computed fields
	RemainingBudget Money `json:"remainingBudget"`
}

// ProjectInput is used for creating projects.
type ProjectInput struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Budget   Money  `json:"budget"`
}

func (p *ProjectInput) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if p.Budget < 0 {
		return NewValidationError("budget", "budget must be non-negative")
	}
	currency, err := NormalizeCurrency(p.Currency, DefaultCurrency)
	if err != nil {
		return NewValidationError("currency", err.Error())
	}
	p.Currency = currency
	return nil
}

// BudgetInput changes a project's budget.
type BudgetInput struct {
	Budget Money `json:"budget"`
}

func (b BudgetInput) Validate() error {
	if b.Budget < 0 {
		return NewValidationError("budget", "budget must be non-negative")
	}
	return nil
}
