package model

import (
	"time"

	"github.com/google/uuid"
)

// MembershipPlan - тарифный план зала. Длительность в месяцах,
// цена в минимальных единицах валюты.
type MembershipPlan struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	DurationMonths int       `json:"duration_months"`
	Features       []string  `json:"features"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate проверяет план перед созданием
func (p MembershipPlan) Validate() error {
	if p.Name == "" {
		return invalidInputf("plan name is required")
	}
	if p.Price < 0 {
		return invalidInputf("plan price cannot be negative")
	}
	if p.DurationMonths <= 0 {
		return invalidInputf("plan duration must be positive, got %d", p.DurationMonths)
	}
	return nil
}
