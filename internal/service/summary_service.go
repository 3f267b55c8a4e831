package service

import (
	"context"
	"errors"

	"garage/internal/repository"
)

// MonthlySummary is the dashboard aggregate for a period. Money fields are
// decimal strings so the frontend never sees binary floats.
type MonthlySummary struct {
	Month            int    `json:"month,omitempty"`
	Year             int    `json:"year"`
	TotalCarServices string `json:"total_car_services"`
	TotalSupplies    string `json:"total_supplies"`
	TotalExpenses    string `json:"total_expenses"`
	NetAmount        string `json:"net_amount"`
}

type SummaryService interface {
	GetSummary(ctx context.Context, month, year int) (*MonthlySummary, error)
}

type summaryService struct {
	repo repository.SummaryRepository
}

func NewSummaryService(repo repository.SummaryRepository) SummaryService {
	return &summaryService{repo: repo}
}

// GetSummary aggregates revenue, supply spend and expenses for a year, or a
// single month when month is non-zero. Net is revenue minus both outflows.
func (s *summaryService) GetSummary(ctx context.Context, month, year int) (*MonthlySummary, error) {
	if year <= 0 {
		return nil, errors.New("year is required")
	}
	if month < 0 || month > 12 {
		return nil, errors.New("month must be between 1 and 12")
	}

	services, err := s.repo.CarServicesTotal(ctx, month, year)
	if err != nil {
		return nil, err
	}
	supplies, err := s.repo.SuppliesTotal(ctx, month, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ExpensesTotal(ctx, month, year)
	if err != nil {
		return nil, err
	}

	net := services.Sub(supplies).Sub(expenses)

	return &MonthlySummary{
		Month:            month,
		Year:             year,
		TotalCarServices: services.String(),
		TotalSupplies:    supplies.String(),
		TotalExpenses:    expenses.String(),
		NetAmount:        net.String(),
	}, nil
}
