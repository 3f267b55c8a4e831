package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryRepository runs the monthly/yearly money aggregations for the
// dashboard. Sums are read back as text and parsed into decimals so no
// float conversion touches the amounts.
type SummaryRepository interface {
	CarServicesTotal(ctx context.Context, month, year int) (decimal.Decimal, error)
	SuppliesTotal(ctx context.Context, month, year int) (decimal.Decimal, error)
	ExpensesTotal(ctx context.Context, month, year int) (decimal.Decimal, error)
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) sumColumn(ctx context.Context, table, column string, month, year int) (decimal.Decimal, error) {
	var result struct {
		Value string
	}

	db := r.db.WithContext(ctx).Table(table).
		Select(fmt.Sprintf("COALESCE(CAST(SUM(%s) AS TEXT), '0') as value", column)).
		Where("year = ?", year)
	if month != 0 {
		db = db.Where("month = ?", month)
	}

	if err := db.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}

	value, err := decimal.NewFromString(result.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s.%s sum: %w", table, column, err)
	}
	return value, nil
}

func (r *summaryRepository) CarServicesTotal(ctx context.Context, month, year int) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "car_services", "total_amount", month, year)
}

func (r *summaryRepository) SuppliesTotal(ctx context.Context, month, year int) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "supplies", "total_amount", month, year)
}

func (r *summaryRepository) ExpensesTotal(ctx context.Context, month, year int) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "expenses", "amount", month, year)
}
