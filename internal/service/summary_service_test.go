package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryServiceGetSummary(t *testing.T) {
	t.Run("net is revenue minus outflows", func(t *testing.T) {
		repo := &fakeSummaryRepo{
			services: decimal.RequireFromString("5000.50"),
			supplies: decimal.RequireFromString("1200.25"),
			expenses: decimal.RequireFromString("300"),
		}
		svc := NewSummaryService(repo)

		summary, err := svc.GetSummary(context.Background(), 3, 2024)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Month)
		assert.Equal(t, 2024, summary.Year)
		assert.Equal(t, "5000.5", summary.TotalCarServices)
		assert.Equal(t, "1200.25", summary.TotalSupplies)
		assert.Equal(t, "300", summary.TotalExpenses)
		assert.Equal(t, "3500.25", summary.NetAmount)
	})

	t.Run("year-only mode", func(t *testing.T) {
		svc := NewSummaryService(&fakeSummaryRepo{})

		summary, err := svc.GetSummary(context.Background(), 0, 2024)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Month)
		assert.Equal(t, "0", summary.NetAmount)
	})

	t.Run("year required", func(t *testing.T) {
		svc := NewSummaryService(&fakeSummaryRepo{})

		_, err := svc.GetSummary(context.Background(), 3, 0)
		assert.EqualError(t, err, "year is required")
	})

	t.Run("month out of range", func(t *testing.T) {
		svc := NewSummaryService(&fakeSummaryRepo{})

		_, err := svc.GetSummary(context.Background(), 13, 2024)
		assert.Error(t, err)
	})
}
