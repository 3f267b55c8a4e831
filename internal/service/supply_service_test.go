package service

import (
	"context"
	"testing"

	"garage/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSupplyRequest() SupplyRequest {
	return SupplyRequest{
		InvoiceNumber: "INV-1001",
		Name:          "Oil Filter",
		Quantity:      4,
		Price:         "25.50",
		SuppliedDate:  "2024-03-15T10:00:00Z",
		PaymentType:   model.PaymentTypeCash,
		MappedNames:   []string{"oil filter", "filter"},
	}
}

func TestSupplyServiceCreate(t *testing.T) {
	userID := uuid.New().String()

	t.Run("derived fields computed server side", func(t *testing.T) {
		supplyRepo := newFakeSupplyRepo()
		auditRepo := &fakeAuditRepo{}
		svc := NewSupplyService(supplyRepo, auditRepo, &fakeTxManager{})

		supply, err := svc.CreateSupply(context.Background(), userID, validSupplyRequest())
		require.NoError(t, err)

		// 25.50 * 4 = 102, gst 10.20, total 112.20
		assert.True(t, supply.GstAmount.Equal(decimal.RequireFromString("10.2")), "gst = %s", supply.GstAmount)
		assert.True(t, supply.TotalAmount.Equal(decimal.RequireFromString("112.2")), "total = %s", supply.TotalAmount)
		assert.Equal(t, 3, supply.Month)
		assert.Equal(t, 2024, supply.Year)
		assert.False(t, supply.Settled)

		require.Len(t, supplyRepo.created, 1)
		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, model.ActionCreateSupply, auditRepo.entries[0].Action)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		svc := NewSupplyService(newFakeSupplyRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		req := validSupplyRequest()
		req.Price = "-5"
		_, err := svc.CreateSupply(context.Background(), userID, req)
		assert.Error(t, err)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := NewSupplyService(newFakeSupplyRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		req := validSupplyRequest()
		req.SuppliedDate = "15/03/2024"
		_, err := svc.CreateSupply(context.Background(), userID, req)
		assert.Error(t, err)
	})
}

func TestSupplyServiceBulkCreate(t *testing.T) {
	userID := uuid.New().String()

	t.Run("creates all lines of one invoice", func(t *testing.T) {
		supplyRepo := newFakeSupplyRepo()
		auditRepo := &fakeAuditRepo{}
		svc := NewSupplyService(supplyRepo, auditRepo, &fakeTxManager{})

		second := validSupplyRequest()
		second.Name = "Air Filter"
		supplies, err := svc.BulkCreateSupplies(context.Background(), userID, BulkSupplyRequest{
			Supplies: []SupplyRequest{validSupplyRequest(), second},
		})
		require.NoError(t, err)

		assert.Len(t, supplies, 2)
		assert.Len(t, supplyRepo.created, 2)
		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, model.ActionBulkCreateSupply, auditRepo.entries[0].Action)
	})

	t.Run("rejects mixed invoice numbers", func(t *testing.T) {
		supplyRepo := newFakeSupplyRepo()
		svc := NewSupplyService(supplyRepo, &fakeAuditRepo{}, &fakeTxManager{})

		second := validSupplyRequest()
		second.InvoiceNumber = "INV-9999"
		_, err := svc.BulkCreateSupplies(context.Background(), userID, BulkSupplyRequest{
			Supplies: []SupplyRequest{validSupplyRequest(), second},
		})

		assert.EqualError(t, err, "all supplies must have the same invoice number")
		assert.Empty(t, supplyRepo.created)
	})
}

func TestSupplyServiceUpdate(t *testing.T) {
	userID := uuid.New().String()
	existing := supplyFixture("Oil Filter", 4, "filter")
	existing.Settled = true

	t.Run("preserves settled flag and mapping when omitted", func(t *testing.T) {
		supplyRepo := newFakeSupplyRepo(existing)
		svc := NewSupplyService(supplyRepo, &fakeAuditRepo{}, &fakeTxManager{})

		req := validSupplyRequest()
		req.MappedNames = nil
		updated, err := svc.UpdateSupply(context.Background(), userID, existing.ID.String(), req)
		require.NoError(t, err)

		assert.True(t, updated.Settled)
		assert.Equal(t, model.StringArray{"filter"}, updated.MappedNames)
	})

	t.Run("unknown supply", func(t *testing.T) {
		svc := NewSupplyService(newFakeSupplyRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.UpdateSupply(context.Background(), userID, uuid.New().String(), validSupplyRequest())
		assert.EqualError(t, err, "supply not found")
	})
}

func TestSupplyServiceDelete(t *testing.T) {
	userID := uuid.New().String()
	existing := supplyFixture("Oil Filter", 4)

	supplyRepo := newFakeSupplyRepo(existing)
	auditRepo := &fakeAuditRepo{}
	svc := NewSupplyService(supplyRepo, auditRepo, &fakeTxManager{})

	require.NoError(t, svc.DeleteSupply(context.Background(), userID, existing.ID.String()))
	assert.Equal(t, []uuid.UUID{existing.ID}, supplyRepo.deleted)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, model.ActionDeleteSupply, auditRepo.entries[0].Action)
}
