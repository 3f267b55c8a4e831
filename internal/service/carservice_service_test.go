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

func validCarServiceRequest() CarServiceRequest {
	return CarServiceRequest{
		CarPlate:      "XYZ-789",
		OwnerName:     "John Citizen",
		PhoneNo:       "0400 000 000",
		CarInDateTime: "2024-03-15T09:00:00Z",
		Items: []CarServiceItemRequest{
			{ServiceType: model.ServiceTypeService, Name: "Full Service", Price: "150", Quantity: 1},
			{ServiceType: model.ServiceTypeParts, Name: "Oil Filter", Price: "25", Quantity: 2},
		},
	}
}

func TestCarServiceCreate(t *testing.T) {
	userID := uuid.New().String()

	t.Run("derived amounts and period", func(t *testing.T) {
		csRepo := newFakeCarServiceRepo()
		auditRepo := &fakeAuditRepo{}
		svc := NewCarServiceService(csRepo, auditRepo, &fakeTxManager{})

		created, err := svc.CreateCarService(context.Background(), userID, validCarServiceRequest())
		require.NoError(t, err)

		// 150 + 25*2 = 200; no discount; gst 20
		assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(200)), "total = %s", created.TotalAmount)
		assert.True(t, created.FinalAmount.Equal(decimal.NewFromInt(200)), "final = %s", created.FinalAmount)
		assert.True(t, created.GstAmount.Equal(decimal.NewFromInt(20)), "gst = %s", created.GstAmount)
		assert.Equal(t, 3, created.Month)
		assert.Equal(t, 2024, created.Year)
		assert.Nil(t, created.CarOutDateTime)

		require.Len(t, csRepo.created, 1)
		require.Len(t, csRepo.createdItems, 2)
		for _, item := range csRepo.createdItems {
			assert.Equal(t, created.ID, item.CarServiceID)
		}
		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, model.ActionCreateCarService, auditRepo.entries[0].Action)
	})

	t.Run("discount applied before gst", func(t *testing.T) {
		svc := NewCarServiceService(newFakeCarServiceRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		req := validCarServiceRequest()
		req.DiscountType = model.DiscountTypePercentage
		req.DiscountAmount = "10"
		created, err := svc.CreateCarService(context.Background(), userID, req)
		require.NoError(t, err)

		assert.True(t, created.FinalAmount.Equal(decimal.NewFromInt(180)), "final = %s", created.FinalAmount)
		assert.True(t, created.GstAmount.Equal(decimal.NewFromInt(18)), "gst = %s", created.GstAmount)
	})

	t.Run("discount type without amount rejected", func(t *testing.T) {
		svc := NewCarServiceService(newFakeCarServiceRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		req := validCarServiceRequest()
		req.DiscountType = model.DiscountTypeFixed
		_, err := svc.CreateCarService(context.Background(), userID, req)
		assert.EqualError(t, err, "discount_amount is required when discount_type is set")
	})
}

func TestCarServiceUpdate(t *testing.T) {
	userID := uuid.New().String()
	existing := model.CarService{ID: uuid.New(), CarPlate: "XYZ-789"}

	t.Run("replaces items wholesale", func(t *testing.T) {
		csRepo := newFakeCarServiceRepo(existing)
		svc := NewCarServiceService(csRepo, &fakeAuditRepo{}, &fakeTxManager{})

		req := validCarServiceRequest()
		req.Items = []CarServiceItemRequest{
			{ServiceType: model.ServiceTypeParts, Name: "Coolant", Price: "40", Quantity: 1},
		}
		updated, err := svc.UpdateCarService(context.Background(), userID, existing.ID.String(), req)
		require.NoError(t, err)

		assert.Equal(t, existing.ID, updated.ID)
		assert.Equal(t, []uuid.UUID{existing.ID}, csRepo.clearedItems)
		require.Len(t, csRepo.createdItems, 1)
		assert.Equal(t, "Coolant", csRepo.createdItems[0].Name)
		assert.Equal(t, existing.ID, csRepo.createdItems[0].CarServiceID)
	})

	t.Run("unknown service", func(t *testing.T) {
		svc := NewCarServiceService(newFakeCarServiceRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.UpdateCarService(context.Background(), userID, uuid.New().String(), validCarServiceRequest())
		assert.EqualError(t, err, "car service not found")
	})
}

func TestCarServiceDelete(t *testing.T) {
	userID := uuid.New().String()
	existing := model.CarService{ID: uuid.New(), CarPlate: "XYZ-789"}

	csRepo := newFakeCarServiceRepo(existing)
	auditRepo := &fakeAuditRepo{}
	svc := NewCarServiceService(csRepo, auditRepo, &fakeTxManager{})

	require.NoError(t, svc.DeleteCarService(context.Background(), userID, existing.ID.String()))
	assert.Equal(t, []uuid.UUID{existing.ID}, csRepo.clearedItems, "items must go first")
	assert.Equal(t, []uuid.UUID{existing.ID}, csRepo.deleted)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, model.ActionDeleteCarService, auditRepo.entries[0].Action)
}

func TestCarServiceSearch(t *testing.T) {
	svc := NewCarServiceService(newFakeCarServiceRepo(), &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.SearchCarServices(context.Background(), "")
	assert.EqualError(t, err, "search query is required")
}
