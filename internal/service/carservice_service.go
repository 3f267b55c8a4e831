package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garage/internal/model"
	"garage/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CarServiceItemRequest struct {
	ServiceType string `json:"service_type" binding:"required,oneof=SERVICE PARTS"`
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required"` // Decimal string
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

type CarServiceRequest struct {
	CarPlate       string                  `json:"car_plate" binding:"required"`
	OwnerName      string                  `json:"owner_name" binding:"required"`
	PhoneNo        string                  `json:"phone_no"`
	CarInDateTime  string                  `json:"car_in_date_time" binding:"required"` // RFC3339
	CarOutDateTime string                  `json:"car_out_date_time"`                   // RFC3339, empty while open
	DiscountType   string                  `json:"discount_type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	DiscountAmount string                  `json:"discount_amount"`
	PaidInCash     string                  `json:"paid_in_cash"`
	PaidInCard     string                  `json:"paid_in_card"`
	Items          []CarServiceItemRequest `json:"car_service_items" binding:"required,min=1,dive"`
}

type CarServiceService interface {
	ListCarServices(ctx context.Context, month, year int, includeSettled bool) ([]model.CarService, error)
	SearchCarServices(ctx context.Context, query string) ([]model.CarService, error)
	CreateCarService(ctx context.Context, userID string, req CarServiceRequest) (*model.CarService, error)
	UpdateCarService(ctx context.Context, userID, id string, req CarServiceRequest) (*model.CarService, error)
	DeleteCarService(ctx context.Context, userID, id string) error
}

type carServiceService struct {
	carServiceRepo repository.CarServiceRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
}

func NewCarServiceService(
	carServiceRepo repository.CarServiceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CarServiceService {
	return &carServiceService{
		carServiceRepo: carServiceRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
	}
}

// carServiceFromRequest builds the model with every derived field recomputed:
// item totals, service total, discount, GST, and the month/year period taken
// from the car-in timestamp.
func carServiceFromRequest(req CarServiceRequest) (*model.CarService, []model.CarServiceItem, error) {
	carIn, err := time.Parse(time.RFC3339, req.CarInDateTime)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid car_in_date_time, expected RFC3339: %w", err)
	}

	var carOut *time.Time
	if req.CarOutDateTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.CarOutDateTime)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid car_out_date_time, expected RFC3339: %w", err)
		}
		carOut = &parsed
	}

	items := make([]model.CarServiceItem, 0, len(req.Items))
	for _, ir := range req.Items {
		price, err := decimal.NewFromString(ir.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid item price: %w", err)
		}
		items = append(items, model.CarServiceItem{
			ServiceType: ir.ServiceType,
			Name:        ir.Name,
			Price:       price,
			Quantity:    ir.Quantity,
			TotalAmount: price.Mul(decimal.NewFromInt(int64(ir.Quantity))),
		})
	}

	var discountType *string
	var discountAmount *decimal.Decimal
	if req.DiscountType != "" {
		if req.DiscountAmount == "" {
			return nil, nil, errors.New("discount_amount is required when discount_type is set")
		}
		amount, err := decimal.NewFromString(req.DiscountAmount)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid discount_amount: %w", err)
		}
		discountType = &req.DiscountType
		discountAmount = &amount
	}

	paidInCash, err := parseOptionalDecimal(req.PaidInCash)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid paid_in_cash: %w", err)
	}
	paidInCard, err := parseOptionalDecimal(req.PaidInCard)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid paid_in_card: %w", err)
	}

	total, final, gst := carServiceAmounts(items, discountType, discountAmount)
	month, year := periodOf(carIn)

	cs := &model.CarService{
		CarPlate:       req.CarPlate,
		OwnerName:      req.OwnerName,
		PhoneNo:        req.PhoneNo,
		CarInDateTime:  carIn,
		CarOutDateTime: carOut,
		TotalAmount:    total,
		DiscountType:   discountType,
		DiscountAmount: discountAmount,
		FinalAmount:    final,
		GstAmount:      gst,
		PaidInCash:     paidInCash,
		PaidInCard:     paidInCard,
		Month:          month,
		Year:           year,
	}
	return cs, items, nil
}

func parseOptionalDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func (s *carServiceService) ListCarServices(ctx context.Context, month, year int, includeSettled bool) ([]model.CarService, error) {
	return s.carServiceRepo.List(ctx, repository.CarServiceFilter{
		Month:          month,
		Year:           year,
		IncludeSettled: includeSettled,
	})
}

func (s *carServiceService) SearchCarServices(ctx context.Context, query string) ([]model.CarService, error) {
	if query == "" {
		return nil, errors.New("search query is required")
	}
	return s.carServiceRepo.Search(ctx, query)
}

func (s *carServiceService) CreateCarService(ctx context.Context, userID string, req CarServiceRequest) (*model.CarService, error) {
	cs, items, err := carServiceFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.carServiceRepo.Create(txCtx, cs); err != nil {
			return fmt.Errorf("failed to create car service: %w", err)
		}

		for i := range items {
			items[i].CarServiceID = cs.ID
		}
		if err := s.carServiceRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to create car service items: %w", err)
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateCarService,
			EntityID:   cs.ID.String(),
			EntityName: cs.CarPlate,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	cs.Items = items
	return cs, nil
}

// UpdateCarService replaces the service's line items wholesale: the existing
// set is deleted and the new set inserted, with the parent's derived fields
// recomputed from the new items. The delete-and-insert runs inside one
// transaction so items can never outlive or drift from their parent.
func (s *carServiceService) UpdateCarService(ctx context.Context, userID, id string, req CarServiceRequest) (*model.CarService, error) {
	serviceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid car service id: %w", err)
	}

	existing, err := s.carServiceRepo.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("car service not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updated, items, err := carServiceFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.carServiceRepo.Update(txCtx, updated); err != nil {
			return fmt.Errorf("failed to update car service: %w", err)
		}

		if err := s.carServiceRepo.DeleteItemsByServiceID(txCtx, serviceID); err != nil {
			return fmt.Errorf("failed to delete existing items: %w", err)
		}
		for i := range items {
			items[i].CarServiceID = serviceID
		}
		if err := s.carServiceRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to insert replacement items: %w", err)
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateCarService,
			EntityID:   updated.ID.String(),
			EntityName: updated.CarPlate,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	updated.Items = items
	return updated, nil
}

// DeleteCarService removes a service together with its owned items in one
// transaction: items first, then the parent.
func (s *carServiceService) DeleteCarService(ctx context.Context, userID, id string) error {
	serviceID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid car service id: %w", err)
	}

	cs, err := s.carServiceRepo.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("car service not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.carServiceRepo.DeleteItemsByServiceID(txCtx, serviceID); err != nil {
			return fmt.Errorf("failed to delete car service items: %w", err)
		}
		if err := s.carServiceRepo.Delete(txCtx, serviceID); err != nil {
			return fmt.Errorf("failed to delete car service: %w", err)
		}

		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeleteCarService,
			EntityID:   cs.ID.String(),
			EntityName: cs.CarPlate,
			Details:    `{"deleted": true}`,
		}
		return s.auditRepo.Log(txCtx, audit)
	})
}
