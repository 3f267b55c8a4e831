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

type SupplyRequest struct {
	InvoiceNumber string   `json:"invoice_number" binding:"required"`
	SupplierID    string   `json:"supplier_id"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Quantity      int      `json:"quantity" binding:"required,gt=0"`
	Price         string   `json:"price" binding:"required"`         // Decimal string
	SuppliedDate  string   `json:"supplied_date" binding:"required"` // RFC3339
	PaymentType   string   `json:"payment_type" binding:"omitempty,oneof=CASH CARD CREDIT"`
	Remarks       string   `json:"remarks"`
	MappedNames   []string `json:"mapped_names"`
}

type BulkSupplyRequest struct {
	Supplies []SupplyRequest `json:"supplies" binding:"required,min=1,dive"`
}

type SupplyService interface {
	ListSupplies(ctx context.Context, month, year int, includeSettled bool) ([]model.Supply, error)
	CreateSupply(ctx context.Context, userID string, req SupplyRequest) (*model.Supply, error)
	BulkCreateSupplies(ctx context.Context, userID string, req BulkSupplyRequest) ([]model.Supply, error)
	UpdateSupply(ctx context.Context, userID, id string, req SupplyRequest) (*model.Supply, error)
	DeleteSupply(ctx context.Context, userID, id string) error
	SearchNames(ctx context.Context, search string) ([]string, error)
}

type supplyService struct {
	supplyRepo repository.SupplyRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
}

func NewSupplyService(
	supplyRepo repository.SupplyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SupplyService {
	return &supplyService{
		supplyRepo: supplyRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
	}
}

// supplyFromRequest builds the model from a request, recomputing every
// derived field server-side. Client-supplied month/year or money totals are
// never trusted.
func supplyFromRequest(req SupplyRequest) (*model.Supply, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	if price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}

	suppliedDate, err := time.Parse(time.RFC3339, req.SuppliedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid supplied_date, expected RFC3339: %w", err)
	}

	var supplierID *uuid.UUID
	if req.SupplierID != "" {
		parsed, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		supplierID = &parsed
	}

	month, year := periodOf(suppliedDate)
	gst, total := supplyLineAmounts(price, req.Quantity)

	return &model.Supply{
		InvoiceNumber: req.InvoiceNumber,
		SupplierID:    supplierID,
		Name:          req.Name,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Price:         price,
		GstAmount:     gst,
		TotalAmount:   total,
		SuppliedDate:  suppliedDate,
		Month:         month,
		Year:          year,
		PaymentType:   req.PaymentType,
		Remarks:       req.Remarks,
		MappedNames:   model.StringArray(req.MappedNames),
	}, nil
}

func (s *supplyService) ListSupplies(ctx context.Context, month, year int, includeSettled bool) ([]model.Supply, error) {
	return s.supplyRepo.List(ctx, repository.SupplyFilter{
		Month:          month,
		Year:           year,
		IncludeSettled: includeSettled,
	})
}

func (s *supplyService) CreateSupply(ctx context.Context, userID string, req SupplyRequest) (*model.Supply, error) {
	supply, err := supplyFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplyRepo.Create(txCtx, supply); err != nil {
			return fmt.Errorf("failed to create supply: %w", err)
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateSupply,
			EntityID:   supply.ID.String(),
			EntityName: supply.Name,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return supply, nil
}

// BulkCreateSupplies inserts one invoice's worth of supply lines in a single
// transaction. All lines must carry the same invoice number.
func (s *supplyService) BulkCreateSupplies(ctx context.Context, userID string, req BulkSupplyRequest) ([]model.Supply, error) {
	invoiceNumber := req.Supplies[0].InvoiceNumber
	for _, sr := range req.Supplies {
		if sr.InvoiceNumber != invoiceNumber {
			return nil, errors.New("all supplies must have the same invoice number")
		}
	}

	supplies := make([]model.Supply, 0, len(req.Supplies))
	for _, sr := range req.Supplies {
		supply, err := supplyFromRequest(sr)
		if err != nil {
			return nil, err
		}
		supplies = append(supplies, *supply)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplyRepo.CreateBatch(txCtx, supplies); err != nil {
			return fmt.Errorf("failed to create supplies: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"invoice_number": invoiceNumber,
			"count":          len(supplies),
		})
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionBulkCreateSupply,
			EntityID:   invoiceNumber,
			EntityName: invoiceNumber,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return supplies, nil
}

func (s *supplyService) UpdateSupply(ctx context.Context, userID, id string, req SupplyRequest) (*model.Supply, error) {
	supplyID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supply id: %w", err)
	}

	existing, err := s.supplyRepo.FindByID(ctx, supplyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("supply not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updated, err := supplyFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Settled = existing.Settled
	updated.CreatedAt = existing.CreatedAt
	if len(req.MappedNames) == 0 {
		updated.MappedNames = existing.MappedNames
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplyRepo.Update(txCtx, updated); err != nil {
			return fmt.Errorf("failed to update supply: %w", err)
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateSupply,
			EntityID:   updated.ID.String(),
			EntityName: updated.Name,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *supplyService) DeleteSupply(ctx context.Context, userID, id string) error {
	supplyID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid supply id: %w", err)
	}

	supply, err := s.supplyRepo.FindByID(ctx, supplyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("supply not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplyRepo.Delete(txCtx, supplyID); err != nil {
			return fmt.Errorf("failed to delete supply: %w", err)
		}

		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeleteSupply,
			EntityID:   supply.ID.String(),
			EntityName: supply.Name,
			Details:    `{"deleted": true}`,
		}
		return s.auditRepo.Log(txCtx, audit)
	})
}

func (s *supplyService) SearchNames(ctx context.Context, search string) ([]string, error) {
	return s.supplyRepo.SearchNames(ctx, search, 10)
}
