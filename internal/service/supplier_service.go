package service

import (
	"context"
	"errors"
	"fmt"

	"garage/internal/model"
	"garage/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSupplierNotFound lets the handler answer 404 instead of a generic 500.
var ErrSupplierNotFound = errors.New("supplier not found")

// ErrSupplierHasChildren is returned when deleting a supplier that still has
// branch suppliers pointing at it.
var ErrSupplierHasChildren = errors.New("cannot delete supplier with children; delete or reassign children first")

// --- DTOs ---

type SupplierRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id"`
}

type SupplierService interface {
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*model.Supplier, error)
	CreateSupplier(ctx context.Context, req SupplierRequest) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req SupplierRequest) (*model.Supplier, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.supplierRepo.List(ctx)
}

func (s *supplierService) findSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier id: %w", err)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	return s.findSupplier(ctx, id)
}

func (s *supplierService) CreateSupplier(ctx context.Context, req SupplierRequest) (*model.Supplier, error) {
	supplier := &model.Supplier{
		Name:     req.Name,
		IsActive: true,
	}

	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent_id: %w", err)
		}
		supplier.ParentID = &parentID
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id string, req SupplierRequest) (*model.Supplier, error) {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.ParentID = nil
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent_id: %w", err)
		}
		supplier.ParentID = &parentID
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) ToggleStatus(ctx context.Context, id string, isActive bool) (*model.Supplier, error) {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.IsActive = isActive
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier status: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id string) error {
	supplier, err := s.findSupplier(ctx, id)
	if err != nil {
		return err
	}

	children, err := s.supplierRepo.CountChildren(ctx, supplier.ID)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if children > 0 {
		return ErrSupplierHasChildren
	}

	return s.supplierRepo.Delete(ctx, supplier.ID)
}
