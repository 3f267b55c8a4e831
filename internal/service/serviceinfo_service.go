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

type ServiceInfoRequest struct {
	ServiceType  string   `json:"service_type" binding:"required,oneof=SERVICE PARTS"`
	ServiceNames []string `json:"service_names" binding:"required,min=1"`
	ExtraInfo    string   `json:"extra_info" binding:"required"`
}

// ServiceInfoService manages the free-form notes attached to groups of
// service names, shown alongside invoices.
type ServiceInfoService interface {
	ListServiceInfo(ctx context.Context) ([]model.ServiceExtraInfo, error)
	CreateServiceInfo(ctx context.Context, req ServiceInfoRequest) (*model.ServiceExtraInfo, error)
	UpdateServiceInfo(ctx context.Context, id string, req ServiceInfoRequest) (*model.ServiceExtraInfo, error)
	DeleteServiceInfo(ctx context.Context, id string) error
}

type serviceInfoService struct {
	repo repository.ServiceInfoRepository
}

func NewServiceInfoService(repo repository.ServiceInfoRepository) ServiceInfoService {
	return &serviceInfoService{repo: repo}
}

func (s *serviceInfoService) ListServiceInfo(ctx context.Context) ([]model.ServiceExtraInfo, error) {
	return s.repo.List(ctx)
}

func (s *serviceInfoService) CreateServiceInfo(ctx context.Context, req ServiceInfoRequest) (*model.ServiceExtraInfo, error) {
	info := &model.ServiceExtraInfo{
		ServiceType:  req.ServiceType,
		ServiceNames: model.StringArray(req.ServiceNames),
		ExtraInfo:    req.ExtraInfo,
	}
	if err := s.repo.Create(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *serviceInfoService) UpdateServiceInfo(ctx context.Context, id string, req ServiceInfoRequest) (*model.ServiceExtraInfo, error) {
	infoID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service info id: %w", err)
	}

	existing, err := s.repo.FindByID(ctx, infoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("service info not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	existing.ServiceType = req.ServiceType
	existing.ServiceNames = model.StringArray(req.ServiceNames)
	existing.ExtraInfo = req.ExtraInfo

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *serviceInfoService) DeleteServiceInfo(ctx context.Context, id string) error {
	infoID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid service info id: %w", err)
	}

	if _, err := s.repo.FindByID(ctx, infoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("service info not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.repo.Delete(ctx, infoID)
}
