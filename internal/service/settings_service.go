package service

import (
	"context"
	"encoding/json"

	"garage/internal/model"
	"garage/internal/repository"
)

type SettingsRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	GstNumber   string `json:"gst_number"`
}

// SettingsService manages the single company profile printed on invoices.
type SettingsService interface {
	GetSettings(ctx context.Context) (*model.CompanySettings, error)
	UpdateSettings(ctx context.Context, userID string, req SettingsRequest) (*model.CompanySettings, error)
}

type settingsService struct {
	repo      repository.SettingsRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewSettingsService(
	repo repository.SettingsRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SettingsService {
	return &settingsService{
		repo:      repo,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*model.CompanySettings, error) {
	return s.repo.Get(ctx)
}

// UpdateSettings overwrites the singleton profile, creating it on first save.
func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req SettingsRequest) (*model.CompanySettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.CompanyName = req.CompanyName
	settings.Address = req.Address
	settings.Phone = req.Phone
	settings.GstNumber = req.GstNumber

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, settings); err != nil {
			return err
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateSettings,
			EntityID:   settings.ID.String(),
			EntityName: settings.CompanyName,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}
