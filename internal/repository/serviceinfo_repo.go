package repository

import (
	"context"

	"garage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceInfoRepository interface {
	Create(ctx context.Context, info *model.ServiceExtraInfo) error
	Update(ctx context.Context, info *model.ServiceExtraInfo) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceExtraInfo, error)
	List(ctx context.Context) ([]model.ServiceExtraInfo, error)
}

type serviceInfoRepository struct {
	db *gorm.DB
}

func NewServiceInfoRepository(db *gorm.DB) ServiceInfoRepository {
	return &serviceInfoRepository{db: db}
}

func (r *serviceInfoRepository) Create(ctx context.Context, info *model.ServiceExtraInfo) error {
	return GetDB(ctx, r.db).Create(info).Error
}

func (r *serviceInfoRepository) Update(ctx context.Context, info *model.ServiceExtraInfo) error {
	return GetDB(ctx, r.db).Save(info).Error
}

func (r *serviceInfoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ServiceExtraInfo{}).Error
}

func (r *serviceInfoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceExtraInfo, error) {
	var info model.ServiceExtraInfo
	if err := GetDB(ctx, r.db).First(&info, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *serviceInfoRepository) List(ctx context.Context) ([]model.ServiceExtraInfo, error) {
	var infos []model.ServiceExtraInfo
	if err := GetDB(ctx, r.db).Order("created_at desc").Find(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}
