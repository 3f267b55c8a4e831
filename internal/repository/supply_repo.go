package repository

import (
	"context"

	"garage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplyFilter narrows supply queries. Month/Year of zero means "all
// periods"; IncludeSettled false (the default) hides settled rows.
type SupplyFilter struct {
	Month          int
	Year           int
	IncludeSettled bool
}

type SupplyRepository interface {
	Create(ctx context.Context, supply *model.Supply) error
	CreateBatch(ctx context.Context, supplies []model.Supply) error
	Update(ctx context.Context, supply *model.Supply) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supply, error)
	List(ctx context.Context, filter SupplyFilter) ([]model.Supply, error)
	SearchNames(ctx context.Context, search string, limit int) ([]string, error)
	UpdateMappedNames(ctx context.Context, id uuid.UUID, names model.StringArray) error
	MarkSettled(ctx context.Context, ids []uuid.UUID) error
}

type supplyRepository struct {
	db *gorm.DB
}

func NewSupplyRepository(db *gorm.DB) SupplyRepository {
	return &supplyRepository{db: db}
}

func (r *supplyRepository) Create(ctx context.Context, supply *model.Supply) error {
	return GetDB(ctx, r.db).Create(supply).Error
}

func (r *supplyRepository) CreateBatch(ctx context.Context, supplies []model.Supply) error {
	return GetDB(ctx, r.db).Create(&supplies).Error
}

func (r *supplyRepository) Update(ctx context.Context, supply *model.Supply) error {
	return GetDB(ctx, r.db).Save(supply).Error
}

func (r *supplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Supply{}).Error
}

func (r *supplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Supply, error) {
	var supply model.Supply
	if err := GetDB(ctx, r.db).Preload("Supplier").First(&supply, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supply, nil
}

func (r *supplyRepository) List(ctx context.Context, filter SupplyFilter) ([]model.Supply, error) {
	var supplies []model.Supply

	db := GetDB(ctx, r.db).Model(&model.Supply{})
	if filter.Month != 0 && filter.Year != 0 {
		db = db.Where("month = ? AND year = ?", filter.Month, filter.Year)
	}
	if !filter.IncludeSettled {
		db = db.Where("settled = ?", false)
	}

	if err := db.Preload("Supplier").Preload("Supplier.Parent").
		Order("supplied_date desc").Find(&supplies).Error; err != nil {
		return nil, err
	}

	return supplies, nil
}

func (r *supplyRepository) SearchNames(ctx context.Context, search string, limit int) ([]string, error) {
	var names []string
	if err := GetDB(ctx, r.db).Model(&model.Supply{}).
		Distinct("name").
		Where("name ILIKE ?", "%"+search+"%").
		Limit(limit).
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *supplyRepository) UpdateMappedNames(ctx context.Context, id uuid.UUID, names model.StringArray) error {
	return GetDB(ctx, r.db).Model(&model.Supply{}).Where("id = ?", id).
		Update("mapped_names", names).Error
}

// MarkSettled is a bulk update; ids that match nothing are silent no-ops.
func (r *supplyRepository) MarkSettled(ctx context.Context, ids []uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Supply{}).Where("id IN ?", ids).
		Update("settled", true).Error
}
