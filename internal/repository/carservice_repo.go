package repository

import (
	"context"

	"garage/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarServiceFilter narrows car service queries. IncludeSettled controls
// which line items are loaded, not which services are returned: a service
// stays visible until every item on it is settled.
type CarServiceFilter struct {
	Month          int
	Year           int
	IncludeSettled bool
}

type CarServiceRepository interface {
	Create(ctx context.Context, cs *model.CarService) error
	Update(ctx context.Context, cs *model.CarService) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CarService, error)
	List(ctx context.Context, filter CarServiceFilter) ([]model.CarService, error)
	Search(ctx context.Context, query string) ([]model.CarService, error)
	CreateItems(ctx context.Context, items []model.CarServiceItem) error
	DeleteItemsByServiceID(ctx context.Context, serviceID uuid.UUID) error
	MarkItemsSettled(ctx context.Context, ids []uuid.UUID) error
}

type carServiceRepository struct {
	db *gorm.DB
}

func NewCarServiceRepository(db *gorm.DB) CarServiceRepository {
	return &carServiceRepository{db: db}
}

func (r *carServiceRepository) Create(ctx context.Context, cs *model.CarService) error {
	return GetDB(ctx, r.db).Omit("Items").Create(cs).Error
}

func (r *carServiceRepository) Update(ctx context.Context, cs *model.CarService) error {
	return GetDB(ctx, r.db).Omit("Items").Save(cs).Error
}

func (r *carServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CarService{}).Error
}

func (r *carServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CarService, error) {
	var cs model.CarService
	if err := GetDB(ctx, r.db).Preload("Items").First(&cs, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *carServiceRepository) List(ctx context.Context, filter CarServiceFilter) ([]model.CarService, error) {
	var services []model.CarService

	db := GetDB(ctx, r.db).Model(&model.CarService{})
	if filter.Month != 0 && filter.Year != 0 {
		db = db.Where("month = ? AND year = ?", filter.Month, filter.Year)
	}

	itemScope := func(db *gorm.DB) *gorm.DB { return db }
	if !filter.IncludeSettled {
		itemScope = func(db *gorm.DB) *gorm.DB { return db.Where("settled = ?", false) }
	}

	if err := db.Preload("Items", itemScope).
		Order("car_in_date_time desc").Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// Search matches car plate, owner name or phone number for the customer
// history screen.
func (r *carServiceRepository) Search(ctx context.Context, query string) ([]model.CarService, error) {
	var services []model.CarService
	pattern := "%" + query + "%"
	if err := GetDB(ctx, r.db).Model(&model.CarService{}).
		Where("car_plate ILIKE ? OR owner_name ILIKE ? OR phone_no ILIKE ?", pattern, pattern, pattern).
		Preload("Items").
		Order("car_in_date_time desc").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *carServiceRepository) CreateItems(ctx context.Context, items []model.CarServiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *carServiceRepository) DeleteItemsByServiceID(ctx context.Context, serviceID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("car_service_id = ?", serviceID).Delete(&model.CarServiceItem{}).Error
}

// MarkItemsSettled is a bulk update; ids that match nothing are silent no-ops.
func (r *carServiceRepository) MarkItemsSettled(ctx context.Context, ids []uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.CarServiceItem{}).Where("id IN ?", ids).
		Update("settled", true).Error
}
