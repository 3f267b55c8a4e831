package service

import (
	"context"

	"garage/internal/model"
	"garage/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeTxManager runs the callback directly; tests assert on the repos
// instead of on transaction plumbing.
type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeAuditRepo struct {
	entries []model.AuditLog
	err     error
}

func (f *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeSupplyRepo struct {
	supplies    []model.Supply
	created     []model.Supply
	updated     []model.Supply
	deleted     []uuid.UUID
	settledIDs  []uuid.UUID
	mappedNames map[uuid.UUID]model.StringArray
	names       []string
	err         error
}

func newFakeSupplyRepo(supplies ...model.Supply) *fakeSupplyRepo {
	return &fakeSupplyRepo{
		supplies:    supplies,
		mappedNames: make(map[uuid.UUID]model.StringArray),
	}
}

func (f *fakeSupplyRepo) Create(ctx context.Context, supply *model.Supply) error {
	if f.err != nil {
		return f.err
	}
	if supply.ID == uuid.Nil {
		supply.ID = uuid.New()
	}
	f.created = append(f.created, *supply)
	return nil
}

func (f *fakeSupplyRepo) CreateBatch(ctx context.Context, supplies []model.Supply) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, supplies...)
	return nil
}

func (f *fakeSupplyRepo) Update(ctx context.Context, supply *model.Supply) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, *supply)
	return nil
}

func (f *fakeSupplyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeSupplyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supply, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.supplies {
		if f.supplies[i].ID == id {
			supply := f.supplies[i]
			return &supply, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSupplyRepo) List(ctx context.Context, filter repository.SupplyFilter) ([]model.Supply, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.supplies, nil
}

func (f *fakeSupplyRepo) SearchNames(ctx context.Context, search string, limit int) ([]string, error) {
	return f.names, f.err
}

func (f *fakeSupplyRepo) UpdateMappedNames(ctx context.Context, id uuid.UUID, names model.StringArray) error {
	if f.err != nil {
		return f.err
	}
	f.mappedNames[id] = names
	return nil
}

func (f *fakeSupplyRepo) MarkSettled(ctx context.Context, ids []uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.settledIDs = append(f.settledIDs, ids...)
	return nil
}

type fakeCarServiceRepo struct {
	services       []model.CarService
	created        []model.CarService
	updated        []model.CarService
	deleted        []uuid.UUID
	createdItems   []model.CarServiceItem
	clearedItems   []uuid.UUID
	settledItemIDs []uuid.UUID
	err            error
}

func newFakeCarServiceRepo(services ...model.CarService) *fakeCarServiceRepo {
	return &fakeCarServiceRepo{services: services}
}

func (f *fakeCarServiceRepo) Create(ctx context.Context, cs *model.CarService) error {
	if f.err != nil {
		return f.err
	}
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	f.created = append(f.created, *cs)
	return nil
}

func (f *fakeCarServiceRepo) Update(ctx context.Context, cs *model.CarService) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, *cs)
	return nil
}

func (f *fakeCarServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeCarServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CarService, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.services {
		if f.services[i].ID == id {
			cs := f.services[i]
			return &cs, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCarServiceRepo) List(ctx context.Context, filter repository.CarServiceFilter) ([]model.CarService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func (f *fakeCarServiceRepo) Search(ctx context.Context, query string) ([]model.CarService, error) {
	return f.services, f.err
}

func (f *fakeCarServiceRepo) CreateItems(ctx context.Context, items []model.CarServiceItem) error {
	if f.err != nil {
		return f.err
	}
	f.createdItems = append(f.createdItems, items...)
	return nil
}

func (f *fakeCarServiceRepo) DeleteItemsByServiceID(ctx context.Context, serviceID uuid.UUID) error {
	f.clearedItems = append(f.clearedItems, serviceID)
	return f.err
}

func (f *fakeCarServiceRepo) MarkItemsSettled(ctx context.Context, ids []uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.settledItemIDs = append(f.settledItemIDs, ids...)
	return nil
}

type fakeUserRepo struct {
	users   map[string]*model.User
	tokens  map[string]*model.RefreshToken
	deleted []string
	err     error
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:  make(map[string]*model.User),
		tokens: make(map[string]*model.RefreshToken),
	}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		repo.users[u.ID.String()] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), f.err
}

func (f *fakeUserRepo) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, int64(len(users)), f.err
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return f.err
}

type fakeSummaryRepo struct {
	services decimal.Decimal
	supplies decimal.Decimal
	expenses decimal.Decimal
	err      error
}

func (f *fakeSummaryRepo) CarServicesTotal(ctx context.Context, month, year int) (decimal.Decimal, error) {
	return f.services, f.err
}

func (f *fakeSummaryRepo) SuppliesTotal(ctx context.Context, month, year int) (decimal.Decimal, error) {
	return f.supplies, f.err
}

func (f *fakeSummaryRepo) ExpensesTotal(ctx context.Context, month, year int) (decimal.Decimal, error) {
	return f.expenses, f.err
}
