package service

import (
	"context"
	"testing"

	"garage/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
	children  map[uuid.UUID]int64
	deleted   []uuid.UUID
	err       error
}

func newFakeSupplierRepo(suppliers ...*model.Supplier) *fakeSupplierRepo {
	repo := &fakeSupplierRepo{
		suppliers: make(map[uuid.UUID]*model.Supplier),
		children:  make(map[uuid.UUID]int64),
	}
	for _, s := range suppliers {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		repo.suppliers[s.ID] = s
	}
	return repo
}

func (f *fakeSupplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	if f.err != nil {
		return f.err
	}
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	f.suppliers[supplier.ID] = supplier
	return nil
}

func (f *fakeSupplierRepo) Update(ctx context.Context, supplier *model.Supplier) error {
	if f.err != nil {
		return f.err
	}
	f.suppliers[supplier.ID] = supplier
	return nil
}

func (f *fakeSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.suppliers, id)
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	if s, ok := f.suppliers[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSupplierRepo) List(ctx context.Context) ([]model.Supplier, error) {
	suppliers := make([]model.Supplier, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		suppliers = append(suppliers, *s)
	}
	return suppliers, f.err
}

func (f *fakeSupplierRepo) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	return f.children[id], f.err
}

func TestSupplierServiceCreate(t *testing.T) {
	t.Run("new suppliers start active", func(t *testing.T) {
		repo := newFakeSupplierRepo()
		svc := NewSupplierService(repo)

		supplier, err := svc.CreateSupplier(context.Background(), SupplierRequest{Name: "Parts Co"})
		require.NoError(t, err)

		assert.True(t, supplier.IsActive)
		assert.Nil(t, supplier.ParentID)
	})

	t.Run("with parent branch", func(t *testing.T) {
		parent := &model.Supplier{ID: uuid.New(), Name: "Parts Co"}
		repo := newFakeSupplierRepo(parent)
		svc := NewSupplierService(repo)

		supplier, err := svc.CreateSupplier(context.Background(), SupplierRequest{
			Name:     "Parts Co North",
			ParentID: parent.ID.String(),
		})
		require.NoError(t, err)

		require.NotNil(t, supplier.ParentID)
		assert.Equal(t, parent.ID, *supplier.ParentID)
	})

	t.Run("malformed parent id", func(t *testing.T) {
		svc := NewSupplierService(newFakeSupplierRepo())

		_, err := svc.CreateSupplier(context.Background(), SupplierRequest{Name: "X", ParentID: "oops"})
		assert.Error(t, err)
	})
}

func TestSupplierServiceDelete(t *testing.T) {
	t.Run("blocked while children exist", func(t *testing.T) {
		parent := &model.Supplier{ID: uuid.New(), Name: "Parts Co"}
		repo := newFakeSupplierRepo(parent)
		repo.children[parent.ID] = 2
		svc := NewSupplierService(repo)

		err := svc.DeleteSupplier(context.Background(), parent.ID.String())
		assert.ErrorIs(t, err, ErrSupplierHasChildren)
		assert.Empty(t, repo.deleted)
	})

	t.Run("leaf supplier deletes", func(t *testing.T) {
		leaf := &model.Supplier{ID: uuid.New(), Name: "Parts Co North"}
		repo := newFakeSupplierRepo(leaf)
		svc := NewSupplierService(repo)

		require.NoError(t, svc.DeleteSupplier(context.Background(), leaf.ID.String()))
		assert.Equal(t, []uuid.UUID{leaf.ID}, repo.deleted)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		svc := NewSupplierService(newFakeSupplierRepo())

		err := svc.DeleteSupplier(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, ErrSupplierNotFound)
	})
}

func TestSupplierServiceToggleStatus(t *testing.T) {
	supplier := &model.Supplier{ID: uuid.New(), Name: "Parts Co", IsActive: true}
	repo := newFakeSupplierRepo(supplier)
	svc := NewSupplierService(repo)

	updated, err := svc.ToggleStatus(context.Background(), supplier.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
