package service

import (
	"context"
	"testing"

	"garage/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestUserServiceRegister(t *testing.T) {
	t.Run("first user becomes active admin", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		user, err := svc.Register(context.Background(), RegisterRequest{Username: "owner", Password: "secret123"})
		require.NoError(t, err)

		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.True(t, user.IsActive)
	})

	t.Run("later users are inactive managers", func(t *testing.T) {
		repo := newFakeUserRepo(&model.User{Username: "owner", Role: model.RoleAdmin, IsActive: true})
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		user, err := svc.Register(context.Background(), RegisterRequest{Username: "helper", Password: "secret123"})
		require.NoError(t, err)

		assert.Equal(t, model.RoleManager, user.Role)
		assert.False(t, user.IsActive)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		repo := newFakeUserRepo(&model.User{Username: "owner"})
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.Register(context.Background(), RegisterRequest{Username: "owner", Password: "secret123"})
		assert.EqualError(t, err, "username already taken")
	})
}

func TestUserServiceLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		repo := newFakeUserRepo(&model.User{
			Username: "owner",
			Password: hashPassword(t, "secret123"),
			Role:     model.RoleAdmin,
			IsActive: true,
		})
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		tokens, err := svc.Login(context.Background(), LoginRequest{Username: "owner", Password: "secret123"})
		require.NoError(t, err)

		assert.NotEmpty(t, tokens.Token)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Contains(t, repo.tokens, tokens.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeUserRepo(&model.User{
			Username: "owner",
			Password: hashPassword(t, "secret123"),
			IsActive: true,
		})
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.Login(context.Background(), LoginRequest{Username: "owner", Password: "nope"})
		assert.EqualError(t, err, "invalid username or password")
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		repo := newFakeUserRepo(&model.User{
			Username: "helper",
			Password: hashPassword(t, "secret123"),
			Role:     model.RoleManager,
			IsActive: false,
		})
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.Login(context.Background(), LoginRequest{Username: "helper", Password: "secret123"})
		assert.Error(t, err)
	})
}

func TestUserServiceRefreshToken(t *testing.T) {
	t.Run("rotates the token", func(t *testing.T) {
		repo := newFakeUserRepo(&model.User{
			Username: "owner",
			Password: hashPassword(t, "secret123"),
			Role:     model.RoleAdmin,
			IsActive: true,
		})
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		first, err := svc.Login(context.Background(), LoginRequest{Username: "owner", Password: "secret123"})
		require.NoError(t, err)

		second, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: first.RefreshToken})
		require.NoError(t, err)

		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
		assert.NotContains(t, repo.tokens, first.RefreshToken, "old token must be consumed")
		assert.Contains(t, repo.tokens, second.RefreshToken)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: "bogus"})
		assert.EqualError(t, err, "invalid refresh token")
	})
}

func TestUserServiceDelete(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Username: "owner", Role: model.RoleAdmin, IsActive: true}
	manager := &model.User{ID: uuid.New(), Username: "helper", Role: model.RoleManager}

	t.Run("admin accounts are protected", func(t *testing.T) {
		repo := newFakeUserRepo(admin, manager)
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		err := svc.DeleteUser(context.Background(), manager.ID.String(), admin.ID.String())
		assert.EqualError(t, err, "cannot delete admin accounts")
	})

	t.Run("cannot delete self", func(t *testing.T) {
		repo := newFakeUserRepo(admin, manager)
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		err := svc.DeleteUser(context.Background(), manager.ID.String(), manager.ID.String())
		assert.EqualError(t, err, "cannot delete your own account")
	})

	t.Run("deletes and audits", func(t *testing.T) {
		repo := newFakeUserRepo(admin, manager)
		auditRepo := &fakeAuditRepo{}
		svc := NewUserService(repo, auditRepo, &fakeTxManager{})

		require.NoError(t, svc.DeleteUser(context.Background(), admin.ID.String(), manager.ID.String()))
		assert.Equal(t, []string{manager.ID.String()}, repo.deleted)
		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, model.ActionDeleteUser, auditRepo.entries[0].Action)
	})
}

func TestUserServiceToggleStatus(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Username: "owner", Role: model.RoleAdmin, IsActive: true}
	manager := &model.User{ID: uuid.New(), Username: "helper", Role: model.RoleManager}

	t.Run("activates a manager", func(t *testing.T) {
		repo := newFakeUserRepo(admin, manager)
		auditRepo := &fakeAuditRepo{}
		svc := NewUserService(repo, auditRepo, &fakeTxManager{})

		user, err := svc.ToggleStatus(context.Background(), admin.ID.String(), manager.ID.String(), true)
		require.NoError(t, err)

		assert.True(t, user.IsActive)
		require.Len(t, auditRepo.entries, 1)
		assert.Equal(t, model.ActionToggleUserStatus, auditRepo.entries[0].Action)
	})

	t.Run("admin status is immutable", func(t *testing.T) {
		repo := newFakeUserRepo(admin, manager)
		svc := NewUserService(repo, &fakeAuditRepo{}, &fakeTxManager{})

		_, err := svc.ToggleStatus(context.Background(), manager.ID.String(), admin.ID.String(), false)
		assert.EqualError(t, err, "cannot change status of admin accounts")
	})
}
