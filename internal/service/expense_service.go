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

type ExpenseRequest struct {
	Name       string `json:"name" binding:"required"`
	Amount     string `json:"amount" binding:"required"`      // Decimal string
	IssuedDate string `json:"issued_date" binding:"required"` // RFC3339
	Remarks    string `json:"remarks"`
}

type ExpenseService interface {
	ListExpenses(ctx context.Context, month, year int) ([]model.Expense, error)
	CreateExpense(ctx context.Context, userID string, req ExpenseRequest) (*model.Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, req ExpenseRequest) (*model.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

func expenseFromRequest(req ExpenseRequest) (*model.Expense, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	issuedDate, err := time.Parse(time.RFC3339, req.IssuedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid issued_date, expected RFC3339: %w", err)
	}

	month, year := periodOf(issuedDate)
	return &model.Expense{
		Name:       req.Name,
		Amount:     amount,
		IssuedDate: issuedDate,
		Month:      month,
		Year:       year,
		Remarks:    req.Remarks,
	}, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, month, year int) ([]model.Expense, error) {
	return s.expenseRepo.List(ctx, month, year)
}

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req ExpenseRequest) (*model.Expense, error) {
	expense, err := expenseFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.expenseRepo.Create(txCtx, expense); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateExpense,
			EntityID:   expense.ID.String(),
			EntityName: expense.Name,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, id string, req ExpenseRequest) (*model.Expense, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid expense id: %w", err)
	}

	existing, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("expense not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updated, err := expenseFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.expenseRepo.Update(txCtx, updated); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateExpense,
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

func (s *expenseService) DeleteExpense(ctx context.Context, userID, id string) error {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid expense id: %w", err)
	}

	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("expense not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.expenseRepo.Delete(txCtx, expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}

		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeleteExpense,
			EntityID:   expense.ID.String(),
			EntityName: expense.Name,
			Details:    `{"deleted": true}`,
		}
		return s.auditRepo.Log(txCtx, audit)
	})
}
