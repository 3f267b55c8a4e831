package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"garage/internal/model"
	"garage/internal/repository"
	ws "garage/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type SettleRequest struct {
	SupplyIDs         []string `json:"supply_ids"`
	CarServiceItemIDs []string `json:"car_service_item_ids"`
}

type UpdateMappingRequest struct {
	MappedNames []string `json:"mapped_names" binding:"required"`
}

// StockEvent is the websocket payload broadcast after settlement so open
// inventory dashboards refresh without polling.
type StockEvent struct {
	Event              string `json:"event"`
	SettledSupplies    int    `json:"settled_supplies"`
	SettledServiceRows int    `json:"settled_service_rows"`
}

type InventoryService interface {
	GetInventory(ctx context.Context, month, year int, includeSettled bool) ([]model.InventoryItem, error)
	Settle(ctx context.Context, userID string, req SettleRequest) error
	UpdateMapping(ctx context.Context, userID, supplyID string, mappedNames []string) (*model.Supply, error)
}

type inventoryService struct {
	supplyRepo     repository.SupplyRepository
	carServiceRepo repository.CarServiceRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	hub            *ws.Hub
}

func NewInventoryService(
	supplyRepo repository.SupplyRepository,
	carServiceRepo repository.CarServiceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		supplyRepo:     supplyRepo,
		carServiceRepo: carServiceRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		hub:            hub,
	}
}

// Reconcile computes the per-supply-name stock view from the supplies on
// hand and the car services consuming them. It is a pure function of its
// inputs: the full view set is rebuilt on every call and identical inputs
// yield identical output.
//
// One view is seeded per supply, keyed by its canonical name; a later supply
// carrying a name already seen replaces the earlier view in place, matching
// the keyed-map semantics the inventory screen has always had. PARTS items
// then resolve against the views; matched quantities accumulate into
// UsedQuantity and come off RemainingQuantity with no clamping, so
// over-consumption shows up as negative remaining stock rather than an
// error. Unmatched PARTS consumption is skipped silently.
func Reconcile(supplies []model.Supply, carServices []model.CarService) []model.InventoryItem {
	views := make([]*model.InventoryItem, 0, len(supplies))
	byName := make(map[string]int, len(supplies))

	for _, supply := range supplies {
		view := &model.InventoryItem{
			ID:                supply.ID.String(),
			Name:              supply.Name,
			TotalQuantity:     supply.Quantity,
			UsedQuantity:      0,
			RemainingQuantity: supply.Quantity,
			Price:             supply.Price,
			MappedNames:       append([]string(nil), supply.MappedNames...),
			Settled:           supply.Settled,
		}
		if i, ok := byName[supply.Name]; ok {
			views[i] = view
			continue
		}
		byName[supply.Name] = len(views)
		views = append(views, view)
	}

	for _, svc := range carServices {
		for _, item := range svc.Items {
			if item.ServiceType != model.ServiceTypeParts {
				continue
			}

			view := resolveSupply(item.Name, views)
			if view == nil {
				continue
			}

			view.UsedQuantity += item.Quantity
			view.RemainingQuantity -= item.Quantity
			if view.LastUsedDate == nil || svc.CarInDateTime.After(*view.LastUsedDate) {
				used := svc.CarInDateTime
				view.LastUsedDate = &used
			}
		}
	}

	result := make([]model.InventoryItem, 0, len(views))
	for _, v := range views {
		result = append(result, *v)
	}
	return result
}

// resolveSupply maps a consumed line-item name to its stock view. An exact
// match on the canonical name wins over an alias match; within each pass the
// first view in supply order wins. Comparison is literal: no case folding,
// no substring matching.
func resolveSupply(name string, views []*model.InventoryItem) *model.InventoryItem {
	for _, v := range views {
		if v.Name == name {
			return v
		}
	}
	for _, v := range views {
		for _, alias := range v.MappedNames {
			if alias == name {
				return v
			}
		}
	}
	return nil
}

func (s *inventoryService) GetInventory(ctx context.Context, month, year int, includeSettled bool) ([]model.InventoryItem, error) {
	supplies, err := s.supplyRepo.List(ctx, repository.SupplyFilter{
		Month:          month,
		Year:           year,
		IncludeSettled: includeSettled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load supplies: %w", err)
	}

	carServices, err := s.carServiceRepo.List(ctx, repository.CarServiceFilter{
		Month:          month,
		Year:           year,
		IncludeSettled: includeSettled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load car services: %w", err)
	}

	return Reconcile(supplies, carServices), nil
}

// Settle marks the given supplies and car service items as financially
// reconciled, removing them from future reconciliation passes. Ids that
// match nothing are silent no-ops. Both bulk updates run inside a single
// transaction so a store failure cannot leave one collection settled and
// the other not.
func (s *inventoryService) Settle(ctx context.Context, userID string, req SettleRequest) error {
	supplyIDs := parseIDs(req.SupplyIDs)
	itemIDs := parseIDs(req.CarServiceItemIDs)

	if len(supplyIDs) == 0 && len(itemIDs) == 0 {
		return errors.New("nothing to settle")
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if len(supplyIDs) > 0 {
			if err := s.supplyRepo.MarkSettled(txCtx, supplyIDs); err != nil {
				return fmt.Errorf("failed to settle supplies: %w", err)
			}
		}
		if len(itemIDs) > 0 {
			if err := s.carServiceRepo.MarkItemsSettled(txCtx, itemIDs); err != nil {
				return fmt.Errorf("failed to settle car service items: %w", err)
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"supply_ids":           req.SupplyIDs,
			"car_service_item_ids": req.CarServiceItemIDs,
		})
		audit := &model.AuditLog{
			UserID:  parseUserID(userID),
			Action:  model.ActionSettleInventory,
			Details: string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		event, _ := json.Marshal(StockEvent{
			Event:              "inventory.settled",
			SettledSupplies:    len(supplyIDs),
			SettledServiceRows: len(itemIDs),
		})
		s.hub.Broadcast <- event
	}

	return nil
}

// UpdateMapping replaces a supply's alias list wholesale.
func (s *inventoryService) UpdateMapping(ctx context.Context, userID, supplyID string, mappedNames []string) (*model.Supply, error) {
	id, err := uuid.Parse(supplyID)
	if err != nil {
		return nil, fmt.Errorf("invalid supply id: %w", err)
	}

	supply, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("supply not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	names := model.StringArray(mappedNames)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.supplyRepo.UpdateMappedNames(txCtx, id, names); err != nil {
			return fmt.Errorf("failed to update supply mapping: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{"mapped_names": mappedNames})
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateMapping,
			EntityID:   supply.ID.String(),
			EntityName: supply.Name,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	supply.MappedNames = names
	return supply, nil
}

// parseIDs drops ids that are not valid uuids; they could never match a row,
// which makes them no-ops by the settle contract.
func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseUserID(userID string) *uuid.UUID {
	if parsed, err := uuid.Parse(userID); err == nil {
		return &parsed
	}
	return nil
}
