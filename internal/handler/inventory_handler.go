package handler

import (
	"net/http"

	"garage/internal/middleware"
	"garage/internal/model"
	"garage/internal/service"
	"garage/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	inventory := router.Group("/api/inventory")
	{
		inventory.GET("", auth, h.GetInventory)
		inventory.POST("/settle", auth, h.Settle)
	}

	router.PUT("/api/supplies/:id/mapping", auth, h.UpdateMapping)
}

// GetInventory returns the reconciled stock view for a period
// @Summary      Get inventory
// @Description  Derives the stock view for a month/year by matching supplies against the parts consumed by car services
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        month            query     int   false  "Month (1-12), omit for whole year"
// @Param        year             query     int   true   "Year"
// @Param        include_settled  query     bool  false  "Include settled records (default false)"
// @Success      200  {object}  response.Response{data=[]model.InventoryItem}
// @Failure      500  {object}  response.Response
// @Router       /api/inventory [get]
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	month, year := periodQuery(c)

	items, err := h.inventoryService.GetInventory(c.Request.Context(), month, year, includeSettledQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// Settle marks supplies and consumed service items as settled
// @Summary      Settle inventory
// @Description  Marks the given supplies and car service items as settled in a single transaction; unknown ids are skipped
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SettleRequest  true  "IDs to settle"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/inventory/settle [post]
func (h *InventoryHandler) Settle(c *gin.Context) {
	var req service.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.inventoryService.Settle(c.Request.Context(), currentUserID(c), req); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Settlement completed"))
}

// UpdateMapping replaces a supply's alias list
// @Summary      Update supply mapping
// @Description  Replaces the list of car-service item names that resolve to this supply
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Supply ID"
// @Param        payload  body      service.UpdateMappingRequest   true  "Mapped names"
// @Success      200      {object}  response.Response{data=model.Supply}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/supplies/{id}/mapping [put]
func (h *InventoryHandler) UpdateMapping(c *gin.Context) {
	var req service.UpdateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supply, err := h.inventoryService.UpdateMapping(c.Request.Context(), currentUserID(c), c.Param("id"), req.MappedNames)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, supply))
}
