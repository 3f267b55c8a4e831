package handler

import (
	"net/http"

	"garage/internal/middleware"
	"garage/internal/model"
	"garage/internal/service"
	"garage/pkg/response"

	"github.com/gin-gonic/gin"
)

type SupplyHandler struct {
	supplyService service.SupplyService
}

func NewSupplyHandler(supplyService service.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplyService: supplyService}
}

func (h *SupplyHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	supplies := router.Group("/api/supplies")
	{
		supplies.GET("", auth, h.ListSupplies)
		supplies.GET("/names", auth, h.SearchNames)
		supplies.POST("", auth, h.CreateSupply)
		supplies.POST("/bulk", auth, h.BulkCreateSupplies)
		supplies.PUT("/:id", auth, h.UpdateSupply)
		supplies.DELETE("/:id", auth, h.DeleteSupply)
	}
}

// ListSupplies returns supplies for a period
// @Summary      List supplies
// @Description  Lists supply purchases filtered by month/year, newest first
// @Tags         supplies
// @Produce      json
// @Security     BearerAuth
// @Param        month            query     int   false  "Month (1-12), omit for whole year"
// @Param        year             query     int   false  "Year"
// @Param        include_settled  query     bool  false  "Include settled supplies (default false)"
// @Success      200  {object}  response.Response{data=[]model.Supply}
// @Failure      500  {object}  response.Response
// @Router       /api/supplies [get]
func (h *SupplyHandler) ListSupplies(c *gin.Context) {
	month, year := periodQuery(c)

	supplies, err := h.supplyService.ListSupplies(c.Request.Context(), month, year, includeSettledQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, supplies))
}

// SearchNames returns distinct supply names for autocomplete
// @Summary      Search supply names
// @Description  Returns distinct supply names matching the search term
// @Tags         supplies
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name fragment"
// @Success      200     {object}  response.Response{data=[]string}
// @Failure      500     {object}  response.Response
// @Router       /api/supplies/names [get]
func (h *SupplyHandler) SearchNames(c *gin.Context) {
	names, err := h.supplyService.SearchNames(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, names))
}

// CreateSupply records a single supply purchase
// @Summary      Create supply
// @Description  Records a supply purchase; GST, totals and the period fields are computed server side
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SupplyRequest  true  "Supply Payload"
// @Success      201      {object}  response.Response{data=model.Supply}
// @Failure      400      {object}  response.Response
// @Router       /api/supplies [post]
func (h *SupplyHandler) CreateSupply(c *gin.Context) {
	var req service.SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supply, err := h.supplyService.CreateSupply(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supply))
}

// BulkCreateSupplies records all lines of one supplier invoice
// @Summary      Bulk create supplies
// @Description  Records every line of a supplier invoice atomically; all lines must share the invoice number
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.BulkSupplyRequest  true  "Invoice lines"
// @Success      201      {object}  response.Response{data=[]model.Supply}
// @Failure      400      {object}  response.Response
// @Router       /api/supplies/bulk [post]
func (h *SupplyHandler) BulkCreateSupplies(c *gin.Context) {
	var req service.BulkSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supplies, err := h.supplyService.BulkCreateSupplies(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, supplies))
}

// UpdateSupply rewrites a supply record
// @Summary      Update supply
// @Description  Updates a supply purchase and recomputes its derived amounts
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Supply ID"
// @Param        payload  body      service.SupplyRequest  true  "Supply Payload"
// @Success      200      {object}  response.Response{data=model.Supply}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/supplies/{id} [put]
func (h *SupplyHandler) UpdateSupply(c *gin.Context) {
	var req service.SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	supply, err := h.supplyService.UpdateSupply(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, supply))
}

// DeleteSupply removes a supply record
// @Summary      Delete supply
// @Tags         supplies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Supply ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/supplies/{id} [delete]
func (h *SupplyHandler) DeleteSupply(c *gin.Context) {
	if err := h.supplyService.DeleteSupply(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Supply deleted"))
}
