package handler

import (
	"net/http"

	"garage/internal/middleware"
	"garage/internal/model"
	"garage/internal/service"
	"garage/pkg/response"

	"github.com/gin-gonic/gin"
)

type CarServiceHandler struct {
	carService service.CarServiceService
}

func NewCarServiceHandler(carService service.CarServiceService) *CarServiceHandler {
	return &CarServiceHandler{carService: carService}
}

func (h *CarServiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	services := router.Group("/api/car-services")
	{
		services.GET("", auth, h.ListCarServices)
		services.GET("/search", auth, h.SearchCarServices)
		services.POST("", auth, h.CreateCarService)
		services.PUT("/:id", auth, h.UpdateCarService)
		services.DELETE("/:id", auth, h.DeleteCarService)
	}
}

// ListCarServices returns car services for a period
// @Summary      List car services
// @Description  Lists car service jobs filtered by month/year, newest first; settled items are hidden unless requested
// @Tags         car-services
// @Produce      json
// @Security     BearerAuth
// @Param        month            query     int   false  "Month (1-12), omit for whole year"
// @Param        year             query     int   false  "Year"
// @Param        include_settled  query     bool  false  "Include settled items (default false)"
// @Success      200  {object}  response.Response{data=[]model.CarService}
// @Failure      500  {object}  response.Response
// @Router       /api/car-services [get]
func (h *CarServiceHandler) ListCarServices(c *gin.Context) {
	month, year := periodQuery(c)

	services, err := h.carService.ListCarServices(c.Request.Context(), month, year, includeSettledQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, services))
}

// SearchCarServices looks up jobs by plate, owner or phone
// @Summary      Search car services
// @Description  Case-insensitive substring search across car plate, owner name and phone number
// @Tags         car-services
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search term"
// @Success      200  {object}  response.Response{data=[]model.CarService}
// @Failure      500  {object}  response.Response
// @Router       /api/car-services/search [get]
func (h *CarServiceHandler) SearchCarServices(c *gin.Context) {
	services, err := h.carService.SearchCarServices(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, services))
}

// CreateCarService records a new service job with its line items
// @Summary      Create car service
// @Description  Records a car service job; discount, GST and the final amount are computed server side
// @Tags         car-services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CarServiceRequest  true  "Car Service Payload"
// @Success      201      {object}  response.Response{data=model.CarService}
// @Failure      400      {object}  response.Response
// @Router       /api/car-services [post]
func (h *CarServiceHandler) CreateCarService(c *gin.Context) {
	var req service.CarServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.carService.CreateCarService(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// UpdateCarService rewrites a job and replaces its line items
// @Summary      Update car service
// @Tags         car-services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Car Service ID"
// @Param        payload  body      service.CarServiceRequest  true  "Car Service Payload"
// @Success      200      {object}  response.Response{data=model.CarService}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/car-services/{id} [put]
func (h *CarServiceHandler) UpdateCarService(c *gin.Context) {
	var req service.CarServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.carService.UpdateCarService(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// DeleteCarService removes a job and its line items
// @Summary      Delete car service
// @Tags         car-services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Car Service ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/car-services/{id} [delete]
func (h *CarServiceHandler) DeleteCarService(c *gin.Context) {
	if err := h.carService.DeleteCarService(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Car service deleted"))
}
