package handler

import (
	"net/http"

	"garage/internal/middleware"
	"garage/internal/model"
	"garage/internal/service"
	"garage/pkg/response"

	"github.com/gin-gonic/gin"
)

type ServiceInfoHandler struct {
	infoService service.ServiceInfoService
}

func NewServiceInfoHandler(infoService service.ServiceInfoService) *ServiceInfoHandler {
	return &ServiceInfoHandler{infoService: infoService}
}

func (h *ServiceInfoHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	infos := router.Group("/api/service-info")
	{
		infos.GET("", auth, h.ListServiceInfo)
		infos.POST("", auth, h.CreateServiceInfo)
		infos.PUT("/:id", auth, h.UpdateServiceInfo)
		infos.DELETE("/:id", auth, h.DeleteServiceInfo)
	}
}

// ListServiceInfo returns all invoice note templates
// @Summary      List service info
// @Tags         service-info
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.ServiceExtraInfo}
// @Failure      500  {object}  response.Response
// @Router       /api/service-info [get]
func (h *ServiceInfoHandler) ListServiceInfo(c *gin.Context) {
	infos, err := h.infoService.ListServiceInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, infos))
}

// CreateServiceInfo adds an invoice note template
// @Summary      Create service info
// @Tags         service-info
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ServiceInfoRequest  true  "Service Info Payload"
// @Success      201      {object}  response.Response{data=model.ServiceExtraInfo}
// @Failure      400      {object}  response.Response
// @Router       /api/service-info [post]
func (h *ServiceInfoHandler) CreateServiceInfo(c *gin.Context) {
	var req service.ServiceInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	info, err := h.infoService.CreateServiceInfo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, info))
}

// UpdateServiceInfo rewrites an invoice note template
// @Summary      Update service info
// @Tags         service-info
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Service Info ID"
// @Param        payload  body      service.ServiceInfoRequest  true  "Service Info Payload"
// @Success      200      {object}  response.Response{data=model.ServiceExtraInfo}
// @Failure      400      {object}  response.Response
// @Router       /api/service-info/{id} [put]
func (h *ServiceInfoHandler) UpdateServiceInfo(c *gin.Context) {
	var req service.ServiceInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	info, err := h.infoService.UpdateServiceInfo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}

// DeleteServiceInfo removes an invoice note template
// @Summary      Delete service info
// @Tags         service-info
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service Info ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/service-info/{id} [delete]
func (h *ServiceInfoHandler) DeleteServiceInfo(c *gin.Context) {
	if err := h.infoService.DeleteServiceInfo(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Service info deleted"))
}
