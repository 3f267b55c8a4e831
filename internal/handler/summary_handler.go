package handler

import (
	"net/http"

	"garage/internal/middleware"
	"garage/internal/model"
	"garage/internal/service"
	"garage/pkg/response"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryService service.SummaryService
}

func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/summary", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.GetSummary)
}

// GetSummary returns the money totals for a period
// @Summary      Get summary
// @Description  Aggregates car service revenue, supply spend and expenses for a year, or a single month when given
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month (1-12)"
// @Param        year   query     int  true   "Year"
// @Success      200    {object}  response.Response{data=service.MonthlySummary}
// @Failure      400    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /api/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	month, year := periodQuery(c)

	summary, err := h.summaryService.GetSummary(c.Request.Context(), month, year)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
