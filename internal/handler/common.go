package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// StatusRequest toggles an is_active flag. The pointer keeps an explicit
// "false" from failing the required binding.
type StatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// periodQuery extracts the month/year filter shared by the ledger-style
// listing endpoints. Zero means "not filtered".
func periodQuery(c *gin.Context) (month, year int) {
	month, _ = strconv.Atoi(c.Query("month"))
	year, _ = strconv.Atoi(c.Query("year"))
	return month, year
}

func includeSettledQuery(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.DefaultQuery("include_settled", "false"))
	return v
}

// currentUserID returns the user id stashed by the auth middleware, or ""
// when the route is unauthenticated.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
