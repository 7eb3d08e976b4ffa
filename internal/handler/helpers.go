package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePageQuery reads the page and page_size query parameters. Out-of-range
// values are clamped by the service layer, not here.
func parsePageQuery(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
