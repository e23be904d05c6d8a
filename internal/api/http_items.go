package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cookbook/internal/entity/converter"
	"cookbook/internal/entity/dto"
)

// ListItems 返回食材目录，附带每个食材被引用的菜谱数。
func (h *HTTPHandler) ListItems(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, dto.ItemListResponse{Items: []dto.Item{}})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.repo.ListItems(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list items")
		InternalError(c, "failed to load items")
		return
	}

	c.JSON(http.StatusOK, dto.ItemListResponse{Items: converter.ItemsToDTOs(items)})
}
