package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cookbook/internal/entity/dto"
	"cookbook/internal/service"
)

// ScrapeRecipe 抓取外部菜谱页面并返回未持久化的草稿。
// 标题缺失视为整体失败，其余字段逐个降级为空。
func (h *HTTPHandler) ScrapeRecipe(c *gin.Context) {
	var req dto.ScrapeRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		MissingField(c, "url")
		return
	}

	pageURL := strings.TrimSpace(req.URL)
	if pageURL == "" {
		MissingField(c, "url")
		return
	}

	timeout := time.Duration(h.cfg.ScrapeTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	src, err := h.scrapeFn(ctx, pageURL)
	if err != nil {
		logrus.WithError(err).WithField("url", pageURL).Warn("scrape fetch failed")
		BadGateway(c, ErrCodeScrapeFailed, "could not fetch recipe page")
		return
	}

	draft, items, err := service.NormalizeScraped(src, pageURL)
	if err != nil {
		logrus.WithError(err).WithField("url", pageURL).Warn("scrape normalize failed")
		UnprocessableEntity(c, ErrCodeScrapeFailed, "page does not contain a usable recipe")
		return
	}

	c.JSON(http.StatusOK, dto.ScrapeRecipeResponse{Recipe: draft, Items: items})
}
