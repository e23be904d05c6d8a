package api

import (
	"context"
	"strings"
	"time"

	"cookbook/internal/config"
	"cookbook/internal/model"
	"cookbook/internal/scrape"
	"cookbook/internal/service"
	"cookbook/internal/storage"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Store
	storagePublicBase string

	// 服务层
	recipeService *service.RecipeService

	// scrapeFn 默认指向 scrape.Client.Fetch，测试可替换
	scrapeFn func(ctx context.Context, url string) (scrape.Source, error)
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Store) (*HTTPHandler, error) {
	recipeSvc := service.NewRecipeService(repo, store)

	scrapeTimeout := time.Duration(cfg.ScrapeTimeoutSeconds) * time.Second
	scrapeClient := scrape.NewClient(scrapeTimeout, cfg.ScrapeUserAgent)

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		recipeService:     recipeSvc,
		scrapeFn:          scrapeClient.Fetch,
	}

	return handler, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
