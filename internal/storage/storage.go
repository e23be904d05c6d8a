package storage

import (
	"context"
	"fmt"
	"strings"

	"cookbook/internal/config"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

// PutOptions 控制存储后端如何持久化对象。
//
// Category 用于组织目录结构，Extension 提示文件扩展名（不含前导点）。
// SkipIfExists 为 true 时，若同名对象已存在则直接返回其 key，
// 用于按来源 URL 去重导入的图片。
type PutOptions struct {
	Category     string
	Extension    string
	BaseName     string
	SkipIfExists bool
}

// Store 持久化二进制数据并返回存储内的对象标识（本地存储为相对路径）。
type Store interface {
	Put(ctx context.Context, data []byte, opts PutOptions) (string, error)
}

// LocalBaseDirProvider 由可通过 HTTP 直接提供文件服务的本地存储实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStore 根据配置实例化存储后端。
func NewStore(cfg config.Config) (Store, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStore(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Store(cfg)
	case TypeOSS:
		return NewOSSStore(cfg)
	case TypeCOS:
		return NewCOSStore(cfg)
	case TypeR2:
		return NewR2Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
