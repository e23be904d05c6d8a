package service

import (
	"context"
	"cookbook/internal/entity"
	"cookbook/internal/model"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// EntityResolver finds or creates catalogue entities by exact name. Resolution
// is race-safe against concurrent creators: a uniqueness conflict on create
// means someone else just inserted the name, so the lookup is retried once.
type EntityResolver struct {
	repo model.Repository
}

// NewEntityResolver creates a resolver bound to the given repository. Pass a
// transaction-scoped repository to resolve inside that transaction.
func NewEntityResolver(repo model.Repository) *EntityResolver {
	return &EntityResolver{repo: repo}
}

// ResolveItem returns the item with the given name, creating it if missing.
func (r *EntityResolver) ResolveItem(ctx context.Context, name string) (*entity.DbItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("item name is empty")
	}

	item, err := r.repo.GetItemByName(ctx, name)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &entity.DbItem{Name: name}
	if err := r.repo.CreateItem(ctx, created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发创建者抢先，按名称重读即可
			return r.repo.GetItemByName(ctx, name)
		}
		return nil, err
	}
	return created, nil
}

// ResolveTag returns the tag with the given name, creating it if missing.
func (r *EntityResolver) ResolveTag(ctx context.Context, name string) (*entity.DbTag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is empty")
	}

	tag, err := r.repo.GetTagByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &entity.DbTag{Name: name}
	if err := r.repo.CreateTag(ctx, created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.repo.GetTagByName(ctx, name)
		}
		return nil, err
	}
	return created, nil
}
