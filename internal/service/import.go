package service

import (
	"cookbook/internal/entity/dto"
	"cookbook/internal/scrape"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeScraped maps the noisy, partially-available fields of a scraped
// page onto a well-typed recipe draft. Every field is extracted independently:
// a missing or uncoercible value leaves that field unset instead of failing
// the import. Only the title is mandatory.
//
// Ingredient names are returned raw and in page order, with no resolution and
// no deduplication; nothing is persisted here. The caller confirms them later
// through the regular reconciliation path.
func NormalizeScraped(src scrape.Source, sourceURL string) (dto.RecipeDraft, []string, error) {
	title, err := src.Title()
	if err != nil {
		return dto.RecipeDraft{}, nil, fmt.Errorf("scrape title: %w", err)
	}

	draft := dto.RecipeDraft{
		Name:   title,
		Source: sourceURL,
	}

	if v, err := src.TotalTime(); err == nil {
		draft.Time = &v
	}
	if v, err := src.CookTime(); err == nil {
		draft.CookTime = &v
	}
	if v, err := src.PrepTime(); err == nil {
		draft.PrepTime = &v
	}
	if raw, err := src.Yields(); err == nil {
		if n, ok := leadingInt(raw); ok {
			draft.Yields = &n
		}
	}

	// 简介和做法各自独立，缺失的一半直接跳过，中间以空行分隔
	parts := make([]string, 0, 2)
	if v, err := src.Description(); err == nil {
		parts = append(parts, v)
	}
	if v, err := src.Instructions(); err == nil {
		parts = append(parts, v)
	}
	draft.Description = strings.Join(parts, "\n\n")

	if v, err := src.Image(); err == nil {
		draft.Photo = v
	}

	names := []string{}
	if list, err := src.Ingredients(); err == nil {
		names = list
	}

	return draft, names, nil
}

// leadingInt parses the leading run of digit characters of s. "4 servings"
// yields 4; "serves several" yields nothing.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
