package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cookbook/internal/entity"
	"cookbook/internal/entity/converter"
	"cookbook/internal/entity/dto"
)

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *HTTPHandler) ListTags(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, dto.TagListResponse{Tags: []dto.Tag{}})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.repo.ListTags(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list tags")
		InternalError(c, "failed to load tags")
		return
	}

	c.JSON(http.StatusOK, dto.TagListResponse{Tags: converter.TagsToDTOs(tags)})
}

func (h *HTTPHandler) CreateTag(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "tag repository not available")
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		MissingField(c, "name")
		return
	}

	tag := &entity.DbTag{Name: name}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeNameConflict, "tag name already exists")
			return
		}
		logrus.WithError(err).Error("failed to create tag")
		BadRequest(c, ErrCodeInvalidRequest, "failed to create tag")
		return
	}

	c.JSON(http.StatusCreated, dto.TagDetailResponse{Tag: converter.TagToDTO(tag)})
}

func (h *HTTPHandler) UpdateTag(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "tag repository not available")
		return
	}

	rawID := strings.TrimSpace(c.Param("id"))
	tagID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || tagID == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid tag id")
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateTag(ctx, uint(tagID), entity.TagUpdates{Name: &name}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeTagNotFound, "tag not found")
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeNameConflict, "tag name already exists")
			return
		}
		logrus.WithError(err).Error("failed to update tag")
		InternalError(c, "failed to update tag")
		return
	}

	c.JSON(http.StatusOK, dto.TagDetailResponse{Tag: dto.Tag{
		ID:   uint(tagID),
		Name: name,
	}})
}

func (h *HTTPHandler) DeleteTag(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "tag repository not available")
		return
	}

	rawID := strings.TrimSpace(c.Param("id"))
	tagID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || tagID == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid tag id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteTag(ctx, uint(tagID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeTagNotFound, "tag not found")
			return
		}
		logrus.WithError(err).Error("failed to delete tag")
		InternalError(c, "failed to delete tag")
		return
	}

	c.Status(http.StatusNoContent)
}
