package utils

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"cookbook/internal/storage"
)

const photoCategory = "recipes"

// StorePhoto persists decoded photo bytes into the storage backend and returns
// the object key.
func StorePhoto(ctx context.Context, store storage.Store, data []byte, ext string) (string, error) {
	if store == nil {
		return "", errors.New("storage not configured")
	}
	return store.Put(ctx, data, storage.PutOptions{
		Category:  photoCategory,
		BaseName:  uuid.NewString(),
		Extension: ext,
	})
}

// FetchAndStorePhoto downloads a remote photo and persists it. The object key
// is derived from the source URL so re-importing the same page reuses the
// already stored copy.
func FetchAndStorePhoto(ctx context.Context, store storage.Store, photoURL string) (string, error) {
	if store == nil {
		return "", errors.New("storage not configured")
	}
	trimmed := strings.TrimSpace(photoURL)
	if trimmed == "" {
		return "", errors.New("empty photo url")
	}

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().SetContext(ctx).Get(trimmed)
	if err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("download photo http %d", resp.StatusCode())
	}
	data := resp.Body()
	if len(data) == 0 {
		return "", errors.New("empty photo body")
	}

	ext := ExtensionFromMime(resp.Header().Get("Content-Type"))
	if ext == "" {
		ext = ExtensionFromMime(http.DetectContentType(data))
	}
	if ext == "" {
		ext = "jpg"
	}

	return store.Put(ctx, data, storage.PutOptions{
		Category:     photoCategory,
		BaseName:     fmt.Sprintf("%x", sha1.Sum([]byte(trimmed))),
		Extension:    ext,
		SkipIfExists: true,
	})
}
