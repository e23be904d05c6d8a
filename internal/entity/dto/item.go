package dto

import "time"

// Item is the DTO representation of a catalogue item (ingredient).
type Item struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	UsageCount int64     `json:"usage_count,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// ItemListResponse is the response for listing items.
type ItemListResponse struct {
	Items []Item `json:"items"`
}
