package model

import "time"

// Photo is the metadata record describing one gallery image.
// This is a pure domain model with no database-specific dependencies or tags;
// it crosses the HTTP, service, and repository layers unchanged.
//
// ImageURL is assigned when the record is created and is immutable afterwards;
// only the descriptive metadata fields may be edited.
type Photo struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	People       string    `json:"people"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	StoragePath  string    `json:"-"`
	ThumbPath    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EditableFields lists the metadata keys a partial update may touch.
// ImageURL is deliberately absent.
var EditableFields = map[string]bool{
	"name":        true,
	"date":        true,
	"people":      true,
	"description": true,
}
