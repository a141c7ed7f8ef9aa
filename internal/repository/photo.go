package repository

import (
	"context"

	"galleryapi/internal/model"
)

// PhotoRepository defines data access for photo records using SQL queries only.
// No business logic here — strictly persistence operations.
type PhotoRepository interface {
	// Create inserts a new photo record and returns the stored row
	// (may include values set by the DB).
	Create(ctx context.Context, p *model.Photo) (*model.Photo, error)

	// FindByID returns a photo by its ID.
	FindByID(ctx context.Context, id string) (*model.Photo, error)

	// List returns all photos ordered by creation time descending.
	// Callers must not assume the order is stable across calls.
	List(ctx context.Context) ([]model.Photo, error)

	// Update applies a partial metadata update. Only keys present in fields
	// are written; an empty-string value clears that field. Returns the
	// updated row, or sql.ErrNoRows if the photo does not exist.
	Update(ctx context.Context, id string, fields map[string]string) (*model.Photo, error)

	// Delete removes a photo by ID. Returns sql.ErrNoRows if no row matched.
	Delete(ctx context.Context, id string) error
}
