package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"galleryapi/internal/model"
	"galleryapi/internal/repository"
)

// PhotoPostgres is a PostgreSQL implementation of repository.PhotoRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PhotoPostgres struct {
	db *sql.DB
}

// NewPhotoPostgres creates a new PhotoPostgres repository.
func NewPhotoPostgres(db *sql.DB) *PhotoPostgres {
	return &PhotoPostgres{db: db}
}

var _ repository.PhotoRepository = (*PhotoPostgres)(nil)

const photoColumns = `id, owner_id, name, date_taken, people, description, image_url, thumb_url, storage_path, thumb_path, created_at`

// metadata field name -> column, for partial updates
var photoFieldColumns = map[string]string{
	"name":        "name",
	"date":        "date_taken",
	"people":      "people",
	"description": "description",
}

func scanPhoto(row interface{ Scan(...any) error }) (*model.Photo, error) {
	var p model.Photo
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Date,
		&p.People,
		&p.Description,
		&p.ImageURL,
		&p.ThumbnailURL,
		&p.StoragePath,
		&p.ThumbPath,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new photo row and returns the stored record.
func (r *PhotoPostgres) Create(ctx context.Context, p *model.Photo) (*model.Photo, error) {
	const q = `
		INSERT INTO photos (id, owner_id, name, date_taken, people, description, image_url, thumb_url, storage_path, thumb_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + photoColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Date,
		p.People,
		p.Description,
		p.ImageURL,
		p.ThumbnailURL,
		p.StoragePath,
		p.ThumbPath,
		p.CreatedAt,
	)
	return scanPhoto(row)
}

// FindByID fetches a single photo by its ID.
func (r *PhotoPostgres) FindByID(ctx context.Context, id string) (*model.Photo, error) {
	const q = `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`
	return scanPhoto(r.db.QueryRowContext(ctx, q, id))
}

// List returns all photos, newest first.
func (r *PhotoPostgres) List(ctx context.Context) ([]model.Photo, error) {
	const q = `SELECT ` + photoColumns + ` FROM photos ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes only the columns named in fields. Unknown field names are an
// error; the service layer validates against model.EditableFields first.
func (r *PhotoPostgres) Update(ctx context.Context, id string, fields map[string]string) (*model.Photo, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	// Deterministic column order keeps queries stable for tests and logs.
	for _, f := range []string{"name", "date", "people", "description"} {
		v, ok := fields[f]
		if !ok {
			continue
		}
		col, known := photoFieldColumns[f]
		if !known {
			return nil, fmt.Errorf("unknown photo field %q", f)
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(set) != len(fields) {
		for f := range fields {
			if _, known := photoFieldColumns[f]; !known {
				return nil, fmt.Errorf("unknown photo field %q", f)
			}
		}
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE photos SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), photoColumns)

	return scanPhoto(r.db.QueryRowContext(ctx, q, args...))
}

// Delete removes a photo by ID. A missing row reports sql.ErrNoRows.
func (r *PhotoPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM photos WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
