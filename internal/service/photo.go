package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"galleryapi/internal/matcher"
	"galleryapi/internal/model"
	"galleryapi/internal/repository"
	"galleryapi/internal/storage"
)

var (
	ErrIDRequired       = errors.New("photo id is required")
	ErrNotFound         = errors.New("photo not found")
	ErrImageRequired    = errors.New("image is required")
	ErrImageURLRequired = errors.New("image url is required")
	ErrFieldNotEditable = errors.New("field is not editable")
)

// Presigned download URLs are minted once at upload time; seven days is the
// longest expiry S3-compatible stores accept.
const presignExpiry = 7 * 24 * time.Hour

// UploadResult describes a stored image: the public URLs handed to clients
// and the object keys kept for later deletion.
type UploadResult struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	StoragePath  string `json:"storagePath"`
	ThumbPath    string `json:"thumbPath"`
}

// CreatePhotoInput carries the addphoto payload. ImageURL is required; the
// storage bookkeeping fields are present when the image went through this
// server's upload step and absent for externally hosted images.
type CreatePhotoInput struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	StoragePath  string `json:"storagePath"`
	ThumbPath    string `json:"thumbPath"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	People       string `json:"people"`
	Description  string `json:"description"`
}

// PhotoService defines the use cases behind the gallery's remote procedures.
type PhotoService interface {
	// Upload stores an image (and a best-effort thumbnail) under a per-user,
	// timestamped key and returns retrievable URLs. Two uploads of the same
	// file name in the same millisecond collide; accepted, not mitigated.
	Upload(ctx context.Context, ownerID, filename, contentType string, data []byte) (*UploadResult, error)

	// Create inserts a new photo record. The image URL is fixed at creation
	// and never altered afterwards.
	Create(ctx context.Context, ownerID string, in CreatePhotoInput) (*model.Photo, error)

	// List returns all photos, newest first. Order is a server decision and
	// not guaranteed stable across calls.
	List(ctx context.Context) ([]model.Photo, error)

	// Get returns a single photo by its ID.
	Get(ctx context.Context, id string) (*model.Photo, error)

	// Update applies a partial metadata update. Keys present with empty
	// string values clear those fields; absent keys are left unchanged.
	// The imageUrl field is rejected.
	Update(ctx context.Context, id string, fields map[string]string) (*model.Photo, error)

	// Delete removes the record and its stored binaries. Storage is cleared
	// first so a dangling image URL cannot outlive its record.
	Delete(ctx context.Context, id string) error

	// Match asks the external matcher to resolve a base64 image to a photo
	// id. Empty id with nil error means no match.
	Match(ctx context.Context, imageB64 string) (string, error)
}

type photoService struct {
	store   storage.Storage
	repo    repository.PhotoRepository
	matcher matcher.Matcher
}

// NewPhotoService constructs a new PhotoService.
func NewPhotoService(store storage.Storage, repo repository.PhotoRepository, m matcher.Matcher) PhotoService {
	return &photoService{store: store, repo: repo, matcher: m}
}

// sanitizeFilename keeps only the base name so keys cannot escape the
// per-user prefix.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

func (s *photoService) Upload(ctx context.Context, ownerID, filename, contentType string, data []byte) (*UploadResult, error) {
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}
	if len(data) == 0 {
		return nil, ErrImageRequired
	}

	base := sanitizeFilename(filename)
	stamp := time.Now().UnixMilli()
	key := fmt.Sprintf("%s/%d_%s", ownerID, stamp, base)

	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": base,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	imageURL, err := s.store.PresignGet(ctx, key, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign image url: %w", err)
	}

	res := &UploadResult{ImageURL: imageURL, StoragePath: key}

	// Thumbnail generation is best effort; an undecodable image still uploads.
	if thumb, err := storage.Thumbnail(data); err == nil {
		thumbKey := fmt.Sprintf("%s/thumbs/%d_%s.jpg", ownerID, stamp, base)
		if _, err := s.store.Put(ctx, thumbKey, bytes.NewReader(thumb), storage.PutObjectOptions{
			Size:        int64(len(thumb)),
			ContentType: "image/jpeg",
		}); err == nil {
			if thumbURL, err := s.store.PresignGet(ctx, thumbKey, presignExpiry); err == nil {
				res.ThumbnailURL = thumbURL
				res.ThumbPath = thumbKey
			}
		}
	}

	return res, nil
}

func (s *photoService) Create(ctx context.Context, ownerID string, in CreatePhotoInput) (*model.Photo, error) {
	if in.ImageURL == "" {
		return nil, ErrImageURLRequired
	}

	photo := &model.Photo{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         in.Name,
		Date:         in.Date,
		People:       in.People,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		ThumbnailURL: in.ThumbnailURL,
		StoragePath:  in.StoragePath,
		ThumbPath:    in.ThumbPath,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *photoService) List(ctx context.Context) ([]model.Photo, error) {
	return s.repo.List(ctx)
}

func (s *photoService) Get(ctx context.Context, id string) (*model.Photo, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Update(ctx context.Context, id string, fields map[string]string) (*model.Photo, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	for f := range fields {
		if !model.EditableFields[f] {
			return nil, fmt.Errorf("%w: %s", ErrFieldNotEditable, f)
		}
	}
	photo, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Storage first; if this fails the record survives and the delete can be retried.
	if photo.StoragePath != "" {
		if err := s.store.Delete(ctx, photo.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	if photo.ThumbPath != "" {
		if err := s.store.Delete(ctx, photo.ThumbPath); err != nil {
			return fmt.Errorf("delete thumbnail: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *photoService) Match(ctx context.Context, imageB64 string) (string, error) {
	if imageB64 == "" {
		return "", ErrImageRequired
	}
	id, err := s.matcher.Match(ctx, imageB64)
	if err != nil {
		return "", fmt.Errorf("match image: %w", err)
	}
	return id, nil
}
