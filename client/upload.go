package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"galleryapi/internal/storage"
)

const uploadURLExpiry = 7 * 24 * time.Hour

// UploadedImage is the outcome of a completed upload step. Thumbnail fields
// are set only when the path that produced the upload generates one.
type UploadedImage struct {
	URL      string
	Key      string
	ThumbURL string
	ThumbKey string
}

// ImageUploader is the upload step a flow runs before creating a record.
type ImageUploader interface {
	Upload(ctx context.Context, userID, filename string, contents []byte) (*UploadedImage, error)
}

// Uploader is the object upload step: it writes image bytes under a
// per-user, timestamped key and resolves a shareable URL. Two uploads of the
// same file name in the same millisecond collide; accepted, not mitigated.
type Uploader struct {
	store storage.Storage
	now   func() time.Time
}

// NewUploader builds an Uploader over the given object store.
func NewUploader(store storage.Storage) *Uploader {
	return &Uploader{store: store, now: time.Now}
}

// Upload stores contents and returns the resulting URL and key.
func (u *Uploader) Upload(ctx context.Context, userID, filename string, contents []byte) (*UploadedImage, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	key := fmt.Sprintf("%s/%d_%s", userID, u.now().UnixMilli(), base)

	_, err := u.store.Put(ctx, key, bytes.NewReader(contents), storage.PutObjectOptions{
		Size:        int64(len(contents)),
		ContentType: http.DetectContentType(contents),
	})
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	url, err := u.store.PresignGet(ctx, key, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("resolve image url: %w", err)
	}
	return &UploadedImage{URL: url, Key: key}, nil
}

// RemoteUploader is the upload step for callers without storage credentials.
// It pushes the bytes through the server's upload endpoint, which also
// produces a thumbnail.
type RemoteUploader struct {
	gw *Gateway
}

// NewRemoteUploader builds a RemoteUploader over the given gateway.
func NewRemoteUploader(gw *Gateway) *RemoteUploader {
	return &RemoteUploader{gw: gw}
}

type uploadResult struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	StoragePath  string `json:"storagePath"`
	ThumbPath    string `json:"thumbPath"`
}

// Upload sends contents as multipart form data. The user id is implied by
// the gateway's token; the argument is accepted for interface symmetry.
func (r *RemoteUploader) Upload(ctx context.Context, _ string, filename string, contents []byte) (*UploadedImage, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(contents); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.gw.BaseURL+"/photos/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if r.gw.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.gw.token)
	}

	resp, err := r.gw.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errRes errorResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&errRes); decErr != nil {
			return nil, &CallError{Status: resp.StatusCode}
		}
		return nil, &CallError{
			Status:  resp.StatusCode,
			Code:    errRes.Error.Code,
			Message: errRes.Error.Message,
		}
	}

	var envelope dataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	var res uploadResult
	if err := json.Unmarshal(envelope.Data, &res); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return &UploadedImage{
		URL:      res.ImageURL,
		Key:      res.StoragePath,
		ThumbURL: res.ThumbnailURL,
		ThumbKey: res.ThumbPath,
	}, nil
}
