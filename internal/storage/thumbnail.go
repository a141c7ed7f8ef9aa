package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// ThumbnailMaxEdge bounds the longer edge of generated thumbnails, matching
// the 175px tiles the gallery list renders.
const ThumbnailMaxEdge = 320

// Thumbnail downscales an uploaded image and re-encodes it as JPEG.
// Images already within bounds are still re-encoded so every thumbnail has a
// uniform content type. Returns an error for data that does not decode as
// JPEG, PNG, or GIF.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(ThumbnailMaxEdge, ThumbnailMaxEdge, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
