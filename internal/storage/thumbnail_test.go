package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	t.Run("downscales large images", func(t *testing.T) {
		data := testImage(t, 1600, 900)

		out, err := Thumbnail(data)
		require.NoError(t, err)

		img, format, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.LessOrEqual(t, img.Bounds().Dx(), ThumbnailMaxEdge)
		assert.LessOrEqual(t, img.Bounds().Dy(), ThumbnailMaxEdge)
	})

	t.Run("re-encodes small images as jpeg", func(t *testing.T) {
		data := testImage(t, 100, 80)

		out, err := Thumbnail(data)
		require.NoError(t, err)

		img, format, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 100, img.Bounds().Dx())
		assert.Equal(t, 80, img.Bounds().Dy())
	})

	t.Run("rejects non-image data", func(t *testing.T) {
		_, err := Thumbnail([]byte("not an image"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "decode image")
	})
}
