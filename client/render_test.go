package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderList(t *testing.T) {
	r := NewRenderer()

	photos := []Photo{
		{ID: "p1", Name: "Beach", ImageURL: "https://img/p1.jpg", ThumbnailURL: "https://img/t1.jpg"},
		{ID: "p2", ImageURL: "https://img/p2.jpg"},
	}

	t.Run("empty collection renders the fixed message", func(t *testing.T) {
		html, err := r.RenderList(nil, true)
		require.NoError(t, err)
		assert.Contains(t, html, "No photos found. Add one!")
		assert.NotContains(t, html, "<ul")
	})

	t.Run("privileged render includes delete buttons with data-id", func(t *testing.T) {
		html, err := r.RenderList(photos, true)
		require.NoError(t, err)
		assert.Contains(t, html, `data-id="p1"`)
		assert.Contains(t, html, `data-id="p2"`)
		assert.Contains(t, html, `href="/edit/p1"`)
	})

	t.Run("unprivileged render has no controls", func(t *testing.T) {
		html, err := r.RenderList(photos, false)
		require.NoError(t, err)
		assert.NotContains(t, html, "data-id")
		assert.NotContains(t, html, "delete-btn")
		assert.NotContains(t, html, "edit-link")
	})

	t.Run("thumbnail preferred, image url as fallback", func(t *testing.T) {
		html, err := r.RenderList(photos, false)
		require.NoError(t, err)
		assert.Contains(t, html, `src="https://img/t1.jpg"`)
		assert.Contains(t, html, `src="https://img/p2.jpg"`)
	})

	t.Run("missing name falls back to Untitled", func(t *testing.T) {
		html, err := r.RenderList(photos, false)
		require.NoError(t, err)
		assert.Contains(t, html, "Untitled")
	})
}

func TestRenderDetail(t *testing.T) {
	r := NewRenderer()

	t.Run("full metadata", func(t *testing.T) {
		html, err := r.RenderDetail(Photo{
			ID:          "p1",
			Name:        "Beach",
			Date:        "2024-07-01",
			People:      "Ana, Ben",
			Description: "Sunset at the beach.",
			ImageURL:    "https://img/p1.jpg",
		})
		require.NoError(t, err)
		assert.Contains(t, html, "Beach")
		assert.Contains(t, html, "2024-07-01")
		assert.Contains(t, html, "Ana, Ben")
		assert.Contains(t, html, "Sunset at the beach.")
	})

	t.Run("fallbacks for missing fields", func(t *testing.T) {
		html, err := r.RenderDetail(Photo{ID: "p1", ImageURL: "https://img/p1.jpg"})
		require.NoError(t, err)
		assert.Contains(t, html, "Untitled")
		assert.Contains(t, html, "Unknown")
		assert.Contains(t, html, "No description.")
	})

	t.Run("metadata is escaped", func(t *testing.T) {
		html, err := r.RenderDetail(Photo{
			ID:       "p1",
			Name:     `<script>alert("x")</script>`,
			ImageURL: "https://img/p1.jpg",
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
	})
}
