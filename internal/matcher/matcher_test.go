package matcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"galleryapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMatcher_Match(t *testing.T) {
	t.Run("match found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "aGVsbG8=", req["image"])

			json.NewEncoder(w).Encode(map[string]any{"photoId": "abc123"})
		}))
		defer srv.Close()

		m, err := NewHTTP(config.MatcherConfig{Endpoint: srv.URL})
		require.NoError(t, err)

		id, err := m.Match(context.Background(), "aGVsbG8=")
		assert.NoError(t, err)
		assert.Equal(t, "abc123", id)
	})

	t.Run("no match yields empty id without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"photoId": nil})
		}))
		defer srv.Close()

		m, err := NewHTTP(config.MatcherConfig{Endpoint: srv.URL})
		require.NoError(t, err)

		id, err := m.Match(context.Background(), "aGVsbG8=")
		assert.NoError(t, err)
		assert.Equal(t, "", id)
	})

	t.Run("non-200 surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		m, err := NewHTTP(config.MatcherConfig{Endpoint: srv.URL})
		require.NoError(t, err)

		_, err = m.Match(context.Background(), "aGVsbG8=")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("missing endpoint refused", func(t *testing.T) {
		_, err := NewHTTP(config.MatcherConfig{})
		assert.Error(t, err)
	})
}
