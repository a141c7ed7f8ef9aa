package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"galleryapi/internal/storage"
	storageMocks "galleryapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploaderUpload(t *testing.T) {
	fixedNow := time.UnixMilli(1700000000000)

	t.Run("stores under a per-user timestamped key", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		u := NewUploader(store)
		u.now = func() time.Time { return fixedNow }

		wantKey := fmt.Sprintf("u1/%d_beach.jpg", fixedNow.UnixMilli())
		store.On("Put", mock.Anything, wantKey, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.Size == 4
		})).Return(storage.ObjectInfo{Key: wantKey}, nil).Once()
		store.On("PresignGet", mock.Anything, wantKey, mock.Anything).
			Return("https://store/"+wantKey, nil).Once()

		img, err := u.Upload(context.Background(), "u1", "beach.jpg", []byte{0xff, 0xd8, 0xff, 0xe0})
		require.NoError(t, err)
		assert.Equal(t, wantKey, img.Key)
		assert.Equal(t, "https://store/"+wantKey, img.URL)
		store.AssertExpectations(t)
	})

	t.Run("path components are stripped from the file name", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		u := NewUploader(store)
		u.now = func() time.Time { return fixedNow }

		wantKey := fmt.Sprintf("u1/%d_evil.jpg", fixedNow.UnixMilli())
		store.On("Put", mock.Anything, wantKey, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: wantKey}, nil).Once()
		store.On("PresignGet", mock.Anything, wantKey, mock.Anything).
			Return("https://store/"+wantKey, nil).Once()

		_, err := u.Upload(context.Background(), "u1", "../../evil.jpg", []byte("data"))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("empty file is rejected before any store call", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		u := NewUploader(store)

		_, err := u.Upload(context.Background(), "u1", "beach.jpg", nil)
		assert.Error(t, err)
		store.AssertNotCalled(t, "Put")
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		u := NewUploader(store)

		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket gone")).Once()

		_, err := u.Upload(context.Background(), "u1", "beach.jpg", []byte("data"))
		assert.ErrorContains(t, err, "bucket gone")
		store.AssertExpectations(t)
	})
}
