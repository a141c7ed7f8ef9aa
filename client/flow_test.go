package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"galleryapi/internal/storage"
	storageMocks "galleryapi/internal/storage/mocks"

	"galleryapi/client/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedInSession() *Session {
	s := NewSession(NewGateway("http://unused"))
	s.current = &User{ID: "u1", Email: "ana@example.com", DisplayName: "Ana"}
	return s
}

func anonymousSession() *Session {
	return NewSession(NewGateway("http://unused"))
}

func TestAddFlow(t *testing.T) {
	meta := PhotoMeta{Name: "Beach", Date: "2024-07-01"}

	t.Run("unauthenticated run alerts without any remote call", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		caller := new(mocks.MockCaller)
		fe := new(mocks.MockFrontend)
		fe.On("Alert", mock.Anything).Once()

		f := NewAddFlow(anonymousSession(), NewUploader(store), caller, fe)
		err := f.Run(context.Background(), "beach.jpg", []byte("img"), meta)

		require.NoError(t, err)
		assert.Equal(t, FlowIdle, f.State())
		store.AssertNotCalled(t, "Put")
		caller.AssertNotCalled(t, "Call")
		fe.AssertExpectations(t)
	})

	t.Run("missing file alerts without any remote call", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		caller := new(mocks.MockCaller)
		fe := new(mocks.MockFrontend)
		fe.On("Alert", "Please choose a photo to upload.").Once()

		f := NewAddFlow(signedInSession(), NewUploader(store), caller, fe)
		err := f.Run(context.Background(), "beach.jpg", nil, meta)

		require.NoError(t, err)
		assert.Equal(t, FlowIdle, f.State())
		store.AssertNotCalled(t, "Put")
		caller.AssertNotCalled(t, "Call")
		fe.AssertExpectations(t)
	})

	t.Run("upload then create then navigate", func(t *testing.T) {
		fixedNow := time.UnixMilli(1700000000000)
		wantKey := fmt.Sprintf("u1/%d_beach.jpg", fixedNow.UnixMilli())

		store := new(storageMocks.MockStorage)
		store.On("Put", mock.Anything, wantKey, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: wantKey}, nil).Once()
		store.On("PresignGet", mock.Anything, wantKey, mock.Anything).
			Return("https://store/"+wantKey, nil).Once()

		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "addphoto", mock.MatchedBy(func(p addPhotoPayload) bool {
			// Empty fields travel as empty strings, not omitted keys.
			return p.ImageURL == "https://store/"+wantKey &&
				p.StoragePath == wantKey &&
				p.Name == "Beach" &&
				p.People == "" &&
				p.Description == ""
		}), nil).Return(nil).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Uploading...").Once()
		fe.On("Navigate", "/").Once()

		uploader := NewUploader(store)
		uploader.now = func() time.Time { return fixedNow }

		f := NewAddFlow(signedInSession(), uploader, caller, fe)
		err := f.Run(context.Background(), "beach.jpg", []byte("img"), meta)

		require.NoError(t, err)
		assert.Equal(t, FlowSucceeded, f.State())
		store.AssertExpectations(t)
		caller.AssertExpectations(t)
		fe.AssertExpectations(t)
	})

	t.Run("failed create restores controls and keeps the upload", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil).Once()
		store.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).
			Return("https://store/x", nil).Once()

		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "addphoto", mock.Anything, nil).
			Return(errors.New("record create failed")).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Uploading...").Once()
		fe.On("Restore").Once()
		fe.On("Alert", "record create failed").Once()

		f := NewAddFlow(signedInSession(), NewUploader(store), caller, fe)
		err := f.Run(context.Background(), "beach.jpg", []byte("img"), meta)

		require.Error(t, err)
		assert.Equal(t, FlowFailed, f.State())
		// No rollback of the completed upload
		store.AssertNotCalled(t, "Delete")
		fe.AssertNotCalled(t, "Navigate", mock.Anything)
		fe.AssertExpectations(t)
	})
}

func TestEditFlow(t *testing.T) {
	t.Run("unauthenticated load redirects to the listing without calling the server", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		fe := new(mocks.MockFrontend)
		fe.On("Navigate", "/").Once()

		f := NewEditFlow(anonymousSession(), caller, fe)
		p, err := f.Load(context.Background(), "p1")

		require.NoError(t, err)
		assert.Nil(t, p)
		caller.AssertNotCalled(t, "Call")
		fe.AssertExpectations(t)
	})

	t.Run("load prefills from the fetched record", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "getphotodetails", map[string]string{"photoId": "p1"}, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(3).(*Photo)
				*out = Photo{ID: "p1", Name: "Beach"}
			}).Return(nil).Once()

		fe := new(mocks.MockFrontend)

		f := NewEditFlow(signedInSession(), caller, fe)
		p, err := f.Load(context.Background(), "p1")

		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Beach", p.Name)
		caller.AssertExpectations(t)
	})

	t.Run("submit carries empty strings to clear fields", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "editphoto", mock.MatchedBy(func(p editPhotoPayload) bool {
			v, present := p.UpdatedData["description"]
			return p.PhotoID == "p1" && p.UpdatedData["name"] == "Renamed" && present && v == ""
		}), nil).Return(nil).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Saving...").Once()
		fe.On("Navigate", "/").Once()

		f := NewEditFlow(signedInSession(), caller, fe)
		err := f.Submit(context.Background(), "p1", map[string]string{"name": "Renamed", "description": ""})

		require.NoError(t, err)
		assert.Equal(t, FlowSucceeded, f.State())
		caller.AssertExpectations(t)
		fe.AssertExpectations(t)
	})

	t.Run("failed submit restores and returns to idle", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "editphoto", mock.Anything, nil).
			Return(errors.New("update failed")).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Saving...").Once()
		fe.On("Restore").Once()
		fe.On("Alert", "update failed").Once()

		f := NewEditFlow(signedInSession(), caller, fe)
		err := f.Submit(context.Background(), "p1", map[string]string{"name": "Renamed"})

		require.Error(t, err)
		assert.Equal(t, FlowFailed, f.State())
		fe.AssertNotCalled(t, "Navigate", mock.Anything)
		fe.AssertExpectations(t)
	})

	t.Run("retry after a failure re-arms the flow", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "editphoto", mock.Anything, nil).
			Return(errors.New("update failed")).Once()
		caller.On("Call", mock.Anything, "editphoto", mock.Anything, nil).
			Return(nil).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Saving...").Twice()
		fe.On("Restore").Once()
		fe.On("Alert", "update failed").Once()
		fe.On("Navigate", "/").Once()

		f := NewEditFlow(signedInSession(), caller, fe)

		require.Error(t, f.Submit(context.Background(), "p1", map[string]string{"name": "Renamed"}))
		assert.Equal(t, FlowFailed, f.State())

		require.NoError(t, f.Submit(context.Background(), "p1", map[string]string{"name": "Renamed"}))
		assert.Equal(t, FlowSucceeded, f.State())
		fe.AssertExpectations(t)
	})
}

func TestDeleteFlow(t *testing.T) {
	t.Run("declined confirmation makes no calls", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		fe := new(mocks.MockFrontend)
		fe.On("Confirm", "Are you sure you want to delete this photo?").Return(false).Once()

		f := NewDeleteFlow(signedInSession(), caller, fe)
		photos, err := f.Run(context.Background(), "p1")

		require.NoError(t, err)
		assert.Nil(t, photos)
		assert.Equal(t, FlowIdle, f.State())
		caller.AssertNotCalled(t, "Call")
		fe.AssertExpectations(t)
	})

	t.Run("confirmed delete refetches the listing", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "deletephoto", map[string]string{"photoId": "p1"}, nil).
			Return(nil).Once()
		caller.On("Call", mock.Anything, "getphotos", nil, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(3).(*[]Photo)
				*out = []Photo{{ID: "p2"}, {ID: "p3"}}
			}).Return(nil).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Confirm", mock.Anything).Return(true).Once()
		fe.On("Busy", "Deleting...").Once()
		fe.On("Restore").Once()

		f := NewDeleteFlow(signedInSession(), caller, fe)
		photos, err := f.Run(context.Background(), "p1")

		require.NoError(t, err)
		require.Len(t, photos, 2)
		for _, p := range photos {
			assert.NotEqual(t, "p1", p.ID)
		}
		assert.Equal(t, FlowSucceeded, f.State())
		caller.AssertExpectations(t)
		fe.AssertExpectations(t)
	})

	t.Run("failed delete restores and alerts", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "deletephoto", mock.Anything, nil).
			Return(errors.New("delete failed")).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Confirm", mock.Anything).Return(true).Once()
		fe.On("Busy", "Deleting...").Once()
		fe.On("Restore").Once()
		fe.On("Alert", "delete failed").Once()

		f := NewDeleteFlow(signedInSession(), caller, fe)
		photos, err := f.Run(context.Background(), "p1")

		require.Error(t, err)
		assert.Nil(t, photos)
		assert.Equal(t, FlowFailed, f.State())
		fe.AssertExpectations(t)
	})
}

func TestSearchFlow(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}
	encoded := base64.StdEncoding.EncodeToString(image)

	t.Run("empty capture alerts without calling", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		fe := new(mocks.MockFrontend)
		fe.On("Alert", "Please capture a photo first.").Once()

		f := NewSearchFlow(signedInSession(), caller, fe)
		id, err := f.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, id)
		caller.AssertNotCalled(t, "Call")
		fe.AssertExpectations(t)
	})

	t.Run("match navigates to the photo detail", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "findphotobymatch", map[string]string{"image": encoded}, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(3).(*matchResult)
				match := "p9"
				out.PhotoID = &match
			}).Return(nil).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Searching...").Once()
		fe.On("Navigate", "/photo/p9").Once()

		f := NewSearchFlow(signedInSession(), caller, fe)
		id, err := f.Run(context.Background(), image)

		require.NoError(t, err)
		assert.Equal(t, "p9", id)
		assert.Equal(t, FlowSucceeded, f.State())
		caller.AssertExpectations(t)
		fe.AssertExpectations(t)
	})

	t.Run("null match alerts and restores", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "findphotobymatch", mock.Anything, mock.Anything).
			Return(nil).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Searching...").Once()
		fe.On("Alert", "No matching photo found.").Once()
		fe.On("Restore").Once()

		f := NewSearchFlow(signedInSession(), caller, fe)
		id, err := f.Run(context.Background(), image)

		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Equal(t, FlowIdle, f.State())
		fe.AssertNotCalled(t, "Navigate", mock.Anything)
		fe.AssertExpectations(t)
	})

	t.Run("matcher failure restores and returns the error", func(t *testing.T) {
		caller := new(mocks.MockCaller)
		caller.On("Call", mock.Anything, "findphotobymatch", mock.Anything, mock.Anything).
			Return(errors.New("matcher down")).Once()

		fe := new(mocks.MockFrontend)
		fe.On("Busy", "Searching...").Once()
		fe.On("Restore").Once()
		fe.On("Alert", "matcher down").Once()

		f := NewSearchFlow(signedInSession(), caller, fe)
		id, err := f.Run(context.Background(), image)

		require.Error(t, err)
		assert.Empty(t, id)
		assert.Equal(t, FlowFailed, f.State())
		fe.AssertExpectations(t)
	})
}
