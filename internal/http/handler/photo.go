package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"galleryapi/internal/http/middleware"
	"galleryapi/internal/service"
)

type photoIDRequest struct {
	PhotoID string `json:"photoId"`
}

type editPhotoRequest struct {
	PhotoID     string            `json:"photoId"`
	UpdatedData map[string]string `json:"updatedData"`
}

type matchRequest struct {
	Image string `json:"image"`
}

type matchResponse struct {
	PhotoID *string `json:"photoId"`
}

func ownerFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}

// photoError maps service failures onto the error envelope.
func photoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "photo not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "photo id is required")
	case errors.Is(err, service.ErrImageRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "image is required")
	case errors.Is(err, service.ErrImageURLRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "image url is required")
	case errors.Is(err, service.ErrFieldNotEditable):
		return writeError(c, fiber.StatusBadRequest, "FIELD_NOT_EDITABLE", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// AddPhoto handles the addphoto procedure: it records photo metadata for an
// already uploaded image.
func AddPhoto(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreatePhotoInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		photo, err := svc.Create(c.UserContext(), ownerFromCtx(c), in)
		if err != nil {
			return photoError(c, err)
		}
		return writeData(c, fiber.StatusCreated, photo)
	}
}

// GetPhotos handles the getphotos procedure. It returns every photo, newest
// first, regardless of owner.
func GetPhotos(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		photos, err := svc.List(c.UserContext())
		if err != nil {
			return photoError(c, err)
		}
		return writeData(c, fiber.StatusOK, photos)
	}
}

// GetPhotoDetails handles the getphotodetails procedure.
func GetPhotoDetails(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req photoIDRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		photo, err := svc.Get(c.UserContext(), req.PhotoID)
		if err != nil {
			return photoError(c, err)
		}
		return writeData(c, fiber.StatusOK, photo)
	}
}

// EditPhoto handles the editphoto procedure: a partial metadata update.
// Fields present in updatedData with empty values are cleared; omitted
// fields are left alone.
func EditPhoto(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req editPhotoRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		photo, err := svc.Update(c.UserContext(), req.PhotoID, req.UpdatedData)
		if err != nil {
			return photoError(c, err)
		}
		return writeData(c, fiber.StatusOK, photo)
	}
}

// DeletePhoto handles the deletephoto procedure. Stored binaries go first,
// then the record.
func DeletePhoto(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req photoIDRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		if err := svc.Delete(c.UserContext(), req.PhotoID); err != nil {
			return photoError(c, err)
		}
		return writeData(c, fiber.StatusOK, fiber.Map{"deleted": true})
	}
}

// FindPhotoByMatch handles the findphotobymatch procedure. The response
// photoId is null when the matcher finds nothing.
func FindPhotoByMatch(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req matchRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "invalid request body")
		}

		id, err := svc.Match(c.UserContext(), req.Image)
		if err != nil {
			return photoError(c, err)
		}

		var res matchResponse
		if id != "" {
			res.PhotoID = &id
		}
		return writeData(c, fiber.StatusOK, res)
	}
}

// UploadPhoto stores an image (multipart/form-data, field name: file) and
// returns its URLs plus the storage keys for later deletion.
func UploadPhoto(svc service.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Upload(c.UserContext(), ownerFromCtx(c), fh.Filename, ct, data)
		if err != nil {
			return photoError(c, err)
		}
		return writeData(c, fiber.StatusCreated, res)
	}
}
