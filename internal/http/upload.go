package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/storage"
)

// FormUpload opens the multipart file named field. A missing part yields a
// nil upload and no error; the returned func closes the opened file.
func FormUpload(c *gin.Context, field string) (*storage.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperrors.NewValidationErrorCode(field, apperrors.CodeInvalidFile, "Invalid multipart upload")
	}

	file, err := header.Open()
	if err != nil {
		return nil, func() {}, apperrors.NewStorageError("failed to open uploaded file", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &storage.Upload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		Reader:      file,
	}, func() { file.Close() }, nil
}
