package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/soldout/backend/internal/errors"
)

// Check validates u against the rules. field names the form part in errors.
func (r FileRules) Check(field string, u *Upload) error {
	if u == nil {
		return apperrors.NewValidationErrorCode(field, apperrors.CodeMissingAsset, fmt.Sprintf("%s file is required", field))
	}
	if u.Size <= 0 {
		return apperrors.NewValidationErrorCode(field, apperrors.CodeInvalidFile, fmt.Sprintf("%s file is empty", field))
	}
	if r.MaxSize > 0 && u.Size > r.MaxSize {
		return apperrors.NewValidationErrorCode(field, apperrors.CodeInvalidFile, apperrors.ErrMsgFileSize)
	}
	if len(r.AllowedFormats) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(u.Filename))
	for _, allowed := range r.AllowedFormats {
		if strings.EqualFold(ext, allowed) {
			return nil
		}
	}
	return apperrors.NewValidationErrorCode(field, apperrors.CodeInvalidFile, apperrors.ErrMsgFileType)
}
