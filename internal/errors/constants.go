package errors

// Error codes returned in the response envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeMissingFields     = "MISSING_REQUIRED_FIELDS"
	CodeInvalidRating     = "INVALID_RATING"
	CodeInvalidDate       = "INVALID_DATE"
	CodeMissingAsset      = "MISSING_ASSET"
	CodeInvalidFile       = "INVALID_FILE"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeInvalidCreds      = "INVALID_CREDENTIALS"
	CodeForbidden         = "FORBIDDEN"
	CodeAccountBanned     = "ACCOUNT_BANNED"
	CodeNotFound          = "NOT_FOUND"
	CodeTargetNotFound    = "TARGET_NOT_FOUND"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeVideoNotFound     = "VIDEO_NOT_FOUND"
	CodeCommentNotFound   = "COMMENT_NOT_FOUND"
	CodeParentNotFound    = "PARENT_REPLY_NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeEmailTaken        = "EMAIL_TAKEN"
	CodeVideoMismatch     = "VIDEO_MISMATCH"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeInternal          = "INTERNAL_ERROR"
)

// Error message constants
const (
	ErrMsgFileSize    = "File size exceeds maximum allowed size"
	ErrMsgFileType    = "File type not allowed"
	ErrMsgTitleLength = "Title length must be between min and max length"
	ErrMsgDescLength  = "Description length exceeds maximum allowed length"
	ErrMsgInternal    = "An unexpected error occurred"
)
