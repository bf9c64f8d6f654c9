package comment

// CreateCommentRequest represents the comment payload
type CreateCommentRequest struct {
	VideoID int64  `json:"videoId" binding:"required,min=1"`
	Text    string `json:"text" binding:"required"`
}

// CreateReplyRequest represents the reply payload. At least one of
// CommentID and ParentReplyID is required.
type CreateReplyRequest struct {
	VideoID       int64  `json:"videoId" binding:"required,min=1"`
	Text          string `json:"text" binding:"required"`
	CommentID     *int64 `json:"commentId" binding:"omitempty,min=1"`
	ParentReplyID *int64 `json:"parentReplyId" binding:"omitempty,min=1"`
}

// ReplyInput is a reply request bound to the acting user
type ReplyInput struct {
	UserID        int64
	VideoID       int64
	Text          string
	CommentID     *int64
	ParentReplyID *int64
}
