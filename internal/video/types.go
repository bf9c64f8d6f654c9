package video

import (
	"time"

	"github.com/soldout/backend/internal/config"
	"github.com/soldout/backend/internal/storage"
)

const defaultListLimit = 20

// Config represents the configuration for video handling
type Config struct {
	MinTitleLength int
	MaxTitleLength int
	MaxDescLength  int
	MaxGenreLength int
	Video          storage.FileRules
	Thumbnail      storage.FileRules
	PremiumWindow  time.Duration
	ListLimit      int
	ListCacheTTL   time.Duration
}

// NewConfigFromVideoConfig creates a video.Config from the loaded application config
func NewConfigFromVideoConfig(cfg *config.VideoConfig) *Config {
	return &Config{
		MinTitleLength: cfg.MinTitleLength,
		MaxTitleLength: cfg.MaxTitleLength,
		MaxDescLength:  cfg.MaxDescLength,
		MaxGenreLength: 50,
		Video: storage.FileRules{
			MaxSize:        cfg.MaxSize,
			AllowedFormats: cfg.AllowedFormats,
		},
		Thumbnail: storage.FileRules{
			MaxSize:        cfg.MaxThumbnailSize,
			AllowedFormats: cfg.AllowedImageFormats,
		},
		PremiumWindow: cfg.PremiumWindow,
		ListLimit:     defaultListLimit,
		ListCacheTTL:  cfg.ListCacheTTL,
	}
}

// SubmitRequest holds the text fields of an upload form
type SubmitRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Genre       string `form:"genre"`
	ReleaseDate string `form:"releaseDate"`
}

// SubmitInput is a complete upload: form fields plus both assets
type SubmitInput struct {
	SubmitRequest
	Thumbnail *storage.Upload
	Video     *storage.Upload
}

// SynopsisRequest represents the synopsis update payload
type SynopsisRequest struct {
	Synopsis string `json:"synopsis"`
}
