package video

import "context"

// DirectViewCounter increments the views column on every read
type DirectViewCounter struct {
	videos Repository
}

// NewDirectViewCounter creates a counter writing straight to the repository
func NewDirectViewCounter(videos Repository) *DirectViewCounter {
	return &DirectViewCounter{videos: videos}
}

func (d *DirectViewCounter) Increment(ctx context.Context, videoID int64) error {
	return d.videos.AddViews(ctx, map[int64]int64{videoID: 1})
}

// Record writes the view through, so only this view is missing from a row
// read earlier.
func (d *DirectViewCounter) Record(ctx context.Context, videoID int64) (int64, error) {
	if err := d.Increment(ctx, videoID); err != nil {
		return 0, err
	}
	return 1, nil
}
