package s3

import (
	"testing"

	"github.com/soldout/backend/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestObjectBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.S3Config
		want string
	}{
		{
			name: "plain endpoint",
			cfg:  storage.S3Config{Endpoint: "localhost:9000", Bucket: "media"},
			want: "http://localhost:9000/media",
		},
		{
			name: "tls endpoint",
			cfg:  storage.S3Config{Endpoint: "s3.example.com", Bucket: "media", UseSSL: true},
			want: "https://s3.example.com/media",
		},
		{
			name: "public url override",
			cfg:  storage.S3Config{Endpoint: "minio:9000", Bucket: "media", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectBaseURL(&tt.cfg))
		})
	}
}

func TestKeyFromRef(t *testing.T) {
	key, ok := keyFromRef("https://cdn.example.com", "https://cdn.example.com/videos/a.mp4")
	assert.True(t, ok)
	assert.Equal(t, "videos/a.mp4", key)

	_, ok = keyFromRef("https://cdn.example.com", "https://other.example.com/videos/a.mp4")
	assert.False(t, ok)

	_, ok = keyFromRef("https://cdn.example.com", "https://cdn.example.com/")
	assert.False(t, ok)
}
