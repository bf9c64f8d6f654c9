package storage

import "io"

// Config represents storage configuration
type Config struct {
	Driver     string     `mapstructure:"driver"` // local, s3 or ipfs
	UploadDir  string     `mapstructure:"uploadDir"`
	PublicPath string     `mapstructure:"publicPath"`
	IPFS       IPFSConfig `mapstructure:"ipfs"`
	S3         S3Config   `mapstructure:"s3"`
}

// IPFSConfig represents IPFS configuration settings
type IPFSConfig struct {
	APIAddress string `mapstructure:"apiAddress"`
	Gateway    string `mapstructure:"gateway"`
}

// S3Config represents S3 configuration settings
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	UseSSL          bool   `mapstructure:"useSSL"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	// PublicURL overrides the URL prefix used for object references.
	PublicURL string `mapstructure:"publicUrl"`
}

// Upload is one file received from a client
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// FileRules bounds the uploads accepted for one kind of asset
type FileRules struct {
	MaxSize        int64
	AllowedFormats []string // extensions including the dot, e.g. ".mp4"
}
