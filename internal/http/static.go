package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// StaticFileConfig represents configuration for static file serving
type StaticFileConfig struct {
	URLPath  string // URL path to serve files from
	FilePath string // Physical path to the files
}

// ServeStaticFiles exposes uploaded assets read-only. Directory listings are
// not served.
func ServeStaticFiles(router gin.IRoutes, configs []StaticFileConfig) error {
	for _, config := range configs {
		if _, err := os.Stat(config.FilePath); os.IsNotExist(err) {
			return fmt.Errorf("static file directory does not exist: %s", config.FilePath)
		}

		absPath, err := filepath.Abs(config.FilePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for %s: %v", config.FilePath, err)
		}

		fs := noListingFS{http.Dir(absPath)}
		router.StaticFS(config.URLPath, fs)
	}
	return nil
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
