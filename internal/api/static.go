package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type staticRoutes struct {
	root  string
	index string
}

// NewStaticRoutes serves the frontend for every path no API route matched.
// Unknown paths fall back to the index document so client-side routing works.
func NewStaticRoutes(router *gin.Engine, root, index string) {
	r := &staticRoutes{root: root, index: index}
	router.NoRoute(r.ServeStatic)
}

func (r *staticRoutes) ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	file, ok := r.lookup(c.Request.URL.Path)
	if !ok {
		file = filepath.Join(r.root, r.index)
	}

	if err := serveFile(c, file); err != nil {
		requestLogger(c).Error("failed to serve static file", zap.String("file", file), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}

// serveFile expects an already resolved path; unlike http.ServeFile it never
// inspects the request URL.
func serveFile(c *gin.Context, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return nil
}

func (r *staticRoutes) lookup(urlPath string) (string, bool) {
	// Cleaning a rooted path strips any ".." that would escape the root.
	rel := path.Clean("/" + urlPath)
	if rel == "/" {
		return "", false
	}

	file := filepath.Join(r.root, filepath.FromSlash(rel))
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}
