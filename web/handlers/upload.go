package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxUploadSize bounds the multipart form.
const MaxUploadSize = 50 << 20

var ErrUnsupportedFile = errors.New("unsupported file type")

// UploadedFile returns the single file sent in field. Extensions are compared
// case-insensitively and must include the dot, e.g. ".txt".
func UploadedFile(c *gin.Context, field string, extensions ...string) (*multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("Field '%s' is required", field)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(extensions) > 0 && !slices.Contains(extensions, ext) {
		return nil, fmt.Errorf("%w: %s (expected %s)", ErrUnsupportedFile, file.Filename, strings.Join(extensions, ", "))
	}
	return file, nil
}
