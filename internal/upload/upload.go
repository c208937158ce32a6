// Package upload handles the optional profile-image part of employee
// registration: media-type whitelist, size ceiling, timestamped filenames
// and the compensating delete when a later step fails.
package upload

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shaik-naseema17/employee-api/internal/apperror"
)

const MaxImageBytes = 5 << 20

var imageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// SaveImage stores the "image" part of a multipart request under dir and
// returns the stored filename. An absent part is not an error; validation
// runs before anything touches the disk.
func SaveImage(c *gin.Context, dir string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apperror.New(apperror.CodeValidation, "invalid upload")
	}

	if file.Size > MaxImageBytes {
		return "", apperror.New(apperror.CodeValidation, "image exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if !imageExts[ext] || !imageTypes[contentType] {
		return "", apperror.New(apperror.CodeValidation, "only image files are allowed")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperror.New(apperror.CodeInternal, "upload storage unavailable")
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", apperror.New(apperror.CodeInternal, "upload failed")
	}

	return name, nil
}

// Remove deletes a stored upload, best effort. Failures are logged and
// never re-raised.
func Remove(dir string, name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("upload cleanup error: %v", err)
	}
}
