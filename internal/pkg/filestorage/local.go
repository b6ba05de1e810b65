package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekinura/schoolboard/internal/pkg/logger"
)

// disambiguationToken separates the sanitized name from the random suffix
// in generated filenames.
const disambiguationToken = "school"

// nonAlphanumeric matches character runs replaced during name sanitizing.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// DefaultExtensions maps declared media types to file extensions. The
// image/jpg entry mirrors a widespread but non-standard declared type.
func DefaultExtensions() map[string]string {
	return map[string]string{
		"image/jpeg": "jpeg",
		"image/jpg":  "jpeg",
		"image/png":  "png",
		"image/gif":  "gif",
		"image/webp": "webp",
	}
}

// LocalStorage persists uploaded images to the local filesystem under a
// directory served as static assets. Every save is best-effort: failures
// are logged and reported as "no image persisted", never as an error.
type LocalStorage struct {
	basePath   string            // directory where image files are written
	baseURL    string            // URL prefix the directory is served under
	extensions map[string]string // media type to extension mapping
}

// NewLocalStorage creates a LocalStorage rooted at basePath, reachable at
// baseURL. The directory is created if absent.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath:   basePath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		extensions: DefaultExtensions(),
	}, nil
}

// SetExtensions replaces the media type to extension mapping.
func (ls *LocalStorage) SetExtensions(extensions map[string]string) {
	ls.extensions = extensions
}

// SaveImage writes an uploaded blob under the storage directory and returns
// the URL path it will be served at. The second return value is false when
// nothing was persisted: non-image media type, empty blob, or a write
// failure. None of these are errors to the caller.
func (ls *LocalStorage) SaveImage(data []byte, originalName, mediaType string) (string, bool) {
	if !strings.HasPrefix(mediaType, "image/") {
		logger.Warn().Str("mediaType", mediaType).Str("filename", originalName).Msg("Rejected non-image upload")
		return "", false
	}
	if len(data) == 0 {
		logger.Warn().Str("filename", originalName).Msg("Rejected empty upload")
		return "", false
	}

	filename := ls.generateFilename(originalName, mediaType)
	dstPath := filepath.Join(ls.basePath, filename)

	// The directory may have been removed since startup.
	if err := os.MkdirAll(ls.basePath, os.ModePerm); err != nil {
		logger.Warn().Err(err).Str("path", ls.basePath).Msg("Failed to ensure storage directory")
		return "", false
	}

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Warn().Err(err).Str("path", dstPath).Msg("Failed to write image file")
		_ = os.Remove(dstPath)
		return "", false
	}

	urlPath := ls.baseURL + "/" + filename
	logger.Info().Str("filename", originalName).Str("saved_as", filename).Str("url", urlPath).Msg("Image saved")
	return urlPath, true
}

// SaveUpload reads a multipart file part and persists it via SaveImage,
// taking the declared media type from the part header.
func (ls *LocalStorage) SaveUpload(fileHeader *multipart.FileHeader) (string, bool) {
	if fileHeader == nil {
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to read uploaded file")
		return "", false
	}

	return ls.SaveImage(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
}

// generateFilename synthesizes a collision-resistant filename from the
// upload time, the sanitized original name, a fixed token, a random suffix,
// and an extension derived from the declared media type.
func (ls *LocalStorage) generateFilename(originalName, mediaType string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = strings.Trim(nonAlphanumeric.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "image"
	}

	ext, ok := ls.extensions[strings.ToLower(mediaType)]
	if !ok {
		ext = "jpeg"
	}

	suffix := strings.SplitN(uuid.New().String(), "-", 2)[0]

	return fmt.Sprintf("%d_%s_%s_%s.%s",
		time.Now().UnixMilli(), base, disambiguationToken, suffix, ext)
}

// BasePath returns the directory images are written to.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
