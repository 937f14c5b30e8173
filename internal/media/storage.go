package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
)

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/media/"

var (
	ErrEmptyFile       = errors.New("media: file is empty")
	ErrTooLarge        = errors.New("media: file exceeds size limit")
	ErrUnsupportedType = errors.New("media: file is not a supported image")
)

var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStorage writes uploaded images to a directory and addresses them
// by public URL.
type LocalStorage struct {
	dir      string
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, publicBaseURL string, maxBytes int64, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStorage{
		dir:      dir,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxBytes: maxBytes,
		logger:   logger.Named("media"),
	}, nil
}

// Dir is the directory files are written to.
func (s *LocalStorage) Dir() string { return s.dir }

// Save stores file under a random name and returns its public URL.
// The image type is sniffed from the content, not taken from the client.
func (s *LocalStorage) Save(ctx context.Context, file domain.ImageFile) (string, error) {
	if len(file.Data) == 0 {
		return "", ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(file.Data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	ext, ok := extensionByType[http.DetectContentType(file.Data)]
	if !ok {
		return "", ErrUnsupportedType
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), file.Data, 0o644); err != nil {
		return "", fmt.Errorf("media: write %s: %w", name, err)
	}

	url := s.baseURL + URLPrefix + name
	s.logger.Info("image stored", zap.String("original_name", file.Filename), zap.String("url", url), zap.Int("bytes", len(file.Data)))
	return url, nil
}

// Handler serves stored files under URLPrefix.
func (s *LocalStorage) Handler() http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(http.Dir(s.dir)))
}
