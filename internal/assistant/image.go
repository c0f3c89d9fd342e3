package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotImage     = errors.New("not an image")
	ErrCameraDenied = errors.New("camera access denied")
)

// DefaultMaxImageBytes caps uploads and captured frames.
const DefaultMaxImageBytes = 10 << 20

// ValidateImage sniffs data and returns its MIME type, or ErrNotImage.
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotImage
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return mt.String(), fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

// Camera captures a single still frame.
type Camera interface {
	Capture(ctx context.Context) ([]byte, error)
}

// DeviceCamera reads a frame from a device node or a snapshot file kept
// current by an external capture tool.
type DeviceCamera struct {
	Path     string
	MaxBytes int64
}

// Capture returns ErrCameraDenied when the path cannot be opened or does not
// yield a single image within MaxBytes.
func (c DeviceCamera) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Path == "" {
		return nil, fmt.Errorf("%w: no camera device configured", ErrCameraDenied)
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraDenied, err)
	}
	defer f.Close()

	limit := c.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxImageBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraDenied, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty frame from %s", ErrCameraDenied, c.Path)
	}
	if err := CheckFrame(data, limit); err != nil {
		return nil, err
	}
	return data, nil
}

// CheckFrame rejects captured frames that exceed limit bytes or are not
// images. Both count as a failed capture.
func CheckFrame(data []byte, limit int64) error {
	if limit > 0 && int64(len(data)) > limit {
		return fmt.Errorf("%w: frame exceeds %d bytes", ErrCameraDenied, limit)
	}
	if _, err := ValidateImage(data); err != nil {
		return fmt.Errorf("%w: %w", ErrCameraDenied, err)
	}
	return nil
}
