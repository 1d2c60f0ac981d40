package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/core/ports/output"
)

const timestampLayout = "20060102_150405"

type store struct {
	dir string
}

// New creates the upload directory if needed and returns a store writing
// into it.
func New(dir string) (ports.ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &store{dir: dir}, nil
}

// Filename builds image_{YYYYMMDD_HHMMSS}_{id8}.jpg. The id suffix keeps
// uploads landing in the same second apart.
func Filename(capturedAt time.Time, id uuid.UUID) string {
	return fmt.Sprintf("image_%s_%s.jpg", capturedAt.Format(timestampLayout), id.String()[:8])
}

func (s *store) Save(ctx context.Context, data []byte, format string, capturedAt time.Time) (*domain.StoredImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	name := Filename(capturedAt, id)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	n, err := f.Write(data)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}

	return &domain.StoredImage{
		ID:         id,
		Filename:   name,
		Path:       path,
		Size:       int64(n),
		Format:     format,
		CapturedAt: capturedAt,
	}, nil
}
