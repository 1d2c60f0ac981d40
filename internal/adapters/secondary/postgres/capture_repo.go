package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/core/ports/output"
)

// captureSchema is applied at startup when the ledger is enabled.
const captureSchema = `
	CREATE TABLE IF NOT EXISTS image_capture (
		id          UUID PRIMARY KEY,
		filename    TEXT NOT NULL UNIQUE,
		path        TEXT NOT NULL,
		size_bytes  BIGINT NOT NULL,
		format      TEXT NOT NULL DEFAULT '',
		captured_at TIMESTAMPTZ NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// ErrCaptureExists is returned when a filename is already in the ledger.
var ErrCaptureExists = errors.New("capture already recorded")

// Execer is the subset of *pgxpool.Pool the ledger writes through.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Execer = (*pgxpool.Pool)(nil)

type captureRepo struct {
	db Execer
}

func NewCaptureRepository(db Execer) ports.CaptureRepository {
	return &captureRepo{db: db}
}

// EnsureSchema creates the ledger table if it does not exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, captureSchema); err != nil {
		return fmt.Errorf("create image_capture table: %w", err)
	}
	return nil
}

func (r *captureRepo) Record(ctx context.Context, image *domain.StoredImage) error {
	query := `
		INSERT INTO image_capture (id, filename, path, size_bytes, format, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		image.ID, image.Filename, image.Path, image.Size, image.Format, image.CapturedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s: %w", ErrCaptureExists, image.Filename, err)
		}
		return fmt.Errorf("record image capture: %w", err)
	}
	return nil
}
