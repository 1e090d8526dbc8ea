package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/SscSPs/rjb_tranz/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxKVRepository stores key/value pairs in the kv_store table.
type PgxKVRepository struct {
	BaseRepository
	now func() time.Time
}

// NewKVRepository creates a kv_store backed KVStore.
func NewKVRepository(pool *pgxpool.Pool) *PgxKVRepository {
	return &PgxKVRepository{BaseRepository: BaseRepository{Pool: pool}, now: time.Now}
}

var _ portsrepo.KVStore = (*PgxKVRepository)(nil)

func (r *PgxKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := r.Pool.QueryRow(ctx, `SELECT key, value, updated_at FROM kv_store WHERE key = $1;`, key).
		Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, apperrors.NewAppError(500, "failed to read kv key "+key, err)
	}
	return entry.Value, true, nil
}

func (r *PgxKVRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`,
		key, value, r.now().UTC(),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to write kv key "+key, err)
	}
	return nil
}

func (r *PgxKVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1;`, key); err != nil {
		return apperrors.NewAppError(500, "failed to delete kv key "+key, err)
	}
	return nil
}
