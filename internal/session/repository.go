package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/metrics"

	"github.com/uptrace/bun"
)

// ErrAdminNotFound signals no admin holds the given email.
var ErrAdminNotFound = errors.New("admin user not found")

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(database *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      database,
		metrics: m,
	}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	start := time.Now()

	admin := new(AdminUser)
	err := r.db.NewSelect().Model(admin).Where("email = ?", email).Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "usuarioadmin", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
