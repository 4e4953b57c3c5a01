package enrollment

import (
	"context"
	"errors"
	"time"

	"school-service/internal/db"
	"school-service/internal/metrics"

	"github.com/uptrace/bun"
)

// ErrDuplicate signals the (student, class) pair is already enrolled.
var ErrDuplicate = errors.New("enrollment already exists")

type Repository interface {
	Create(ctx context.Context, matricula *Enrollment) error
	Exists(ctx context.Context, alunoID, turmaID int) (bool, error)
	DeleteByStudent(ctx context.Context, alunoID int) error
	DeleteByClass(ctx context.Context, turmaID int) error
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

func (r *repository) Create(ctx context.Context, matricula *Enrollment) error {
	matricula.EnrolledAt = time.Now().UTC()

	start := time.Now()
	_, err := r.db.NewInsert().Model(matricula).Returning("id").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "matricula", time.Since(start), err)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *repository) Exists(ctx context.Context, alunoID, turmaID int) (bool, error) {
	start := time.Now()
	exists, err := r.db.NewSelect().
		Model((*Enrollment)(nil)).
		Where("alunoid = ?", alunoID).
		Where("turmaid = ?", turmaID).
		Exists(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "matricula", time.Since(start), err)

	return exists, err
}

func (r *repository) DeleteByStudent(ctx context.Context, alunoID int) error {
	start := time.Now()
	_, err := r.db.NewDelete().
		Model((*Enrollment)(nil)).
		Where("alunoid = ?", alunoID).
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "matricula", time.Since(start), err)

	return err
}

func (r *repository) DeleteByClass(ctx context.Context, turmaID int) error {
	start := time.Now()
	_, err := r.db.NewDelete().
		Model((*Enrollment)(nil)).
		Where("turmaid = ?", turmaID).
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "matricula", time.Since(start), err)

	return err
}
