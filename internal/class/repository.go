package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/metrics"
	"school-service/internal/pagination"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, turma *Class) error
	Update(ctx context.Context, turma *Class) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, q pagination.Query, nomeQuery string) ([]Class, int, error)
	GetByID(ctx context.Context, id int) (*Class, error)
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

func (r *repository) Create(ctx context.Context, turma *Class) error {
	turma.CreatedAt = time.Now().UTC()

	start := time.Now()
	_, err := r.db.NewInsert().Model(turma).Returning("id").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "turma", time.Since(start), err)

	return err
}

func (r *repository) Update(ctx context.Context, turma *Class) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model(turma).
		Column("nome", "descricao").
		WherePK().
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "turma", time.Since(start), err)

	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

// Delete removes the class row. Deleting an absent id is not an error.
func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	_, err := r.db.NewDelete().Model((*Class)(nil)).Where("id = ?", id).Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "turma", time.Since(start), err)

	return err
}

func (r *repository) List(ctx context.Context, q pagination.Query, nomeQuery string) ([]Class, int, error) {
	start := time.Now()

	var turmas []Class
	query := r.db.NewSelect().
		Model(&turmas).
		Relation("Enrollments").
		OrderExpr("t.nome ASC")

	if nomeQuery != "" {
		query = query.Where("t.nome ILIKE ?", "%"+nomeQuery+"%")
	}

	count, err := query.
		Limit(q.PageSize).
		Offset(q.Offset()).
		ScanAndCount(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "turma", time.Since(start), err)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, err
	}
	return turmas, count, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Class, error) {
	start := time.Now()

	turma := new(Class)
	err := r.db.NewSelect().
		Model(turma).
		Relation("Enrollments").
		Relation("Enrollments.Student").
		Where("t.id = ?", id).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "turma", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return turma, nil
}
