package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/db"
	"school-service/internal/metrics"
	"school-service/internal/pagination"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, aluno *Student) error
	Update(ctx context.Context, aluno *Student) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, q pagination.Query, nomeQuery, cpfPrefix string) ([]Student, int, error)
	FindByCPFOrEmail(ctx context.Context, cpf, email string) ([]Student, error)
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

func (r *repository) Create(ctx context.Context, aluno *Student) error {
	aluno.CreatedAt = time.Now().UTC()

	start := time.Now()
	_, err := r.db.NewInsert().Model(aluno).Returning("id").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", "aluno", time.Since(start), err)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrStudentConflict
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, aluno *Student) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model(aluno).
		Column("nome", "datanascimento", "cpf", "email", "senha", "salt").
		WherePK().
		Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "update", "aluno", time.Since(start), err)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrStudentConflict
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// Delete removes the student row. Deleting an absent id is not an error.
func (r *repository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	_, err := r.db.NewDelete().Model((*Student)(nil)).Where("id = ?", id).Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "delete", "aluno", time.Since(start), err)

	return err
}

func (r *repository) List(ctx context.Context, q pagination.Query, nomeQuery, cpfPrefix string) ([]Student, int, error) {
	start := time.Now()

	var alunos []Student
	query := r.db.NewSelect().Model(&alunos).OrderExpr("a.nome ASC")

	if nomeQuery != "" {
		query = query.Where("a.nome ILIKE ?", "%"+nomeQuery+"%")
	}
	if cpfPrefix != "" {
		query = query.Where("a.cpf LIKE ?", cpfPrefix+"%")
	}

	count, err := query.
		Limit(q.PageSize).
		Offset(q.Offset()).
		ScanAndCount(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "aluno", time.Since(start), err)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, err
	}
	return alunos, count, nil
}

// FindByCPFOrEmail returns every student whose cpf or email matches
// exactly. Used as the fast-path conflict check before a write.
func (r *repository) FindByCPFOrEmail(ctx context.Context, cpf, email string) ([]Student, error) {
	start := time.Now()

	var alunos []Student
	err := r.db.NewSelect().
		Model(&alunos).
		Where("a.cpf = ?", cpf).
		WhereOr("a.email = ?", email).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", "aluno", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return alunos, nil
}
