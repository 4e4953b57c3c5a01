package class_test

import (
	"context"
	"testing"

	"school-service/internal/class"
	"school-service/internal/enrollment"
	"school-service/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassRepo struct {
	created   []*class.Class
	updated   []*class.Class
	deleted   []int
	updateErr error

	listResult []class.Class
	listTotal  int
	lastNome   string

	byID    *class.Class
	byIDErr error
}

func (f *fakeClassRepo) Create(ctx context.Context, turma *class.Class) error {
	turma.ID = len(f.created) + 1
	f.created = append(f.created, turma)
	return nil
}

func (f *fakeClassRepo) Update(ctx context.Context, turma *class.Class) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, turma)
	return nil
}

func (f *fakeClassRepo) Delete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClassRepo) List(ctx context.Context, q pagination.Query, nomeQuery string) ([]class.Class, int, error) {
	f.lastNome = nomeQuery
	return f.listResult, f.listTotal, nil
}

func (f *fakeClassRepo) GetByID(ctx context.Context, id int) (*class.Class, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

type fakeEnrollmentRepo struct {
	deletedByClass []int
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, matricula *enrollment.Enrollment) error {
	return nil
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, alunoID, turmaID int) (bool, error) {
	return false, nil
}

func (f *fakeEnrollmentRepo) DeleteByStudent(ctx context.Context, alunoID int) error {
	return nil
}

func (f *fakeEnrollmentRepo) DeleteByClass(ctx context.Context, turmaID int) error {
	f.deletedByClass = append(f.deletedByClass, turmaID)
	return nil
}

func TestCreateClass(t *testing.T) {
	repo := &fakeClassRepo{}
	service := class.NewService(repo, &fakeEnrollmentRepo{}, nil)

	id, err := service.Create(context.Background(), class.CadastroRequest{
		Nome:      "Turma A",
		Descricao: "Manhã",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Turma A", repo.created[0].Name)
	assert.Equal(t, "Manhã", repo.created[0].Description)
}

func TestUpdateClass(t *testing.T) {
	t.Run("missing class", func(t *testing.T) {
		repo := &fakeClassRepo{updateErr: class.ErrClassNotFound}
		service := class.NewService(repo, &fakeEnrollmentRepo{}, nil)

		err := service.Update(context.Background(), 99, class.CadastroRequest{Nome: "Turma B"})
		assert.ErrorIs(t, err, class.ErrClassNotFound)
	})

	t.Run("replaces fields", func(t *testing.T) {
		repo := &fakeClassRepo{}
		service := class.NewService(repo, &fakeEnrollmentRepo{}, nil)

		err := service.Update(context.Background(), 4, class.CadastroRequest{Nome: "Turma B", Descricao: "Tarde"})
		require.NoError(t, err)

		require.Len(t, repo.updated, 1)
		assert.Equal(t, 4, repo.updated[0].ID)
		assert.Equal(t, "Turma B", repo.updated[0].Name)
	})
}

func TestDeleteClass(t *testing.T) {
	repo := &fakeClassRepo{}
	enrollments := &fakeEnrollmentRepo{}
	service := class.NewService(repo, enrollments, nil)

	require.NoError(t, service.Delete(context.Background(), 2))

	assert.Equal(t, []int{2}, enrollments.deletedByClass)
	assert.Equal(t, []int{2}, repo.deleted)

	// Idempotent.
	require.NoError(t, service.Delete(context.Background(), 2))
}

func TestListClasses(t *testing.T) {
	repo := &fakeClassRepo{
		listResult: []class.Class{
			{
				ID:          1,
				Name:        "Turma A",
				Description: "Manhã",
				Enrollments: []*enrollment.Enrollment{{ID: 1}, {ID: 2}},
			},
			{ID: 2, Name: "Turma B"},
		},
		listTotal: 2,
	}
	service := class.NewService(repo, &fakeEnrollmentRepo{}, nil)

	page, err := service.List(context.Background(), pagination.Query{Page: 1, PageSize: 10}, "tur")
	require.NoError(t, err)

	assert.Equal(t, "tur", repo.lastNome)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Items[0].QuantidadeAlunos)
	assert.Equal(t, 0, page.Items[1].QuantidadeAlunos)
}

func TestGetClassDetails(t *testing.T) {
	t.Run("missing class", func(t *testing.T) {
		repo := &fakeClassRepo{byIDErr: class.ErrClassNotFound}
		service := class.NewService(repo, &fakeEnrollmentRepo{}, nil)

		_, err := service.GetDetails(context.Background(), 42)
		assert.ErrorIs(t, err, class.ErrClassNotFound)
	})

	t.Run("includes enrolled students", func(t *testing.T) {
		repo := &fakeClassRepo{
			byID: &class.Class{
				ID:          7,
				Name:        "Turma A",
				Description: "Manhã",
				Enrollments: []*enrollment.Enrollment{
					{ID: 1, Student: &enrollment.StudentRef{ID: 10, Name: "Ana"}},
					{ID: 2, Student: &enrollment.StudentRef{ID: 11, Name: "Bruno"}},
					{ID: 3},
				},
			},
		}
		service := class.NewService(repo, &fakeEnrollmentRepo{}, nil)

		details, err := service.GetDetails(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, "Turma A", details.Nome)
		assert.Equal(t, 3, details.QuantidadeAlunos)

		// The row whose student reference was not loaded is skipped.
		require.Len(t, details.Alunos, 2)
		assert.Equal(t, class.EnrolledStudent{Nome: "Ana", ID: 10}, details.Alunos[0])
	})
}
