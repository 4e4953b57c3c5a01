package class

import (
	"context"
	"errors"

	"school-service/internal/enrollment"
	"school-service/internal/events"
	"school-service/internal/pagination"
)

var ErrClassNotFound = errors.New("class not found")

type Service interface {
	Create(ctx context.Context, req CadastroRequest) (int, error)
	Update(ctx context.Context, id int, req CadastroRequest) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, q pagination.Query, nomeQuery string) (pagination.Page[ListItem], error)
	GetDetails(ctx context.Context, id int) (*Details, error)
}

type service struct {
	repo        Repository
	enrollments enrollment.Repository
	events      *events.Publisher
}

func NewService(repo Repository, enrollments enrollment.Repository, publisher *events.Publisher) Service {
	return &service{
		repo:        repo,
		enrollments: enrollments,
		events:      publisher,
	}
}

func (s *service) Create(ctx context.Context, req CadastroRequest) (int, error) {
	turma := &Class{
		Name:        req.Nome,
		Description: req.Descricao,
	}
	if err := s.repo.Create(ctx, turma); err != nil {
		return 0, err
	}

	s.events.ClassRegistered(ctx, turma.ID)

	return turma.ID, nil
}

func (s *service) Update(ctx context.Context, id int, req CadastroRequest) error {
	turma := &Class{
		ID:          id,
		Name:        req.Nome,
		Description: req.Descricao,
	}
	if err := s.repo.Update(ctx, turma); err != nil {
		return err
	}

	s.events.ClassUpdated(ctx, id)

	return nil
}

// Delete removes the class's enrollments and then the class.
// Deleting an absent class is a no-op.
func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.enrollments.DeleteByClass(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.ClassDeleted(ctx, id)

	return nil
}

func (s *service) List(ctx context.Context, q pagination.Query, nomeQuery string) (pagination.Page[ListItem], error) {
	turmas, total, err := s.repo.List(ctx, q, nomeQuery)
	if err != nil {
		return pagination.Page[ListItem]{}, err
	}

	items := make([]ListItem, 0, len(turmas))
	for _, turma := range turmas {
		items = append(items, ListItem{
			Nome:             turma.Name,
			Descricao:        turma.Description,
			ID:               turma.ID,
			QuantidadeAlunos: len(turma.Enrollments),
		})
	}

	return pagination.NewPage(total, q.PageSize, items), nil
}

func (s *service) GetDetails(ctx context.Context, id int) (*Details, error) {
	turma, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alunos := make([]EnrolledStudent, 0, len(turma.Enrollments))
	for _, matricula := range turma.Enrollments {
		if matricula.Student == nil {
			continue
		}
		alunos = append(alunos, EnrolledStudent{
			Nome: matricula.Student.Name,
			ID:   matricula.Student.ID,
		})
	}

	return &Details{
		Nome:             turma.Name,
		Descricao:        turma.Description,
		ID:               turma.ID,
		QuantidadeAlunos: len(turma.Enrollments),
		Alunos:           alunos,
	}, nil
}
