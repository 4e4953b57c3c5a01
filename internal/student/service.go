package student

import (
	"context"
	"errors"
	"time"

	"school-service/internal/crypto"
	"school-service/internal/enrollment"
	"school-service/internal/events"
	"school-service/internal/pagination"
	"school-service/internal/validation"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentConflict = errors.New("student conflicts with existing cpf or email")
	ErrAlreadyEnrolled = errors.New("student already enrolled in class")
)

type Service interface {
	Create(ctx context.Context, req CadastroRequest) (int, error)
	Update(ctx context.Context, id int, req CadastroRequest) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, q pagination.Query, nomeQuery, cpfQuery string) (pagination.Page[ListItem], error)
	Enroll(ctx context.Context, alunoID, turmaID int) (int, error)
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

// Create stores a new student after checking no existing student holds
// the same cpf or email. The check is a fast path for a friendly
// conflict message; the unique indexes decide concurrent races and the
// repository reports their violation as ErrStudentConflict too.
func (s *service) Create(ctx context.Context, req CadastroRequest) (int, error) {
	cpf := validation.NormalizeCPF(req.CPF)

	conflicts, err := s.repo.FindByCPFOrEmail(ctx, cpf, req.Email)
	if err != nil {
		return 0, err
	}
	if len(conflicts) > 0 {
		return 0, ErrStudentConflict
	}

	cred, err := crypto.Hash(req.Senha)
	if err != nil {
		return 0, err
	}

	aluno := &Student{
		Name:         req.Nome,
		BirthDate:    time.Time(req.DataNascimento),
		CPF:          cpf,
		Email:        req.Email,
		PasswordHash: cred.Key,
		PasswordSalt: cred.Salt,
	}

	if err := s.repo.Create(ctx, aluno); err != nil {
		return 0, err
	}

	s.events.StudentRegistered(ctx, aluno.ID, aluno.Email)

	return aluno.ID, nil
}

// Update replaces every mutable field. A conflicting cpf/email on a
// different student fails; the record's own row is not a conflict. The
// password is always re-hashed from the request.
func (s *service) Update(ctx context.Context, id int, req CadastroRequest) error {
	cpf := validation.NormalizeCPF(req.CPF)

	conflicts, err := s.repo.FindByCPFOrEmail(ctx, cpf, req.Email)
	if err != nil {
		return err
	}
	for _, conflict := range conflicts {
		if conflict.ID != id {
			return ErrStudentConflict
		}
	}

	cred, err := crypto.Hash(req.Senha)
	if err != nil {
		return err
	}

	aluno := &Student{
		ID:           id,
		Name:         req.Nome,
		BirthDate:    time.Time(req.DataNascimento),
		CPF:          cpf,
		Email:        req.Email,
		PasswordHash: cred.Key,
		PasswordSalt: cred.Salt,
	}

	if err := s.repo.Update(ctx, aluno); err != nil {
		return err
	}

	s.events.StudentUpdated(ctx, id)

	return nil
}

// Delete removes the student's enrollments and then the student.
// Deleting an absent student is a no-op.
func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.enrollments.DeleteByStudent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.StudentDeleted(ctx, id)

	return nil
}

// List returns a page of students ordered by name. The cpf filter is a
// digits-only prefix match and is ignored entirely when the raw query
// has one character or less.
func (s *service) List(ctx context.Context, q pagination.Query, nomeQuery, cpfQuery string) (pagination.Page[ListItem], error) {
	cpfPrefix := ""
	if len(cpfQuery) > 1 {
		cpfPrefix = validation.NormalizeCPF(cpfQuery)
	}

	alunos, total, err := s.repo.List(ctx, q, nomeQuery, cpfPrefix)
	if err != nil {
		return pagination.Page[ListItem]{}, err
	}

	items := make([]ListItem, 0, len(alunos))
	for _, aluno := range alunos {
		items = append(items, ListItem{
			Nome:           aluno.Name,
			DataNascimento: Date(aluno.BirthDate),
			Email:          aluno.Email,
			ID:             aluno.ID,
			CPF:            aluno.CPF,
		})
	}

	return pagination.NewPage(total, q.PageSize, items), nil
}

// Enroll creates an enrollment for the (student, class) pair, failing
// when the pair already exists.
func (s *service) Enroll(ctx context.Context, alunoID, turmaID int) (int, error) {
	exists, err := s.enrollments.Exists(ctx, alunoID, turmaID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrAlreadyEnrolled
	}

	matricula := &enrollment.Enrollment{
		StudentID: alunoID,
		ClassID:   turmaID,
	}
	if err := s.enrollments.Create(ctx, matricula); err != nil {
		if errors.Is(err, enrollment.ErrDuplicate) {
			return 0, ErrAlreadyEnrolled
		}
		return 0, err
	}

	s.events.StudentEnrolled(ctx, matricula.ID, alunoID, turmaID)

	return matricula.ID, nil
}
