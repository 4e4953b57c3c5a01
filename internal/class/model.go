package class

import (
	"time"

	"school-service/internal/enrollment"

	"github.com/uptrace/bun"
)

// Class is a row of the turma table.
type Class struct {
	bun.BaseModel `bun:"table:turma,alias:t"`

	ID          int       `bun:"id,pk,autoincrement"`
	Name        string    `bun:"nome,notnull"`
	Description string    `bun:"descricao"`
	CreatedAt   time.Time `bun:"datacriado,nullzero,notnull,default:current_timestamp"`

	Enrollments []*enrollment.Enrollment `bun:"rel:has-many,join:id=turmaid"`
}

// CadastroRequest is the create/update payload.
type CadastroRequest struct {
	Nome      string `json:"nome" validate:"required,min=3,max=100"`
	Descricao string `json:"descricao"`
}

// ListItem is one class in the paginated listing.
type ListItem struct {
	Nome             string `json:"nome"`
	Descricao        string `json:"descricao"`
	ID               int    `json:"id"`
	QuantidadeAlunos int    `json:"quantidadeAlunos"`
}

// Details is the single-class view with its enrolled students.
type Details struct {
	Nome             string            `json:"nome"`
	Descricao        string            `json:"descricao"`
	ID               int               `json:"id"`
	QuantidadeAlunos int               `json:"quantidadeAlunos"`
	Alunos           []EnrolledStudent `json:"alunos"`
}

// EnrolledStudent is the id+name projection inside Details.
type EnrolledStudent struct {
	Nome string `json:"nome"`
	ID   int    `json:"id"`
}
