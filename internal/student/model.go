package student

import (
	"time"

	"github.com/uptrace/bun"
)

// Student is a row of the aluno table. Column names follow the existing
// school database schema.
type Student struct {
	bun.BaseModel `bun:"table:aluno,alias:a"`

	ID           int       `bun:"id,pk,autoincrement"`
	Name         string    `bun:"nome,notnull"`
	BirthDate    time.Time `bun:"datanascimento,notnull"`
	CPF          string    `bun:"cpf,notnull,unique"`
	Email        string    `bun:"email,notnull,unique"`
	CreatedAt    time.Time `bun:"datacriado,nullzero,notnull,default:current_timestamp"`
	PasswordHash []byte    `bun:"senha,notnull"`
	PasswordSalt []byte    `bun:"salt,notnull"`
}

// CadastroRequest is the create/update payload. The same body is used
// for both operations; the password is always present and always
// re-hashed on update.
type CadastroRequest struct {
	Nome           string `json:"nome" validate:"required,min=3,max=100"`
	DataNascimento Date   `json:"dataNascimento" validate:"required"`
	CPF            string `json:"cpf" validate:"required,cpf"`
	Email          string `json:"email" validate:"required,email"`
	Senha          string `json:"senha" validate:"required,senha"`
}

// ListItem is one student in the paginated listing.
type ListItem struct {
	Nome           string `json:"nome"`
	DataNascimento Date   `json:"dataNascimento"`
	Email          string `json:"email"`
	ID             int    `json:"id"`
	CPF            string `json:"cpf"`
}
