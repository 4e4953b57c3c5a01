package enrollment

import (
	"time"

	"github.com/uptrace/bun"
)

// Enrollment links a student to a class. The (alunoid, turmaid) pair is
// unique: a student enrolls in a class at most once.
type Enrollment struct {
	bun.BaseModel `bun:"table:matricula,alias:m"`

	ID         int       `bun:"id,pk,autoincrement"`
	StudentID  int       `bun:"alunoid,notnull,unique:matricula_alunoid_turmaid_key"`
	ClassID    int       `bun:"turmaid,notnull,unique:matricula_alunoid_turmaid_key"`
	EnrolledAt time.Time `bun:"datamatricula,nullzero,notnull,default:current_timestamp"`

	Student *StudentRef `bun:"rel:belongs-to,join:alunoid=id"`
}

// StudentRef is the id+name slice of the aluno row an enrollment points
// at, enough for the class detail view. The full row lives in the
// student package; this projection keeps matricula free of it.
type StudentRef struct {
	bun.BaseModel `bun:"table:aluno,alias:a"`

	ID   int    `bun:"id,pk"`
	Name string `bun:"nome"`
}
