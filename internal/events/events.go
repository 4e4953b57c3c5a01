// Package events publishes domain events to the configured message
// broker. Publishing is best-effort: a broker failure is logged and
// never fails the request that produced the event.
package events

import (
	"context"
	"log/slog"
	"time"
)

// Event type names, consumed by the notification pipeline.
const (
	TypeStudentRegistered = "aluno.cadastrado"
	TypeStudentUpdated    = "aluno.atualizado"
	TypeStudentDeleted    = "aluno.removido"
	TypeStudentEnrolled   = "aluno.matriculado"
	TypeClassRegistered   = "turma.cadastrada"
	TypeClassUpdated      = "turma.atualizada"
	TypeClassDeleted      = "turma.removida"
	TypeSessionCreated    = "sessao.criada"
)

// Producer is implemented by the NATS and Kafka backends.
type Producer interface {
	Publish(ctx context.Context, value interface{}) error
	Close() error
}

// Envelope is the wire shape of every event.
type Envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data"`
}

// Publisher emits domain events. A nil Publisher (events disabled) is
// safe to call.
type Publisher struct {
	producer Producer
	logger   *slog.Logger
}

func NewPublisher(producer Producer, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
	}
}

func (p *Publisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p == nil || p.producer == nil {
		return
	}

	event := Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	if err := p.producer.Publish(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event", "type", eventType, "error", err)
	}
}

func (p *Publisher) StudentRegistered(ctx context.Context, id int, email string) {
	p.publish(ctx, TypeStudentRegistered, map[string]interface{}{"id": id, "email": email})
}

func (p *Publisher) StudentUpdated(ctx context.Context, id int) {
	p.publish(ctx, TypeStudentUpdated, map[string]interface{}{"id": id})
}

func (p *Publisher) StudentDeleted(ctx context.Context, id int) {
	p.publish(ctx, TypeStudentDeleted, map[string]interface{}{"id": id})
}

func (p *Publisher) StudentEnrolled(ctx context.Context, matriculaID, alunoID, turmaID int) {
	p.publish(ctx, TypeStudentEnrolled, map[string]interface{}{
		"matriculaId": matriculaID,
		"alunoId":     alunoID,
		"turmaId":     turmaID,
	})
}

func (p *Publisher) ClassRegistered(ctx context.Context, id int) {
	p.publish(ctx, TypeClassRegistered, map[string]interface{}{"id": id})
}

func (p *Publisher) ClassUpdated(ctx context.Context, id int) {
	p.publish(ctx, TypeClassUpdated, map[string]interface{}{"id": id})
}

func (p *Publisher) ClassDeleted(ctx context.Context, id int) {
	p.publish(ctx, TypeClassDeleted, map[string]interface{}{"id": id})
}

func (p *Publisher) SessionCreated(ctx context.Context, adminID int) {
	p.publish(ctx, TypeSessionCreated, map[string]interface{}{"adminId": adminID})
}
