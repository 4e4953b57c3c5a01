package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's domain counters plus database
// instrumentation. All Record* methods tolerate a nil receiver so
// handlers never have to guard.
type Metrics struct {
	Database *DatabaseMetrics

	studentsRegistered metric.Int64Counter
	studentsListViewed metric.Int64Counter
	enrollmentsCreated metric.Int64Counter
	classesRegistered  metric.Int64Counter
	classesListViewed  metric.Int64Counter
	sessionsCreated    metric.Int64Counter
}

func New(serviceName string) (*Metrics, error) {
	meter := otel.Meter(serviceName)

	m := &Metrics{}

	var err error
	if m.Database, err = NewDatabaseMetrics(meter); err != nil {
		return nil, err
	}

	m.studentsRegistered, err = meter.Int64Counter(
		"school_service.alunos.registered",
		metric.WithDescription("Total number of students registered"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsListViewed, err = meter.Int64Counter(
		"school_service.alunos.list_viewed",
		metric.WithDescription("Total number of times the student list was queried"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.enrollmentsCreated, err = meter.Int64Counter(
		"school_service.matriculas.created",
		metric.WithDescription("Total number of enrollments created"),
		metric.WithUnit("{enrollment}"),
	)
	if err != nil {
		return nil, err
	}

	m.classesRegistered, err = meter.Int64Counter(
		"school_service.turmas.registered",
		metric.WithDescription("Total number of classes registered"),
		metric.WithUnit("{class}"),
	)
	if err != nil {
		return nil, err
	}

	m.classesListViewed, err = meter.Int64Counter(
		"school_service.turmas.list_viewed",
		metric.WithDescription("Total number of times the class list was queried"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.sessionsCreated, err = meter.Int64Counter(
		"school_service.sessoes.created",
		metric.WithDescription("Total number of admin sessions created"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordStudentRegistered(ctx context.Context) {
	if m != nil && m.studentsRegistered != nil {
		m.studentsRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentsListViewed(ctx context.Context) {
	if m != nil && m.studentsListViewed != nil {
		m.studentsListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordEnrollmentCreated(ctx context.Context) {
	if m != nil && m.enrollmentsCreated != nil {
		m.enrollmentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordClassRegistered(ctx context.Context) {
	if m != nil && m.classesRegistered != nil {
		m.classesRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) RecordClassesListViewed(ctx context.Context) {
	if m != nil && m.classesListViewed != nil {
		m.classesListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSessionCreated(ctx context.Context) {
	if m != nil && m.sessionsCreated != nil {
		m.sessionsCreated.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing.
// The returned Metrics safely ignores all Record* calls.
func NewMock() *Metrics {
	return &Metrics{Database: &DatabaseMetrics{}}
}
