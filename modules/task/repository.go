package task

import (
	"context"
	"errors"
	"time"

	"github.com/example/task-management/db/generated"
	domain "github.com/example/task-management/domain/task"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgreSQL error codes.
const pgCheckViolation = "23514"

// ErrTaskNotFound is returned when no task matches the lookup key.
var ErrTaskNotFound = errors.New("task not found")

// Repository is the persistence port of the task store.
type Repository interface {
	Create(ctx context.Context, t domain.Task) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	UpdateByTitle(ctx context.Context, title string, f domain.Fields) ([]domain.Task, error)
	UpdateByID(ctx context.Context, id int64, f domain.Fields) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (*domain.Task, error)
	Counts(ctx context.Context) (domain.Counts, error)
}

// PostgresRepository implements Repository with sqlc-generated queries.
// Every method is a single statement.
type PostgresRepository struct {
	queries *generated.Queries
}

// Compile-time interface check.
var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a repository over a pool, connection or transaction.
func NewPostgresRepository(db generated.DBTX) *PostgresRepository {
	return &PostgresRepository{
		queries: generated.New(db),
	}
}

// Create inserts t and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, t domain.Task) (*domain.Task, error) {
	row, err := r.queries.CreateTask(ctx, generated.CreateTaskParams{
		TaskTitle:     t.Title,
		Category:      t.Category,
		Details:       t.Details,
		PriorityLevel: t.PriorityLevel,
		DueDate:       toTimestamp(t.DueDate),
		Status:        string(t.Status),
	})
	if err != nil {
		return nil, mapError(err)
	}
	task := toDomain(row)
	return &task, nil
}

// List returns every task ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.queries.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

// UpdateByTitle overwrites the mutable columns of every task titled title and
// returns the updated rows. Zero rows is not an error here.
func (r *PostgresRepository) UpdateByTitle(ctx context.Context, title string, f domain.Fields) ([]domain.Task, error) {
	rows, err := r.queries.UpdateTasksByTitle(ctx, generated.UpdateTasksByTitleParams{
		TaskTitle:     title,
		Category:      f.Category,
		Details:       f.Details,
		PriorityLevel: f.PriorityLevel,
		DueDate:       toTimestamp(f.DueDate),
		Status:        string(f.Status),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toDomainSlice(rows), nil
}

// UpdateByID overwrites the mutable columns of one task.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id int64, f domain.Fields) (*domain.Task, error) {
	row, err := r.queries.UpdateTask(ctx, generated.UpdateTaskParams{
		ID:            id,
		Category:      f.Category,
		Details:       f.Details,
		PriorityLevel: f.PriorityLevel,
		DueDate:       toTimestamp(f.DueDate),
		Status:        string(f.Status),
	})
	if err != nil {
		return nil, mapError(err)
	}
	task := toDomain(row)
	return &task, nil
}

// Delete removes one task and returns its prior contents.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	row, err := r.queries.DeleteTask(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	task := toDomain(row)
	return &task, nil
}

// Counts aggregates tasks by status in one query.
func (r *PostgresRepository) Counts(ctx context.Context) (domain.Counts, error) {
	row, err := r.queries.GetTaskCounts(ctx)
	if err != nil {
		return domain.Counts{}, err
	}
	return domain.Counts{
		Total:     row.TotalCount,
		Pending:   row.PendingCount,
		Completed: row.CompletedCount,
	}, nil
}

// mapError converts driver errors into package errors.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTaskNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		return domain.ErrInvalidStatus
	}
	return err
}

func toDomain(row generated.TaskmgmtSchemaTaskmanagement) domain.Task {
	t := domain.Task{
		ID:            row.ID,
		Title:         row.TaskTitle,
		Category:      row.Category,
		Details:       row.Details,
		PriorityLevel: row.PriorityLevel,
		Status:        domain.Status(row.Status),
		CreatedAt:     row.CreatedAt.Time,
	}
	if row.DueDate.Valid {
		due := row.DueDate.Time
		t.DueDate = &due
	}
	return t
}

func toDomainSlice(rows []generated.TaskmgmtSchemaTaskmanagement) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, toDomain(row))
	}
	return tasks
}

func toTimestamp(t *time.Time) pgtype.Timestamp {
	if t == nil {
		return pgtype.Timestamp{}
	}
	return pgtype.Timestamp{Time: *t, Valid: true}
}
