package task

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/events"
	"github.com/example/task-management/modules/cache"
	"github.com/go-monolith/mono"
	"golang.org/x/sync/singleflight"
)

// Cache keys. All of them live under cachePrefix so one call invalidates them.
const (
	cachePrefix    = "tasks:"
	listCacheKey   = cachePrefix + "list"
	countsCacheKey = cachePrefix + "counts"
)

// CreateInput holds the caller-supplied fields of a new task. There is no status:
// new tasks always start Pending.
type CreateInput struct {
	Title         string
	Category      string
	Details       string
	PriorityLevel string
	DueDate       *time.Time
}

// TaskService implements the task store operations.
type TaskService struct {
	repo     Repository
	cache    cache.CacheService
	eventBus mono.EventBus
	sfGroup  singleflight.Group // Prevents cache stampede
}

// NewTaskService creates a TaskService. c and bus may be nil, which disables
// caching and event publishing respectively.
func NewTaskService(repo Repository, c cache.CacheService, bus mono.EventBus) *TaskService {
	return &TaskService{
		repo:     repo,
		cache:    c,
		eventBus: bus,
	}
}

// Create inserts a task with status Pending.
func (s *TaskService) Create(ctx context.Context, actorID int64, in CreateInput) (*domain.Task, error) {
	created, err := s.repo.Create(ctx, domain.Task{
		Title:         in.Title,
		Category:      in.Category,
		Details:       in.Details,
		PriorityLevel: in.PriorityLevel,
		DueDate:       in.DueDate,
		Status:        domain.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate(ctx)

	if s.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    created.ID,
			Title:     created.Title,
			Category:  created.Category,
			UserID:    actorID,
			CreatedAt: created.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %d: %v", created.ID, err)
		}
	}

	return created, nil
}

// List returns all tasks, from cache when possible.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	var cached []domain.Task
	if s.lookup(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(listCacheKey, func() (any, error) {
		tasks, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.store(ctx, listCacheKey, tasks)
		return tasks, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return val.([]domain.Task), nil
}

// UpdateByTitle overwrites every task titled title in one statement and returns
// the first updated row.
func (s *TaskService) UpdateByTitle(ctx context.Context, actorID int64, title string, f domain.Fields) (*domain.Task, error) {
	if _, err := domain.ParseStatus(string(f.Status)); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByTitle(ctx, title, f)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if len(updated) == 0 {
		return nil, ErrTaskNotFound
	}
	if len(updated) > 1 {
		log.Printf("[task] Warning: update by title %q changed %d tasks", title, len(updated))
	}

	s.invalidate(ctx)
	for i := range updated {
		s.publishUpdated(actorID, &updated[i])
	}

	return &updated[0], nil
}

// UpdateByID overwrites the mutable fields of the task with the given id.
func (s *TaskService) UpdateByID(ctx context.Context, actorID, id int64, f domain.Fields) (*domain.Task, error) {
	if _, err := domain.ParseStatus(string(f.Status)); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, id, f)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}

	s.invalidate(ctx)
	s.publishUpdated(actorID, updated)

	return updated, nil
}

// Delete removes a task and returns what it held.
func (s *TaskService) Delete(ctx context.Context, actorID, id int64) (*domain.Task, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	s.invalidate(ctx)

	if s.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    deleted.ID,
			Title:     deleted.Title,
			UserID:    actorID,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %d: %v", deleted.ID, err)
		}
	}

	return deleted, nil
}

// Counts returns the status breakdown, from cache when possible.
func (s *TaskService) Counts(ctx context.Context) (domain.Counts, error) {
	var cached domain.Counts
	if s.lookup(ctx, countsCacheKey, &cached) {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(countsCacheKey, func() (any, error) {
		counts, err := s.repo.Counts(ctx)
		if err != nil {
			return nil, err
		}
		s.store(ctx, countsCacheKey, counts)
		return counts, nil
	})
	if err != nil {
		return domain.Counts{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	return val.(domain.Counts), nil
}

func (s *TaskService) publishUpdated(actorID int64, t *domain.Task) {
	if s.eventBus == nil {
		return
	}
	event := events.TaskUpdatedEvent{
		TaskID:    t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		UserID:    actorID,
		UpdatedAt: time.Now(),
	}
	if err := events.TaskUpdatedV1.Publish(s.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskUpdated event for task %d: %v", t.ID, err)
	}
}

// lookup reads key from the cache. Cache errors count as a miss.
func (s *TaskService) lookup(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[task] Cache error for %s: %v", key, err)
		return false
	}
	return found
}

func (s *TaskService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[task] Warning: failed to cache %s: %v", key, err)
	}
}

// invalidate drops every cached read after a mutation.
func (s *TaskService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.InvalidatePrefix(ctx, cachePrefix); err != nil {
		log.Printf("[task] Warning: failed to invalidate task cache: %v", err)
	}
}
