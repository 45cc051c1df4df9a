package task

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/modules/cache"
)

// mockRepository is an in-memory Repository.
type mockRepository struct {
	mu         sync.Mutex
	tasks      []domain.Task
	nextID     int64
	listCalls  int
	countCalls int
	err        error
}

var _ Repository = (*mockRepository)(nil)

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, t domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t.ID = m.nextID
	t.CreatedAt = time.Now()
	m.nextID++
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *mockRepository) List(_ context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *mockRepository) UpdateByTitle(_ context.Context, title string, f domain.Fields) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	updated := []domain.Task{}
	for i := range m.tasks {
		if m.tasks[i].Title == title {
			apply(&m.tasks[i], f)
			updated = append(updated, m.tasks[i])
		}
	}
	return updated, nil
}

func (m *mockRepository) UpdateByID(_ context.Context, id int64, f domain.Fields) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			apply(&m.tasks[i], f)
			t := m.tasks[i]
			return &t, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (m *mockRepository) Delete(_ context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			t := m.tasks[i]
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return &t, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (m *mockRepository) Counts(_ context.Context) (domain.Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countCalls++
	if m.err != nil {
		return domain.Counts{}, m.err
	}
	var c domain.Counts
	for _, t := range m.tasks {
		c.Total++
		switch t.Status {
		case domain.StatusPending:
			c.Pending++
		case domain.StatusCompleted:
			c.Completed++
		}
	}
	return c, nil
}

func (m *mockRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func apply(t *domain.Task, f domain.Fields) {
	t.Category = f.Category
	t.Details = f.Details
	t.PriorityLevel = f.PriorityLevel
	t.DueDate = f.DueDate
	t.Status = f.Status
}

// mockCache is an in-memory cache.CacheService.
type mockCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated int
	getErr      error
}

var _ cache.CacheService = (*mockCache)(nil)

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	data, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *mockCache) Set(ctx context.Context, key string, value any) error {
	return c.SetWithTTL(ctx, key, value, time.Minute)
}

func (c *mockCache) SetWithTTL(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func (c *mockCache) InvalidatePrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	n := 0
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
			n++
		}
	}
	return n, nil
}

func (c *mockCache) Close() error {
	return nil
}

func (c *mockCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
