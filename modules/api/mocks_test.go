package api

import (
	"context"
	"errors"

	domain "github.com/example/task-management/domain/task"
	userdomain "github.com/example/task-management/domain/user"
	"github.com/example/task-management/modules/activity"
	"github.com/example/task-management/modules/auth"
	"github.com/example/task-management/modules/task"
)

// mockAuthPort implements auth.AuthPort for testing
type mockAuthPort struct {
	registerFunc     func(ctx context.Context, name, email, password string) (*auth.RegisterResponse, error)
	authenticateFunc func(ctx context.Context, email, password string) (*auth.AuthenticateResponse, error)
	verifyTokenFunc  func(ctx context.Context, token string) (*userdomain.Claims, error)
	issueTokenFunc   func(ctx context.Context, userID int64) (string, error)
}

func (m *mockAuthPort) Register(ctx context.Context, name, email, password string) (*auth.RegisterResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, name, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) Authenticate(ctx context.Context, email, password string) (*auth.AuthenticateResponse, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) VerifyToken(ctx context.Context, token string) (*userdomain.Claims, error) {
	if m.verifyTokenFunc != nil {
		return m.verifyTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) IssueToken(ctx context.Context, userID int64) (string, error) {
	if m.issueTokenFunc != nil {
		return m.issueTokenFunc(ctx, userID)
	}
	return "", errors.New("not implemented")
}

// mockTaskPort implements task.TaskPort for testing
type mockTaskPort struct {
	createFunc        func(ctx context.Context, req *task.CreateTaskRequest) (*domain.Task, error)
	listFunc          func(ctx context.Context, userID int64) ([]domain.Task, error)
	updateByTitleFunc func(ctx context.Context, req *task.UpdateTaskByTitleRequest) (*domain.Task, error)
	updateFunc        func(ctx context.Context, req *task.UpdateTaskRequest) (*domain.Task, error)
	deleteFunc        func(ctx context.Context, taskID, userID int64) (*domain.Task, error)
	countsFunc        func(ctx context.Context, userID int64) (*domain.Counts, error)
}

func (m *mockTaskPort) CreateTask(ctx context.Context, req *task.CreateTaskRequest) (*domain.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) UpdateTaskByTitle(ctx context.Context, req *task.UpdateTaskByTitleRequest) (*domain.Task, error) {
	if m.updateByTitleFunc != nil {
		return m.updateByTitleFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) UpdateTask(ctx context.Context, req *task.UpdateTaskRequest) (*domain.Task, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) DeleteTask(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, taskID, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) GetCounts(ctx context.Context, userID int64) (*domain.Counts, error) {
	if m.countsFunc != nil {
		return m.countsFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

// mockActivityPort implements activity.ActivityPort for testing
type mockActivityPort struct {
	recentFunc func(ctx context.Context, limit int) ([]activity.Entry, error)
}

func (m *mockActivityPort) RecentActivity(ctx context.Context, limit int) ([]activity.Entry, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, limit)
	}
	return nil, errors.New("not implemented")
}

// validTokenAuth accepts "good-token" as user 7 and issues "fresh-token".
func validTokenAuth() *mockAuthPort {
	return &mockAuthPort{
		verifyTokenFunc: func(_ context.Context, token string) (*userdomain.Claims, error) {
			if token == "good-token" {
				return &userdomain.Claims{UserID: 7}, nil
			}
			return nil, auth.ErrInvalidToken
		},
		issueTokenFunc: func(_ context.Context, userID int64) (string, error) {
			return "fresh-token", nil
		},
	}
}
