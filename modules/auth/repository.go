package auth

import (
	"context"
	"errors"
	"strings"

	domain "github.com/example/task-management/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// UsersTable is the production table, qualified by its schema.
	UsersTable = "taskmgmt_schema.signupusers"

	pgUniqueViolation = "23505"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailInUse is returned when the email is already registered.
	ErrEmailInUse = errors.New("email is already in use")
)

// UserRepository handles user persistence using GORM.
type UserRepository struct {
	db    *gorm.DB
	table string
}

// NewUserRepository creates a repository over table. The table name is explicit
// so that tests can run against an unqualified SQLite table.
func NewUserRepository(db *gorm.DB, table string) *UserRepository {
	return &UserRepository{
		db:    db,
		table: table,
	}
}

// Create inserts user and fills in its generated id. Email uniqueness is left to
// the database constraint so concurrent signups cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Table(r.table).Create(user)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrEmailInUse
		}
		return result.Error
	}
	return nil
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Table(r.table).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// CountByEmail returns how many users hold email.
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Table(r.table).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// isDuplicateKeyError reports a unique violation, whether gorm translated it or
// the raw driver error came through.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// SQLite
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
