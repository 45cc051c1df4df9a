package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/example/task-management/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides the credential services.
type AuthModule struct {
	dbPlugin *database.PluginModule
	sqlDB    *sql.DB
	db       *gorm.DB
	table    string
	service  *AuthService
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*AuthModule)(nil)
	_ mono.ServiceProviderModule = (*AuthModule)(nil)
	_ mono.HealthCheckableModule = (*AuthModule)(nil)
	_ mono.UsePluginModule       = (*AuthModule)(nil)
)

// NewModule creates a new AuthModule backed by the shared PostgreSQL pool.
func NewModule() *AuthModule {
	return &AuthModule{
		table: UsersTable,
	}
}

// NewModuleWithDB creates an AuthModule over an existing GORM handle.
// This constructor enables dependency injection for testing.
func NewModuleWithDB(db *gorm.DB, table string) *AuthModule {
	return &AuthModule{
		db:    db,
		table: table,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// SetPlugin receives the database plugin from the mono framework.
func (m *AuthModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "database" {
		return
	}
	if dbPlugin, ok := plugin.(*database.PluginModule); ok {
		m.dbPlugin = dbPlugin
		log.Println("[auth] Database plugin injected")
	}
}

// Start opens GORM over the shared pool and builds the service.
func (m *AuthModule) Start(_ context.Context) error {
	if m.db == nil {
		if m.dbPlugin == nil || m.dbPlugin.Pool() == nil {
			return fmt.Errorf("database plugin not set - ensure 'database' plugin is registered")
		}

		m.sqlDB = stdlib.OpenDBFromPool(m.dbPlugin.Pool())
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: m.sqlDB}), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if err != nil {
			m.sqlDB.Close()
			return fmt.Errorf("failed to open gorm over pool: %w", err)
		}
		m.db = db
	}

	jwtConfig := loadJWTConfig()
	m.service = NewAuthService(
		NewUserRepository(m.db, m.table),
		NewPasswordHasher(),
		NewJWTManager(jwtConfig),
	)

	log.Printf("[auth] Module started (table: %s, token lifetime: %s)", m.table, jwtConfig.TokenDuration)
	return nil
}

// Stop releases the database/sql bridge. The pool itself belongs to the database plugin.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.sqlDB != nil {
		if err := m.sqlDB.Close(); err != nil {
			log.Printf("[auth] Error closing sql bridge: %v", err)
		}
		m.sqlDB = nil
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"table": m.table,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "register", json.Unmarshal, json.Marshal, m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "authenticate", json.Unmarshal, json.Marshal, m.handleAuthenticate,
	); err != nil {
		return fmt.Errorf("failed to register authenticate service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "verify-token", json.Unmarshal, json.Marshal, m.handleVerifyToken,
	); err != nil {
		return fmt.Errorf("failed to register verify-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "issue-token", json.Unmarshal, json.Marshal, m.handleIssueToken,
	); err != nil {
		return fmt.Errorf("failed to register issue-token service: %w", err)
	}

	log.Printf("[auth] Registered services: register, authenticate, verify-token, issue-token")
	return nil
}

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, token, err := m.service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return RegisterResponse{}, err
	}
	log.Printf("[auth] Registered user %d", user.ID)
	return RegisterResponse{UserID: user.ID, Token: token}, nil
}

func (m *AuthModule) handleAuthenticate(ctx context.Context, req AuthenticateRequest, _ *mono.Msg) (AuthenticateResponse, error) {
	user, token, err := m.service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return AuthenticateResponse{}, err
	}
	return AuthenticateResponse{UserID: user.ID, Name: user.Name, Token: token}, nil
}

func (m *AuthModule) handleVerifyToken(ctx context.Context, req VerifyTokenRequest, _ *mono.Msg) (VerifyTokenResponse, error) {
	claims, err := m.service.VerifyToken(ctx, req.Token)
	if err != nil {
		errMsg := ErrInvalidToken.Error()
		if errors.Is(err, ErrExpiredToken) {
			errMsg = ErrExpiredToken.Error()
		}
		return VerifyTokenResponse{Valid: false, Error: errMsg}, nil
	}
	return VerifyTokenResponse{Valid: true, UserID: claims.UserID}, nil
}

func (m *AuthModule) handleIssueToken(ctx context.Context, req IssueTokenRequest, _ *mono.Msg) (IssueTokenResponse, error) {
	token, err := m.service.IssueToken(ctx, req.UserID)
	if err != nil {
		return IssueTokenResponse{}, err
	}
	return IssueTokenResponse{Token: token}, nil
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.SecretKey = secret
	} else {
		log.Println("[auth] Warning: JWT_SECRET not set, using development secret")
	}

	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}

	return config
}
