package cache

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/storage/redis/v3"
	goredis "github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every key written by this service.
	DefaultPrefix = "taskmgmt:"
	// DefaultTTL bounds how stale a cached read can be.
	DefaultTTL = time.Minute
)

// Config holds the Redis connection and caching settings.
type Config struct {
	Addr     string
	Password string
	Prefix   string
	TTL      time.Duration
}

// PluginModule provides caching services as a mono plugin module.
type PluginModule struct {
	container types.ServiceContainer
	store     *redis.Storage
	client    goredis.UniversalClient
	service   CacheService
	config    Config
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a cache plugin for redisAddr with default settings.
func NewPluginModule(redisAddr string) *PluginModule {
	return NewPluginModuleWithConfig(Config{Addr: redisAddr})
}

// NewPluginModuleWithConfig creates a cache plugin, filling unset fields with defaults.
func NewPluginModuleWithConfig(cfg Config) *PluginModule {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &PluginModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "cache"
}

// Start connects to Redis. Plugins start before regular modules.
func (m *PluginModule) Start(_ context.Context) error {
	host, port := parseRedisAddr(m.config.Addr)
	m.store = redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: m.config.Password,
		PoolSize: 50,
	})
	m.client = m.store.Conn()
	m.service = NewCacheService(m.store, m.client, m.config.Prefix, m.config.TTL)

	log.Printf("[cache] Connected to Redis at %s:%d (prefix: %s, TTL: %s)", host, port, m.config.Prefix, m.config.TTL)
	log.Println("[cache] Plugin started")
	return nil
}

// Stop closes the Redis connection. Plugins stop after regular modules.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.service != nil {
		if err := m.service.Close(); err != nil {
			log.Printf("[cache] Error closing connection: %v", err)
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	log.Println("[cache] Plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Port returns the CacheService consumers use. It is nil until Start.
func (m *PluginModule) Port() CacheService {
	return m.service
}

// Health pings Redis.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "redis client not initialized",
		}
	}

	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.config.Addr,
			"prefix":     m.config.Prefix,
			"ttl":        m.config.TTL.String(),
		},
	}
}

// parseRedisAddr parses "host:port" into host and port.
// Returns defaults (127.0.0.1:6379) for invalid or missing values.
func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}

	if host == "" {
		host = defaultHost
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}

	return host, port
}
