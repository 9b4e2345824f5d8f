package app

import (
	"fmt"
	"sync"
	"time"

	"bandbook/internal/config"
	"bandbook/internal/util"
	"bandbook/pkg/store"
)

// Config holds runtime configuration for the core application. Zero values
// fall back to in-memory storage and sessions, which is what the platform
// previews and tests use.
type Config struct {
	StorageDriver  string // memory, sqlite or postgres
	DatabasePath   string // sqlite file path
	DatabaseURL    string // postgres DSN
	SessionBackend string // memory, redis or jwt
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string

	// VerifyPasswords disables credential checks on sign-in when false,
	// matching the legacy behavior some installs still rely on.
	VerifyPasswords *bool

	// Store and Sessions override the wiring above when set.
	Store    store.Store
	Sessions store.SessionStore
}

// App is the shared core consumed by the platform UI layers. It wires the
// entity stores, the session store and the use cases together.
type App struct {
	store           store.Store
	sessions        store.SessionStore
	verifyPasswords bool

	mu           sync.Mutex
	sessionToken string
}

// New constructs the application, wiring storage and sessions from config.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * 24 * time.Hour
	}

	dataStore := cfg.Store
	if dataStore == nil {
		var err error
		switch cfg.StorageDriver {
		case config.DriverSQLite:
			if cfg.DatabasePath == "" {
				return nil, fmt.Errorf("databasePath required for sqlite storage")
			}
			dataStore, err = store.NewSQLiteStore(cfg.DatabasePath)
			if err != nil {
				return nil, fmt.Errorf("init sqlite store: %w", err)
			}
		case config.DriverPostgres:
			if cfg.DatabaseURL == "" {
				return nil, fmt.Errorf("databaseURL required for postgres storage")
			}
			dataStore, err = store.NewPostgresStore(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("init postgres store: %w", err)
			}
		case config.DriverMemory, "":
			dataStore = store.NewMemoryStore()
		default:
			return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		var err error
		switch cfg.SessionBackend {
		case config.SessionRedis:
			if cfg.RedisAddr == "" {
				return nil, fmt.Errorf("redisAddr required for redis sessions")
			}
			sessionStore = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		case config.SessionJWT:
			sessionStore, err = store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL)
			if err != nil {
				return nil, fmt.Errorf("init jwt session store: %w", err)
			}
		case config.SessionMemory, "":
			sessionStore = store.NewMemorySessionStore()
		default:
			return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
		}
	}

	verify := true
	if cfg.VerifyPasswords != nil {
		verify = *cfg.VerifyPasswords
	}

	return &App{
		store:           dataStore,
		sessions:        sessionStore,
		verifyPasswords: verify,
	}, nil
}

// Load reads the YAML config at path, configures logging, and constructs
// the application from it.
func Load(path string) (*App, error) {
	fileCfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	util.InitLogger(fileCfg.LogLevel)
	return New(Config{
		StorageDriver:   fileCfg.StorageDriver,
		DatabasePath:    fileCfg.DatabasePath,
		DatabaseURL:     fileCfg.DatabaseURL,
		SessionBackend:  fileCfg.SessionBackend,
		SessionTTL:      fileCfg.SessionTTLDuration(),
		RedisAddr:       fileCfg.RedisAddr,
		RedisPassword:   fileCfg.RedisPassword,
		JWTSecret:       fileCfg.JWTSecret,
		VerifyPasswords: fileCfg.VerifyPasswords,
	})
}
