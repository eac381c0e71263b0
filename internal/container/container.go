package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/config"
	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	memStore    *memory.Store
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	events   application.EventPublisher
	searcher application.UserSearcher
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

// GetMemoryStore lazily creates the shared in-memory store.
func GetMemoryStore() *memory.Store {
	if memStore == nil {
		memStore = memory.NewStore()
	}
	return memStore
}

func SetEventPublisher(p application.EventPublisher) { events = p }
func GetEventPublisher() application.EventPublisher  { return events }
func SetUserSearcher(s application.UserSearcher)     { searcher = s }
func GetUserSearcher() application.UserSearcher      { return searcher }

// Reset clears every singleton. Used between router tests.
func Reset() {
	cfg, logger, pgPool, memStore, redisClient = nil, nil, nil, nil, nil
	jwtManager = nil
	events, searcher = nil, nil
}
