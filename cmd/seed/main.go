package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-course-admin/config"
	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/service"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// seed applies migrations and creates the bootstrap admin in postgres.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := application.NewUserService(
		pginfra.NewUserRepository(pool),
		service.NewUserDomainService(cfg.BcryptCost),
		messaging.NewLogEventPublisher(logger),
		nil,
		logger,
	)
	created, err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		fmt.Printf("seeded admin user: username=%s\n", cfg.AdminUsername)
		return
	}
	fmt.Printf("admin user %s already exists\n", cfg.AdminUsername)
}
