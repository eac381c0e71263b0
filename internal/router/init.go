package router

import (
	"time"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/container"
	repo "github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/service"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-ddd-course-admin/internal/interface/http"
	"github.com/oksasatya/go-ddd-course-admin/internal/router/modules"
)

// Repositories is the storage selected by STORAGE_DRIVER.
type Repositories struct {
	Users    repo.UserRepository
	Courses  repo.CourseRepository
	Contents repo.ContentRepository
}

// App holds the application services shared by the modules and cmd/main.
type App struct {
	Users   *application.UserService
	Auth    *application.AuthService
	Courses *application.CourseService
	Stats   *application.StatsService
}

func buildRepositories() Repositories {
	if cfg := container.GetConfig(); cfg != nil && cfg.UsePostgres() {
		pool := container.GetPGPool()
		return Repositories{
			Users:    pginfra.NewUserRepository(pool),
			Courses:  pginfra.NewCourseRepository(pool),
			Contents: pginfra.NewContentRepository(pool),
		}
	}
	store := container.GetMemoryStore()
	return Repositories{
		Users:    memory.NewUserRepository(store),
		Courses:  memory.NewCourseRepository(store),
		Contents: memory.NewContentRepository(store),
	}
}

// BuildApp wires the application services from the container singletons.
func BuildApp() App {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := buildRepositories()

	cost := 0
	statsTTL := time.Duration(0)
	if cfg != nil {
		cost = cfg.BcryptCost
		statsTTL = cfg.StatsCacheTTL
	}
	domainSvc := service.NewUserDomainService(cost)

	events := container.GetEventPublisher()
	if events == nil {
		events = messaging.NewLogEventPublisher(logger)
	}

	return App{
		Users:   application.NewUserService(repos.Users, domainSvc, events, container.GetUserSearcher(), logger),
		Auth:    application.NewAuthService(repos.Users, domainSvc, container.GetJWT(), logger),
		Courses: application.NewCourseService(repos.Courses, repos.Contents),
		Stats:   application.NewStatsService(repos.Users, repos.Courses, repos.Contents, container.GetRedis(), statsTTL, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, app App) {
	cfg := container.GetConfig()
	jwt := container.GetJWT()

	cookieDomain, cookieSecure := "", false
	if cfg != nil {
		cookieDomain, cookieSecure = cfg.CookieDomain, cfg.CookieSecure
	}

	r.Use(modules.GlobalLimiter())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(app.Auth, container.GetLogger(), cookieDomain, cookieSecure), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(app.Users), jwt))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(app.Courses), jwt))
	r.Add(modules.NewStatsModule(handlers.NewStatsHandler(app.Stats), jwt))
	if cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
