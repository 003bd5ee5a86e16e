package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/metropower/dashboard/internal/api/http"
	"github.com/metropower/dashboard/internal/api/http/handlers"
	"github.com/metropower/dashboard/internal/auth"
	"github.com/metropower/dashboard/internal/config"
	"github.com/metropower/dashboard/internal/events"
	"github.com/metropower/dashboard/internal/observability"
	"github.com/metropower/dashboard/internal/persistence"
	"github.com/metropower/dashboard/internal/repository"
	"github.com/metropower/dashboard/internal/scheduling"
	"github.com/metropower/dashboard/internal/service"
	"github.com/metropower/dashboard/internal/storage"
	"github.com/metropower/dashboard/internal/worker"
)

// backend is the storage the services run against.
type backend struct {
	employees   repository.EmployeeRepository
	projects    repository.ProjectRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	tx          service.Transactor
	sequence    scheduling.Sequence
	memory      bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	store, err := openBackend(cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to prepare storage", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	activityService := service.NewActivityService(dispatcher, logger)
	worker.StartActivityWorker(activityService)

	resolver := scheduling.NewResolver(cfg.Scheduling.StrictReferences)
	employeeService := service.NewEmployeeService(store.employees, store.sequence, store.tx, dispatcher)
	projectService := service.NewProjectService(store.projects, store.sequence, store.tx, dispatcher)
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo: store.assignments,
		EmployeeRepo:   store.employees,
		ProjectRepo:    store.projects,
		Transactor:     store.tx,
		Dispatcher:     dispatcher,
	}, resolver)
	authService := service.NewAuthService(cfg.Auth, store.users, logger)

	if store.memory && cfg.Storage.SeedFile != "" {
		seed, err := persistence.LoadSeed(cfg.Storage.SeedFile)
		if err != nil {
			logger.Fatal("failed to load seed file", zap.Error(err))
		}
		seeder := service.Seeder{
			Employees:   employeeService,
			Projects:    projectService,
			Assignments: assignmentService,
			Auth:        authService,
		}
		if err := seeder.Apply(ctx, seed); err != nil {
			logger.Fatal("failed to apply seed file", zap.Error(err))
		}
		logger.Info("seed data loaded",
			zap.String("file", cfg.Storage.SeedFile),
			zap.Int("employees", len(seed.Employees)),
			zap.Int("projects", len(seed.Projects)),
			zap.Int("assignments", len(seed.Assignments)))
	}

	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}

	if cfg.Scheduling.IDSequence == config.SequenceRedis {
		sequence, err := redisSequence(ctx, redis, store, logger)
		if err != nil {
			logger.Fatal("failed to seed redis sequence", zap.Error(err))
		}
		employeeService = service.NewEmployeeService(store.employees, sequence, store.tx, dispatcher)
		projectService = service.NewProjectService(store.projects, sequence, store.tx, dispatcher)
	}

	var archiver service.Archiver
	if cfg.Archive.Enabled() {
		s3, err := storage.NewS3Archiver(cfg.Archive)
		if err != nil {
			logger.Fatal("failed to init export archive", zap.Error(err))
		}
		archiver = s3
		logger.Info("export archive enabled", zap.String("bucket", cfg.Archive.Bucket))
	}

	exportService := service.NewExportService(service.ExportDependencies{
		EmployeeRepo:   store.employees,
		ProjectRepo:    store.projects,
		AssignmentRepo: store.assignments,
		Archiver:       archiver,
		Logger:         logger,
	})
	importService := service.NewImportService(employeeService, projectService, assignmentService, dispatcher, logger)

	basicAuth := auth.NewBasicAuth(authService, cfg.Auth.Realm, cfg.Auth.CredentialCacheSize, cfg.Auth.CredentialCacheTTL())

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		BodyLimit:             cfg.App.MaxUploadBytes,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:        handlers.NewAuthHandler(),
		Employees:   handlers.NewEmployeesHandler(employeeService),
		Projects:    handlers.NewProjectsHandler(projectService),
		Assignments: handlers.NewAssignmentsHandler(assignmentService),
		Export:      handlers.NewExportHandler(exportService),
		Import:      handlers.NewImportHandler(importService),
		Activity:    handlers.NewActivityHandler(activityService),
		BasicAuth:   basicAuth,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Bool("in_memory", store.memory))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

// openBackend picks Postgres when a pool is open and the in-memory store otherwise.
func openBackend(cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (*backend, error) {
	if !pg.Enabled() {
		mem := repository.NewMemoryStore()
		return &backend{
			employees:   mem.Employees(),
			projects:    mem.Projects(),
			assignments: mem.Assignments(),
			users:       mem.Users(),
			tx:          mem,
			sequence:    mem,
			memory:      true,
		}, nil
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			return nil, err
		}
	}

	pool := pg.PoolHandle()
	return &backend{
		employees:   repository.NewEmployeeRepository(pool),
		projects:    repository.NewProjectRepository(pool),
		assignments: repository.NewAssignmentRepository(pool),
		users:       repository.NewUserRepository(pool),
		tx:          persistence.NewTransactionManager(pool),
		sequence:    repository.NewPostgresSequence(pool),
	}, nil
}

// redisSequence starts the Redis counters at the current row counts; counters
// that already exist are left alone.
func redisSequence(ctx context.Context, redis *persistence.Redis, store *backend, logger *zap.Logger) (*persistence.RedisSequence, error) {
	sequence := persistence.NewRedisSequence(redis)

	employees, err := store.employees.Count(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := store.projects.Count(ctx)
	if err != nil {
		return nil, err
	}

	for entity, current := range map[scheduling.Entity]int64{
		scheduling.EntityEmployee: employees,
		scheduling.EntityProject:  projects,
	} {
		seeded, err := sequence.Seed(ctx, entity, current)
		if err != nil {
			return nil, err
		}
		logger.Info("redis sequence ready",
			zap.String("key", persistence.SequenceKey(entity)),
			zap.Int64("rows", current),
			zap.Bool("seeded", seeded))
	}
	return sequence, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
