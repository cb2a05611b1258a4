package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/onboarding-tracker/internal/application"
	"github.com/example/onboarding-tracker/internal/config"
	httptransport "github.com/example/onboarding-tracker/internal/http"
	"github.com/example/onboarding-tracker/internal/persistence"
	"github.com/example/onboarding-tracker/internal/persistence/memory"
	"github.com/example/onboarding-tracker/internal/persistence/sqlite"
	"github.com/example/onboarding-tracker/internal/seed"
)

// repositories bundles the persistence interfaces the services depend on,
// hiding whether they are backed by SQLite or the in-memory store.
type repositories struct {
	Items         persistence.ChecklistItemRepository
	Instances     persistence.EmployeeChecklistRepository
	Employees     persistence.EmployeeRepository
	Responsables  persistence.ResponsableRepository
	Notifications persistence.NotificationRepository
	Equipment     persistence.EquipmentRepository

	close func() error
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to open storage", "error", err, "storage", cfg.Storage)
		os.Exit(1)
	}
	defer func() {
		if cerr := repos.close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	now := time.Now
	if err := seedCatalog(context.Background(), repos.Items, cfg.CatalogSeedPath, now()); err != nil {
		logger.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString

	catalogService := application.NewCatalogServiceWithLogger(repos.Items, repos.Instances, idGenerator, now, logger)
	checklistService := application.NewChecklistServiceWithLogger(repos.Items, repos.Instances, repos.Employees, idGenerator, now, logger)
	employeeService := application.NewEmployeeServiceWithLogger(repos.Employees, checklistService, idGenerator, now, logger)
	responsableService := application.NewResponsableServiceWithLogger(repos.Responsables, idGenerator, now, logger)
	notificationService := application.NewNotificationServiceWithLogger(repos.Employees, repos.Items, repos.Notifications, idGenerator, now, logger)
	planningService := application.NewPlanningServiceWithLogger(repos.Employees, repos.Items, rand.Float64, now, logger)
	equipmentService := application.NewEquipmentServiceWithLogger(repos.Equipment, repos.Employees, idGenerator, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Employees:     httptransport.NewEmployeeHandler(employeeService, logger),
		Checklists:    httptransport.NewChecklistHandler(checklistService, logger),
		Catalog:       httptransport.NewCatalogHandler(catalogService, logger),
		Responsables:  httptransport.NewResponsableHandler(responsableService, logger),
		Notifications: httptransport.NewNotificationHandler(notificationService, logger),
		Planning:      httptransport.NewPlanningHandler(planningService, logger),
		Equipment:     httptransport.NewEquipmentHandler(equipmentService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("onboarding API listening", "addr", server.Addr, "storage", cfg.Storage)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStorage()
		return repositories{
			Items:         store,
			Instances:     store,
			Employees:     store,
			Responsables:  store,
			Notifications: store,
			Equipment:     store,
			close:         func() error { return nil },
		}, nil
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return repositories{}, err
	}
	if err := pool.Migrate(ctx); err != nil {
		cerr := pool.Close()
		return repositories{}, errors.Join(err, cerr)
	}

	return repositories{
		Items:         sqlite.NewChecklistItemRepository(pool),
		Instances:     sqlite.NewEmployeeChecklistRepository(pool),
		Employees:     sqlite.NewEmployeeRepository(pool),
		Responsables:  sqlite.NewResponsableRepository(pool),
		Notifications: sqlite.NewNotificationRepository(pool),
		Equipment:     sqlite.NewEquipmentRepository(pool),
		close:         pool.Close,
	}, nil
}

// seedCatalog loads the default task catalog on first start. A non-empty
// catalog is left untouched so operator edits survive restarts.
func seedCatalog(ctx context.Context, items persistence.ChecklistItemRepository, path string, now time.Time) error {
	existing, err := items.ListChecklistItems(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	records, err := seed.Catalog(path, now)
	if err != nil {
		return err
	}
	for _, record := range records {
		if _, err := items.CreateChecklistItem(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
