package app

import (
	"net/http"

	"evac-app-go/internal/config"
	"evac-app-go/internal/db"
	attendancedomain "evac-app-go/internal/domain/attendance"
	occupancydomain "evac-app-go/internal/domain/occupancy"
	registrydomain "evac-app-go/internal/domain/registry"
	"evac-app-go/internal/repository/inmemory"
	attendancerepo "evac-app-go/internal/repository/postgres/attendance"
	occupancyrepo "evac-app-go/internal/repository/postgres/occupancy"
	registryrepo "evac-app-go/internal/repository/postgres/registry"
	"evac-app-go/internal/transport/httpserver"
	"evac-app-go/internal/transport/httpserver/handler"
	"evac-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	registryService := registrydomain.NewService(registryrepo.NewPostgres(dbConn))

	gate := attendancedomain.NewGate(
		registryService,
		inmemory.NewInMemoryGateCache(),
		cfg.Attendance.GateCacheTTL,
	)
	attendanceService := attendancedomain.NewService(
		attendancerepo.NewPostgres(dbConn),
		gate,
		registryService,
		cfg.Attendance.MaxBatchSize,
	)
	occupancyService := occupancydomain.NewService(
		occupancyrepo.NewPostgres(dbConn),
		cfg.Attendance.RecalcConcurrency,
	)

	handlers := handler.New(attendanceService, occupancyService, registryService, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
