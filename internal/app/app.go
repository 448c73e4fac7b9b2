package app

import (
	"fmt"
	"net/http"

	"finance-app-go/internal/config"
	"finance-app-go/internal/db"
	financedomain "finance-app-go/internal/domain/finance"
	userdomain "finance-app-go/internal/domain/user"
	"finance-app-go/internal/repository/inmemory"
	financerepo "finance-app-go/internal/repository/postgres/finance"
	userrepo "finance-app-go/internal/repository/postgres/user"
	"finance-app-go/internal/transport/httpserver"
	"finance-app-go/internal/transport/httpserver/handler"
	authmw "finance-app-go/internal/transport/httpserver/middleware"
	"finance-app-go/pkg/logger"
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

	var (
		financeRepo financedomain.Repository
		profileRepo userdomain.Repository
		dbConn      *gorm.DB
	)

	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("app: using in-memory storage, data is lost on restart")
		memory := inmemory.NewFinanceRepository()
		memory.SeedSharedCatalog()
		financeRepo = memory
		profileRepo = inmemory.NewProfileRepository()
	default:
		if cfg.DB.AutoMigrate {
			log.Info("app: running migrations")
			if err := db.Migrate(cfg.DB); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		log.Info("app: initializing database")
		dbConn, err = db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		financeRepo = financerepo.NewPostgres(dbConn)
		profileRepo = userrepo.NewPostgres(dbConn)
	}

	financeService := financedomain.NewServiceWithCache(financeRepo, inmemory.NewCategoriesCache(), cfg.Catalog.CategoriesCacheTTL)
	userService := userdomain.NewService(profileRepo)

	log.Info("app: initializing router", "auth_mode", cfg.Auth.Mode, "storage", cfg.Storage)
	auth := authmw.NewAuthenticator(cfg.Auth, userService, log)
	router := httpserver.NewRouter(cfg, handler.New(financeService, userService, log), auth, log)

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
