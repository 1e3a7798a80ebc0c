// Package daemon assembles the service from its configuration and runs it.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hackaholics/identity/internal/auth"
	"github.com/hackaholics/identity/internal/config"
	"github.com/hackaholics/identity/internal/db/controller/user"
	"github.com/hackaholics/identity/internal/db/dsn"
	"github.com/hackaholics/identity/internal/db/models"
	"github.com/hackaholics/identity/internal/web"
	"github.com/hackaholics/identity/internal/web/handler"
)

// mysqlTableOptions makes email comparisons exact (case and accent sensitive).
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// shutdownGrace is added to the drain time to let in-flight requests finish.
const shutdownGrace = 10 * time.Second

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// New connects the database, discovers the Google OIDC configuration and
// builds the web service. The Google signing keys are fetched with a context
// detached from ctx's cancellation.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	d, err := build(ctx, cfg, db)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return d, nil
}

func build(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Daemon, error) {
	verifier, err := auth.NewGoogleVerifier(context.WithoutCancel(ctx), &auth.GoogleConfig{
		ClientID:             cfg.Google.ClientID,
		IssuerURL:            cfg.Google.IssuerURL,
		RequireVerifiedEmail: cfg.Google.RequireVerifiedEmail,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewJWTIssuer(&auth.JWTConfig{
		SigningKey: cfg.Token.SigningKey,
		Issuer:     cfg.Token.Issuer,
		AccessTTL:  cfg.Token.AccessTTL,
		RefreshTTL: cfg.Token.RefreshTTL,
	})
	if err != nil {
		return nil, err
	}

	store := user.NewStore(db)

	webService, err := web.New(cfg, &handler.Deps{
		Verifier:   verifier,
		Reconciler: auth.NewReconciler(store, tokens),
		Tokens:     tokens,
		Users:      store,
	})
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         db,
		webService: webService,
	}, nil
}

// Run serves until ctx is cancelled, then shuts the web service down gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	defer closeDB(d.db)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info().Msg("shutdown requested")

		timeout := time.Duration(d.cfg.Webserver.ShutDownTime)*time.Second + shutdownGrace

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return d.webService.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// OpenDB opens the configured database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL, "":
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database %s: %w", dsn.Redact(cfg), err)
	}

	migrator := db
	if db.Dialector.Name() == config.EngineMySQL {
		migrator = db.Set("gorm:table_options", mysqlTableOptions)
	}

	if err = migrator.AutoMigrate(&models.User{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("engine", db.Dialector.Name()).Msg("database ready")

	return db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	if err = sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
