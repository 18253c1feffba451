// @title       Animal Adoption API
// @version     1.0
// @description Publicación y listado de animales en adopción.
// @BasePath    /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"animal-adoption/internal/adapters/auth/jwtauth"
	rediscache "animal-adoption/internal/adapters/cache/redis"
	"animal-adoption/internal/adapters/images/cloudinary"
	pg "animal-adoption/internal/adapters/storage/postgres"
	"animal-adoption/internal/platform/config"
	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/platform/metrics"
	"animal-adoption/internal/ports/auth"
	"animal-adoption/internal/ports/images"
	"animal-adoption/internal/router"
)

func main() {
	if err := run(); err != nil {
		logger.NewFromEnv().Error("server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("APP_PROFILE"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:         log,
		Metrics:        metrics.New(),
		PerPage:        cfg.Listing.PerPage,
		MaxPerPage:     cfg.Listing.MaxPerPage,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}

	if cfg.DB.DSN != "" {
		db, err := pg.Open(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.DB.Migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
		}
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	if cfg.Redis.Addr != "" {
		cache, err := rediscache.Connect(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			// Sin cache el servicio funciona igual.
			log.Warn("redis unavailable, cache disabled", map[string]any{"error": err.Error()})
		} else {
			defer cache.Close()
			opts.Cache = cache
		}
	}

	opts.Images, err = imageStore(cfg, log)
	if err != nil {
		return err
	}

	opts.AuthVerifier = verifier(cfg, log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.App.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) logger.Logger {
	opts := logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	}
	if cfg.Log.FilePath != "" {
		opts.File = &logger.FileOptions{
			Path:       cfg.Log.FilePath,
			MaxSizeMB:  cfg.Log.FileMaxSizeMB,
			MaxBackups: cfg.Log.FileMaxBackups,
			MaxAgeDays: cfg.Log.FileMaxAgeDays,
			Compress:   cfg.Log.FileCompress,
		}
	}
	return logger.New(opts)
}

// imageStore devuelve nil (store en memoria del router) si no hay Cloudinary.
func imageStore(cfg *config.Config, log logger.Logger) (images.Store, error) {
	if cfg.Cloudinary.CloudName == "" {
		log.Warn("cloudinary not configured, images kept in memory", nil)
		return nil, nil
	}
	return cloudinary.New(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	})
}

func verifier(cfg *config.Config, log logger.Logger) auth.AuthVerifier {
	if cfg.Auth.Secret == "" {
		log.Warn("JWT secret not set, accepting X-Debug-User-ID headers", nil)
		return nil
	}
	return jwtauth.NewSigner(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
}
