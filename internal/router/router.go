package router

import (
	"database/sql"
	"net/http"

	memimages "animal-adoption/internal/adapters/images/memory"
	mem "animal-adoption/internal/adapters/storage/memory"
	pg "animal-adoption/internal/adapters/storage/postgres"
	_ "animal-adoption/internal/docs"
	"animal-adoption/internal/domain/animals"
	"animal-adoption/internal/domain/listing"
	"animal-adoption/internal/middleware"
	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/platform/metrics"
	"animal-adoption/internal/ports/auth"
	"animal-adoption/internal/ports/images"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultMaxUploadBytes = 10 << 20

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Animals pisa al repo elegido por DB (tests).
	Animals animals.Repository

	Images images.Store  // nil = store en memoria
	Cache  animals.Cache // nil = sin cache

	Logger  logger.Logger
	Metrics *metrics.Metrics

	PerPage        int
	MaxPerPage     int
	MaxUploadBytes int64
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(m.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := opts.Animals
	if repo == nil {
		if opts.DB != nil {
			repo = pg.NewAnimalsRepo(opts.DB)
		} else {
			repo = mem.NewAnimalRepo()
		}
	}

	store := opts.Images
	if store == nil {
		store = memimages.NewStore("/media")
	}

	svcOpts := []animals.Option{
		animals.WithLogger(log),
		animals.WithPaging(opts.PerPage, opts.MaxPerPage),
		animals.WithCacheObserver(m.CacheLookup),
	}
	if opts.Cache != nil {
		svcOpts = append(svcOpts, animals.WithCache(opts.Cache))
	}
	animalsSvc := animals.NewService(repo, store, svcOpts...)

	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, maxUpload)
	listing.RegisterRoutes(r, animalsSvc, log)

	return r
}
