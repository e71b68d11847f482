package router

import (
	"net/http"

	_ "petverse/docs"
	"petverse/internal/domain/activity"
	"petverse/internal/domain/catalog"
	"petverse/internal/domain/pets"
	"petverse/internal/middleware"
	"petverse/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Pets     *pets.Service
	Activity *activity.Service

	// Opcional: si es nil se usa el catálogo de la mascota.
	Catalog *catalog.Catalog

	Logger      logger.Logger
	CORSOrigins []string

	// Opcional: nil => sin límite.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = opts.Pets.Catalog()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.Tracing)
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}
	if opts.RateLimiter != nil && opts.RateLimiter.Enabled() {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	pets.RegisterRoutes(r, opts.Pets)
	catalog.RegisterRoutes(r, cat)
	if opts.Activity != nil {
		activity.RegisterRoutes(r, opts.Activity, opts.Pets)
	}

	return r
}
