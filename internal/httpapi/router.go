package httpapi

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/content"
	"github.com/Freeeeeet/tuition_site/internal/metrics"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

type Deps struct {
	Pages       *content.Catalog
	Submissions *service.SubmissionService
	Requests    *service.RequestService
	Dashboard   *service.DashboardService
	Auth        *service.AuthService
	Export      *service.ExportService
	Limiter     *RateLimiter // public submissions
	LoginLimit  *RateLimiter // admin login
	Logger      *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		pages:       d.Pages,
		submissions: d.Submissions,
		requests:    d.Requests,
		dashboard:   d.Dashboard,
		auth:        d.Auth,
		export:      d.Export,
		logger:      d.Logger,
	}
	if h.pages == nil {
		h.pages = content.DefaultCatalog()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pages", h.listPages)
		r.Get("/pages/{slug}", h.getPage)
		r.Get("/forms", h.listForms)
		r.Get("/forms/{name}", h.getForm)

		r.Group(func(r chi.Router) {
			if d.Limiter != nil {
				r.Use(d.Limiter.Handler)
			}
			r.Post("/parents", h.submitParent)
			r.Post("/tutors", h.submitTutor)
			r.Post("/requests", h.createRequest)
		})
		r.Get("/requests/{id}", h.requestStatus)

		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.LoginLimit != nil {
					r.Use(d.LoginLimit.Handler)
				}
				r.Post("/login", h.login)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(d.Auth.TokenAuth()))
				r.Use(AdminAuth(d.Auth))

				r.Get("/stats", h.stats)
				r.Get("/{kind}", h.list)
				r.Get("/{kind}/export.csv", h.exportCSV)
				r.Get("/{kind}/{id}", h.get)
				r.Patch("/{kind}/{id}/status", h.updateStatus)
				r.Post("/{kind}/{id}/match", h.runMatching)
			})
		})
	})

	return r
}
