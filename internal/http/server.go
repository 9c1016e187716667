package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/movienight/movienight/internal/auth"
	"github.com/movienight/movienight/internal/cache"
	"github.com/movienight/movienight/internal/config"
	"github.com/movienight/movienight/internal/mail"
	"github.com/movienight/movienight/internal/metrics"
	"github.com/movienight/movienight/internal/repository"
	"github.com/movienight/movienight/internal/store"
)

// Deps bundles the collaborators the handlers need beyond the repository.
type Deps struct {
	Cache   *cache.Cache
	Metrics *metrics.Metrics
	Mailer  mail.Mailer
	JWT     *auth.JWT
	Hasher  auth.Hasher
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	store    *store.Store
	repo     *repository.Repository
	cache    *cache.Cache
	metrics  *metrics.Metrics
	mailer   mail.Mailer
	jwt      *auth.JWT
	hasher   auth.Hasher
	validate *validator.Validate
	logger   *log.Logger
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, deps Deps, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		repo:     repo,
		cache:    deps.Cache,
		metrics:  deps.Metrics,
		mailer:   deps.Mailer,
		jwt:      deps.JWT,
		hasher:   deps.Hasher,
		validate: validator.New(),
		logger:   logger,
		router:   r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Post("/signup", s.handleSignup)
	s.router.Get("/signup/username-available", s.handleUsernameAvailable)
	s.router.Get("/signup/email-available", s.handleEmailAvailable)
	s.router.Get("/verify-email/{id}/{token}", s.handleVerifyEmail)
	s.router.Post("/login", s.handleLogin)
	s.router.Post("/forgot-password", s.handleForgotPassword)
	s.router.Post("/reset-password/{id}/{token}", s.handleResetPassword)
	s.router.Post("/forgot-username", s.handleForgotUsername)

	s.router.Route("/movies", func(r chi.Router) {
		r.Get("/", s.handleListMovies)
		r.With(s.optionalAuth).Get("/{id}", s.handleMovieDetails)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth, s.requireAdmin)
			r.Post("/", s.handleCreateMovie)
			r.Put("/{id}", s.handleUpdateMovie)
			r.Delete("/{id}", s.handleDeleteMovie)
			r.Post("/{id}/genres", s.handleAddGenre)
		})
	})

	s.router.Route("/companies", func(r chi.Router) {
		r.With(s.optionalAuth).Get("/", s.handleListCompanies)
		r.Get("/{id}", s.handleGetCompany)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/{id}/follow", s.handleFollowCompany)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Post("/", s.handleCreateCompany)
				r.Put("/{id}", s.handleUpdateCompany)
				r.Delete("/{id}", s.handleDeleteCompany)
			})
		})
	})

	s.router.Route("/film-makers", func(r chi.Router) {
		r.Get("/{id}", s.handleGetFilmMaker)
		r.With(s.requireAuth, s.requireAdmin).Post("/", s.handleCreateFilmMaker)
	})

	s.router.Route("/reviews", func(r chi.Router) {
		r.Get("/", s.handleGetReview)
		r.Get("/movie/{id}", s.handleMovieReviews)
		r.Get("/user/{id}", s.handleUserReviews)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateReview)
			r.Put("/", s.handleUpdateReview)
			r.Delete("/{movieId}", s.handleDeleteReview)
			r.Post("/react", s.handleReactReview)
		})
	})

	s.router.Route("/ratings", func(r chi.Router) {
		r.Get("/movie/{id}", s.handleMovieRatings)
		r.Get("/user/{id}", s.handleUserRatings)
		r.With(s.requireAuth).Post("/", s.handleRateMovie)
	})

	s.router.Route("/watchlist", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleGetWatchlist)
		r.Post("/", s.handleAddToWatchlist)
		r.Delete("/{movieId}", s.handleRemoveFromWatchlist)
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
