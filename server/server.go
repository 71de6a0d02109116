package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/cookieconsent/pkg/config"
	"github.com/umputun/cookieconsent/pkg/consent"
	"github.com/umputun/cookieconsent/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/controller.go -pkg mocks -skip-ensure -fmt goimports . Controller
//go:generate moq -out mocks/records.go -pkg mocks -skip-ensure -fmt goimports . RecordReader

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance, the presentation side of the consent prompt.
// It renders controller state and forwards visitor intents to the controller.
type Server struct {
	config     ConfigProvider
	controller Controller
	records    RecordReader
	version    string
	debug      bool

	consentLock sync.Mutex // controller is single-threaded, requests are not

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	templates  *template.Template
	sanitizer  *bluemonday.Policy
}

// Controller is the consent state machine driven by the server
type Controller interface {
	State() consent.State
	Dispatch(ctx context.Context, intent consent.Intent) error
}

// RecordReader gives read-only access to the persisted decision
type RecordReader interface {
	Load(ctx context.Context) (domain.ConsentRecord, bool)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBannerConfig() config.BannerConfig
}

// New initializes a new server instance
func New(cfg ConfigProvider, controller Controller, records RecordReader, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		controller: controller,
		records:    records,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
		templates:  template.Must(template.ParseFS(templatesFS, "templates/*.html")),
		sanitizer:  bluemonday.UGCPolicy(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
		return nil
	})

	return g.Wait()
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("cookieconsent", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB, intents carry no payload
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /consent", s.consentStateHandler)
		r.HandleFunc("GET /consent/record", s.consentRecordHandler)
		r.HandleFunc("POST /consent/{intent}", s.consentDispatchHandler)
	})

	// HTMX banner routes
	s.router.HandleFunc("GET /{$}", s.indexHandler)
	s.router.HandleFunc("GET /banner", s.bannerHandler)
	s.router.HandleFunc("POST /banner/{intent}", s.bannerIntentHandler)
}

// state returns the controller state under the consent lock
func (s *Server) state() consent.State {
	s.consentLock.Lock()
	defer s.consentLock.Unlock()
	return s.controller.State()
}

// dispatch forwards the intent to the controller and returns the resulting state
func (s *Server) dispatch(ctx context.Context, intent consent.Intent) (consent.State, error) {
	s.consentLock.Lock()
	defer s.consentLock.Unlock()
	err := s.controller.Dispatch(ctx, intent)
	return s.controller.State(), err
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
