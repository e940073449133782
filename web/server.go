package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/masarusaitou/fudousan/config"
	"github.com/masarusaitou/fudousan/services"
	"github.com/masarusaitou/fudousan/utils"
)

// Server serves the listing browser UI over one loaded catalog.
type Server struct {
	cfg       *config.Config
	logger    *utils.Logger
	catalog   *services.Catalog
	engine    *services.FilterEngine
	presenter *services.Presenter
	sessions  *SessionStore
	tmpl      *template.Template
}

// NewServer wires the filter engine, presenter and session store over
// the canonical catalog.
func NewServer(cfg *config.Config, logger *utils.Logger, catalog *services.Catalog) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		catalog:   catalog,
		engine:    services.NewFilterEngine(logger),
		presenter: services.NewPresenter(cfg.FallbackLat, cfg.FallbackLon, cfg.MapZoom),
		sessions:  NewSessionStore(catalog),
		tmpl:      template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.withLogging(s.handleIndex))
	mux.HandleFunc("POST /search", s.withLogging(s.handleSearch))
	mux.HandleFunc("POST /criteria", s.withLogging(s.handleCriteria))
	mux.HandleFunc("POST /display", s.withLogging(s.handleDisplay))
	mux.HandleFunc("GET /export.csv", s.withLogging(s.handleExport))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Debug("[web] %s %s (%dms)", r.Method, r.URL.Path,
			time.Since(start).Milliseconds())
	}
}
