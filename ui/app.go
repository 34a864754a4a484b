package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trendlab/adapters/ingest"
	"trendlab/internal"
	"trendlab/internal/config"
)

//go:embed templates/* static/* docs/*
var embeddedFiles embed.FS

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	sessions  *SessionStore
	reader    *ingest.Reader
	templates *template.Template
	config    *config.Config
	log       *internal.Logger
}

// NewApp creates the dashboard with its routes and parsed templates
func NewApp(cfg *config.Config) (*App, error) {
	funcMap := template.FuncMap{
		"printfFloat": func(v float64) string { return fmt.Sprintf("%.6f", v) },
		"printfShort": func(v float64) string { return fmt.Sprintf("%.4f", v) },
		"add":         func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		sessions:  NewSessionStore(cfg.Session),
		reader:    ingest.NewReader(),
		templates: templates,
		config:    cfg,
		log:       internal.NewDefaultLogger(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes. The dashboard is a
// single page whose content follows the session's page state; analysis
// actions are plain form posts that re-render it.
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/navigate", a.handleNavigate)
	a.router.Post("/upload", a.handleUpload)

	a.router.Post("/timeseries/analyze", a.handleTimeSeriesAnalyze)
	a.router.Post("/hypothesis/ttest", a.handleTTest)
	a.router.Post("/hypothesis/chisquare", a.handleChiSquare)

	a.router.Get("/methods", a.handleMethods)
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.log.Info("TrendLab dashboard listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the mux for tests
func (a *App) Router() http.Handler {
	return a.router
}

// renderTemplate executes a named page template
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.log.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
