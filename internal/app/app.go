package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/grcflow/notifcomposer/config"
	"github.com/grcflow/notifcomposer/internal/database"
	"github.com/grcflow/notifcomposer/internal/domain"
	httpHandler "github.com/grcflow/notifcomposer/internal/http"
	"github.com/grcflow/notifcomposer/internal/http/middleware"
	"github.com/grcflow/notifcomposer/internal/repository"
	"github.com/grcflow/notifcomposer/internal/service"
	"github.com/grcflow/notifcomposer/pkg/cache"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/ratelimiter"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetRenderer() *render.Renderer
	GetNotificationRuleRepository() domain.NotificationRuleRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

type shutdownCtxKey struct{}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	// Repositories
	ruleRepo domain.NotificationRuleRepository

	// Services
	renderer       *render.Renderer
	ruleService    *service.NotificationRuleService
	previewService *service.PreviewService

	compileCache   *cache.Cache[*render.CompileEmailResult]
	compileLimiter *ratelimiter.Limiter

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64          // atomic counter for active HTTP requests
	requestWg       sync.WaitGroup // wait group for active requests
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and metrics exporters
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB connects to the rules database and creates its schema.
// A database injected with WithMockDB is kept as is.
func (a *App) InitDB() error {
	if a.db != nil {
		a.logger.Info("Using preconfigured database connection")
		return nil
	}

	dbCfg := &a.config.Database
	maskedPassword := ""
	if len(dbCfg.Password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", dbCfg.Password[0], dbCfg.Password[len(dbCfg.Password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.SSLMode, maskedPassword, dbCfg.DBName))

	if err := database.EnsureSystemDatabaseExists(database.GetPostgresDSN(dbCfg), dbCfg.DBName); err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	driverName, err := database.DriverName(a.config.Tracing.Enabled)
	if err != nil {
		return err
	}
	if a.config.Tracing.Enabled {
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := database.Connect(dbCfg, driverName, a.config.Environment)
	if err != nil {
		return err
	}

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.db = db
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}
	a.ruleRepo = repository.NewNotificationRuleRepository(a.db)
	return nil
}

// previewOptions maps the preview configuration onto renderer options
func (a *App) previewOptions() render.Options {
	p := a.config.Preview
	return render.Options{
		BrandName:     p.BrandName,
		LogoText:      p.LogoText,
		FooterText:    p.FooterText,
		TruncateAt:    p.TruncateAt,
		LiquidMaxSize: p.LiquidMaxSize,
	}
}

// InitServices initializes the renderer and the application services
func (a *App) InitServices() error {
	if a.ruleRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	a.renderer = render.NewRenderer(a.previewOptions(), a.logger)
	a.ruleService = service.NewNotificationRuleService(a.ruleRepo, a.logger)
	a.previewService = service.NewPreviewService(
		a.ruleRepo,
		service.NewStaticPreviewData(),
		a.renderer,
		a.config.Preview.CompileEnabled,
		a.logger,
	)

	if ttl := a.config.Preview.CompileCacheTTL; a.config.Preview.CompileEnabled && ttl > 0 {
		a.compileCache = cache.New[*render.CompileEmailResult](ttl, a.config.Preview.CompileCacheSize, time.Minute)
		a.previewService.SetCompileCache(a.compileCache)
	}

	a.logger.WithFields(map[string]interface{}{
		"compile_enabled": a.config.Preview.CompileEnabled,
		"compile_cache":   a.compileCache != nil,
		"truncate_at":     a.renderer.Options().TruncateAt,
	}).Info("Preview renderer ready")
	return nil
}

// InitHandlers registers every HTTP route on a fresh mux
func (a *App) InitHandlers() error {
	if a.ruleService == nil || a.previewService == nil {
		return fmt.Errorf("services must be initialized before handlers")
	}

	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	httpHandler.NewNotificationRuleHandler(a.ruleService, a.logger).RegisterRoutes(a.mux)
	var previewOpts []httpHandler.PreviewHandlerOption
	if n := a.config.Server.CompileRateLimit; n > 0 {
		if a.compileLimiter != nil {
			a.compileLimiter.Stop()
		}
		a.compileLimiter = ratelimiter.New(n, time.Minute)
		previewOpts = append(previewOpts, httpHandler.WithCompileRateLimit(a.compileLimiter))
	}
	httpHandler.NewPreviewHandler(a.previewService, a.logger, previewOpts...).RegisterRoutes(a.mux)
	httpHandler.NewHealthHandler(a.db, a.config.Version).RegisterRoutes(a.mux)

	return nil
}

// Start starts the HTTP server
func (a *App) Start() error {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	handler = middleware.CORSMiddleware(a.config.Server.CORSAllowOrigin)(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	// Signal that the server has been created and is about to start
	close(serverStarted)

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	serverShutdownDone := make(chan error, 1)
	go func() {
		a.logger.WithField("timeout", shutdownTimeout).Info("Starting HTTP server shutdown")
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	var shutdownErr error
	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	if shutdownErr == nil {
		select {
		case <-requestsDone:
		case <-time.After(2 * time.Second):
			if activeCount := a.getActiveRequestCount(); activeCount > 0 {
				a.logger.WithField("active_requests", activeCount).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	if cleanupErr := a.cleanupResources(); cleanupErr != nil {
		a.logger.WithField("error", cleanupErr).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = cleanupErr
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.compileLimiter != nil {
		a.compileLimiter.Stop()
	}
	if a.compileCache != nil {
		a.compileCache.Stop()
	}

	if a.db == nil {
		return nil
	}

	if a.config.Tracing.Enabled {
		if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
			a.logger.WithField("error", err).Error("Failed to record final database stats for tracing")
		}
	}

	a.logger.Info("Closing database connection")
	if err := a.db.Close(); err != nil {
		a.logger.WithField("error", err).Error("Error closing database connection")
		return err
	}
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created.
// Returns false if ctx expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting notification composer")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetRenderer() *render.Renderer {
	return a.renderer
}

func (a *App) GetNotificationRuleRepository() domain.NotificationRuleRepository {
	return a.ruleRepo
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the context cancelled when shutdown starts
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks in-flight requests and refuses new ones once shutdown starts
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		r = r.WithContext(context.WithValue(r.Context(), shutdownCtxKey{}, a.shutdownCtx))
		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
