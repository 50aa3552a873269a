package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/assistant"
	"github.com/trezcool/fluidlab/core/catalog"
	"github.com/trezcool/fluidlab/core/certificate"
	"github.com/trezcool/fluidlab/core/dashboard"
	"github.com/trezcool/fluidlab/core/flow"
	"github.com/trezcool/fluidlab/core/lab"
	"github.com/trezcool/fluidlab/core/quiz"
	"github.com/trezcool/fluidlab/services/metrics"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Metrics    *metricsvc.PrometheusMetrics // optional
		Validate   *validator.Validate
		Translator ut.Translator

		Catalog        *catalog.Catalog
		LabSvc         *lab.Service
		FlowSvc        *flow.Service
		QuizSvc        *quiz.Service
		AssistantSvc   *assistant.Service
		CertificateSvc *certificate.Service
		DashboardSvc   *dashboard.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.deps.Metrics != nil {
		s.app.Use(metricsMiddleware(s.deps.Metrics))
		s.app.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerCatalogAPI(v1, s.deps.Catalog)
	registerLabAPI(v1, s.deps.LabSvc, s.deps.Validate)
	registerFlowAPI(v1, s.deps.FlowSvc, s.deps.Validate)
	registerQuizAPI(v1, s.deps.QuizSvc, s.deps.Validate)
	registerAssistantAPI(v1, s.deps.AssistantSvc, s.deps.Validate)
	registerCertificateAPI(v1, s.deps.CertificateSvc, s.deps.Validate)
	registerDashboardAPI(v1, s.deps.DashboardSvc)
}

// Start blocks until the server stops. A graceful close returns nil.
func (s *Server) Start() error {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the process to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	signal.Stop(s.shutdown)
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
