package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/fluidlab/apps/api/echo"
	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/assistant"
	"github.com/trezcool/fluidlab/core/catalog"
	"github.com/trezcool/fluidlab/core/certificate"
	"github.com/trezcool/fluidlab/core/dashboard"
	"github.com/trezcool/fluidlab/core/flow"
	"github.com/trezcool/fluidlab/core/lab"
	"github.com/trezcool/fluidlab/core/quiz"
	"github.com/trezcool/fluidlab/services/email"
	"github.com/trezcool/fluidlab/services/logger"
	"github.com/trezcool/fluidlab/services/metrics"
	"github.com/trezcool/fluidlab/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zapLogger, err := logsvc.NewZapLogger(conf)
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zapLogger.Named("api"), conf)
	defer logger.Sync()

	metrics := metricsvc.NewPrometheusMetrics("fluidlab")

	// set up storage
	db := inmemdb.Open()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	cat, err := catalog.New()
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading experiments: %v", err), err)
	}
	banks, err := quiz.LoadBanks()
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading quizzes: %v", err), err)
	}

	labSvc := lab.NewService(inmemdb.NewLabRunRepository(db), conf.Lab, metrics, logger)
	flowSvc := flow.NewService(inmemdb.NewWorkbenchRepository(db), conf.Flow, metrics)
	quizSvc := quiz.NewService(banks, inmemdb.NewQuizRepository(db), metrics)
	assistantSvc := assistant.NewService(
		assistant.MockProvider{Delay: conf.Assistant.Delay},
		inmemdb.NewPanelRepository(db),
		conf.Assistant,
		metrics,
		logger,
	)
	certSvc := certificate.NewService(inmemdb.NewCertificateRepository(db), cat, quizSvc, mailSvc, metrics)
	dashSvc := dashboard.NewService(cat, quizSvc, labSvc, flowSvc, certSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	if err = core.ParseEmailTemplates(conf.FrontendBaseURL); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	debugServer := &http.Server{Addr: conf.Server.DebugHost, Handler: http.DefaultServeMux}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			Metrics:        metrics,
			Validate:       validate,
			Translator:     translator,
			Catalog:        cat,
			LabSvc:         labSvc,
			FlowSvc:        flowSvc,
			QuizSvc:        quizSvc,
			AssistantSvc:   assistantSvc,
			CertificateSvc: certSvc,
			DashboardSvc:   dashSvc,
		},
	)

	// the group context is cancelled as soon as either server fails
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "debug server")
		}
		return nil
	})
	g.Go(func() error {
		return errors.Wrap(server.Start(), "api server")
	})

	// =========================================================================
	// Shutdown

	select {
	case <-gctx.Done():
		logger.Error("server failed: Start shutdown...")

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
	}

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	// asking listener to shutdown and shed load
	if err = server.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

		if err = server.Close(); err != nil {
			logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
		}
	}
	if err = debugServer.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop debug server: %v", err), err)
	}

	// stop timers still running in the background
	if err = labSvc.Shutdown(); err != nil {
		logger.Error(fmt.Sprintf("stopping lab runs: %v", err), err)
	}
	if err = assistantSvc.Shutdown(); err != nil {
		logger.Error(fmt.Sprintf("closing assistant panels: %v", err), err)
	}
	_ = db.Close()

	if err = g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err), err)
	}
}
