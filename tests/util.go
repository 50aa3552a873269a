package testutil

import (
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

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
	"github.com/trezcool/fluidlab/storage/database/inmem"
)

// Services is a fully wired set of domain services backed by a fresh in-memory DB.
type Services struct {
	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	DB         *inmemdb.DB

	Catalog     *catalog.Catalog
	Lab         *lab.Service
	Flow        *flow.Service
	Quiz        *quiz.Service
	Assistant   *assistant.Service
	Certificate *certificate.Service
	Dashboard   *dashboard.Service
}

// NewConfig returns a test configuration with fast lab stations and no assistant delay.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:         "Fluid Lab",
		Env:             "TEST",
		TestMode:        true,
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Lab: core.LabConfig{
			OvenDuration:    5 * time.Millisecond,
			ScaleDuration:   5 * time.Millisecond,
			TapDuration:     5 * time.Millisecond,
			CoolingDuration: 5 * time.Millisecond,
			OvenTemperature: 105,
			OvenHours:       2,
		},
		Assistant: core.AssistantConfig{
			DebounceWindow:  20 * time.Millisecond,
			BreakerFailures: 5,
			BreakerTimeout:  time.Second,
		},
		Flow: core.FlowConfig{Tolerance: flow.DefaultTolerance},
	}
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewServices wires every domain service. Emails go to the console mock; see emailsvc.SentMessages.
func NewServices(t *testing.T, conf *core.Config) *Services {
	t.Helper()

	logger := logsvc.NopLogger{}
	validate, translator := NewValidator()
	db := inmemdb.Open()

	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New() failed: %v", err)
	}
	banks, err := quiz.LoadBanks()
	if err != nil {
		t.Fatalf("quiz.LoadBanks() failed: %v", err)
	}
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	svcs := &Services{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		DB:         db,
		Catalog:    cat,
	}
	svcs.Lab = lab.NewService(inmemdb.NewLabRunRepository(db), conf.Lab, nil, logger)
	svcs.Flow = flow.NewService(inmemdb.NewWorkbenchRepository(db), conf.Flow, nil)
	svcs.Quiz = quiz.NewService(banks, inmemdb.NewQuizRepository(db), nil)
	svcs.Assistant = assistant.NewService(
		assistant.MockProvider{Delay: conf.Assistant.Delay},
		inmemdb.NewPanelRepository(db),
		conf.Assistant,
		nil,
		logger,
	)
	svcs.Certificate = certificate.NewService(inmemdb.NewCertificateRepository(db), cat, svcs.Quiz, mailSvc, nil)
	svcs.Dashboard = dashboard.NewService(cat, svcs.Quiz, svcs.Lab, svcs.Flow, svcs.Certificate)

	t.Cleanup(func() {
		_ = svcs.Lab.Shutdown()
		_ = svcs.Assistant.Shutdown()
	})
	return svcs
}

// CompleteQuiz runs a whole attempt, answering correctly the first `correct` questions.
func CompleteQuiz(t *testing.T, svc *quiz.Service, banks *quiz.Banks, experimentID string, correct int) quiz.Result {
	t.Helper()

	bank, err := banks.Get(experimentID)
	if err != nil {
		t.Fatalf("CompleteQuiz() failed: %v", err)
	}
	view, err := svc.Start(experimentID)
	if err != nil {
		t.Fatalf("CompleteQuiz() failed: %v", err)
	}
	for i, q := range bank.Questions {
		opt := q.CorrectAnswer
		if i >= correct {
			opt = (q.CorrectAnswer + 1) % len(q.Options)
		}
		if _, err = svc.Answer(view.ID, opt); err != nil {
			t.Fatalf("CompleteQuiz() failed: %v", err)
		}
		if view, err = svc.Next(view.ID); err != nil {
			t.Fatalf("CompleteQuiz() failed: %v", err)
		}
	}
	res, err := svc.GetResult(view.ID)
	if err != nil {
		t.Fatalf("CompleteQuiz() failed: %v", err)
	}
	return res
}
