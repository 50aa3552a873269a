package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	// LabConfig holds the simulated waits of the lab stations and the drying oven set points.
	LabConfig struct {
		OvenDuration    time.Duration
		ScaleDuration   time.Duration
		TapDuration     time.Duration
		CoolingDuration time.Duration
		OvenTemperature float64 // °C
		OvenHours       float64
	}

	AssistantConfig struct {
		Delay           time.Duration
		DebounceWindow  time.Duration
		BreakerFailures uint32
		BreakerTimeout  time.Duration
	}

	FlowConfig struct {
		Tolerance float64 // relative
	}

	Config struct {
		AppName         string
		Env             string
		Build           string
		Debug           bool
		TestMode        bool
		RollbarToken    string
		SendgridApiKey  string
		FrontendBaseURL string
		Server          ServerConfig
		Lab             LabConfig
		Assistant       AssistantConfig
		Flow            FlowConfig

		defaultFromEmail string
	}
)

// NewConfig reads the configuration from the environment (prefixed by ENV) and an optional
// `config/.env.<env>` file. CONFIG_DIR overrides the directory the file is looked up in.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Fluid Lab")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "Fluid Lab <noreply@localhost>")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("lab.ovenDuration", 5*time.Second)
	v.SetDefault("lab.scaleDuration", 2*time.Second)
	v.SetDefault("lab.tapDuration", 3*time.Second)
	v.SetDefault("lab.coolingDuration", 4*time.Second)
	v.SetDefault("lab.ovenTemperature", 105.0)
	v.SetDefault("lab.ovenHours", 2.0)
	v.SetDefault("assistant.delay", time.Second)
	v.SetDefault("assistant.debounceWindow", 150*time.Millisecond)
	v.SetDefault("assistant.breakerFailures", 5)
	v.SetDefault("assistant.breakerTimeout", 30*time.Second)
	v.SetDefault("flow.tolerance", 0.05)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	loadDotEnv(env)
	v.AutomaticEnv()

	return &Config{
		AppName:         v.GetString("appName"),
		Env:             env,
		Build:           v.GetString("build"),
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		RollbarToken:    v.GetString("rollbarToken"),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		FrontendBaseURL: strings.TrimRight(v.GetString("frontendBaseURL"), "/"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Lab: LabConfig{
			OvenDuration:    v.GetDuration("lab.ovenDuration"),
			ScaleDuration:   v.GetDuration("lab.scaleDuration"),
			TapDuration:     v.GetDuration("lab.tapDuration"),
			CoolingDuration: v.GetDuration("lab.coolingDuration"),
			OvenTemperature: v.GetFloat64("lab.ovenTemperature"),
			OvenHours:       v.GetFloat64("lab.ovenHours"),
		},
		Assistant: AssistantConfig{
			Delay:           v.GetDuration("assistant.delay"),
			DebounceWindow:  v.GetDuration("assistant.debounceWindow"),
			BreakerFailures: v.GetUint32("assistant.breakerFailures"),
			BreakerTimeout:  v.GetDuration("assistant.breakerTimeout"),
		},
		Flow: FlowConfig{
			Tolerance: v.GetFloat64("flow.tolerance"),
		},
		defaultFromEmail: v.GetString("defaultFromEmail"),
	}
}

// DefaultFromEmail parses the configured sender address.
// An unparsable value falls back to a bare address.
func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	return *addr
}

// load .env if it exists (ignore if it does not)
func loadDotEnv(env string) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
}
