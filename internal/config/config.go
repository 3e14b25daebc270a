// Package config loads the review-app-status settings.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. built-in defaults
//  2. an optional YAML file
//  3. an optional dotenv file, exported into the environment
//  4. environment variables (the INPUT_* variables GitHub Actions sets)
//
// Example YAML file:
//
//	checks: [build, response]
//	interval: 10s
//	accepted_responses: [200, 302]
//	deployments_timeout: 30s
//	publish_timeout: 2m
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/reillywatson/reviewappstatus/internal/poll"
)

const (
	defaultInterval           = 10 * time.Second
	defaultDeploymentsTimeout = 20 * time.Second
	defaultPublishTimeout     = 120 * time.Second
	defaultHostingDomain      = "herokuapp.com"
)

// Config holds every setting of a run. Field tags name the YAML key and the
// environment variable for each setting.
type Config struct {
	// Checks selects which verifications run: build, response or both.
	Checks Checks `yaml:"checks" envconfig:"INPUT_CHECKS"`

	// BuildTimeDelay is waited before the first deployments request.
	BuildTimeDelay Duration `yaml:"build_time_delay" envconfig:"INPUT_BUILD_TIME_DELAY"`

	// LoadTimeDelay is waited between a successful build and the first
	// request to the application.
	LoadTimeDelay Duration `yaml:"load_time_delay" envconfig:"INPUT_LOAD_TIME_DELAY"`

	// Interval is the wait between attempts, shared by all poll loops.
	Interval Duration `yaml:"interval" envconfig:"INPUT_INTERVAL"`

	// AcceptedResponses are the status codes that count as a live app.
	AcceptedResponses StatusCodes `yaml:"accepted_responses" envconfig:"INPUT_ACCEPTED_RESPONSES"`

	// DeploymentsTimeout bounds the search for the commit's deployment.
	DeploymentsTimeout Duration `yaml:"deployments_timeout" envconfig:"INPUT_DEPLOYMENTS_TIMEOUT"`

	// PublishTimeout bounds the wait for an accepted response from the app.
	PublishTimeout Duration `yaml:"publish_timeout" envconfig:"INPUT_PUBLISH_TIMEOUT"`

	// BuildTimeout bounds the wait for the first deployment status. Zero
	// waits indefinitely.
	BuildTimeout Duration `yaml:"build_timeout" envconfig:"INPUT_BUILD_TIMEOUT"`

	// RequestTimeout bounds a single request to the application.
	RequestTimeout Duration `yaml:"request_timeout" envconfig:"INPUT_REQUEST_TIMEOUT"`

	// HostingDomain is appended to the environment name to build the app URL.
	HostingDomain string `yaml:"hosting_domain" envconfig:"INPUT_HOSTING_DOMAIN"`

	LogLevel  string `yaml:"log_level" envconfig:"INPUT_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"INPUT_LOG_FORMAT"`

	// The following are provided by the Actions runner and are not read
	// from YAML.
	Token      string `yaml:"-" envconfig:"GITHUB_TOKEN"`
	EventPath  string `yaml:"-" envconfig:"GITHUB_EVENT_PATH"`
	OutputPath string `yaml:"-" envconfig:"GITHUB_OUTPUT"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Checks:             Checks{CheckBuild, CheckResponse},
		Interval:           Duration(defaultInterval),
		AcceptedResponses:  StatusCodes{200},
		DeploymentsTimeout: Duration(defaultDeploymentsTimeout),
		PublishTimeout:     Duration(defaultPublishTimeout),
		HostingDomain:      defaultHostingDomain,
		LogLevel:           "info",
		LogFormat:          "console",
	}
}

// Load builds a Config from the defaults, the YAML file at configPath and
// the environment. Either path may be empty. The result is not validated;
// call [Config.Validate].
func Load(configPath, envFile string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if envFile != "" {
		// existing environment variables win over the file
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	fileCfg := cfg
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.keepEmptyStrings(fileCfg)

	return &cfg, nil
}

// keepEmptyStrings restores the string settings that an empty environment
// variable overwrote, so unset inputs keep the file or default value.
func (c *Config) keepEmptyStrings(prev Config) {
	if strings.TrimSpace(c.HostingDomain) == "" {
		c.HostingDomain = prev.HostingDomain
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = prev.LogLevel
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = prev.LogFormat
	}
}

// DeploymentsBudget is the budget of the deployment search.
func (c *Config) DeploymentsBudget() poll.Budget {
	return poll.Budget{Timeout: c.DeploymentsTimeout.Duration(), Interval: c.Interval.Duration()}
}

// PublishBudget is the budget of the application health check.
func (c *Config) PublishBudget() poll.Budget {
	return poll.Budget{Timeout: c.PublishTimeout.Duration(), Interval: c.Interval.Duration()}
}

// Accepted returns the accepted response codes as a set.
func (c *Config) Accepted() poll.ResponseCodes {
	return poll.NewResponseCodes(c.AcceptedResponses...)
}

// Validate checks the settings needed by the poll loops. Budget problems are
// returned as *poll.ConfigError so they classify the same way as when a
// poller rejects them.
func (c *Config) Validate() error {
	if len(c.Checks) == 0 {
		return errors.New("checks: at least one of build, response is required")
	}
	for _, check := range c.Checks {
		if check != CheckBuild && check != CheckResponse {
			return fmt.Errorf("checks: unknown check %q", check)
		}
	}

	if err := c.DeploymentsBudget().Validate(); err != nil {
		return fmt.Errorf("deployments_timeout: %w", err)
	}

	for name, d := range map[string]Duration{
		"build_time_delay": c.BuildTimeDelay,
		"load_time_delay":  c.LoadTimeDelay,
		"build_timeout":    c.BuildTimeout,
		"request_timeout":  c.RequestTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d.Duration())
		}
	}

	if c.Checks.Has(CheckResponse) {
		if strings.TrimSpace(c.HostingDomain) == "" {
			return errors.New("hosting_domain is required for the response check")
		}
		if err := c.PublishBudget().Validate(); err != nil {
			return fmt.Errorf("publish_timeout: %w", err)
		}
		if len(c.AcceptedResponses) == 0 {
			return errors.New("accepted_responses: at least one status code is required")
		}
		for _, code := range c.AcceptedResponses {
			if code < 100 || code > 599 {
				return fmt.Errorf("accepted_responses: %d is not an HTTP status code", code)
			}
		}
	}

	return nil
}

// ValidateRuntime additionally checks the values the Actions runner provides.
func (c *Config) ValidateRuntime() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Token == "" {
		return errors.New("GITHUB_TOKEN environment variable not set")
	}
	if c.EventPath == "" {
		return errors.New("GITHUB_EVENT_PATH environment variable not set")
	}
	return nil
}
