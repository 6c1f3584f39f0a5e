// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, environment variables
// and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
)

// Config holds runtime settings for the PromiseKeeper server.
//
// Optional integrations are switched off by leaving their address empty:
// RedisAddr for the solution cache, S3Bucket for the reframe archive and
// MetricsEndpoint for OTLP metrics export.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string

	DatabaseDriver string // sqlite or pgx
	DatabaseDSN    string

	GeminiAPIKey        string
	GeminiModel         string // empty: picked from the model list
	GeminiBaseURL       string
	CollaboratorTimeout time.Duration
	CollaboratorRate    float64 // calls per second, 0 = unlimited
	CollaboratorBurst   int

	// KeepParticipants carries participants onto a reframed promise.
	KeepParticipants     bool
	FingerprintAlgorithm string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SolutionCacheTTL time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string

	MetricsEndpoint string
	MetricsInsecure bool
	MetricsInterval time.Duration

	LogLevel string
}

// LoadDefaults populates Config with development defaults: a local SQLite
// file and every optional integration disabled.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "promisekeeper.db"
	c.GeminiBaseURL = collaborator.DefaultGeminiBaseURL
	c.CollaboratorTimeout = 30 * time.Second
	c.CollaboratorRate = 0
	c.CollaboratorBurst = 1
	c.KeepParticipants = false
	c.FingerprintAlgorithm = common.DefaultFingerprintAlgorithm
	c.SolutionCacheTTL = 24 * time.Hour
	c.S3Region = "us-east-1"
	c.S3Prefix = "promisekeeper/"
	c.MetricsInsecure = true
	c.MetricsInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
