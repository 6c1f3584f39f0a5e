package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/promisekeeper/internal/flagx"
	"github.com/dmitrijs2005/promisekeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Durations use timex.Duration so
// both "30s" and integer nanoseconds are accepted. Zero values leave the
// current setting untouched; the two booleans are pointers for that reason.
type FileConfig struct {
	EndpointAddrHTTP     string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC     string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDriver       string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN          string         `json:"database_dsn" yaml:"database_dsn"`
	GeminiAPIKey         string         `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel          string         `json:"gemini_model" yaml:"gemini_model"`
	GeminiBaseURL        string         `json:"gemini_base_url" yaml:"gemini_base_url"`
	CollaboratorTimeout  timex.Duration `json:"collaborator_timeout" yaml:"collaborator_timeout"`
	CollaboratorRate     float64        `json:"collaborator_rate" yaml:"collaborator_rate"`
	CollaboratorBurst    int            `json:"collaborator_burst" yaml:"collaborator_burst"`
	KeepParticipants     *bool          `json:"keep_participants" yaml:"keep_participants"`
	FingerprintAlgorithm string         `json:"fingerprint_algorithm" yaml:"fingerprint_algorithm"`
	RedisAddr            string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword        string         `json:"redis_password" yaml:"redis_password"`
	RedisDB              int            `json:"redis_db" yaml:"redis_db"`
	SolutionCacheTTL     timex.Duration `json:"solution_cache_ttl" yaml:"solution_cache_ttl"`
	S3Bucket             string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region             string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey          string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Prefix             string         `json:"s3_prefix" yaml:"s3_prefix"`
	MetricsEndpoint      string         `json:"metrics_endpoint" yaml:"metrics_endpoint"`
	MetricsInsecure      *bool          `json:"metrics_insecure" yaml:"metrics_insecure"`
	MetricsInterval      timex.Duration `json:"metrics_interval" yaml:"metrics_interval"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. Without the flag
// nothing is loaded. Unreadable or malformed files cause a panic.
func parseFile(config *Config) {
	path := flagx.ProcessConfigFile()

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.GeminiBaseURL, c.GeminiBaseURL)
	if c.CollaboratorTimeout.Duration > 0 {
		config.CollaboratorTimeout = c.CollaboratorTimeout.Duration
	}
	if c.CollaboratorRate > 0 {
		config.CollaboratorRate = c.CollaboratorRate
	}
	if c.CollaboratorBurst > 0 {
		config.CollaboratorBurst = c.CollaboratorBurst
	}
	if c.KeepParticipants != nil {
		config.KeepParticipants = *c.KeepParticipants
	}
	setString(&config.FingerprintAlgorithm, c.FingerprintAlgorithm)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB > 0 {
		config.RedisDB = c.RedisDB
	}
	if c.SolutionCacheTTL.Duration > 0 {
		config.SolutionCacheTTL = c.SolutionCacheTTL.Duration
	}
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.MetricsEndpoint, c.MetricsEndpoint)
	if c.MetricsInsecure != nil {
		config.MetricsInsecure = *c.MetricsInsecure
	}
	if c.MetricsInterval.Duration > 0 {
		config.MetricsInterval = c.MetricsInterval.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
}
