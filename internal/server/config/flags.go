package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/promisekeeper/internal/flagx"
)

var serverFlags = []string{
	"-http", "-a", "-driver", "-d",
	"-gemini-model", "-gemini-base-url", "-collaborator-timeout", "-collaborator-rate",
	"-keep-participants", "-fingerprint",
	"-redis", "-cache-ttl",
	"-s3-bucket", "-s3-region", "-s3-endpoint",
	"-otlp", "-log-level",
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-http string                  HTTP bind address (e.g., ":8080")
//	-a string                     gRPC bind address (e.g., ":50051")
//	-driver string                database driver: sqlite or pgx
//	-d string                     database DSN
//	-gemini-model string          Gemini model name
//	-gemini-base-url string       Gemini API root
//	-collaborator-timeout dur     per-call collaborator timeout
//	-collaborator-rate float      collaborator calls per second (0 = unlimited)
//	-keep-participants            carry participants onto reframed promises
//	-fingerprint string           fingerprint digest: sha256 or blake2b
//	-redis string                 Redis address for the solution cache
//	-cache-ttl dur                solution cache TTL
//	-s3-bucket string             S3 bucket for the reframe archive
//	-s3-region string             S3 region
//	-s3-endpoint string           S3-compatible base endpoint
//	-otlp string                  OTLP/gRPC metrics endpoint
//	-log-level string             debug, info, warn or error
//
// The Gemini API key has no flag; set it in the file or GEMINI_API_KEY.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "http", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite|pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.GeminiModel, "gemini-model", config.GeminiModel, "Gemini model")
	fs.StringVar(&config.GeminiBaseURL, "gemini-base-url", config.GeminiBaseURL, "Gemini API base URL")
	fs.DurationVar(&config.CollaboratorTimeout, "collaborator-timeout", config.CollaboratorTimeout, "collaborator call timeout")
	fs.Float64Var(&config.CollaboratorRate, "collaborator-rate", config.CollaboratorRate, "collaborator calls per second")
	fs.BoolVar(&config.KeepParticipants, "keep-participants", config.KeepParticipants, "keep participants when reframing")
	fs.StringVar(&config.FingerprintAlgorithm, "fingerprint", config.FingerprintAlgorithm, "fingerprint algorithm")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "Redis address")
	fs.DurationVar(&config.SolutionCacheTTL, "cache-ttl", config.SolutionCacheTTL, "solution cache TTL")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.MetricsEndpoint, "otlp", config.MetricsEndpoint, "OTLP metrics endpoint")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
