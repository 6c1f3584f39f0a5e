package config

import "time"

// Config holds runtime settings for the PromiseKeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the server gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server health.
//   - RequestTimeout: upper bound for one call; collaborator-backed calls
//     (format, reframe) can take several seconds.
//   - LocalDir: directory holding the local snapshot database used by
//     "list" while the server is unreachable. Empty disables snapshots.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LocalDir            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 60 * time.Second
	c.LocalDir = ".promisekeeper"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
