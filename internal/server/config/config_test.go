package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, "promisekeeper.db", c.DatabaseDSN)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", c.GeminiBaseURL)
	assert.Equal(t, 30*time.Second, c.CollaboratorTimeout)
	assert.Equal(t, 1, c.CollaboratorBurst)
	assert.False(t, c.KeepParticipants)
	assert.Equal(t, "sha256", c.FingerprintAlgorithm)
	assert.Equal(t, 24*time.Hour, c.SolutionCacheTTL)
	assert.Empty(t, c.RedisAddr)
	assert.Empty(t, c.S3Bucket)
	assert.Empty(t, c.MetricsEndpoint)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	origEnv := lookupEnv
	t.Cleanup(func() {
		os.Args = origArgs
		lookupEnv = origEnv
	})
	os.Args = []string{"testbin"}
	lookupEnv = func(string) (string, bool) { return "", false }

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	origEnv := lookupEnv
	t.Cleanup(func() {
		os.Args = origArgs
		lookupEnv = origEnv
	})

	path := writeTempFile(t, "cfg.yaml", "gemini_model: from-file\ndatabase_dsn: file.db\nendpoint_addr_http: \":9000\"\n")
	os.Args = []string{"testbin", "-c", path, "-d", "flag.db"}
	lookupEnv = func(k string) (string, bool) {
		if k == EnvGeminiModel {
			return "from-env", true
		}
		return "", false
	}

	c := LoadConfig()

	assert.Equal(t, ":9000", c.EndpointAddrHTTP, "file overrides default")
	assert.Equal(t, "from-env", c.GeminiModel, "env overrides file")
	assert.Equal(t, "flag.db", c.DatabaseDSN, "flag overrides file")
}
