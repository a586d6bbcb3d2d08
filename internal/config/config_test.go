package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[availability_api]
url = "http://availability:8080"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, AvailabilityModeRemote, cfg.AvailabilityAPI.Mode)
	assert.Equal(t, 5*time.Second, cfg.AvailabilityAPI.TimeoutDuration())
	assert.Equal(t, domain.RoleAdmin, cfg.AvailabilityAPI.ServiceRole)
	assert.Equal(t, 30*time.Minute, cfg.Session.SelectionTTLDuration())
	assert.Equal(t, 30*time.Second, cfg.Submission.TimeoutDuration())
	assert.Equal(t, string(domain.RateMatchAny), cfg.Grid.RateMatchPolicy)
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse(`
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "court"
password = "secret"
dbname = "courts"

[availability_api]
mode = "local"

[redis]
enabled = true
addr = "redis:6379"

[session]
lock_ttl = 120

[submission]
timeout = 90

[grid]
rate_match_policy = "active_only"
`)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, AvailabilityModeLocal, cfg.AvailabilityAPI.Mode)
	assert.Equal(t, "host=db port=5433 user=court password=secret dbname=courts sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Session.LockTTLDuration())
	assert.Equal(t, string(domain.RateMatchActiveOnly), cfg.Grid.RateMatchPolicy)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "broken toml", data: `[server`},
		{name: "remote without url", data: `[availability_api]
mode = "remote"`},
		{name: "local without database", data: `[availability_api]
mode = "local"`},
		{name: "unknown mode", data: `[availability_api]
mode = "grpc"
url = "http://x"`},
		{name: "cache without redis", data: `[availability_api]
url = "http://x"
cache_ttl = 10`},
		{name: "lock shorter than submission", data: `[availability_api]
url = "http://x"
[session]
lock_ttl = 10
[submission]
timeout = 20`},
		{name: "unknown rate policy", data: `[availability_api]
url = "http://x"
[grid]
rate_match_policy = "first"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("COURT_API_URL", "http://from-env:8080")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[availability_api]
url = "${COURT_API_URL}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8080", cfg.AvailabilityAPI.URL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
