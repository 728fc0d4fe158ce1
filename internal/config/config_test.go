package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RenderTimeout)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "orders_dataset.csv", cfg.Data.OrdersFile)
	assert.Equal(t, "top_sales_customer_locations.html", cfg.Data.MapFile)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "localhost:8084", cfg.Address())
}

func TestLoad_Environment(t *testing.T) {
	chdir(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATA_DIR", "/srv/olist")
	t.Setenv("MAP_FILE", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/srv/olist", cfg.Data.Dir)
	assert.Equal(t, "", cfg.Data.MapFile, "an explicitly empty MAP_FILE disables the map")
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9100\nRFM_FILE=custom_rfm.csv\n"), 0o644))
	t.Setenv("SERVER_PORT", "9200")

	// godotenv sets variables for the process; clear the one the test adds.
	t.Cleanup(func() { os.Unsetenv("RFM_FILE") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port, "real environment wins over .env")
	assert.Equal(t, "custom_rfm.csv", cfg.Data.RFMFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"empty orders file", "ORDERS_FILE", ""},
		{"zero rps", "SECURITY_RATE_LIMIT_RPS", "0"},
		{"negative burst", "SECURITY_RATE_LIMIT_BURST", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestDataConfig_Path(t *testing.T) {
	d := DataConfig{Dir: "data"}

	assert.Equal(t, filepath.Join("data", "orders.csv"), d.Path("orders.csv"))
	assert.Equal(t, "/abs/orders.csv", d.Path("/abs/orders.csv"))
	assert.Equal(t, "", d.Path(""))
}
