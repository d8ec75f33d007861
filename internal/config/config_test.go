package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestParse_DefaultsForMissingValues(t *testing.T) {
	cfg, err := Parse(`
[storage]
driver = "memory"
seed_slots = 50
`)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 50, cfg.Storage.SeedSlots)
	assert.Equal(t, 5*time.Second, cfg.Storage.OperationTimeout())
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, string(domain.StatusNoShow), cfg.Sweep.UnattendedStatus)
	assert.Equal(t, domain.DefaultBookingPolicy(), cfg.Booking.Policy())
}

func TestParse_OverridesPolicy(t *testing.T) {
	cfg, err := Parse(`
[booking]
max_duration_hours = 4
cancel_cutoff_minutes = 30

[sweep]
enabled = false
unattended_status = "expired"
`)
	require.NoError(t, err)

	policy := cfg.Booking.Policy()
	assert.Equal(t, 4*time.Hour, policy.MaxDuration)
	assert.Equal(t, 30*time.Minute, policy.CancelCutoff)
	assert.Equal(t, 3, policy.MaxActiveBookings)
	assert.False(t, cfg.Sweep.Enabled)
	assert.Equal(t, string(domain.StatusExpired), cfg.Sweep.UnattendedStatus)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "unknown driver", data: "[storage]\ndriver = \"sqlite\"", want: "storage.driver"},
		{name: "unknown unattended status", data: "[sweep]\nunattended_status = \"cancelled\"", want: "sweep.unattended_status"},
		{name: "negative retries", data: "[storage]\nmax_tx_retries = -1", want: "max_tx_retries"},
		{name: "extension range", data: "[booking]\nmin_extension_hours = 3\nmax_extension_hours = 2", want: "extension range"},
		{name: "redis without channel", data: "[redis]\nenabled = true\nchannel = \"\"", want: "redis.addr"},
		{name: "broken toml", data: "[server\nhttp_port = 1", want: "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nhttp_port = 9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := Default().Database
	db.Password = "secret"

	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=parking sslmode=disable", db.DSN())
}
