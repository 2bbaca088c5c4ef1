package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.True(t, cfg.MigrateOnStart)
	assert.False(t, cfg.CBREnabled)
	assert.Equal(t, 100, cfg.DefaultPageLimit)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "0 9 * * *", cfg.DigestSchedule)
	assert.False(t, cfg.DigestEnabled())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "memory")
	t.Setenv("DB_CONN", "")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("CBR_ENABLED", "true")
	t.Setenv("DEFAULT_PAGE_LIMIT", "25")
	t.Setenv("TX_TIMEOUT", "750ms")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SENDER_EMAIL", "bank@example.com")
	t.Setenv("DIGEST_RECIPIENT", "risk@example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.False(t, cfg.MigrateOnStart)
	assert.True(t, cfg.CBREnabled)
	assert.Equal(t, 25, cfg.DefaultPageLimit)
	assert.Equal(t, 750*time.Millisecond, cfg.TxTimeout)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.True(t, cfg.DigestEnabled())
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown storage", map[string]string{"STORAGE": "redis"}, "STORAGE must be"},
		{"missing dsn", map[string]string{"DB_CONN": ""}, "DB_CONN is required"},
		{"bad int", map[string]string{"SMTP_PORT": "smtp"}, "SMTP_PORT must be an integer"},
		{"bad bool", map[string]string{"CBR_ENABLED": "sometimes"}, "CBR_ENABLED must be a boolean"},
		{"bad duration", map[string]string{"TX_TIMEOUT": "5"}, "TX_TIMEOUT must be a duration"},
		{"zero page limit", map[string]string{"DEFAULT_PAGE_LIMIT": "0"}, "DEFAULT_PAGE_LIMIT must be positive"},
		{"digest without smtp", map[string]string{"DIGEST_RECIPIENT": "risk@example.com"}, "SMTP_HOST and SENDER_EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
