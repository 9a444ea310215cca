package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REGISTRY_ENABLED", "")
	t.Setenv("ORDER_SERVICE_URL", "")
	t.Setenv("ORDER_CLIENT_TIMEOUT", "")
	t.Setenv("ORDER_SERVICE_NAME", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVICE_ADVERTISE_URL", "")
	t.Setenv("DB_PASSWORD", "")
}

func TestNewConfig_OrderServiceDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := NewConfig(OrderService)
	require.NoError(t, err)

	assert.Equal(t, OrderService, cfg.Service.Name)
	assert.NotEmpty(t, cfg.Service.InstanceID)
	assert.Equal(t, 4001, cfg.Server.Port)
	assert.Equal(t, "orders", cfg.Database.Database)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.True(t, cfg.UsesPostgres())
	assert.False(t, cfg.Registry.Enabled)
	assert.Equal(t, "http://localhost:4001", cfg.Service.AdvertiseURL)
}

func TestNewConfig_PatientServiceWithStaticOrderURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ORDER_SERVICE_URL", "http://orders:4001/")
	t.Setenv("ORDER_CLIENT_TIMEOUT", "2")

	cfg, err := NewConfig(PatientService)
	require.NoError(t, err)

	assert.Equal(t, 4002, cfg.Server.Port)
	assert.Equal(t, "patients", cfg.Database.Database)
	assert.Equal(t, "http://orders:4001/", cfg.Registry.StaticServices[OrderService])
	assert.Equal(t, 2*time.Second, cfg.Clients.Timeout)
}

func TestNewConfig_ServiceURLPrefix(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVICE_URL_ORDER_SERVICE", "http://10.0.0.7:4001/")

	cfg, err := NewConfig(PatientService)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.7:4001", cfg.Registry.StaticServices["order-service"])
}

func TestNewConfig_PatientServiceNeedsOrderResolution(t *testing.T) {
	setBaseEnv(t)

	_, err := NewConfig(PatientService)
	assert.ErrorContains(t, err, "ORDER_SERVICE_URL")
}

func TestNewConfig_RegistryRequiresRedis(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REGISTRY_ENABLED", "true")

	_, err := NewConfig(OrderService)
	assert.ErrorContains(t, err, "REDIS_ENABLED")
}

func TestNewConfig_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		service string
		env     map[string]string
	}{
		{"environnement inconnu", OrderService, map[string]string{"APP_ENV": "staging"}},
		{"driver inconnu", OrderService, map[string]string{"STORAGE_DRIVER": "cassandra"}},
		{"mongodb côté patient", PatientService, map[string]string{"STORAGE_DRIVER": "mongodb", "ORDER_SERVICE_URL": "http://o"}},
		{"docker sans mot de passe", OrderService, map[string]string{"APP_ENV": "docker", "DB_PASSWORD": ""}},
		{"service inconnu", "billing-service", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := NewConfig(tt.service)
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_MemoryStorage(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "MEMORY")

	cfg, err := NewConfig(OrderService)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.False(t, cfg.UsesPostgres())
}

func TestNewPostgresConfig(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, Database: "orders", Username: "u", Password: "p", SSLMode: "disable",
	}}

	pg := NewPostgresConfig(cfg)
	assert.Equal(t, "postgres://u:p@db:5433/orders?sslmode=disable", pg.DSN())
}
