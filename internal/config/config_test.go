// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "hello")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "45s")
	t.Setenv("TEST_SLICE", "a,b,c")
	t.Setenv("TEST_BAD_INT", "not-a-number")

	assert.Equal(t, "hello", getEnv("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_MISSING", "fallback"))

	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_BAD_INT", 7))
	assert.Equal(t, 7, getEnvAsInt("TEST_MISSING", 7))

	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.False(t, getEnvAsBool("TEST_MISSING", false))

	assert.Equal(t, 45*time.Second, getEnvAsDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("TEST_MISSING", time.Minute))

	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_MISSING", []string{"x"}))
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Name: "db", User: "user"},
		Redis:    RedisConfig{Host: "localhost"},
		JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Checkout: CheckoutConfig{RecentOrdersLimit: 10},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	shortSecret := validConfig()
	shortSecret.JWT.Secret = "too-short"
	assert.Error(t, shortSecret.Validate())

	noDB := validConfig()
	noDB.Database.Host = ""
	assert.Error(t, noDB.Validate())

	eventsNoBrokers := validConfig()
	eventsNoBrokers.Events.Enabled = true
	assert.Error(t, eventsNoBrokers.Validate())

	badLimit := validConfig()
	badLimit.Checkout.RecentOrdersLimit = 0
	assert.Error(t, badLimit.Validate())
}

func TestConnectionStrings(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{
		Host: "db.internal", Port: "5432", Name: "marketplace",
		User: "svc", Password: "secret", SSLMode: "require",
	}
	cfg.Redis = RedisConfig{Host: "cache.internal", Port: "6379"}

	assert.Equal(t,
		"host=db.internal port=5432 user=svc password=secret dbname=marketplace sslmode=require",
		cfg.GetDatabaseDSN())
	assert.Equal(t, "cache.internal:6379", cfg.GetRedisAddr())
}
