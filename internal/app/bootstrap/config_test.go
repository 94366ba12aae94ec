package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "orgvault",
		TokenSecret:   "0123456789abcdef0123456789abcdef",
		TokenTTL:      time.Hour,
	}
}

func TestValidateConfig(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}

	if err := ValidateConfig(coreCfg, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	t.Run("bad mongo uri", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.MongoURI = "http://not-mongo"
		if err := ValidateConfig(coreCfg, cfg, testLogger()); err == nil {
			t.Error("bad URI accepted")
		}
	})

	t.Run("missing token secret", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.TokenSecret = ""
		if err := ValidateConfig(coreCfg, cfg, testLogger()); err == nil {
			t.Error("empty token secret accepted")
		}
	})

	t.Run("short secret allowed outside prod", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.TokenSecret = "dev-secret"
		if err := ValidateConfig(coreCfg, cfg, testLogger()); err != nil {
			t.Errorf("short dev secret rejected: %v", err)
		}
	})

	t.Run("short secret rejected in prod", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.TokenSecret = "dev-secret"
		prod := &config.CoreConfig{Env: "prod"}
		if err := ValidateConfig(prod, cfg, testLogger()); err == nil {
			t.Error("short prod secret accepted")
		}
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		cfg := validAppConfig()
		cfg.TokenTTL = 0
		if err := ValidateConfig(coreCfg, cfg, testLogger()); err == nil {
			t.Error("zero TTL accepted")
		}
	})
}
