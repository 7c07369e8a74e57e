package services

import (
	"os"
	"testing"

	"propertydeals_backend/internal/config"
	"propertydeals_backend/internal/logger"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	logger.Init("test")

	os.Exit(m.Run())
}
