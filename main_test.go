package main

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SETTLE_DELAY", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.SettleDelay != 450*time.Millisecond || cfg.LogLevel != logrus.InfoLevel {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	t.Setenv("PORT", "9090")
	t.Setenv("SETTLE_DELAY", "1s")
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.SettleDelay != time.Second || cfg.LogLevel != logrus.DebugLevel {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("SETTLE_DELAY", "soon")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected an error for a bad duration")
	}
	t.Setenv("SETTLE_DELAY", "")
	t.Setenv("LOG_LEVEL", "chatty")
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected an error for a bad log level")
	}
}
