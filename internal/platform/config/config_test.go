package config

import (
	"testing"
	"time"
)

func TestLoadUsesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "eventx" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected memory storage default, got %q", cfg.Storage)
	}
	if cfg.OutboxPollInterval != 2*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.OutboxPollInterval)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("EVENTX_HTTP_PORT", "9999")
	t.Setenv("EVENTX_ADMINISTRATOR_ID", "root-admin")
	t.Setenv("EVENTX_KAFKA_BROKERS", "broker-a:9092, broker-b:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "9999" {
		t.Fatalf("expected env port override, got %q", cfg.HTTPPort)
	}
	if cfg.AdministratorID != "root-admin" {
		t.Fatalf("expected env administrator override, got %q", cfg.AdministratorID)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker-a:9092" || cfg.KafkaBrokers[1] != "broker-b:9092" {
		t.Fatalf("expected comma list split into brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadRejectsPostgresWithoutDSN(t *testing.T) {
	t.Setenv("EVENTX_STORAGE", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for postgres storage without dsn")
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("EVENTX_STORAGE", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}
