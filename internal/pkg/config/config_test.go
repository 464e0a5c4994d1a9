package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SnapshotBackend != "redis" {
		t.Errorf("SnapshotBackend = %q, want redis", cfg.SnapshotBackend)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.Mongo.Database != "publishing_core" {
		t.Errorf("Mongo.Database = %q", cfg.Mongo.Database)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNAPSHOT_BACKEND", "mongo")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.SnapshotBackend != "mongo" {
		t.Errorf("SnapshotBackend = %q, want mongo", cfg.SnapshotBackend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
