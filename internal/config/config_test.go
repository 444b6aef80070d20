package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigYAML = `
server:
  port: "9090"
  mode: "debug"
database:
  host: "db.internal"
  port: 3306
  user: "lq"
  password: "pw"
  dbname: "lq_test"
  charset: "utf8mb4"
  parsetime: true
jwt:
  secret: "short"
  expire_hours: 24
ai:
  base_url: "http://ai.internal/v1"
  api_key: "k"
  model: "test-model"
cors:
  allowed_origins:
    - "http://localhost:5173"
rate_limit:
  max_requests: 10
  window_minutes: 1
`

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeTestConfig(t, testConfigYAML)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("server port = %q", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q", cfg.Database.Host)
	}
	if cfg.JWT.ExpireTime != 24*time.Hour {
		t.Errorf("jwt expire = %v, want 24h", cfg.JWT.ExpireTime)
	}
	if cfg.AI.Model != "test-model" {
		t.Errorf("ai model = %q", cfg.AI.Model)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Errorf("cors origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfig_ReleaseModeRejectsWeakSecret(t *testing.T) {
	body := testConfigYAML
	dir := writeTestConfig(t, body)

	t.Setenv("LEARNQUEST_SERVER_MODE", "release")
	t.Setenv("SERVER_MODE", "release")

	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for short JWT secret in release mode")
	}
}
