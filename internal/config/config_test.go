package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PORT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}

	if cfg.DBHost != "db" {
		t.Errorf("expected default DBHost 'db', got %s", cfg.DBHost)
	}

	if cfg.DBName != "fullstack_db" {
		t.Errorf("expected default DBName 'fullstack_db', got %s", cfg.DBName)
	}

	if cfg.DBPort != 5432 {
		t.Errorf("expected default DBPort 5432, got %d", cfg.DBPort)
	}

	if cfg.RedisHost != "cache" {
		t.Errorf("expected default RedisHost 'cache', got %s", cfg.RedisHost)
	}

	if cfg.RedisPort != 6379 {
		t.Errorf("expected default RedisPort 6379, got %d", cfg.RedisPort)
	}

	if cfg.RedisDB != 0 {
		t.Errorf("expected default RedisDB 0, got %d", cfg.RedisDB)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "15432")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_DB", "3")
	defer func() {
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PORT")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_DB")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DBHost != "localhost" {
		t.Errorf("expected DBHost 'localhost', got %s", cfg.DBHost)
	}

	if cfg.DBPort != 15432 {
		t.Errorf("expected DBPort 15432, got %d", cfg.DBPort)
	}

	if cfg.RedisDB != 3 {
		t.Errorf("expected RedisDB 3, got %d", cfg.RedisDB)
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBName:     "fullstack_db",
		DBUser:     "postgres",
		DBPassword: "password",
		DBPort:     5432,
	}

	want := "postgres://postgres:password@db:5432/fullstack_db"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() = %s, want %s", got, want)
	}
}

func TestConfig_RedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache", RedisPort: 6379}

	if got := cfg.RedisAddr(); got != "cache:6379" {
		t.Errorf("RedisAddr() = %s, want cache:6379", got)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}

	cfg.AppEnv = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction to return false")
	}
}
