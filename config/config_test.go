package config

import "testing"

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "testdb")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "testdb" {
		t.Errorf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}
