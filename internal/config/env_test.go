package config

import (
	"reflect"
	"testing"
)

func TestLoadEnvParsesCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://portal.example.com, https://drivers.example.com ,")

	env := LoadEnv()
	want := []string{"https://portal.example.com", "https://drivers.example.com"}
	if !reflect.DeepEqual(env.CORSOrigins, want) {
		t.Fatalf("unexpected origins: %v", env.CORSOrigins)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("APP_ADDR", "")

	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("unexpected addr default: %q", env.AppAddr)
	}
	if len(env.CORSOrigins) != 0 {
		t.Fatalf("expected no configured origins, got %v", env.CORSOrigins)
	}
	if env.AdminUsername == "" {
		t.Fatal("expected a default admin username")
	}
}
