package db

import (
	"strings"
	"testing"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}
}

func TestConnString_DatabaseURLWins(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/media")
	t.Setenv("DB_HOST", "ignored")

	got, err := connString()
	if err != nil {
		t.Fatalf("connString: %v", err)
	}
	if got != "postgres://app:secret@db:5432/media" {
		t.Fatalf("connString = %q", got)
	}
}

func TestConnString_DiscreteVarsWithDefaults(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "media")

	got, err := connString()
	if err != nil {
		t.Fatalf("connString: %v", err)
	}
	for _, want := range []string{"host=localhost", "port=5432", "user=app", "dbname=media", "sslmode=disable"} {
		if !strings.Contains(got, want) {
			t.Fatalf("connString = %q, missing %q", got, want)
		}
	}
}

func TestConnString_Unconfigured(t *testing.T) {
	clearDBEnv(t)
	if _, err := connString(); err == nil {
		t.Fatal("expected error when no database variables are set")
	}
}
