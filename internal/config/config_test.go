package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PLANNER_DATA_DIR", "")
	t.Setenv("PLANNER_DB_PATH", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("INVITE_MESSAGE", "")

	cfg := LoadConfig()
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.DataDir)
	}
	if cfg.DBPath != "data/planner.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.InviteMessage != defaultInviteMessage {
		t.Errorf("InviteMessage = %q", cfg.InviteMessage)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PLANNER_DATA_DIR", "/tmp/planner")
	t.Setenv("WHATSAPP_ENABLED", "true")
	t.Setenv("SEND_RATE", "0.5")
	t.Setenv("SEND_BURST", "bogus")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg := LoadConfig()
	if cfg.DBPath != "/tmp/planner/planner.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if !cfg.WhatsAppEnabled {
		t.Error("WhatsAppEnabled = false")
	}
	if cfg.SendRate != 0.5 {
		t.Errorf("SendRate = %v", cfg.SendRate)
	}
	if cfg.SendBurst != 3 {
		t.Errorf("SendBurst = %d, want default on bad input", cfg.SendBurst)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestJWTSecretHasNoDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if cfg := LoadConfig(); cfg.JWTSecret != "" {
		t.Fatalf("JWTSecret = %q, want empty", cfg.JWTSecret)
	}
}

func TestEnsureJWTSecretRejectsShortSecret(t *testing.T) {
	for _, secret := range []string{"change-me", strings.Repeat("x", minJWTSecretLen-1)} {
		cfg := &Config{DataDir: t.TempDir(), JWTSecret: secret}
		if err := cfg.EnsureJWTSecret(); !errors.Is(err, ErrWeakJWTSecret) {
			t.Errorf("secret %q: err = %v", secret, err)
		}
	}

	long := strings.Repeat("x", minJWTSecretLen)
	cfg := &Config{DataDir: t.TempDir(), JWTSecret: long}
	if err := cfg.EnsureJWTSecret(); err != nil || cfg.JWTSecret != long {
		t.Fatalf("long secret: %q, %v", cfg.JWTSecret, err)
	}
}

func TestEnsureJWTSecretGeneratesAndKeeps(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	first := &Config{DataDir: dir}
	if err := first.EnsureJWTSecret(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first.JWTSecret) < minJWTSecretLen {
		t.Fatalf("generated secret too short: %q", first.JWTSecret)
	}
	info, err := os.Stat(filepath.Join(dir, jwtSecretFile))
	if err != nil {
		t.Fatalf("secret file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("secret file mode = %o", perm)
	}

	second := &Config{DataDir: dir}
	if err := second.EnsureJWTSecret(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if second.JWTSecret != first.JWTSecret {
		t.Fatal("secret changed between runs")
	}

	other := &Config{DataDir: t.TempDir()}
	if err := other.EnsureJWTSecret(); err != nil {
		t.Fatal(err)
	}
	if other.JWTSecret == first.JWTSecret {
		t.Fatal("two data directories share a secret")
	}
}
