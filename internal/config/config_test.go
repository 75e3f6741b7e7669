package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SSH.Port != "2222" {
		t.Errorf("ssh port = %q, want %q", cfg.SSH.Port, "2222")
	}
	if cfg.Web.Port != "8080" {
		t.Errorf("web port = %q, want %q", cfg.Web.Port, "8080")
	}
	if cfg.Game.CollisionMode != "" {
		t.Errorf("collision mode = %q, want auto (empty)", cfg.Game.CollisionMode)
	}
	if cfg.Game.StrictFaults {
		t.Error("strict faults defaulted on, want off")
	}
	if cfg.Stats.Path == "" {
		t.Error("stats path empty, want a default")
	}
	if len(cfg.Web.AllowedOrigins) != 1 || cfg.Web.AllowedOrigins[0] != "*" {
		t.Errorf("allowed origins = %v, want [*]", cfg.Web.AllowedOrigins)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staroids.yaml")
	body := "ssh:\n  port: \"2022\"\ngame:\n  collision_mode: grid\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SSH.Port != "2022" {
		t.Errorf("ssh port = %q, want file override %q", cfg.SSH.Port, "2022")
	}
	if cfg.Game.CollisionMode != "grid" {
		t.Errorf("collision mode = %q, want %q", cfg.Game.CollisionMode, "grid")
	}
	// Fields absent from the file keep their defaults.
	if cfg.SSH.Host != "::" {
		t.Errorf("ssh host = %q, want default %q", cfg.SSH.Host, "::")
	}
	if cfg.Web.Port != "8080" {
		t.Errorf("web port = %q, want default %q", cfg.Web.Port, "8080")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load with absent file: %v", err)
	}
	if cfg.SSH.Port != "2222" {
		t.Errorf("ssh port = %q, want default %q", cfg.SSH.Port, "2222")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ssh: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML, want error")
	}
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staroids.yaml")
	if err := os.WriteFile(path, []byte("ssh:\n  port: \"2022\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SSH_PORT", "2200")
	t.Setenv("STRICT_FAULTS", "true")
	t.Setenv("WEB_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SSH.Port != "2200" {
		t.Errorf("ssh port = %q, want env override %q", cfg.SSH.Port, "2200")
	}
	if !cfg.Game.StrictFaults {
		t.Error("strict faults off, want env override on")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Web.AllowedOrigins) != len(want) {
		t.Fatalf("allowed origins = %v, want %v", cfg.Web.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.Web.AllowedOrigins[i] != want[i] {
			t.Errorf("origin[%d] = %q, want %q", i, cfg.Web.AllowedOrigins[i], want[i])
		}
	}
}

func TestBadBoolEnvRejected(t *testing.T) {
	t.Setenv("STRICT_FAULTS", "definitely")
	if _, err := Load(""); err == nil {
		t.Fatal("Load accepted STRICT_FAULTS=definitely, want error")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STAROIDS_TEST_KEY", "set")
	if got := GetEnv("STAROIDS_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("GetEnv set key = %q, want %q", got, "set")
	}
	if got := GetEnv("STAROIDS_TEST_KEY_ABSENT", "fallback"); got != "fallback" {
		t.Errorf("GetEnv absent key = %q, want %q", got, "fallback")
	}
}
