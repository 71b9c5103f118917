package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected default output dir '.', got %q", cfg.OutputDir)
	}
	if cfg.Dialect != "js" {
		t.Errorf("expected default dialect js, got %q", cfg.Dialect)
	}
	if cfg.MaxRefDepth != 64 {
		t.Errorf("expected default max_ref_depth 64, got %d", cfg.MaxRefDepth)
	}
	if cfg.Log.Level != "info" || cfg.Log.JSON {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.HTTP.Timeout)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "comlinkgen.yaml"), `provider: acme
output_dir: gen
dialect: python
max_ref_depth: 8
log:
  level: debug
  json: true
http:
  timeout: 5s
`)

	cfg, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider != "acme" || cfg.OutputDir != "gen" || cfg.Dialect != "python" {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.MaxRefDepth != 8 {
		t.Errorf("expected max_ref_depth 8, got %d", cfg.MaxRefDepth)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.HTTP.Timeout)
	}
}

func TestLoad_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "comlinkgen.yaml"), "provider: from-file\n")
	writeFile(t, filepath.Join(dir, ".env"), "COMLINKGEN_PROVIDER=from-dotenv\nCOMLINKGEN_LOG_LEVEL=warn\n")
	t.Setenv("COMLINKGEN_PROVIDER", "from-env")

	cfg, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider != "from-env" {
		t.Errorf("expected environment to win, got %q", cfg.Provider)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected dotenv log level, got %q", cfg.Log.Level)
	}
}

func TestLoad_DotenvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "comlinkgen.yaml"), "dialect: js\n")
	envFile := filepath.Join(dir, "custom.env")
	writeFile(t, envFile, "COMLINKGEN_DIALECT=python\nUNRELATED=1\n")

	cfg, err := Load(Options{Dir: dir, EnvFile: envFile})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dialect != "python" {
		t.Errorf("expected dotenv dialect, got %q", cfg.Dialect)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	if _, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative depth", content: "max_ref_depth: -1\n"},
		{name: "unknown dialect", content: "dialect: cobol\n"},
		{name: "unknown level", content: "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "comlinkgen.yaml"), tt.content)
			if _, err := Load(Options{Dir: dir}); err == nil {
				t.Errorf("expected validation error for %q", tt.content)
			}
		})
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("log.level"); got != "COMLINKGEN_LOG_LEVEL" {
		t.Errorf("expected COMLINKGEN_LOG_LEVEL, got %s", got)
	}
	if got := EnvName("output_dir"); got != "COMLINKGEN_OUTPUT_DIR" {
		t.Errorf("expected COMLINKGEN_OUTPUT_DIR, got %s", got)
	}
}
