package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  port: 9090
database:
  dsn: "host=localhost user=app dbname=app"
simulation:
  projectLife: 5
  location: "UK"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, expected 9090", cfg.Server.Port)
	}
	if cfg.Simulation.ProjectLife != 5 {
		t.Errorf("projectLife = %d, expected 5", cfg.Simulation.ProjectLife)
	}
	if cfg.Simulation.SolarDatasetPath == "" {
		t.Error("solar dataset path default not applied")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  dsn: "host=localhost"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, expected 8080", cfg.Server.Port)
	}
	if cfg.Simulation.ProjectLife != 3 {
		t.Errorf("default projectLife = %d, expected 3", cfg.Simulation.ProjectLife)
	}
	if cfg.Simulation.Location != "UK" {
		t.Errorf("default location = %q, expected UK", cfg.Simulation.Location)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing dsn", "server:\n  port: 8080\n"},
		{"bad port", "server:\n  port: 99999\ndatabase:\n  dsn: x\n"},
		{"bad project life", "database:\n  dsn: x\nsimulation:\n  projectLife: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for unsupported format")
	}
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  dsn: "host=localhost"
server:
  port: 8080
`)
	t.Setenv("EVEA_SERVER__PORT", "9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("env override not applied: port = %d", cfg.Server.Port)
	}
}
