package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type testConfig struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "name: library\nport: 9090\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "library" || cfg.Port != 9090 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_CONFIG_TOKEN", "from-env")
	path := writeConfig(t, "token: ${TEST_CONFIG_TOKEN}\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("token = %q", cfg.Token)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "port: [unclosed\n")

	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("invalid YAML accepted")
	}
}

func TestLoad_RunsValidation(t *testing.T) {
	path := writeConfig(t, "port: 0\n")

	var cfg validatedConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("validation failure not surfaced")
	}
}

func TestLoadIfPresent_MissingKeepsDefaults(t *testing.T) {
	cfg := validatedConfig{Port: 8080}
	if err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("LoadIfPresent: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadIfPresent_MissingStillValidates(t *testing.T) {
	var cfg validatedConfig
	if err := LoadIfPresent(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Error("invalid defaults accepted")
	}
}

func TestLoadIfPresent_ExistingFileLoaded(t *testing.T) {
	path := writeConfig(t, "port: 3000\n")

	cfg := validatedConfig{Port: 8080}
	if err := LoadIfPresent(path, &cfg); err != nil {
		t.Fatalf("LoadIfPresent: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("port = %d", cfg.Port)
	}
}
