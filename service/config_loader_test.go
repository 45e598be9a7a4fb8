package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dariusokafor/wsmove/domain"
)

func TestNewConfigurationLoader(t *testing.T) {
	loader := NewConfigurationLoader()
	if loader == nil {
		t.Fatal("NewConfigurationLoader should not return nil")
	}
}

func TestConfigurationLoader_LoadConfig_NonExistent(t *testing.T) {
	loader := NewConfigurationLoader()
	_, err := loader.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadConfig should return error for nonexistent file")
	}
}

func TestConfigurationLoader_LoadConfig_Invalid(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "wsmove.config.yaml")
	if err := os.WriteFile(configFile, []byte("not: [valid"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	loader := NewConfigurationLoader()
	if _, err := loader.LoadConfig(configFile); err == nil {
		t.Error("LoadConfig should return error for malformed YAML")
	}
}

func TestConfigurationLoader_LoadConfig_Valid(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "wsmove.config.yaml")
	content := `
projects:
  a:
    root: libs/a
    source_root: libs/a/src
    barrel: libs/a/src/index.ts
  b:
    root: libs/b
    source_root: libs/b/src
aliases:
  - pattern: "@w/a"
    project: a
engine:
  allow_unicode: true
  remove_empty_project: true
`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	loader := NewConfigurationLoader()
	cfg, err := loader.LoadConfig(configFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(cfg.Projects))
	}
	if !cfg.Engine.AllowUnicode {
		t.Error("expected allow_unicode to be true")
	}
	if !cfg.Engine.RemoveEmptyProject {
		t.Error("expected remove_empty_project to be true")
	}

	projects := cfg.ProjectTable()
	if projects["a"].Alias != "@w/a" {
		t.Errorf("expected project a alias @w/a, got %q", projects["a"].Alias)
	}
}

func TestConfigurationLoader_LoadDefaultConfig_NoneFound(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	loader := NewConfigurationLoader()
	cfg := loader.LoadDefaultConfig()
	if cfg == nil {
		t.Fatal("LoadDefaultConfig should never return nil")
	}
	if len(cfg.Projects) != 0 {
		t.Errorf("expected empty default manifest, got %d projects", len(cfg.Projects))
	}
}

func TestConfigurationLoader_MergeRequest_ManifestDefaultsApplyWhenNotExplicit(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Engine.AllowUnicode = true
	cfg.Engine.RemoveEmptyProject = true

	req := domain.MoveRequest{Project: "b"}
	merged := loader.MergeRequest(req, cfg, false, false)

	if !merged.AllowUnicode {
		t.Error("expected manifest default AllowUnicode to apply")
	}
	if !merged.RemoveEmptyProject {
		t.Error("expected manifest default RemoveEmptyProject to apply")
	}
	if merged.ProjectDirectory != "lib" {
		t.Errorf("expected default project directory \"lib\", got %q", merged.ProjectDirectory)
	}
}

func TestConfigurationLoader_MergeRequest_ExplicitFlagWins(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Engine.AllowUnicode = true

	req := domain.MoveRequest{Project: "b", AllowUnicode: false}
	merged := loader.MergeRequest(req, cfg, true, false)

	if merged.AllowUnicode {
		t.Error("explicitly-set false should not be overridden by manifest default")
	}
}
