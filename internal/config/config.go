// Package config loads the workspace manifest that tells the move
// engine which projects exist, which path aliases they publish, and
// how aggressively to parallelise scanning. It is viper-based, the
// same way the teacher's analysis tool loaded its own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/constants"
)

// Default performance tuning values, used when a workspace manifest
// omits the performance block entirely.
const (
	DefaultMaxGoroutines  = 0 // 0 means "use the parallel executor's DefaultMaxConcurrency"
	DefaultTimeoutSeconds = 300
)

// ProjectEntry is one project's manifest entry.
type ProjectEntry struct {
	Root       string `mapstructure:"root" yaml:"root" json:"root"`
	SourceRoot string `mapstructure:"source_root" yaml:"source_root" json:"source_root"`
	Kind       string `mapstructure:"kind" yaml:"kind" json:"kind"` // "library" | "application"
	Barrel     string `mapstructure:"barrel" yaml:"barrel" json:"barrel"`
}

// AliasEntry is one path-alias manifest entry, e.g. "@acme/*" resolving
// into a project's source root.
type AliasEntry struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern" json:"pattern"`
	Project string `mapstructure:"project" yaml:"project" json:"project"`
	Subpath string `mapstructure:"subpath" yaml:"subpath" json:"subpath"`
}

// PerformanceConfig tunes the parallel substring pre-filter pass.
type PerformanceConfig struct {
	MaxGoroutines  int `mapstructure:"max_goroutines" yaml:"max_goroutines" json:"max_goroutines"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
}

// EngineConfig carries engine-wide defaults that a move request may
// override (domain.MoveRequest fields take precedence when set).
type EngineConfig struct {
	AllowUnicode       bool `mapstructure:"allow_unicode" yaml:"allow_unicode" json:"allow_unicode"`
	RemoveEmptyProject bool `mapstructure:"remove_empty_project" yaml:"remove_empty_project" json:"remove_empty_project"`
}

// WorkspaceConfig is the full workspace manifest.
type WorkspaceConfig struct {
	Projects    map[string]ProjectEntry `mapstructure:"projects" yaml:"projects" json:"projects"`
	Aliases     []AliasEntry            `mapstructure:"aliases" yaml:"aliases" json:"aliases"`
	Performance PerformanceConfig       `mapstructure:"performance" yaml:"performance" json:"performance"`
	Engine      EngineConfig            `mapstructure:"engine" yaml:"engine" json:"engine"`
}

// DefaultConfig returns an empty-but-valid manifest: no projects, no
// aliases, sane engine/performance defaults. Unlike the teacher's
// config package this is a Go literal, not a go:embed'd JSON asset.
func DefaultConfig() *WorkspaceConfig {
	return &WorkspaceConfig{
		Projects: map[string]ProjectEntry{},
		Aliases:  []AliasEntry{},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Engine: EngineConfig{
			AllowUnicode:       false,
			RemoveEmptyProject: false,
		},
	}
}

// LoadConfig loads the manifest at configPath, or the default
// configuration if configPath is empty and none can be discovered.
func LoadConfig(configPath string) (*WorkspaceConfig, error) {
	if configPath == "" {
		configPath = FindDefaultConfigFile("")
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()

	cfg := DefaultConfig()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read workspace manifest %s: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace manifest: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workspace manifest: %w", err)
	}

	return cfg, nil
}

// candidateManifestNames are searched, in order, in the target
// directory and then each ancestor up to the filesystem root.
var candidateManifestNames = []string{
	constants.ConfigFileName,
	"wsmove.config.yml",
	"wsmove.config.json",
	".wsmoverc.yaml",
	".wsmoverc.yml",
	".wsmoverc.json",
}

// FindDefaultConfigFile searches targetDir (or the working directory,
// if empty) and its ancestors for a workspace manifest.
func FindDefaultConfigFile(targetDir string) string {
	dir := targetDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}

	for {
		for _, name := range candidateManifestNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks internal consistency of the manifest.
func (c *WorkspaceConfig) Validate() error {
	for name, p := range c.Projects {
		if p.Root == "" {
			return fmt.Errorf("project %q: root must not be empty", name)
		}
		if p.Kind != "" && p.Kind != "library" && p.Kind != "application" {
			return fmt.Errorf("project %q: kind must be \"library\" or \"application\", got %q", name, p.Kind)
		}
	}
	for _, a := range c.Aliases {
		if a.Pattern == "" {
			return fmt.Errorf("alias entry missing pattern")
		}
		if _, ok := c.Projects[a.Project]; !ok {
			return fmt.Errorf("alias %q references unknown project %q", a.Pattern, a.Project)
		}
	}
	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}
	return nil
}

// ProjectTable converts the manifest's project entries into the
// domain-level table the resolver and planner consume.
func (c *WorkspaceConfig) ProjectTable() domain.ProjectTable {
	out := make(domain.ProjectTable, len(c.Projects))
	for name, p := range c.Projects {
		kind := domain.ProjectKindLibrary
		if p.Kind == "application" {
			kind = domain.ProjectKindApplication
		}
		out[name] = &domain.Project{
			Name:       name,
			Root:       domain.FileRef(p.Root),
			SourceRoot: domain.FileRef(p.SourceRoot),
			Barrel:     domain.FileRef(p.Barrel),
			Kind:       kind,
		}
	}
	// Alias is filled in here from the alias entries, so a project's
	// Alias field reflects the first pattern listed for it.
	for _, a := range c.Aliases {
		if proj, ok := out[a.Project]; ok && proj.Alias == "" {
			proj.Alias = a.Pattern
		}
	}
	return out
}

// AliasTable converts the manifest's alias entries into the
// domain-level table the resolver and rewriter consume.
func (c *WorkspaceConfig) AliasTable() domain.AliasTable {
	out := make(domain.AliasTable, len(c.Aliases))
	for _, a := range c.Aliases {
		out[a.Pattern] = domain.AliasEntry{
			Pattern: a.Pattern,
			Project: a.Project,
			Subpath: a.Subpath,
		}
	}
	return out
}
