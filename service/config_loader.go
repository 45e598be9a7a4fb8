package service

import (
	"fmt"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/config"
	"github.com/dariusokafor/wsmove/internal/constants"
)

// ConfigurationLoaderImpl loads the workspace manifest and merges its
// engine defaults into a move request built from CLI flags (teacher
// pattern: service/config_loader.go's ConfigurationLoaderImpl, adapted
// from ComplexityRequest to domain.MoveRequest).
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads the workspace manifest at the specified path.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.WorkspaceConfig, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace manifest: %w", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the manifest discovered by searching the
// working directory and its ancestors, falling back to an empty,
// valid manifest if none is found.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.WorkspaceConfig {
	path := config.FindDefaultConfigFile("")
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// FindDefaultConfigFile searches for a default workspace manifest.
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	return config.FindDefaultConfigFile("")
}

// MergeRequest applies the manifest's engine defaults to a move request
// built from CLI flags: a flag explicitly set on the command line
// always wins; otherwise the manifest's default applies.
func (c *ConfigurationLoaderImpl) MergeRequest(req domain.MoveRequest, cfg *config.WorkspaceConfig, explicitAllowUnicode, explicitRemoveEmptyProject bool) domain.MoveRequest {
	merged := req
	if !explicitAllowUnicode && cfg != nil {
		merged.AllowUnicode = cfg.Engine.AllowUnicode
	}
	if !explicitRemoveEmptyProject && cfg != nil {
		merged.RemoveEmptyProject = cfg.Engine.RemoveEmptyProject
	}
	if merged.ProjectDirectory == "" && !merged.DeriveProjectDirectory {
		merged.ProjectDirectory = constants.DefaultProjectDirectory
	}
	return merged
}
