package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/aipaste/aipaste/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Snap   SnapCommandConfiguration   `mapstructure:"snap"`
	Stream StreamCommandConfiguration `mapstructure:"stream"`
}

// SnapCommandConfiguration defines defaults for the snap command.
type SnapCommandConfiguration struct {
	Output      string   `mapstructure:"output"`
	Summary     *bool    `mapstructure:"summary"`
	Tokens      *bool    `mapstructure:"tokens"`
	MaxFileSize *int64   `mapstructure:"max_file_size"`
	SkipCommon  *bool    `mapstructure:"skip_common"`
	SkipFiles   []string `mapstructure:"skip_files"`
}

// StreamCommandConfiguration defines defaults for the stream command.
type StreamCommandConfiguration struct {
	MaxFileSize *int64   `mapstructure:"max_file_size"`
	SkipCommon  *bool    `mapstructure:"skip_common"`
	SkipFiles   []string `mapstructure:"skip_files"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Snap.SkipFiles = utils.DeduplicatePatterns(merged.Snap.SkipFiles)
	merged.Stream.SkipFiles = utils.DeduplicatePatterns(merged.Stream.SkipFiles)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

// loadConfigurationFromPath reads one configuration file. A missing file is
// an error only when the path was requested explicitly.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			if required {
				return ApplicationConfiguration{}, fmt.Errorf("configuration file %s does not exist", path)
			}
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var configuration ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Snap = result.Snap.merge(override.Snap)
	result.Stream = result.Stream.merge(override.Stream)
	return result
}

func (configuration SnapCommandConfiguration) merge(override SnapCommandConfiguration) SnapCommandConfiguration {
	result := configuration
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.MaxFileSize != nil {
		result.MaxFileSize = cloneInt64(override.MaxFileSize)
	}
	if override.SkipCommon != nil {
		result.SkipCommon = cloneBool(override.SkipCommon)
	}
	if len(override.SkipFiles) > 0 {
		result.SkipFiles = append([]string{}, utils.DeduplicatePatterns(override.SkipFiles)...)
	}
	return result
}

func (configuration StreamCommandConfiguration) merge(override StreamCommandConfiguration) StreamCommandConfiguration {
	result := configuration
	if override.MaxFileSize != nil {
		result.MaxFileSize = cloneInt64(override.MaxFileSize)
	}
	if override.SkipCommon != nil {
		result.SkipCommon = cloneBool(override.SkipCommon)
	}
	if len(override.SkipFiles) > 0 {
		result.SkipFiles = append([]string{}, utils.DeduplicatePatterns(override.SkipFiles)...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
