package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tool-wide settings loaded from ~/.config/recall/config.yaml.
type Config struct {
	DatabasePath       string   `yaml:"database_path"`
	RetentionDays      int      `yaml:"retention_days"`
	MaxDatabaseSizeMB  int64    `yaml:"max_database_size_mb"`
	AnalysisSampleSize int      `yaml:"analysis_sample_size"`
	PrivacyFilter      []string `yaml:"privacy_filter"`
	PushURL            string   `yaml:"push_url"`
}

// DefaultConfig returns the settings used when no config file exists yet.
func DefaultConfig() Config {
	dir, err := configDir()
	if err != nil {
		dir = "."
	}
	return Config{
		DatabasePath:       filepath.Join(dir, "recall.db"),
		RetentionDays:      180,
		MaxDatabaseSizeMB:  100,
		AnalysisSampleSize: 500,
		PrivacyFilter:      []string{"password", "token", "secret", "apikey", "credential"},
		PushURL:            "",
	}
}

// configDir returns ~/.config/recall, creating it if needed.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".config", "recall")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the config file, writing defaults on first use.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if saveErr := cfg.Save(); saveErr != nil {
			return Config{}, fmt.Errorf("failed to write default configuration: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration back to disk.
func (c Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
