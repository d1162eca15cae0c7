// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

const (
	RulesFileName   = "rules.yaml"
	ConfigDirectory = ".config/sjd"
	DataDirectory   = ".local/share/sjd"
)

var Config = cliconfig{}

type cliconfig struct{}

func (cliconfig) ConfigDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory)
}

func (cliconfig) DataDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

// RulesFilePath is where the sort rule list lives unless a compare run
// overrides it with --rules.
func (cliconfig) RulesFilePath() string {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return RulesFileName
	}

	return filepath.Join(configPath, RulesFileName)
}

func (cliconfig) EnsureConfigDirectory() error {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure sjd config directory")
	}

	return os.MkdirAll(configPath, 0700)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure sjd data directory")
	}

	return os.MkdirAll(dataPath, 0700)
}

func (cliconfig) EnsureClientID() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure sjd data directory")
	}

	idFile := filepath.Join(dataPath, "client_id")
	if _, err := os.Stat(idFile); os.IsNotExist(err) {
		err := os.WriteFile(idFile, []byte(ksuid.New().String()), 0600)
		if err != nil {
			return fmt.Errorf("failed to create ID file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check ID file: %w", err)
	}

	return nil
}

func (cliconfig) ClientID() (string, error) {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return "", fmt.Errorf("failed to locate sjd data directory")
	}

	id, err := os.ReadFile(filepath.Join(dataPath, "client_id"))
	if err != nil {
		return "", fmt.Errorf("failed to read client ID: %w", err)
	}

	return string(id), nil
}
