package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sigreer/shelfctl/internal/db"
	"github.com/sigreer/shelfctl/internal/nvme"
	"github.com/sigreer/shelfctl/internal/ses"
)

type Config struct {
	DatabasePath string `yaml:"database_path,omitempty"`

	// Sysfs roots, overridable for development on non-appliance machines
	EnclosureRoot string `yaml:"enclosure_root,omitempty"`
	PCISlotRoot   string `yaml:"pci_slot_root,omitempty"`

	Logging Logging `yaml:"logging"`
}

type Logging struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console or json
	File   File   `yaml:"file"`
}

type File struct {
	Filename   string `yaml:"filename,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// defaultConfig provides baseline settings
var defaultConfig = Config{
	DatabasePath:  db.DefaultPath,
	EnclosureRoot: ses.DefaultEnclosureRoot,
	PCISlotRoot:   nvme.DefaultPCISlotRoot,
	Logging: Logging{
		Level:  "info",
		Format: "console",
	},
}

func Load(path string) (*Config, error) {
	if path == "" {
		// Try default locations
		candidates := []string{
			"/etc/shelfctl/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/shelfctl/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = db.DefaultPath
	}
	if cfg.EnclosureRoot == "" {
		cfg.EnclosureRoot = ses.DefaultEnclosureRoot
	}
	if cfg.PCISlotRoot == "" {
		cfg.PCISlotRoot = nvme.DefaultPCISlotRoot
	}

	return &cfg, nil
}
