package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration to dir. An existing
// configuration is left untouched.
func Initialize(dir string, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return initialize(afero.NewBasePathFs(afero.NewOsFs(), dir), logger)
}

func initialize(fs afero.Fs, logger *log.Logger) error {
	exists, err := afero.Exists(fs, ConfigurationName)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("%s already exists, skipping", ConfigurationName)
		return nil
	}

	logger.Printf("writing %s", ConfigurationName)
	if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0644); err != nil {
		return fmt.Errorf("couldn't write configuration: %w", err)
	}
	return nil
}
