package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.Mode {
	case "copy", "move":
	default:
		return fmt.Errorf("organize.mode must be \"copy\" or \"move\", got %q", c.Organize.Mode)
	}
	switch c.Organize.OnConflict {
	case "skip", "overwrite", "rename":
	default:
		return fmt.Errorf("organize.on_conflict must be \"skip\", \"overwrite\" or \"rename\", got %q", c.Organize.OnConflict)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
