package config

const (
	defaultLibraryDir = "~/pictures/library"
	defaultStagingDir = "~/.local/share/snapsort/staging"
	defaultMode       = "move"
	defaultOnConflict = "skip"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			StagingDir: defaultStagingDir,
		},
		Organize: Organize{
			Mode:       defaultMode,
			OnConflict: defaultOnConflict,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
