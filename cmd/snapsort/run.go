package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/pipeline"
	"snapsort/internal/relocate"
	"snapsort/internal/services"
)

type organizeFlags struct {
	configPath  string
	source      string
	destination string
	copyMode    bool
	dryRun      bool
}

func runOrganize(cmd *cobra.Command, flags organizeFlags) error {
	if strings.TrimSpace(flags.source) == "" {
		return services.Wrap(services.ErrConfiguration, "start", "parse flags", "--src must be provided", nil)
	}

	cfg, _, configExists, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	source, err := config.ExpandPath(flags.source)
	if err != nil {
		return err
	}
	destination := strings.TrimSpace(flags.destination)
	if destination == "" {
		// Falling back to paths.library_dir is only safe when the operator
		// actually wrote a config file; the built-in default would silently
		// relocate into the home directory.
		if !configExists {
			return services.Wrap(services.ErrConfiguration, "start", "parse flags", "--dest must be provided when no config file sets paths.library_dir", nil)
		}
		destination = cfg.Paths.LibraryDir
	} else if destination, err = config.ExpandPath(destination); err != nil {
		return err
	}

	mode := relocate.ModeMove
	if flags.copyMode || cfg.Organize.Mode == "copy" {
		mode = relocate.ModeCopy
	}

	run := pipeline.RunConfig{
		Source:      source,
		Destination: destination,
		Mode:        mode,
		DryRun:      flags.dryRun,
	}

	runID := uuid.NewString()
	ctx := services.WithRunID(cmd.Context(), runID)
	logger.Info("starting run",
		logging.String("run_id", runID),
		logging.String("source", source),
		logging.String("destination", destination),
		logging.String("mode", mode.String()),
		logging.Bool("dry_run", run.DryRun),
	)

	runner := pipeline.New(cfg, run, logger, newProgressSink(cmd.ErrOrStderr()))
	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if run.DryRun {
		fmt.Fprintln(out, "Dry run: no files were modified.")
	}
	fmt.Fprintln(out, renderSummary(summary))
	return nil
}
