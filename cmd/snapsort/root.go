package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags organizeFlags

	rootCmd := &cobra.Command{
		Use:   "snapsort",
		Short: "Organize photos and videos into a dated library",
		Long: `snapsort places media files under <library>/<year>/<month>/<day>/ based on
each file's embedded capture date. The source may be a directory tree or a
zip archive; files without a resolvable date are reported and left alone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&flags.source, "src", "", "Source directory or zip archive (required)")
	rootCmd.Flags().StringVar(&flags.destination, "dest", "", "Destination library root (defaults to paths.library_dir)")
	rootCmd.Flags().BoolVar(&flags.copyMode, "copy", false, "Copy files instead of moving them")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Preview the plan without touching the filesystem")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
