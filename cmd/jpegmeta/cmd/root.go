package cmd

import (
	"github.com/spf13/cobra"
)

const appName = "jpegmeta"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: appName + " - reads Exif/JPEG metadata",
	}

	rootCmd.AddCommand(DefineDumpCommand())
	rootCmd.AddCommand(DefineTagCommand())
	rootCmd.AddCommand(DefineThumbnailCommand())

	return rootCmd.Execute()
}
