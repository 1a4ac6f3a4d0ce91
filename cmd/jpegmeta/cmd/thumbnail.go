package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riftlabs/jpegmeta"
)

func DefineThumbnailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "thumbnail <file.jpg> <out.jpg>",
		Short:        "Extract a JPEG's embedded IFD1 thumbnail, if present",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunThumbnail,
	}
	return cmd
}

func RunThumbnail(cmd *cobra.Command, args []string) error {
	data, err := jpegmeta.GetThumbnail(args[0], jpegmeta.Options{})
	if err != nil {
		return err
	}
	if len(data) == 0 {
		fmt.Fprintln(os.Stderr, "no thumbnail found")
		return nil
	}
	return os.WriteFile(args[1], data, 0o644)
}
