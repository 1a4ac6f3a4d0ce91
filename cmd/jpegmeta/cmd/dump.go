package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/riftlabs/jpegmeta"
	"github.com/riftlabs/jpegmeta/exif/tag"
)

func DefineDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dump <file.jpg>",
		Short:        "Dump a JPEG file's full parsed metadata as JSON",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunDump,
	}
	cmd.Flags().Bool("scan-image-data", false, "walk entropy-coded scan data instead of stopping at the first SOS")
	return cmd
}

func RunDump(cmd *cobra.Command, args []string) error {
	parseImageData, _ := cmd.Flags().GetBool("scan-image-data")

	raw, err := jpegmeta.ParseRaw(args[0], jpegmeta.Options{ParseImageData: parseImageData})
	if err != nil && raw == nil {
		return err
	}

	doc := map[string]interface{}{
		"frame":             raw.Frame,
		"image_tags":        valuesOf(raw.ImageEntries),
		"thumbnail_tags":    valuesOf(raw.ThumbnailEntries),
		"has_thumbnail":     len(raw.Thumbnail) > 0,
		"thumbnail_heuristic": raw.ThumbnailHeuristic,
		"has_jfif":          len(raw.JFIF) > 0,
		"has_xmp":           len(raw.XMP) > 0,
		"warnings":          raw.Warnings,
	}
	if err != nil {
		doc["error"] = err.Error()
	}

	buf, merr := json.Marshal(doc)
	if merr != nil {
		return merr
	}

	fmt.Println(string(pretty.Pretty(buf)))
	return nil
}

func valuesOf(tags map[tag.ID]tag.Tag) map[string]interface{} {
	out := make(map[string]interface{}, len(tags))
	for id, t := range tags {
		out[fmt.Sprintf("0x%04X", uint16(id))] = t.Value()
	}
	return out
}
