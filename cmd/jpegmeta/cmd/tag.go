package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/riftlabs/jpegmeta"
	"github.com/riftlabs/jpegmeta/exif/tag"
)

func DefineTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tag <file.jpg> <tag-id>",
		Short:        "Look up a single image-Exif tag (e.g. 0x010F or 271)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunTag,
	}
	return cmd
}

func RunTag(cmd *cobra.Command, args []string) error {
	id, err := parseTagID(args[1])
	if err != nil {
		return err
	}

	t, ok, err := jpegmeta.TryGetTag(args[0], id, jpegmeta.Options{})
	if err != nil && !ok {
		return err
	}
	if !ok {
		fmt.Println("null")
		return nil
	}

	buf, merr := json.Marshal(t.Value())
	if merr != nil {
		return merr
	}
	fmt.Println(string(pretty.Pretty(buf)))
	return nil
}

// parseTagID accepts "0x010F"/"0X010F" as hex, anything else as decimal
// (e.g. "271").
func parseTagID(s string) (tag.ID, error) {
	base := 10
	if rest := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"); rest != s {
		s, base = rest, 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid tag id %q: %w", s, err)
	}
	return tag.ID(v), nil
}
