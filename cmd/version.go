package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/callsight-cli/pkg/buildinfo"
	"github.com/otherjamesbrown/callsight-cli/pkg/extractor"
)

var versionJSON bool

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			if versionJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(struct {
					buildinfo.Info
					PromptVersion string `json:"prompt_version"`
				}{info, extractor.PromptVersion})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "callsight %s\n", buildinfo.String())
			fmt.Fprintf(cmd.OutOrStdout(), "go: %s\n", info.GoVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "prompt version: %s\n", extractor.PromptVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
	return cmd
}
