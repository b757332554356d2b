// Package main provides the callsight CLI entry point.
// callsight extracts structured insights from customer call transcripts
// and routes them to the teams that need to act on them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/callsight-cli/cmd"
	"github.com/otherjamesbrown/callsight-cli/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "callsight",
	Short: "Customer call insight extraction and routing",
	Long: `callsight turns raw customer call transcripts into routed, actionable
alerts.

A transcript is sent to a completion model with a strict output contract;
the response is validated, each insight is assigned a destination from the
routing rules, and alerts are emitted ordered by urgency. Low-confidence
insights go to human review instead of being auto-routed.

COMMON WORKFLOWS:
  Extract insights:  callsight extract call_transcript.txt
  JSON integration:  callsight extract call_transcript.txt --output json
  Inspect policy:    callsight rules
  Configure API key: callsight auth set-key`,
	Version:       buildinfo.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cmd.ConfigFile, "config", "", "Config file (default ~/.callsight/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&cmd.Debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(cmd.NewExtractCommand(nil))
	rootCmd.AddCommand(cmd.NewRulesCommand())
	rootCmd.AddCommand(cmd.NewAuthCommand(nil))
	rootCmd.AddCommand(cmd.NewVersionCommand())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
