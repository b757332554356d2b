// Package cmd provides CLI commands for the callsight tool.
package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/callsight-cli/config"
	"github.com/otherjamesbrown/callsight-cli/pkg/credentials"
	"github.com/otherjamesbrown/callsight-cli/pkg/extractor"
	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
	"github.com/otherjamesbrown/callsight-cli/pkg/logging"
	"github.com/otherjamesbrown/callsight-cli/pkg/observability"
	"github.com/otherjamesbrown/callsight-cli/pkg/provider"
	"github.com/otherjamesbrown/callsight-cli/pkg/render"
	"github.com/otherjamesbrown/callsight-cli/pkg/router"
	"github.com/otherjamesbrown/callsight-cli/pkg/transcript"
)

// Global flags set by the root command.
var (
	// ConfigFile overrides the default config file location when set.
	ConfigFile string
	// Debug forces debug logging regardless of config.
	Debug bool
)

// loadCLIConfig loads the CLI config, honoring the root --config flag.
func loadCLIConfig() (*config.CLIConfig, error) {
	if ConfigFile != "" {
		return config.LoadConfigFromFile(ConfigFile)
	}
	return config.LoadConfig()
}

// Extract command flags
var (
	extractOutput string
	extractModel  string
	extractMock   bool
)

// ExtractCommandDeps holds the dependencies for the extract command.
type ExtractCommandDeps struct {
	LoadConfig     func() (*config.CLIConfig, error)
	LoadTranscript func(path string) (string, insight.CallMetadata, error)
	ResolveAPIKey  func() (string, error)
	NewProvider    func(ctx context.Context, apiKey, model string) (provider.CompletionProvider, error)
	NewLogger      func(cfg *config.CLIConfig) logging.Logger
}

// DefaultExtractDeps returns the default dependencies for production use.
func DefaultExtractDeps() *ExtractCommandDeps {
	return &ExtractCommandDeps{
		LoadConfig:     loadCLIConfig,
		LoadTranscript: transcript.Load,
		ResolveAPIKey:  credentials.NewStore().APIKey,
		NewProvider: func(ctx context.Context, apiKey, model string) (provider.CompletionProvider, error) {
			return provider.NewGeminiProvider(ctx, apiKey, model)
		},
		NewLogger: newCommandLogger,
	}
}

// Pipeline metrics live on the default registry. Registration must happen
// once per process even when the command runs repeatedly in tests.
var (
	pipelineMetricsOnce sync.Once
	pipelineMetrics     *observability.PipelineMetrics
)

func commandMetrics() *observability.PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = observability.DefaultPipelineMetrics()
	})
	return pipelineMetrics
}

// newCommandLogger builds the logger shared by commands that run the
// pipeline. Output goes to stderr so stdout stays clean for results.
func newCommandLogger(cfg *config.CLIConfig) logging.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Component = "callsight"
	if cfg.Debug {
		logCfg.Level = logging.LevelDebug
	}
	return logging.NewLogger(logCfg)
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(deps *ExtractCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultExtractDeps()
	}

	cmd := &cobra.Command{
		Use:   "extract <transcript-file>",
		Short: "Extract and route insights from a call transcript",
		Long: `Extract structured insights from a customer call transcript and route
them to the teams that need to act on them.

The transcript file may start with a metadata header block (CSM, ACCOUNT,
ARR, CALL DATE, ...) terminated by a "---" line; missing header fields get
sensible defaults.

Each extracted insight is validated against the output contract, assigned
a routing destination from the routing rules, and emitted as an alert.
Insights below the confidence threshold are routed to human review instead
of being auto-routed.

If the model's first response fails validation, a simplified retry prompt
is attempted once. If both attempts fail, the command still succeeds and
reports zero insights with a processing note; only transport-level
failures (timeouts, rate limits, model unavailable) exit non-zero.`,
		Example: `  # Extract and show alerts in the terminal
  callsight extract call_transcript.txt

  # Emit routed alerts as JSON for downstream systems
  callsight extract call_transcript.txt --output json

  # Exercise the full pipeline without an API key
  callsight extract call_transcript.txt --mock`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, deps, args[0])
		},
	}

	cmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output format: terminal or json (overrides config)")
	cmd.Flags().StringVar(&extractModel, "model", "", "Completion model to use (overrides config)")
	cmd.Flags().BoolVar(&extractMock, "mock", false, "Use a canned model response instead of calling the API")

	return cmd
}

func runExtract(cmd *cobra.Command, deps *ExtractCommandDeps, path string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if extractModel != "" {
		cfg.Model = extractModel
	}
	if extractOutput != "" {
		cfg.OutputFormat = config.OutputFormat(extractOutput)
	}
	if Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := deps.NewLogger(cfg)

	body, meta, err := deps.LoadTranscript(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("transcript %s has no body text", path)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	prov, err := buildProvider(ctx, deps, cfg)
	if err != nil {
		return err
	}
	defer prov.Close()

	metrics := commandMetrics()
	engine := extractor.NewEngine(prov, logger,
		extractor.WithMetrics(metrics),
		extractor.WithMaxTokens(cfg.MaxTokens),
	)
	insights, note, err := engine.Extract(ctx, body, meta)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	result := insight.BuildResult(meta, insights, note)
	if result.TotalInsights == 0 && note == "" {
		result = insight.EmptyResult(meta)
	}
	alerts := router.New(logger, router.WithMetrics(metrics)).RouteAll(result)

	out := cmd.OutOrStdout()
	if cfg.OutputFormat == config.OutputFormatJSON {
		return render.WriteAlertsJSON(out, alerts)
	}

	render.WriteResultSummary(out, result)
	for _, alert := range alerts {
		render.WriteAlert(out, alert)
	}
	render.WriteRoutingSummary(out, alerts)
	render.WriteCSMConfirmations(out, alerts)
	return nil
}

func buildProvider(ctx context.Context, deps *ExtractCommandDeps, cfg *config.CLIConfig) (provider.CompletionProvider, error) {
	if extractMock {
		return provider.NewCannedProvider(mockExtractionResponse), nil
	}
	apiKey, err := deps.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	prov, err := deps.NewProvider(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("initializing provider: %w", err)
	}
	return prov, nil
}
