package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
	"github.com/otherjamesbrown/callsight-cli/pkg/render"
)

var rulesOutput string

// ruleDocument is the JSON shape for one routing rule.
type ruleDocument struct {
	InsightType string  `json:"insight_type"`
	Primary     string  `json:"primary"`
	Secondary   *string `json:"secondary"`
	SLA         string  `json:"sla"`
}

// rulesDocument is the JSON shape for the full routing policy.
type rulesDocument struct {
	Rules               []ruleDocument `json:"rules"`
	ConfidenceThreshold float64        `json:"confidence_threshold"`
	CriticalSLA         string         `json:"critical_sla"`
	DefaultSLA          string         `json:"default_sla"`
	ReviewDestination   string         `json:"review_destination"`
}

// NewRulesCommand creates the rules command, which prints the active
// routing policy without running any extraction.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the insight routing rules",
		Long: `Show the routing policy: which destination each insight type maps to,
the secondary destination where one exists, the response SLA per type, and
the confidence threshold below which insights are sent to human review.

The rules are defined in the codebase and apply to every extraction run.`,
		Example: `  # Human-readable policy table
  callsight rules

  # Machine-readable policy for tooling
  callsight rules --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch rulesOutput {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(buildRulesDocument())
			case "", "terminal":
				render.WriteRules(cmd.OutOrStdout())
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (want terminal or json)", rulesOutput)
			}
		},
	}

	cmd.Flags().StringVarP(&rulesOutput, "output", "o", "", "Output format: terminal or json")
	return cmd
}

func buildRulesDocument() rulesDocument {
	doc := rulesDocument{
		Rules:               make([]ruleDocument, 0, len(insight.InsightTypes)),
		ConfidenceThreshold: insight.ConfidenceThreshold,
		CriticalSLA:         insight.CriticalSLA,
		DefaultSLA:          insight.DefaultSLA,
		ReviewDestination:   string(insight.DestHumanReview),
	}
	for _, typ := range insight.InsightTypes {
		rule := insight.RoutingRules[typ]
		entry := ruleDocument{
			InsightType: string(typ),
			Primary:     string(rule.Primary),
			SLA:         rule.SLA,
		}
		if rule.Secondary != "" {
			secondary := string(rule.Secondary)
			entry.Secondary = &secondary
		}
		doc.Rules = append(doc.Rules, entry)
	}
	return doc
}
