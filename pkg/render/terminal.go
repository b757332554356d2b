package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
)

var titleCaser = cases.Title(language.AmericanEnglish)

const (
	heavyRule = "═════════════════════════════════════════════════════════════════"
	lightRule = "─────────────────────────────────────────────────────────────────"
)

// typeLabel turns an insight type into its display form, e.g.
// "pricing_friction" -> "Pricing Friction".
func typeLabel(t insight.InsightType) string {
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

func urgencyLabel(u insight.UrgencyLevel) string {
	return strings.ToUpper(string(u))
}

// WriteResultSummary prints the extraction headline: counts and the
// processing note, if any.
func WriteResultSummary(w io.Writer, result insight.ExtractionResult) {
	fmt.Fprintf(w, "Extracted %d insights\n", result.TotalInsights)
	fmt.Fprintf(w, "  Auto-routing:  %d (confidence >= %.0f%%)\n",
		result.HighConfidence, insight.ConfidenceThreshold*100)
	fmt.Fprintf(w, "  Human review:  %d (confidence < %.0f%%)\n",
		result.RoutedToReview, insight.ConfidenceThreshold*100)
	if result.ProcessingNote != "" {
		fmt.Fprintf(w, "\nNote: %s\n", result.ProcessingNote)
	}
}

// WriteAlert prints one routed alert as a readable block.
func WriteAlert(w io.Writer, alert insight.RoutedAlert) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "  ALERT ID:    %s\n", alert.AlertID)
	fmt.Fprintf(w, "  DESTINATION: %s\n", alert.Destination.DisplayName())
	fmt.Fprintf(w, "  URGENCY:     %s\n", urgencyLabel(alert.Urgency))
	fmt.Fprintf(w, "  TYPE:        %s\n", typeLabel(alert.Insight.InsightType))
	fmt.Fprintf(w, "  SLA:         Respond within %s\n", alert.ResponseSLA)
	if alert.RequiresResponse {
		fmt.Fprintln(w, "  STATUS:      ACTION REQUIRED")
	} else {
		fmt.Fprintln(w, "  STATUS:      FYI")
	}
	fmt.Fprintln(w, lightRule)
	fmt.Fprintf(w, "  ACCOUNT:     %s\n", alert.Metadata.AccountName)
	fmt.Fprintf(w, "  CSM:         %s\n", alert.Metadata.CSMName)
	fmt.Fprintf(w, "  CALL DATE:   %s\n", alert.Metadata.CallDate)
	fmt.Fprintln(w, lightRule)
	fmt.Fprintln(w, "  SUMMARY:")
	fmt.Fprintf(w, "  %s\n", alert.Insight.Summary)

	if alert.Insight.VerbatimQuote != nil {
		fmt.Fprintln(w, lightRule)
		fmt.Fprintln(w, "  VERBATIM QUOTE:")
		fmt.Fprintf(w, "  %q\n", *alert.Insight.VerbatimQuote)
	}
	if alert.Insight.CompetitorNamed != nil {
		fmt.Fprintf(w, "  COMPETITOR:  %s\n", *alert.Insight.CompetitorNamed)
	}
	if alert.Insight.FeatureRequested != nil {
		fmt.Fprintf(w, "  FEATURE:     %s\n", *alert.Insight.FeatureRequested)
	}
	if alert.Insight.BugDescription != nil {
		fmt.Fprintf(w, "  BUG:         %s\n", *alert.Insight.BugDescription)
	}
	if alert.Insight.SuggestedAction != nil {
		fmt.Fprintln(w, lightRule)
		fmt.Fprintln(w, "  SUGGESTED ACTION:")
		fmt.Fprintf(w, "  %s\n", *alert.Insight.SuggestedAction)
	}

	fmt.Fprintf(w, "  CONFIDENCE:  %.0f%%\n", alert.Insight.ConfidenceScore*100)
	fmt.Fprintln(w, heavyRule)
}

// WriteRoutingSummary prints a high-level view of where each insight went,
// grouped by destination.
func WriteRoutingSummary(w io.Writer, alerts []insight.RoutedAlert) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "  ROUTING SUMMARY")
	fmt.Fprintln(w, heavyRule)

	byDestination := map[insight.RoutingDestination][]insight.RoutedAlert{}
	for _, alert := range alerts {
		byDestination[alert.Destination] = append(byDestination[alert.Destination], alert)
	}

	destinations := make([]string, 0, len(byDestination))
	for dest := range byDestination {
		destinations = append(destinations, string(dest))
	}
	sort.Strings(destinations)

	for _, dest := range destinations {
		destAlerts := byDestination[insight.RoutingDestination(dest)]
		plural := ""
		if len(destAlerts) > 1 {
			plural = "s"
		}
		fmt.Fprintf(w, "\n  -> %s (%d insight%s)\n",
			insight.RoutingDestination(dest).DisplayName(), len(destAlerts), plural)
		for _, a := range destAlerts {
			flag := " "
			if a.RequiresResponse {
				flag = "!"
			}
			fmt.Fprintf(w, "     %s [%-8s] %s (%.0f%% confidence)\n",
				flag, urgencyLabel(a.Urgency), typeLabel(a.Insight.InsightType),
				a.Insight.ConfidenceScore*100)
		}
	}

	reviewCount := 0
	for _, a := range alerts {
		if a.Destination == insight.DestHumanReview {
			reviewCount++
		}
	}
	if reviewCount > 0 {
		fmt.Fprintf(w, "\n  %d insight(s) routed to Human Review\n", reviewCount)
		fmt.Fprintf(w, "  (confidence below %.0f%% threshold)\n", insight.ConfidenceThreshold*100)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
}

// WriteCSMConfirmation prints the closed-loop confirmation sent back to the
// CSM: the signal that their insight landed somewhere and will be acted on.
func WriteCSMConfirmation(w io.Writer, alert insight.RoutedAlert) {
	fmt.Fprintf(w, "\nINSIGHT CONFIRMED - %s\n", alert.AlertID)
	fmt.Fprintf(w, "   Your %s from %s has been routed to %s.\n",
		strings.ToLower(typeLabel(alert.Insight.InsightType)),
		alert.Metadata.AccountName,
		alert.Destination.DisplayName())
	fmt.Fprintf(w, "   Response SLA: %s\n", alert.ResponseSLA)
	fmt.Fprintf(w, "   Confidence: %.0f%%\n", alert.Insight.ConfidenceScore*100)
}

// WriteCSMConfirmations prints one confirmation per distinct alert ID, in
// order.
func WriteCSMConfirmations(w io.Writer, alerts []insight.RoutedAlert) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, lightRule)
	fmt.Fprintln(w, "  CSM CLOSED-LOOP CONFIRMATIONS")
	fmt.Fprintln(w, lightRule)
	seen := map[string]bool{}
	for _, alert := range alerts {
		if seen[alert.AlertID] {
			continue
		}
		seen[alert.AlertID] = true
		WriteCSMConfirmation(w, alert)
	}
}

// WriteRules prints the routing policy table.
func WriteRules(w io.Writer) {
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "  ROUTING RULES")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "  %-20s %-28s %-28s %s\n", "TYPE", "PRIMARY", "SECONDARY", "SLA")
	for _, t := range insight.InsightTypes {
		rule := insight.RoutingRules[t]
		secondary := "-"
		if rule.Secondary != "" {
			secondary = rule.Secondary.DisplayName()
		}
		fmt.Fprintf(w, "  %-20s %-28s %-28s %s\n",
			typeLabel(t), rule.Primary.DisplayName(), secondary, rule.SLA)
	}
	fmt.Fprintln(w, lightRule)
	fmt.Fprintf(w, "  Confidence threshold: %.2f (below routes to %s)\n",
		insight.ConfidenceThreshold, insight.DestHumanReview.DisplayName())
	fmt.Fprintf(w, "  Critical urgency SLA: %s\n", insight.CriticalSLA)
	fmt.Fprintln(w, heavyRule)
}
