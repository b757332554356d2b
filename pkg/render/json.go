// Package render formats extraction results and routed alerts for the CLI
// surface, as human-readable text or as a JSON document for downstream
// system integration.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
)

// AlertDocument is the integration-facing JSON shape for one routed alert.
// Production use: post to a webhook, trigger email, feed a dashboard.
type AlertDocument struct {
	AlertID          string          `json:"alert_id"`
	Destination      string          `json:"destination"`
	Urgency          string          `json:"urgency"`
	ResponseSLA      string          `json:"response_sla"`
	RequiresResponse bool            `json:"requires_response"`
	Insight          InsightDocument `json:"insight"`
	Account          AccountDocument `json:"account"`
}

// InsightDocument carries the insight fields of an alert document.
type InsightDocument struct {
	Type             string  `json:"type"`
	Summary          string  `json:"summary"`
	VerbatimQuote    *string `json:"verbatim_quote"`
	Sentiment        string  `json:"sentiment"`
	ConfidenceScore  float64 `json:"confidence_score"`
	SuggestedAction  *string `json:"suggested_action"`
	CompetitorNamed  *string `json:"competitor_named"`
	FeatureRequested *string `json:"feature_requested"`
	BugDescription   *string `json:"bug_description"`
}

// AccountDocument carries the call attribution fields of an alert document.
type AccountDocument struct {
	Name        string  `json:"name"`
	CSM         string  `json:"csm"`
	CallDate    string  `json:"call_date"`
	ARR         *string `json:"arr"`
	RenewalDate *string `json:"renewal_date"`
}

// BuildAlertDocuments converts routed alerts to their integration shape,
// preserving order.
func BuildAlertDocuments(alerts []insight.RoutedAlert) []AlertDocument {
	docs := make([]AlertDocument, 0, len(alerts))
	for _, alert := range alerts {
		docs = append(docs, AlertDocument{
			AlertID:          alert.AlertID,
			Destination:      string(alert.Destination),
			Urgency:          string(alert.Urgency),
			ResponseSLA:      alert.ResponseSLA,
			RequiresResponse: alert.RequiresResponse,
			Insight: InsightDocument{
				Type:             string(alert.Insight.InsightType),
				Summary:          alert.Insight.Summary,
				VerbatimQuote:    alert.Insight.VerbatimQuote,
				Sentiment:        string(alert.Insight.Sentiment),
				ConfidenceScore:  alert.Insight.ConfidenceScore,
				SuggestedAction:  alert.Insight.SuggestedAction,
				CompetitorNamed:  alert.Insight.CompetitorNamed,
				FeatureRequested: alert.Insight.FeatureRequested,
				BugDescription:   alert.Insight.BugDescription,
			},
			Account: AccountDocument{
				Name:        alert.Metadata.AccountName,
				CSM:         alert.Metadata.CSMName,
				CallDate:    alert.Metadata.CallDate,
				ARR:         alert.Metadata.AccountARR,
				RenewalDate: alert.Metadata.RenewalDate,
			},
		})
	}
	return docs
}

// WriteAlertsJSON serializes all routed alerts to indented JSON.
func WriteAlertsJSON(w io.Writer, alerts []insight.RoutedAlert) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(BuildAlertDocuments(alerts)); err != nil {
		return fmt.Errorf("encode alerts: %w", err)
	}
	return nil
}
