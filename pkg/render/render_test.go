package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
)

func strptr(s string) *string { return &s }

func sampleAlert() insight.RoutedAlert {
	return insight.RoutedAlert{
		AlertID:          "CS-20260602-AB12CD34",
		Destination:      insight.DestSalesLeadership,
		Urgency:          insight.UrgencyHigh,
		RequiresResponse: true,
		ResponseSLA:      "48 hours",
		Insight: insight.ExtractedInsight{
			InsightType:     insight.TypeCompetitorMention,
			Summary:         "Customer mentioned a competitor demo.",
			VerbatimQuote:   strptr("We had a demo with Marchex last month."),
			Sentiment:       insight.SentimentNegative,
			Urgency:         insight.UrgencyHigh,
			ConfidenceScore: 0.96,
			RoutingTarget:   insight.DestSalesLeadership,
			CompetitorNamed: strptr("Marchex"),
			ActionRequired:  true,
			SuggestedAction: strptr("Alert Sales Leadership."),
		},
		Metadata: insight.CallMetadata{
			CSMName:     "Dana Alvarez",
			AccountName: "Acme Financial",
			AccountARR:  strptr("$84,000"),
			CallDate:    "June 2, 2026",
		},
	}
}

func TestWriteAlert(t *testing.T) {
	var buf bytes.Buffer
	WriteAlert(&buf, sampleAlert())
	out := buf.String()

	assert.Contains(t, out, "CS-20260602-AB12CD34")
	assert.Contains(t, out, "Sales Leadership")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "Competitor Mention")
	assert.Contains(t, out, "Respond within 48 hours")
	assert.Contains(t, out, "ACTION REQUIRED")
	assert.Contains(t, out, "Acme Financial")
	assert.Contains(t, out, "Marchex")
	assert.Contains(t, out, "96%")
}

func TestWriteAlertOmitsAbsentOptionals(t *testing.T) {
	alert := sampleAlert()
	alert.Insight.VerbatimQuote = nil
	alert.Insight.CompetitorNamed = nil
	alert.Insight.SuggestedAction = nil
	alert.RequiresResponse = false

	var buf bytes.Buffer
	WriteAlert(&buf, alert)
	out := buf.String()

	assert.NotContains(t, out, "VERBATIM QUOTE")
	assert.NotContains(t, out, "COMPETITOR:")
	assert.NotContains(t, out, "SUGGESTED ACTION")
	assert.Contains(t, out, "FYI")
}

func TestWriteResultSummary(t *testing.T) {
	result := insight.ExtractionResult{
		TotalInsights:  3,
		HighConfidence: 2,
		RoutedToReview: 1,
		ProcessingNote: "FALLBACK USED. recovered",
	}

	var buf bytes.Buffer
	WriteResultSummary(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "Extracted 3 insights")
	assert.Contains(t, out, "Auto-routing:  2")
	assert.Contains(t, out, "Human review:  1")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "FALLBACK USED. recovered")
}

func TestWriteRoutingSummary(t *testing.T) {
	review := sampleAlert()
	review.Destination = insight.DestHumanReview
	review.Insight.RoutingTarget = insight.DestHumanReview

	var buf bytes.Buffer
	WriteRoutingSummary(&buf, []insight.RoutedAlert{sampleAlert(), review})
	out := buf.String()

	assert.Contains(t, out, "ROUTING SUMMARY")
	assert.Contains(t, out, "Sales Leadership (1 insight)")
	assert.Contains(t, out, "Human Review Queue (1 insight)")
	assert.Contains(t, out, "1 insight(s) routed to Human Review")
}

func TestWriteCSMConfirmationsDeduplicates(t *testing.T) {
	a := sampleAlert()
	dup := sampleAlert()
	other := sampleAlert()
	other.AlertID = "CS-20260602-FFFFFFFF"

	var buf bytes.Buffer
	WriteCSMConfirmations(&buf, []insight.RoutedAlert{a, dup, other})
	out := buf.String()

	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("CS-20260602-AB12CD34")))
	assert.Contains(t, out, "CS-20260602-FFFFFFFF")
	assert.Contains(t, out, "competitor mention")
}

func TestWriteRules(t *testing.T) {
	var buf bytes.Buffer
	WriteRules(&buf)
	out := buf.String()

	assert.Contains(t, out, "ROUTING RULES")
	for _, typ := range insight.InsightTypes {
		rule := insight.RoutingRules[typ]
		assert.Contains(t, out, rule.Primary.DisplayName())
	}
	assert.Contains(t, out, "0.75")
	assert.Contains(t, out, insight.CriticalSLA)
}

func TestWriteAlertsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAlertsJSON(&buf, []insight.RoutedAlert{sampleAlert()}))

	var docs []AlertDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "CS-20260602-AB12CD34", doc.AlertID)
	assert.Equal(t, "sales_leadership", doc.Destination)
	assert.Equal(t, "high", doc.Urgency)
	assert.Equal(t, "competitor_mention", doc.Insight.Type)
	require.NotNil(t, doc.Insight.CompetitorNamed)
	assert.Equal(t, "Marchex", *doc.Insight.CompetitorNamed)
	assert.Nil(t, doc.Insight.BugDescription)
	assert.Equal(t, "Acme Financial", doc.Account.Name)
	require.NotNil(t, doc.Account.ARR)
	assert.Equal(t, "$84,000", *doc.Account.ARR)
	assert.Nil(t, doc.Account.RenewalDate)
}

func TestWriteAlertsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAlertsJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
