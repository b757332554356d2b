package router

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
	"github.com/otherjamesbrown/callsight-cli/pkg/logging"
)

func testRouter() *Router {
	fixed := time.Date(2026, 6, 2, 15, 0, 0, 0, time.UTC)
	return New(logging.NewNopLogger(), WithClock(func() time.Time { return fixed }))
}

func TestRoute(t *testing.T) {
	r := testRouter()
	meta := insight.CallMetadata{AccountName: "Acme Financial", CSMName: "Dana Alvarez"}

	t.Run("destination follows the validated routing target", func(t *testing.T) {
		ins := insight.ExtractedInsight{
			InsightType:    insight.TypeBugReport,
			Urgency:        insight.UrgencyHigh,
			RoutingTarget:  insight.DestEngineering,
			ActionRequired: true,
		}
		alert := r.Route(ins, meta)
		assert.Equal(t, insight.DestEngineering, alert.Destination)
		assert.Equal(t, "24 hours", alert.ResponseSLA)
		assert.True(t, alert.RequiresResponse)
		assert.Equal(t, meta, alert.Metadata)
	})

	t.Run("critical urgency collapses the SLA", func(t *testing.T) {
		ins := insight.ExtractedInsight{
			InsightType:   insight.TypeFeatureRequest,
			Urgency:       insight.UrgencyCritical,
			RoutingTarget: insight.DestProductManagement,
		}
		alert := r.Route(ins, meta)
		assert.Equal(t, insight.CriticalSLA, alert.ResponseSLA)
	})

	t.Run("human review target is preserved", func(t *testing.T) {
		ins := insight.ExtractedInsight{
			InsightType:   insight.TypeChurnSignal,
			Urgency:       insight.UrgencyMedium,
			RoutingTarget: insight.DestHumanReview,
		}
		alert := r.Route(ins, meta)
		assert.Equal(t, insight.DestHumanReview, alert.Destination)
		// Review routing does not change the SLA policy for the type.
		assert.Equal(t, "24 hours", alert.ResponseSLA)
	})

	t.Run("unknown type gets the default SLA", func(t *testing.T) {
		ins := insight.ExtractedInsight{
			InsightType:   insight.InsightType("mystery"),
			Urgency:       insight.UrgencyLow,
			RoutingTarget: insight.DestHumanReview,
		}
		alert := r.Route(ins, meta)
		assert.Equal(t, insight.DefaultSLA, alert.ResponseSLA)
	})
}

func TestAlertIDFormat(t *testing.T) {
	r := testRouter()
	alert := r.Route(insight.ExtractedInsight{
		InsightType:   insight.TypeBugReport,
		Urgency:       insight.UrgencyLow,
		RoutingTarget: insight.DestEngineering,
	}, insight.CallMetadata{})

	parts := strings.Split(alert.AlertID, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "CS", parts[0])
	assert.Equal(t, "20260602", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestAlertIDsAreUnique(t *testing.T) {
	r := testRouter()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		alert := r.Route(insight.ExtractedInsight{
			InsightType:   insight.TypeBugReport,
			Urgency:       insight.UrgencyLow,
			RoutingTarget: insight.DestEngineering,
		}, insight.CallMetadata{})
		assert.False(t, seen[alert.AlertID], "duplicate alert ID %s", alert.AlertID)
		seen[alert.AlertID] = true
	}
}

func TestRouteAllOrdersByUrgency(t *testing.T) {
	r := testRouter()

	mk := func(summary string, urgency insight.UrgencyLevel) insight.ExtractedInsight {
		return insight.ExtractedInsight{
			InsightType:   insight.TypeGeneralFeedback,
			Summary:       summary,
			Urgency:       urgency,
			RoutingTarget: insight.DestProductManagement,
		}
	}

	result := insight.BuildResult(insight.CallMetadata{}, []insight.ExtractedInsight{
		mk("first low", insight.UrgencyLow),
		mk("first critical", insight.UrgencyCritical),
		mk("first medium", insight.UrgencyMedium),
		mk("second critical", insight.UrgencyCritical),
		mk("first high", insight.UrgencyHigh),
		mk("second low", insight.UrgencyLow),
	}, "")

	alerts := r.RouteAll(result)
	require.Len(t, alerts, 6)

	got := make([]string, 0, len(alerts))
	for _, a := range alerts {
		got = append(got, a.Insight.Summary)
	}

	// Stable sort: same-urgency insights keep their response order.
	assert.Equal(t, []string{
		"first critical",
		"second critical",
		"first high",
		"first medium",
		"first low",
		"second low",
	}, got)
}

func TestRouteAllEmpty(t *testing.T) {
	alerts := testRouter().RouteAll(insight.EmptyResult(insight.CallMetadata{}))
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
