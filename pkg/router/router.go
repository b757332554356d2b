// Package router assigns validated insights to stakeholder queues with a
// response deadline and a unique alert identity for closed-loop tracking.
//
// Routing is data-driven: insight type maps to a destination and SLA via
// insight.RoutingRules, with two explicit overrides applied on top. The
// validator already forced low-confidence insights to the human review
// queue; the router collapses the SLA to insight.CriticalSLA when urgency
// is critical.
package router

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
	"github.com/otherjamesbrown/callsight-cli/pkg/logging"
	"github.com/otherjamesbrown/callsight-cli/pkg/observability"
)

// Router routes insights to stakeholder destinations.
type Router struct {
	logger  logging.Logger
	metrics *observability.PipelineMetrics
	now     func() time.Time
}

// Option configures the router.
type Option func(*Router)

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(r *Router) { r.metrics = m }
}

// WithClock overrides the clock used for alert ID date stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// New creates a router.
func New(logger logging.Logger, opts ...Option) *Router {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	r := &Router{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route routes a single validated insight and returns a fully populated
// alert ready for delivery.
func (r *Router) Route(ins insight.ExtractedInsight, meta insight.CallMetadata) insight.RoutedAlert {
	sla := responseSLA(ins)
	if ins.Urgency == insight.UrgencyCritical {
		r.logger.Info("critical urgency, SLA collapsed",
			logging.F("insight_type", string(ins.InsightType)),
			logging.F("sla", sla),
		)
	}

	alert := insight.RoutedAlert{
		Destination:      ins.RoutingTarget,
		Urgency:          ins.Urgency,
		Insight:          ins,
		Metadata:         meta,
		AlertID:          r.newAlertID(),
		RequiresResponse: ins.ActionRequired,
		ResponseSLA:      sla,
	}

	r.logger.Info("insight routed",
		logging.F("alert_id", alert.AlertID),
		logging.F("insight_type", string(ins.InsightType)),
		logging.F("destination", string(alert.Destination)),
		logging.F("confidence", ins.ConfidenceScore),
		logging.F("urgency", string(ins.Urgency)),
		logging.F("sla", sla),
	)
	if r.metrics != nil {
		r.metrics.AlertsRoutedTotal.WithLabelValues(string(alert.Destination), string(alert.Urgency)).Inc()
	}

	return alert
}

// RouteAll routes every insight in the result and returns the alerts
// ordered most-urgent first. The sort is stable: insights sharing an
// urgency keep their original relative order.
func (r *Router) RouteAll(result insight.ExtractionResult) []insight.RoutedAlert {
	alerts := make([]insight.RoutedAlert, 0, len(result.Insights))
	for _, ins := range result.Insights {
		alerts = append(alerts, r.Route(ins, result.Metadata))
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Urgency.Rank() < alerts[j].Urgency.Rank()
	})

	return alerts
}

// responseSLA selects the deadline: critical urgency wins over the table
// entry, and an unknown type falls back to the default.
func responseSLA(ins insight.ExtractedInsight) string {
	if ins.Urgency == insight.UrgencyCritical {
		return insight.CriticalSLA
	}
	if rule, ok := insight.RoutingRules[ins.InsightType]; ok {
		return rule.SLA
	}
	return insight.DefaultSLA
}

// newAlertID generates an identity unique across the run, combining a date
// stamp with a random component. Uniqueness serves downstream deduplication
// of CSM confirmations, not unforgeability.
func (r *Router) newAlertID() string {
	random := strings.ToUpper(uuid.New().String()[:8])
	return "CS-" + r.now().Format("20060102") + "-" + random
}
