// Package insight defines the schema for structured insights extracted from
// customer call transcripts: the closed classification vocabularies, the
// records that flow through the pipeline, and the routing policy table.
//
// The schema is the contract between the extraction engine and the routing
// layer. When the model returns unexpected structure, it is rejected here,
// not silently downstream.
package insight

// InsightType is the classification taxonomy for extracted insights.
// Every insight must be one of these types; there is no free-text
// classification.
type InsightType string

const (
	TypeCompetitorMention InsightType = "competitor_mention"
	TypeFeatureRequest    InsightType = "feature_request"
	TypeBugReport         InsightType = "bug_report"
	TypePricingFriction   InsightType = "pricing_friction"
	TypeChurnSignal       InsightType = "churn_signal"
	TypePositiveSignal    InsightType = "positive_signal"
	TypeGeneralFeedback   InsightType = "general_feedback"
)

// InsightTypes lists all valid insight types in a stable order, for
// validation error messages and the rules display.
var InsightTypes = []InsightType{
	TypeCompetitorMention,
	TypeFeatureRequest,
	TypeBugReport,
	TypePricingFriction,
	TypeChurnSignal,
	TypePositiveSignal,
	TypeGeneralFeedback,
}

// Valid reports whether t is a member of the closed set.
func (t InsightType) Valid() bool {
	switch t {
	case TypeCompetitorMention, TypeFeatureRequest, TypeBugReport,
		TypePricingFriction, TypeChurnSignal, TypePositiveSignal,
		TypeGeneralFeedback:
		return true
	}
	return false
}

// SentimentLabel captures the customer's sentiment for one insight.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
	// SentimentCritical is negative sentiment with an urgency signal present.
	SentimentCritical SentimentLabel = "critical"
)

// Valid reports whether s is a member of the closed set.
func (s SentimentLabel) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentCritical:
		return true
	}
	return false
}

// UrgencyLevel drives alert ordering and the SLA override.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
	// UrgencyCritical collapses the response SLA to CriticalSLA regardless
	// of insight type.
	UrgencyCritical UrgencyLevel = "critical"
)

// Valid reports whether u is a member of the closed set.
func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Rank returns the sort rank for u: critical(0) < high(1) < medium(2) < low(3).
// Unknown levels sort last.
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 3
	}
	return 99
}

// RoutingDestination is a named stakeholder queue.
type RoutingDestination string

const (
	DestProductManagement RoutingDestination = "product_management"
	DestEngineering       RoutingDestination = "engineering"
	DestSalesLeadership   RoutingDestination = "sales_leadership"
	DestCustomerSuccess   RoutingDestination = "customer_success"
	// DestHumanReview is reserved for low-confidence escalation. It is never
	// a model-declared primary target; only the validator assigns it.
	DestHumanReview RoutingDestination = "human_review"
)

// Valid reports whether d is a member of the closed set.
func (d RoutingDestination) Valid() bool {
	switch d {
	case DestProductManagement, DestEngineering, DestSalesLeadership,
		DestCustomerSuccess, DestHumanReview:
		return true
	}
	return false
}

// DisplayName returns the human-readable team name for d.
func (d RoutingDestination) DisplayName() string {
	switch d {
	case DestProductManagement:
		return "Product Management"
	case DestEngineering:
		return "Engineering"
	case DestSalesLeadership:
		return "Sales Leadership"
	case DestCustomerSuccess:
		return "Customer Success Leadership"
	case DestHumanReview:
		return "Human Review Queue"
	}
	return string(d)
}

// ExtractedInsight is a single structured insight extracted from a call
// transcript. Created by the validator from untrusted model output and
// immutable thereafter.
//
// Confidence score scale:
//
//	0.90 - 1.00 : high, auto-route
//	0.75 - 0.89 : confident, auto-route
//	0.00 - 0.74 : below threshold, routed to human review
type ExtractedInsight struct {
	InsightType   InsightType    `json:"insight_type"`
	Summary       string         `json:"summary"`
	VerbatimQuote *string        `json:"verbatim_quote"`
	Sentiment     SentimentLabel `json:"sentiment"`
	Urgency       UrgencyLevel   `json:"urgency"`

	// ConfidenceScore is model-reported certainty in [0.0, 1.0] and is the
	// deciding input for the auto-route vs human-review decision.
	ConfidenceScore float64 `json:"confidence_score"`

	// RoutingTarget is computed by the validator, never model-supplied.
	RoutingTarget RoutingDestination `json:"routing_target"`

	// Type-specific detail fields, populated only when InsightType matches.
	CompetitorNamed  *string `json:"competitor_named"`
	FeatureRequested *string `json:"feature_requested"`
	BugDescription   *string `json:"bug_description"`

	ActionRequired  bool    `json:"action_required"`
	SuggestedAction *string `json:"suggested_action"`
}

// CallMetadata is the context envelope around one transcript. It travels
// with every routed insight so the CSM stays visible as the source and no
// recipient needs a lookup.
type CallMetadata struct {
	CSMName      string  `json:"csm_name"`
	AccountName  string  `json:"account_name"`
	AccountARR   *string `json:"account_arr"`
	RenewalDate  *string `json:"renewal_date"`
	CallDate     string  `json:"call_date"`
	CallDuration *string `json:"call_duration"`
	TranscriptID string  `json:"transcript_id"`
}

// ExtractionResult is the full output of one transcript processing run.
type ExtractionResult struct {
	Metadata       CallMetadata       `json:"metadata"`
	Insights       []ExtractedInsight `json:"insights"`
	TotalInsights  int                `json:"total_insights"`
	HighConfidence int                `json:"high_confidence"`
	RoutedToReview int                `json:"routed_to_review"`
	ProcessingNote string             `json:"processing_note,omitempty"`
}

// RoutedAlert is one insight fully dressed for delivery. Everything the
// receiving team needs to act on is in the alert itself.
type RoutedAlert struct {
	Destination      RoutingDestination `json:"destination"`
	Urgency          UrgencyLevel       `json:"urgency"`
	Insight          ExtractedInsight   `json:"insight"`
	Metadata         CallMetadata       `json:"metadata"`
	AlertID          string             `json:"alert_id"`
	RequiresResponse bool               `json:"requires_response"`
	ResponseSLA      string             `json:"response_sla"`
}

// RoutingRule maps an insight type to its stakeholder queues and response SLA.
// Secondary is informational only; alerts are delivered to Primary.
type RoutingRule struct {
	Primary   RoutingDestination
	Secondary RoutingDestination // empty when there is no secondary
	SLA       string
}

// RoutingRules is the entire routing policy: insight type to destination and
// SLA. When routing changes (new team, new SLA), this table changes, not a
// chain of conditionals. The confidence and urgency overrides are applied as
// explicit post-lookup steps by the validator and router.
var RoutingRules = map[InsightType]RoutingRule{
	TypeCompetitorMention: {
		Primary:   DestSalesLeadership,
		Secondary: DestProductManagement,
		SLA:       "48 hours",
	},
	TypeFeatureRequest: {
		Primary: DestProductManagement,
		SLA:     "1 week",
	},
	TypeBugReport: {
		Primary:   DestEngineering,
		Secondary: DestProductManagement,
		SLA:       "24 hours",
	},
	TypePricingFriction: {
		Primary:   DestSalesLeadership,
		Secondary: DestProductManagement,
		SLA:       "48 hours",
	},
	TypeChurnSignal: {
		Primary:   DestCustomerSuccess,
		Secondary: DestSalesLeadership,
		SLA:       "24 hours",
	},
	TypePositiveSignal: {
		Primary: DestProductManagement,
		SLA:     "1 week",
	},
	TypeGeneralFeedback: {
		Primary: DestProductManagement,
		SLA:     "1 week",
	},
}

const (
	// ConfidenceThreshold separates auto-routing from human review. Insights
	// scoring strictly below it always route to DestHumanReview.
	ConfidenceThreshold = 0.75

	// CriticalSLA replaces the table SLA whenever urgency is critical.
	CriticalSLA = "4 hours"

	// DefaultSLA is used when an insight type has no table entry.
	DefaultSLA = "1 week"
)
