package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	cserrors "github.com/otherjamesbrown/callsight-cli/pkg/errors"
)

// ValidationError reports one insight element that violates the schema.
// It carries the offending field name and the element's position so the
// failure can be diagnosed without replaying the model call.
type ValidationError struct {
	Field   string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("insight[%d] %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap ties ValidationError into the domain sentinel so callers can use
// errors.Is(err, cserrors.ErrValidation).
func (e *ValidationError) Unwrap() error {
	return cserrors.ErrValidation
}

// requiredFields are checked for presence before any value validation.
var requiredFields = []string{
	"insight_type", "summary", "sentiment", "urgency",
	"confidence_score", "action_required",
}

// ValidateInsight converts a single raw insight object from model output
// into a typed ExtractedInsight. index is the element's position in the
// response, passed through for error messages.
//
// On success the routing target is computed: rule-table primary for the
// insight type, then an unconditional override to human review when the
// confidence score is below ConfidenceThreshold. The override is applied
// after the lookup, every time.
func ValidateInsight(raw map[string]any, index int) (ExtractedInsight, error) {
	var zero ExtractedInsight

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return zero, &ValidationError{
				Field:   field,
				Index:   index,
				Message: "missing required field",
			}
		}
	}

	insightType := InsightType(stringValue(raw["insight_type"]))
	if !insightType.Valid() {
		return zero, &ValidationError{
			Field:   "insight_type",
			Index:   index,
			Message: fmt.Sprintf("invalid value %q, must be one of %v", raw["insight_type"], InsightTypes),
		}
	}

	sentiment := SentimentLabel(stringValue(raw["sentiment"]))
	if !sentiment.Valid() {
		return zero, &ValidationError{
			Field:   "sentiment",
			Index:   index,
			Message: fmt.Sprintf("invalid value %q", raw["sentiment"]),
		}
	}

	urgency := UrgencyLevel(stringValue(raw["urgency"]))
	if !urgency.Valid() {
		return zero, &ValidationError{
			Field:   "urgency",
			Index:   index,
			Message: fmt.Sprintf("invalid value %q", raw["urgency"]),
		}
	}

	score, ok := numberValue(raw["confidence_score"])
	if !ok || score < 0.0 || score > 1.0 {
		return zero, &ValidationError{
			Field:   "confidence_score",
			Index:   index,
			Message: fmt.Sprintf("must be a number in [0.0, 1.0], got %v", raw["confidence_score"]),
		}
	}

	// Rule-table lookup first; the table never names human_review as a
	// primary, but an absent type defaults there rather than failing.
	target := DestHumanReview
	if rule, ok := RoutingRules[insightType]; ok {
		target = rule.Primary
	}

	// Confidence override is applied after the lookup and takes priority.
	if score < ConfidenceThreshold {
		target = DestHumanReview
	}

	return ExtractedInsight{
		InsightType:      insightType,
		Summary:          stringValue(raw["summary"]),
		VerbatimQuote:    optionalString(raw["verbatim_quote"]),
		Sentiment:        sentiment,
		Urgency:          urgency,
		ConfidenceScore:  score,
		RoutingTarget:    target,
		CompetitorNamed:  optionalString(raw["competitor_named"]),
		FeatureRequested: optionalString(raw["feature_requested"]),
		BugDescription:   optionalString(raw["bug_description"]),
		ActionRequired:   boolValue(raw["action_required"]),
		SuggestedAction:  optionalString(raw["suggested_action"]),
	}, nil
}

// ParseAndValidate runs the full parse + validate pipeline on a raw model
// response. Markdown code fences around the JSON are stripped before parsing.
//
// Returns the validated insights in response order and the optional
// processing note. A non-JSON response yields a parse_failure PipelineError;
// a parseable response with a missing or malformed insights array, or any
// invalid element, yields a validation error. Element validation does not
// skip bad elements: the first failure aborts the whole batch, and the
// caller retries the entire response via fallback.
func ParseAndValidate(raw string) ([]ExtractedInsight, string, error) {
	cleaned := stripFences(raw)

	var parsed struct {
		Insights       *[]json.RawMessage `json:"insights"`
		ProcessingNote string             `json:"processing_note"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, "", &cserrors.PipelineError{
			Code:    cserrors.ErrParseFailure,
			Message: fmt.Sprintf("response is not valid JSON: %v", err),
			Cause:   err,
		}
	}

	if parsed.Insights == nil {
		return nil, "", &ValidationError{
			Field:   "insights",
			Index:   -1,
			Message: "response JSON missing top-level insights array",
		}
	}

	validated := make([]ExtractedInsight, 0, len(*parsed.Insights))
	for i, element := range *parsed.Insights {
		var obj map[string]any
		if err := json.Unmarshal(element, &obj); err != nil {
			return nil, "", &ValidationError{
				Field:   "insights",
				Index:   i,
				Message: "element is not a JSON object",
			}
		}
		ins, err := ValidateInsight(obj, i)
		if err != nil {
			return nil, "", err
		}
		validated = append(validated, ins)
	}

	return validated, parsed.ProcessingNote, nil
}

// stripFences removes a wrapping markdown code fence and optional language
// tag. Models sometimes fence JSON despite being told not to.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "json")
		cleaned = strings.TrimSpace(cleaned)
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func optionalString(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}
