package insight

// BuildResult assembles the final ExtractionResult with diagnostic counts.
//
// HighConfidence deliberately requires both the threshold and a non-review
// routing target. Under the current rule table no primary destination is
// human_review, so the second condition is redundant today, but it keeps
// the count correct if a future rule edit makes them diverge.
func BuildResult(meta CallMetadata, insights []ExtractedInsight, note string) ExtractionResult {
	highConfidence := 0
	routedToReview := 0
	for _, ins := range insights {
		if ins.ConfidenceScore >= ConfidenceThreshold && ins.RoutingTarget != DestHumanReview {
			highConfidence++
		}
		if ins.RoutingTarget == DestHumanReview {
			routedToReview++
		}
	}

	return ExtractionResult{
		Metadata:       meta,
		Insights:       insights,
		TotalInsights:  len(insights),
		HighConfidence: highConfidence,
		RoutedToReview: routedToReview,
		ProcessingNote: note,
	}
}

// EmptyNote marks a valid response that simply contained no insights. It is
// distinct from the exhausted-fallback note produced by the extractor.
const EmptyNote = "No extractable insights found in this transcript."

// EmptyResult builds the clean zero-insight result for a transcript with
// nothing actionable in it. This is not an error.
func EmptyResult(meta CallMetadata) ExtractionResult {
	return ExtractionResult{
		Metadata:       meta,
		Insights:       []ExtractedInsight{},
		ProcessingNote: EmptyNote,
	}
}
