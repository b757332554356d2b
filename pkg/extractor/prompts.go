package extractor

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptVersion tracks the extraction contract version. When a prompt
// changes, extraction behavior changes, so it is logged with every call.
const PromptVersion = "1.0.0"

// SystemPrompt sets the model's persona, constraints, and output contract.
const SystemPrompt = `You are a precision insight extraction engine for a B2B SaaS company.

Your job is to analyze customer call transcripts and extract structured business insights
that help Product, Engineering, and Sales teams make better decisions.

CORE RULES:
1. Extract ONLY what is explicitly present in the transcript. Do not infer beyond the evidence.
2. If you are not confident about a classification, lower the confidence_score. Do not guess.
3. Every extracted insight must have a verbatim_quote if the transcript supports it.
4. Sentiment must reflect the CUSTOMER's sentiment, not the CSM's tone.
5. Urgency is determined by language signals: "cancel", "considering alternatives",
   "this is blocking us", "still not fixed" = high or critical.
6. You must return valid JSON only. No prose. No markdown. No explanation outside the JSON.
7. If the transcript contains no extractable insights, return an empty insights array.

OUTPUT CONTRACT:
You must always return a JSON object matching exactly this structure:
{
  "insights": [
    {
      "insight_type": "<one of: competitor_mention | feature_request | bug_report | pricing_friction | churn_signal | positive_signal | general_feedback>",
      "summary": "<1-2 sentence structured summary of the insight>",
      "verbatim_quote": "<exact words from transcript, or null if not isolatable>",
      "sentiment": "<one of: positive | neutral | negative | critical>",
      "urgency": "<one of: low | medium | high | critical>",
      "confidence_score": <float between 0.0 and 1.0>,
      "competitor_named": "<competitor name if insight_type is competitor_mention, else null>",
      "feature_requested": "<feature description if insight_type is feature_request, else null>",
      "bug_description": "<bug description if insight_type is bug_report, else null>",
      "action_required": <true or false>,
      "suggested_action": "<what the receiving team should do, or null>"
    }
  ],
  "processing_note": "<any anomalies, ambiguities, or extraction edge cases, or null>"
}

CONFIDENCE SCORE CALIBRATION:
0.90 - 1.00 : The transcript explicitly and unambiguously contains this insight
0.75 - 0.89 : High confidence with minor interpretive judgment
0.60 - 0.74 : Uncertain, present but could be interpreted differently
0.00 - 0.59 : Weak signal, likely noise, should not auto-route

When in doubt, score lower. A 0.65 that routes to human review is better than
a 0.85 that routes incorrectly.`

var extractionTmpl = template.Must(template.New("extraction").Parse(
	`Analyze the following customer call transcript and extract all structured insights.

CALL CONTEXT:
  CSM: {{.CSMName}}
  Account: {{.AccountName}}
  Call Date: {{.CallDate}}

EXTRACTION TARGETS - look specifically for:
  - Competitor mentions (named competitors, comparisons, "we looked at X")
  - Feature requests (things the customer wants that don't exist yet)
  - Bug reports (things that are broken, not working, or inconsistent)
  - Pricing friction (cost concerns, ROI questions, pricing model complaints)
  - Churn signals (cancellation language, dissatisfaction, switching intent)
  - Positive signals (praise, expansion intent, referral mentions)
  - General feedback (anything strategically relevant that doesn't fit above)

TRANSCRIPT:
---
{{.Transcript}}
---

Extract all insights now. Return valid JSON only.`))

var fallbackTmpl = template.Must(template.New("fallback").Parse(
	`Your previous extraction attempt returned output that could not be parsed or validated.

Previous (invalid) output:
{{.FailedOutput}}...

Please try again with a SIMPLIFIED extraction. Return ONLY this minimal JSON structure:
{
  "insights": [
    {
      "insight_type": "<type>",
      "summary": "<1 sentence summary>",
      "verbatim_quote": null,
      "sentiment": "<positive|neutral|negative|critical>",
      "urgency": "<low|medium|high|critical>",
      "confidence_score": <0.0-1.0>,
      "competitor_named": null,
      "feature_requested": null,
      "bug_description": null,
      "action_required": false,
      "suggested_action": null
    }
  ],
  "processing_note": "Fallback extraction - simplified schema"
}

TRANSCRIPT:
---
{{.Transcript}}
---

Return valid JSON only. No other text.`))

// Truncation limits for the fallback prompt. The failed output is diagnostic
// context only, and the transcript excerpt keeps the retry cheap.
const (
	fallbackTranscriptLimit = 2000
	fallbackOutputLimit     = 500
)

type extractionPromptData struct {
	CSMName     string
	AccountName string
	CallDate    string
	Transcript  string
}

type fallbackPromptData struct {
	FailedOutput string
	Transcript   string
}

// BuildExtractionPrompt renders the primary extraction prompt with the call
// context injected. Knowing the account name and CSM lets the model
// distinguish competitive intel from stack context.
func BuildExtractionPrompt(transcript, csmName, accountName, callDate string) (string, error) {
	var buf bytes.Buffer
	err := extractionTmpl.Execute(&buf, extractionPromptData{
		CSMName:     csmName,
		AccountName: accountName,
		CallDate:    callDate,
		Transcript:  transcript,
	})
	if err != nil {
		return "", fmt.Errorf("render extraction prompt: %w", err)
	}
	return buf.String(), nil
}

// BuildFallbackPrompt renders the simplified retry prompt, embedding a
// truncated excerpt of the failed output as error context.
func BuildFallbackPrompt(transcript, failedOutput string) (string, error) {
	var buf bytes.Buffer
	err := fallbackTmpl.Execute(&buf, fallbackPromptData{
		FailedOutput: truncate(failedOutput, fallbackOutputLimit),
		Transcript:   truncate(transcript, fallbackTranscriptLimit),
	})
	if err != nil {
		return "", fmt.Errorf("render fallback prompt: %w", err)
	}
	return buf.String(), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
