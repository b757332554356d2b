package cmd

// mockExtractionResponse is a realistic model response used by the --mock
// flag. It exercises every insight type the routing rules cover, including
// two critical-urgency items, so demos and smoke tests show the full alert
// surface without an API key.
const mockExtractionResponse = `{
  "insights": [
    {
      "insight_type": "bug_report",
      "summary": "Call attribution data has been inconsistent for 6 weeks, creating discrepancies between reporting and the Google Ads dashboard. A support ticket has been open for 41 days without resolution, causing the paid search team to distrust attribution numbers.",
      "verbatim_quote": "We've flagged it twice to support and the ticket is still open. It's not a minor thing, we're making media spend decisions based on this data.",
      "sentiment": "critical",
      "urgency": "critical",
      "confidence_score": 0.97,
      "competitor_named": null,
      "feature_requested": null,
      "bug_description": "Call attribution data discrepancy between platform reporting and Google Ads dashboard. 41-day open support ticket, paid search team has lost confidence in attribution numbers.",
      "action_required": true,
      "suggested_action": "Escalate to Engineering as P1. Assign owner and provide ETA by end of week. CSM to confirm escalation to customer within 24 hours."
    },
    {
      "insight_type": "feature_request",
      "summary": "Customer is expanding into SMS and chat channels and wants unified omnichannel conversation intelligence, extending the intent scoring and attribution they get for calls across all customer interaction channels.",
      "verbatim_quote": "It would be really valuable if there was some kind of unified view, the same kind of intent scoring and attribution you do for calls but across all the channels where customers are reaching us.",
      "sentiment": "neutral",
      "urgency": "medium",
      "confidence_score": 0.91,
      "competitor_named": null,
      "feature_requested": "Unified omnichannel conversation intelligence: intent scoring and attribution across calls, SMS, and chat channels",
      "bug_description": null,
      "action_required": false,
      "suggested_action": "Route to Product Management for roadmap consideration. Document as strategic gap; customer has confirmed a competitor is pitching this capability."
    },
    {
      "insight_type": "competitor_mention",
      "summary": "Account had a demo with Marchex last month, pitching omnichannel conversation intelligence. Customer leadership is asking questions about alternatives. Customer stated they are not leaving but are being asked to evaluate.",
      "verbatim_quote": "We had a demo with Marchex last month. We're not going anywhere, but I want to be transparent that we're being asked to evaluate alternatives.",
      "sentiment": "negative",
      "urgency": "high",
      "confidence_score": 0.96,
      "competitor_named": "Marchex",
      "feature_requested": null,
      "bug_description": null,
      "action_required": true,
      "suggested_action": "Alert Sales Leadership immediately. Prepare competitive battlecard for the omnichannel claim. Ensure renewal conversation addresses this directly."
    },
    {
      "insight_type": "pricing_friction",
      "summary": "Customer received an 18% renewal price increase while their own marketing budget was cut 15% this quarter. Customer stated they cannot get the increase through finance and will need pricing options before the June renewal.",
      "verbatim_quote": "The price increase is 18%. I understand costs go up but our marketing budget got cut 15% this quarter. I'm going to have a hard time getting this through finance at that number.",
      "sentiment": "negative",
      "urgency": "high",
      "confidence_score": 0.98,
      "competitor_named": null,
      "feature_requested": null,
      "bug_description": null,
      "action_required": true,
      "suggested_action": "Escalate to Sales Leadership before formal renewal discussions. CSM to request pricing options from leadership within 1 week. Renewal at risk if not addressed."
    },
    {
      "insight_type": "positive_signal",
      "summary": "Inside sales team attributes a 23% improvement in qualified lead rate this quarter to call scoring. Customer VP explicitly credited the platform and described the outcome as huge.",
      "verbatim_quote": "Our inside sales team actually credits the platform with a 23% improvement in qualified lead rate this quarter, which is huge.",
      "sentiment": "positive",
      "urgency": "low",
      "confidence_score": 0.99,
      "competitor_named": null,
      "feature_requested": null,
      "bug_description": null,
      "action_required": false,
      "suggested_action": "Capture as customer success story. Use in renewal conversation to anchor value. Share with Marketing for case study consideration."
    },
    {
      "insight_type": "churn_signal",
      "summary": "Customer stated that if the attribution bug is not fixed and pricing is not addressed before the June renewal, they do not know what the board will say, implying renewal is at risk.",
      "verbatim_quote": "The bug needs to get fixed and the pricing conversation needs to happen before June. Otherwise honestly I don't know what the board is going to say.",
      "sentiment": "critical",
      "urgency": "critical",
      "confidence_score": 0.93,
      "competitor_named": null,
      "feature_requested": null,
      "bug_description": null,
      "action_required": true,
      "suggested_action": "Flag account as renewal risk. Escalate to CS leadership and Sales VP. Two hard dependencies: attribution bug resolved, and pricing options delivered before the June renewal conversation."
    }
  ],
  "processing_note": "6 insights extracted. High confidence across all. Two CRITICAL urgency items (bug + churn signal) require same-day escalation."
}`
