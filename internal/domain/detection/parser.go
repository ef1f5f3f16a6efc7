package detection

import (
	"encoding/json"
	"strings"
)

const (
	degradedDisease    = "Analysis Complete"
	degradedConfidence = 0.75
	degradedPreviewLen = 300
)

// ParseReply extracts a structured detection from the model's free-text
// reply. It never fails: when no well-formed JSON can be recovered it returns
// a degraded result carrying a preview of the raw text, so callers never turn
// model garbage into a user-visible error.
func ParseReply(raw string) Outcome {
	candidate := extractCandidate(raw)

	var wire struct {
		Disease        *string      `json:"disease_detected"`
		Confidence     *json.Number `json:"confidence"`
		Severity       *string      `json:"severity"`
		Symptoms       []string     `json:"symptoms_observed"`
		Recommendation *string      `json:"recommendation"`
	}
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return degradedOutcome(raw)
	}

	result := Result{
		Disease:        "Unknown",
		Confidence:     0.5,
		Severity:       SeverityUnknown,
		Symptoms:       []string{},
		Recommendation: "",
	}
	if wire.Disease != nil {
		result.Disease = strings.TrimSpace(*wire.Disease)
	}
	if wire.Confidence != nil {
		value, err := wire.Confidence.Float64()
		if err != nil {
			return degradedOutcome(raw)
		}
		result.Confidence = NormalizeConfidence(value)
	}
	if wire.Severity != nil {
		result.Severity = NormalizeSeverity(*wire.Severity)
	}
	if wire.Symptoms != nil {
		result.Symptoms = wire.Symptoms
	}
	if wire.Recommendation != nil {
		result.Recommendation = *wire.Recommendation
	}

	return Outcome{Result: result, Source: SourceModel}
}

// NormalizeConfidence coerces a raw model confidence into [0,1]. Values above
// 5 are assumed to be percentages; anything else is clamped, so a slightly
// out-of-range fraction like 1.4 saturates instead of collapsing to 0.014.
func NormalizeConfidence(v float64) float64 {
	if v > 5 {
		v /= 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// extractCandidate finds the JSON body inside a reply that may wrap it in
// prose or markdown code fences. Priority: ```json fence, any ``` fence,
// first "{" through LAST "}" (greedy, so nested braces survive), whole reply.
func extractCandidate(raw string) string {
	if idx := strings.Index(raw, "```json"); idx >= 0 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(raw, "```"); idx >= 0 {
		rest := raw[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

func degradedOutcome(raw string) Outcome {
	return Outcome{
		Result: Result{
			Disease:        degradedDisease,
			Confidence:     degradedConfidence,
			Severity:       SeverityUnknown,
			Symptoms:       []string{},
			Recommendation: previewOf(raw),
		},
		Source: SourceDegraded,
	}
}

// previewOf truncates the raw reply so a degraded response still shows the
// caller what the model said.
func previewOf(raw string) string {
	runes := []rune(strings.TrimSpace(raw))
	if len(runes) <= degradedPreviewLen {
		return string(runes)
	}
	return string(runes[:degradedPreviewLen]) + "..."
}
