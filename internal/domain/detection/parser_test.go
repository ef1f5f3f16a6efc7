package detection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReply_JSONFence(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"disease_detected\":\"Late Blight\",\"confidence\":0.92,\"severity\":\"Severe\",\"symptoms_observed\":[\"a\",\"b\"],\"recommendation\":\"treat now\"}\n```\nHope that helps."

	outcome := ParseReply(raw)

	require.Equal(t, SourceModel, outcome.Source)
	require.Equal(t, "Late Blight", outcome.Result.Disease)
	require.InDelta(t, 0.92, outcome.Result.Confidence, 1e-9)
	require.Equal(t, SeveritySevere, outcome.Result.Severity)
	require.Equal(t, []string{"a", "b"}, outcome.Result.Symptoms)
	require.Equal(t, "treat now", outcome.Result.Recommendation)
}

func TestParseReply_PlainFence(t *testing.T) {
	raw := "```\n{\"disease_detected\":\"Early Blight\",\"confidence\":0.8}\n```"

	outcome := ParseReply(raw)

	require.Equal(t, SourceModel, outcome.Source)
	require.Equal(t, "Early Blight", outcome.Result.Disease)
}

func TestParseReply_GreedyBraces(t *testing.T) {
	// Nested braces must survive: extraction runs to the LAST closing brace.
	raw := `The model says {"disease_detected":"Leaf Mold","confidence":0.6,"details":{"note":"nested"}} end of reply`

	outcome := ParseReply(raw)

	require.Equal(t, SourceModel, outcome.Source)
	require.Equal(t, "Leaf Mold", outcome.Result.Disease)
	require.InDelta(t, 0.6, outcome.Result.Confidence, 1e-9)
}

func TestParseReply_Defaults(t *testing.T) {
	outcome := ParseReply(`{}`)

	require.Equal(t, SourceModel, outcome.Source)
	require.Equal(t, "Unknown", outcome.Result.Disease)
	require.InDelta(t, 0.5, outcome.Result.Confidence, 1e-9)
	require.Equal(t, SeverityUnknown, outcome.Result.Severity)
	require.Empty(t, outcome.Result.Symptoms)
	require.Empty(t, outcome.Result.Recommendation)
}

func TestParseReply_DegradesOnMalformedJSON(t *testing.T) {
	raw := "I think this looks fine but I'm not sure {incomplete json"

	outcome := ParseReply(raw)

	require.Equal(t, SourceDegraded, outcome.Source)
	require.Equal(t, "Analysis Complete", outcome.Result.Disease)
	require.InDelta(t, 0.75, outcome.Result.Confidence, 1e-9)
	require.Contains(t, outcome.Result.Recommendation, "I think this looks fine")
}

func TestParseReply_DegradedPreviewTruncates(t *testing.T) {
	raw := "not json at all " + strings.Repeat("x", 400)

	outcome := ParseReply(raw)

	require.Equal(t, SourceDegraded, outcome.Source)
	require.True(t, strings.HasSuffix(outcome.Result.Recommendation, "..."))
	require.Len(t, []rune(outcome.Result.Recommendation), 303)
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{85, 0.85},
		{0.85, 0.85},
		{1.4, 1.0},
		{-0.2, 0.0},
		{100, 1.0},
		{0, 0},
		{1, 1},
	}
	for _, tc := range tests {
		got := NormalizeConfidence(tc.in)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("NormalizeConfidence(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSeverity(t *testing.T) {
	require.Equal(t, SeveritySevere, NormalizeSeverity("severe"))
	require.Equal(t, SeverityMild, NormalizeSeverity(" Mild "))
	require.Equal(t, SeverityNone, NormalizeSeverity("NONE"))
	require.Equal(t, SeverityUnknown, NormalizeSeverity("catastrophic"))
}
