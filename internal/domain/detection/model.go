package detection

import (
	"strings"
	"time"

	"github.com/cropsense/leafscan/pkg/metrics"
)

// Request captures the payload accepted by the detect endpoint.
type Request struct {
	Image    string `json:"image"`
	CropType string `json:"crop_type"`
	UserID   string `json:"user_id"`
}

// Severity grades how badly a plant is affected.
type Severity string

const (
	SeverityNone     Severity = "None"
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
	SeverityUnknown  Severity = "Unknown"
)

// NormalizeSeverity maps free-form model output onto the severity enum.
func NormalizeSeverity(raw string) Severity {
	trimmed := strings.TrimSpace(raw)
	for _, s := range []Severity{SeverityNone, SeverityMild, SeverityModerate, SeveritySevere} {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return SeverityUnknown
}

// Result is the normalized detection produced by the parser (or a fallback).
type Result struct {
	Disease        string   `json:"disease"`
	Confidence     float64  `json:"confidence"`
	Severity       Severity `json:"severity"`
	Symptoms       []string `json:"symptoms"`
	Recommendation string   `json:"recommendation"`
}

// Source records how a Result was produced. The pipeline never raises on
// model-side failures; instead the source tells the composer (and tests)
// which path ran.
type Source string

const (
	SourceModel       Source = "model"
	SourceCache       Source = "cache"
	SourceMock        Source = "mock"
	SourceDegraded    Source = "degraded"
	SourceUnavailable Source = "unavailable"
)

// Outcome pairs a Result with its provenance and any reported token usage.
type Outcome struct {
	Result Result
	Source Source
	Usage  metrics.TokenUsage
}

// NormalizedImage is the canonical per-request image representation: decoded,
// flattened to 3-channel color, resized, and re-encoded for transport.
type NormalizedImage struct {
	Base64 string
	JPEG   []byte
	Width  int
	Height int
}

// Envelope is the outward-facing response for a detection call. Confidence is
// serialized as a two-decimal percent string, matching the frontend contract.
type Envelope struct {
	Success          bool     `json:"success"`
	ScanID           string   `json:"scan_id,omitempty"`
	Disease          string   `json:"disease"`
	Confidence       string   `json:"confidence"`
	Severity         Severity `json:"severity"`
	CropType         string   `json:"crop_type"`
	Description      string   `json:"description"`
	Symptoms         []string `json:"symptoms"`
	Treatment        []string `json:"treatment"`
	Prevention       []string `json:"prevention"`
	OrganicTreatment []string `json:"organic_treatment"`
	CostEstimate     string   `json:"cost_estimate"`
	ScientificName   string   `json:"scientific_name"`
	AIRecommendation string   `json:"ai_recommendation"`
	ImageURL         string   `json:"image_url,omitempty"`
	Timestamp        string   `json:"timestamp"`
}

// Scan is one persisted detection, as stored and as returned by history.
type Scan struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ImageURL        string    `json:"image_url"`
	CropType        string    `json:"crop_type"`
	DiseaseDetected string    `json:"disease_detected"`
	Confidence      float64   `json:"confidence"`
	Severity        string    `json:"severity"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// Config wires runtime parameters for the detection domain.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
	CacheTTL    time.Duration
}
