package detection

import (
	"context"
	"time"

	"github.com/cropsense/leafscan/internal/infra/llm/groq"
)

// VisionClient issues one multimodal completion call. A nil client means the
// detector is unavailable and the service answers with deterministic mocks.
type VisionClient interface {
	CreateChatCompletion(ctx context.Context, req groq.ChatCompletionRequest) (groq.ChatCompletionResponse, error)
}

// ImageNormalizer turns an uploaded base64 payload into the canonical
// transport-ready image.
type ImageNormalizer interface {
	Normalize(raw string) (NormalizedImage, error)
}

// ScanRepository persists detections and serves per-user history.
type ScanRepository interface {
	Insert(ctx context.Context, scan Scan) (string, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Scan, error)
}

// ImageStore uploads the processed image and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (string, error)
}

// ResultCache holds clean model-parsed results keyed by image digest.
type ResultCache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, result Result, ttl time.Duration) error
}
