package detection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cropsense/leafscan/internal/domain/diseasedb"
	"github.com/cropsense/leafscan/internal/infra/llm/groq"
	apperrors "github.com/cropsense/leafscan/pkg/errors"
	"github.com/cropsense/leafscan/pkg/metrics"
	"github.com/cropsense/leafscan/pkg/util"
)

const defaultHistoryLimit = 50

// Service exposes the plant disease detection capabilities.
type Service interface {
	Detect(ctx context.Context, req Request) (Envelope, error)
	History(ctx context.Context, userID string, limit int) ([]Scan, error)
}

type service struct {
	cfg        Config
	normalizer ImageNormalizer
	client     VisionClient
	repo       ScanRepository
	store      ImageStore
	cache      ResultCache
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires up the detection domain. A nil client puts the service in
// mock mode; repo, store, and cache fall back to their in-memory variants
// upstream, so they are always non-nil in production wiring.
func NewService(cfg Config, normalizer ImageNormalizer, client VisionClient, repo ScanRepository, store ImageStore, cache ResultCache, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		normalizer: normalizer,
		client:     client,
		repo:       repo,
		store:      store,
		cache:      cache,
		logger:     logger.With("component", "detection.service"),
		now:        util.NowUTC,
	}
}

// Detect runs the full pipeline: normalize image, prompt the vision model,
// parse its reply, merge with the disease table, and best-effort persist.
// Model-side failures degrade to a success envelope; only bad input errors.
func (s *service) Detect(ctx context.Context, req Request) (Envelope, error) {
	if strings.TrimSpace(req.Image) == "" {
		return Envelope{}, apperrors.Wrap("invalid_input", "no image provided", nil)
	}
	crop := strings.ToLower(strings.TrimSpace(req.CropType))
	if crop == "" {
		crop = "unknown"
	}

	normalized, err := s.normalizer.Normalize(req.Image)
	if err != nil {
		return Envelope{}, err
	}
	s.logger.Info("image normalized", "crop", crop, "width", normalized.Width, "height", normalized.Height)

	outcome := s.analyze(ctx, normalized, crop)
	info := diseasedb.Lookup(outcome.Result.Disease)

	scanID, imageURL := s.persist(ctx, req.UserID, normalized, crop, outcome.Result, info)

	s.logger.Info("detection complete",
		"crop", crop, "disease", outcome.Result.Disease,
		"confidence", outcome.Result.Confidence, "source", outcome.Source)

	return s.compose(outcome.Result, info, crop, scanID, imageURL), nil
}

// History returns a user's prior scans, newest first.
func (s *service) History(ctx context.Context, userID string, limit int) ([]Scan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Wrap("invalid_input", "user_id parameter required", nil)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	scans, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "failed to fetch history", err)
	}
	return scans, nil
}

func (s *service) analyze(ctx context.Context, img NormalizedImage, crop string) Outcome {
	if s.client == nil {
		return mockOutcome(crop)
	}

	key := cacheKey(img.Base64, crop)
	if s.cache != nil {
		if hit, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("result cache lookup failed", "error", err)
		} else if ok {
			s.logger.Info("detection served from cache", "crop", crop)
			return Outcome{Result: hit, Source: SourceCache}
		}
	}

	messages := []groq.Message{{
		Role: "user",
		Content: []groq.ContentPart{
			groq.TextPart(BuildPrompt(crop)),
			groq.ImagePart(img.Base64),
		},
	}}

	// The outbound call keeps running even if the HTTP client disconnects;
	// the gateway's own timeout bounds it instead.
	callCtx := context.WithoutCancel(ctx)
	completion, err := s.client.CreateChatCompletion(callCtx, groq.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		TopP:        s.cfg.TopP,
	})
	if err != nil {
		s.logger.Warn("vision model call failed, degrading", "error", err)
		return unavailableOutcome(err)
	}
	if len(completion.Choices) == 0 {
		s.logger.Warn("vision model returned no choices, degrading")
		return unavailableOutcome(errors.New("model returned no choices"))
	}

	outcome := ParseReply(completion.Choices[0].Message.Content)
	outcome.Usage = metrics.TokenUsage{
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}
	if !outcome.Usage.IsZero() {
		s.logger.Info("vision model usage",
			"prompt_tokens", outcome.Usage.PromptTokens,
			"completion_tokens", outcome.Usage.CompletionTokens,
			"total_tokens", outcome.Usage.TotalTokens)
	}

	// Only clean model parses are worth caching.
	if outcome.Source == SourceModel && s.cache != nil && s.cfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, outcome.Result, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("result cache store failed", "error", err)
		}
	}
	return outcome
}

// persist uploads the processed image and records the scan. Both steps are
// best-effort: failures are logged and the detection response proceeds
// without scan_id/image_url.
func (s *service) persist(ctx context.Context, userID string, img NormalizedImage, crop string, result Result, info diseasedb.Info) (string, string) {
	if strings.TrimSpace(userID) == "" || s.repo == nil {
		return "", ""
	}

	imageURL := ""
	if s.store != nil {
		key := fmt.Sprintf("%s_%d.jpg", userID, s.now().Unix())
		url, err := s.store.Put(ctx, key, img.JPEG, "image/jpeg")
		if err != nil {
			s.logger.Warn("scan image upload failed", "error", err)
		} else {
			imageURL = url
		}
	}

	recommendations, err := json.Marshal(info.Treatment)
	if err != nil {
		recommendations = []byte("[]")
	}
	scan := Scan{
		ID:              uuid.NewString(),
		UserID:          userID,
		ImageURL:        imageURL,
		CropType:        TitleCase(crop),
		DiseaseDetected: result.Disease,
		Confidence:      result.Confidence,
		Severity:        string(result.Severity),
		Recommendations: string(recommendations),
		CreatedAt:       s.now(),
	}
	id, err := s.repo.Insert(ctx, scan)
	if err != nil {
		s.logger.Warn("scan insert failed", "error", err)
		return "", imageURL
	}
	s.logger.Info("scan saved", "scan_id", id, "user_id", userID)
	return id, imageURL
}

func (s *service) compose(result Result, info diseasedb.Info, crop, scanID, imageURL string) Envelope {
	symptoms := result.Symptoms
	if len(symptoms) == 0 {
		symptoms = info.Symptoms
	}
	return Envelope{
		Success:          true,
		ScanID:           scanID,
		Disease:          result.Disease,
		Confidence:       formatConfidencePercent(result.Confidence),
		Severity:         result.Severity,
		CropType:         TitleCase(crop),
		Description:      info.Description,
		Symptoms:         symptoms,
		Treatment:        info.Treatment,
		Prevention:       info.Prevention,
		OrganicTreatment: info.OrganicTreatment,
		CostEstimate:     info.CostEstimate,
		ScientificName:   info.ScientificName,
		AIRecommendation: result.Recommendation,
		ImageURL:         imageURL,
		Timestamp:        s.now().Format(time.RFC3339),
	}
}

// formatConfidencePercent renders a [0,1] confidence as a percent string
// rounded to two decimals, e.g. 0.853 -> "85.30".
func formatConfidencePercent(confidence float64) string {
	return fmt.Sprintf("%.2f", math.Round(confidence*10000)/100)
}

func cacheKey(imageBase64, crop string) string {
	sum := sha256.Sum256([]byte(imageBase64 + "|" + crop))
	return "detect:" + hex.EncodeToString(sum[:])
}

func mockOutcome(crop string) Outcome {
	return Outcome{
		Result: Result{
			Disease:    "Mock Disease Detection",
			Confidence: 0.85,
			Severity:   SeverityMild,
			Symptoms:   []string{"Test symptom 1", "Test symptom 2"},
			Recommendation: fmt.Sprintf(
				"This is a test response for your %s plant. The system is working correctly! Please configure GROQ_API_KEY for real AI analysis.",
				TitleCase(crop)),
		},
		Source: SourceMock,
	}
}

func unavailableOutcome(err error) Outcome {
	return Outcome{
		Result: Result{
			Disease:        "Analysis Unavailable",
			Confidence:     0.70,
			Severity:       SeverityUnknown,
			Symptoms:       []string{"AI analysis temporarily unavailable"},
			Recommendation: fmt.Sprintf("Unable to perform AI analysis: %v. Please try again later.", err),
		},
		Source: SourceUnavailable,
	}
}
