package detection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cropsense/leafscan/internal/infra/llm/groq"
	apperrors "github.com/cropsense/leafscan/pkg/errors"
)

type stubNormalizer struct {
	err error
}

func (s *stubNormalizer) Normalize(raw string) (NormalizedImage, error) {
	if s.err != nil {
		return NormalizedImage{}, s.err
	}
	return NormalizedImage{Base64: "bm9ybWFsaXplZA==", JPEG: []byte("jpeg"), Width: 224, Height: 224}, nil
}

type stubClient struct {
	reply string
	err   error
	calls int
}

func (s *stubClient) CreateChatCompletion(ctx context.Context, req groq.ChatCompletionRequest) (groq.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return groq.ChatCompletionResponse{}, s.err
	}
	return groq.ChatCompletionResponse{
		Choices: []groq.Choice{{Message: groq.ResponseMessage{Content: s.reply}}},
	}, nil
}

type stubRepo struct {
	inserted  []Scan
	insertErr error
	scans     []Scan
	listErr   error
}

func (s *stubRepo) Insert(_ context.Context, scan Scan) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.inserted = append(s.inserted, scan)
	return scan.ID, nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID string, limit int) ([]Scan, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.scans, nil
}

type stubStore struct {
	url string
	err error
}

func (s *stubStore) Put(_ context.Context, key string, data []byte, mimeType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubCache struct {
	hit    Result
	hasHit bool
	stored map[string]Result
}

func (s *stubCache) Get(_ context.Context, key string) (Result, bool, error) {
	return s.hit, s.hasHit, nil
}

func (s *stubCache) Set(_ context.Context, key string, result Result, _ time.Duration) error {
	if s.stored == nil {
		s.stored = make(map[string]Result)
	}
	s.stored[key] = result
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{Model: "test-model", Temperature: 0.2, MaxTokens: 1000, TopP: 0.9, CacheTTL: time.Hour}
}

func newTestService(client VisionClient, repo ScanRepository, store ImageStore, cache ResultCache) Service {
	return NewService(testConfig(), &stubNormalizer{}, client, repo, store, cache, testLogger())
}

func TestDetect_MockModeWithoutClient(t *testing.T) {
	svc := newTestService(nil, &stubRepo{}, &stubStore{}, &stubCache{})

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato"})

	require.NoError(t, err)
	require.True(t, envelope.Success)
	require.Equal(t, "Mock Disease Detection", envelope.Disease)
	require.Equal(t, "85.00", envelope.Confidence)
	require.Equal(t, SeverityMild, envelope.Severity)
	require.Equal(t, "Tomato", envelope.CropType)
	require.NotEmpty(t, envelope.Timestamp)
}

func TestDetect_RejectsEmptyImage(t *testing.T) {
	svc := newTestService(nil, &stubRepo{}, &stubStore{}, &stubCache{})

	_, err := svc.Detect(context.Background(), Request{Image: "   "})

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Contains(t, err.Error(), "image")
}

func TestDetect_ParsesModelReply(t *testing.T) {
	client := &stubClient{reply: "```json\n{\"disease_detected\":\"Late Blight\",\"confidence\":0.92,\"severity\":\"Severe\",\"symptoms_observed\":[\"spots\"],\"recommendation\":\"spray\"}\n```"}
	svc := newTestService(client, &stubRepo{}, &stubStore{}, &stubCache{})

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato"})

	require.NoError(t, err)
	require.True(t, envelope.Success)
	require.Equal(t, "Late Blight", envelope.Disease)
	require.Equal(t, "92.00", envelope.Confidence)
	require.Equal(t, SeveritySevere, envelope.Severity)
	// Reference data merged in from the disease table.
	require.Equal(t, "Phytophthora infestans", envelope.ScientificName)
	require.NotEmpty(t, envelope.Treatment)
	require.Equal(t, "spray", envelope.AIRecommendation)
	require.Equal(t, 1, client.calls)
}

func TestDetect_GatewayFailureDegradesToSuccess(t *testing.T) {
	client := &stubClient{err: errors.New("rate limited")}
	svc := newTestService(client, &stubRepo{}, &stubStore{}, &stubCache{})

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato"})

	require.NoError(t, err)
	require.True(t, envelope.Success)
	require.Equal(t, "Analysis Unavailable", envelope.Disease)
	require.Equal(t, "70.00", envelope.Confidence)
}

func TestDetect_MalformedReplyDegradesToSuccess(t *testing.T) {
	client := &stubClient{reply: "the leaf looks sort of spotted but not sure"}
	svc := newTestService(client, &stubRepo{}, &stubStore{}, &stubCache{})

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato"})

	require.NoError(t, err)
	require.True(t, envelope.Success)
	require.Equal(t, "Analysis Complete", envelope.Disease)
	require.Contains(t, envelope.AIRecommendation, "the leaf looks")
}

func TestDetect_PersistsWhenUserProvided(t *testing.T) {
	repo := &stubRepo{}
	store := &stubStore{url: "https://cdn.example/scan.jpg"}
	svc := newTestService(nil, repo, store, &stubCache{})

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato", UserID: "user-1"})

	require.NoError(t, err)
	require.NotEmpty(t, envelope.ScanID)
	require.Equal(t, "https://cdn.example/scan.jpg", envelope.ImageURL)
	require.Len(t, repo.inserted, 1)
	require.Equal(t, "user-1", repo.inserted[0].UserID)
	require.Equal(t, "Tomato", repo.inserted[0].CropType)
}

func TestDetect_PersistenceFailureIsNonFatal(t *testing.T) {
	repo := &stubRepo{insertErr: errors.New("db down")}
	store := &stubStore{err: errors.New("bucket gone")}
	svc := newTestService(nil, repo, store, &stubCache{})

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato", UserID: "user-1"})

	require.NoError(t, err)
	require.True(t, envelope.Success)
	require.Empty(t, envelope.ScanID)
	require.Empty(t, envelope.ImageURL)
}

func TestDetect_ServesCacheHit(t *testing.T) {
	cache := &stubCache{
		hit:    Result{Disease: "Early Blight", Confidence: 0.8, Severity: SeverityModerate},
		hasHit: true,
	}
	client := &stubClient{reply: "ignored"}
	svc := newTestService(client, &stubRepo{}, &stubStore{}, cache)

	envelope, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato"})

	require.NoError(t, err)
	require.Equal(t, "Early Blight", envelope.Disease)
	require.Equal(t, 0, client.calls)
}

func TestDetect_CachesCleanModelParses(t *testing.T) {
	cache := &stubCache{}
	client := &stubClient{reply: `{"disease_detected":"Leaf Mold","confidence":0.7,"severity":"Moderate"}`}
	svc := newTestService(client, &stubRepo{}, &stubStore{}, cache)

	_, err := svc.Detect(context.Background(), Request{Image: "aGVsbG8=", CropType: "tomato"})

	require.NoError(t, err)
	require.Len(t, cache.stored, 1)
	for _, stored := range cache.stored {
		require.Equal(t, "Leaf Mold", stored.Disease)
	}
}

func TestHistory_RequiresUserID(t *testing.T) {
	svc := newTestService(nil, &stubRepo{}, &stubStore{}, &stubCache{})

	_, err := svc.History(context.Background(), "", 10)

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestHistory_ReturnsScans(t *testing.T) {
	repo := &stubRepo{scans: []Scan{{ID: "s1", UserID: "user-1"}}}
	svc := newTestService(nil, repo, &stubStore{}, &stubCache{})

	scans, err := svc.History(context.Background(), "user-1", 0)

	require.NoError(t, err)
	require.Len(t, scans, 1)
	require.Equal(t, "s1", scans[0].ID)
}
