package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "", time.Second)
	require.Error(t, err)
}

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		require.Len(t, req.Messages[0].Content, 2)
		require.Equal(t, "image_url", req.Messages[0].Content[1].Type)

		resp := ChatCompletionResponse{
			Choices: []Choice{{Message: ResponseMessage{Role: "assistant", Content: "hello"}}},
			Usage:   Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model: "test-model",
		Messages: []Message{{
			Role:    "user",
			Content: []ContentPart{TextPart("analyze this"), ImagePart("aGVsbG8=")},
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, "hello", resp.Choices[0].Message.Content)
	require.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCreateChatCompletion_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limit"}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "test-model"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestImagePart_AddsDataURIPrefix(t *testing.T) {
	part := ImagePart("aGVsbG8=")
	require.Equal(t, "data:image/jpeg;base64,aGVsbG8=", part.ImageURL.URL)

	prefixed := ImagePart("data:image/png;base64,aGVsbG8=")
	require.Equal(t, "data:image/png;base64,aGVsbG8=", prefixed.ImageURL.URL)
}
