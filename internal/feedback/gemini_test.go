package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClientExtractsCandidateText(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		resp := geminiResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content geminiContent `json:"content"`
		}{Content: geminiContent{Parts: []geminiPart{{Text: "world"}}}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewGeminiClient("test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))
	out, err := c.GenerateFeedback(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
}

func TestGeminiClientErrors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		c := NewGeminiClient("", "gemini-2.0-flash")
		_, err := c.GenerateFeedback(context.Background(), "p")
		require.Error(t, err)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "quota"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewGeminiClient("k", "m", WithBaseURL(srv.URL))
		_, err := c.GenerateFeedback(context.Background(), "p")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": []}`))
		}))
		defer srv.Close()

		c := NewGeminiClient("k", "m", WithBaseURL(srv.URL))
		_, err := c.GenerateFeedback(context.Background(), "p")
		require.Error(t, err)
	})
}
