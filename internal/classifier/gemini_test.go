package classifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibeshelf/internal/config"
	"vibeshelf/internal/domain"
	"vibeshelf/internal/fetcher"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewGeminiClient(config.Config{
		GeminiEndpoint: srv.URL,
		GeminiModel:    "gemini-pro",
		GeminiAPIKey:   "test-key",
	}, domain.DefaultTaxonomy(), log)
}

func geminiAnswer(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			},
		}},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func testPage() *fetcher.Content {
	return &fetcher.Content{
		URL:   "https://example.com/guide",
		Title: "Guide",
		Text:  "Content about planning.",
	}
}

func TestGeminiClient_ParsesFencedJSON(t *testing.T) {
	answer := "```json\n" + `{
		"title": "Guide",
		"summary": "A guide.",
		"suggested_categories": ["Planning"],
		"resource_type": "Tool",
		"language": "English"
	}` + "\n```"

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-pro:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		io.WriteString(w, geminiAnswer(answer))
	})

	result, err := client.Classify(context.Background(), testPage())
	require.NoError(t, err)
	assert.Equal(t, "Guide", result.Title)
	assert.Equal(t, "A guide.", result.Summary)
	assert.Equal(t, []string{"Planning"}, result.SuggestedCategories)
	assert.Equal(t, "Tool", result.ResourceType)
	assert.Equal(t, "English", result.Language)
}

// The request carries the fixed generation parameters and clamped content;
// neither is caller-tunable.
func TestGeminiClient_RequestContract(t *testing.T) {
	var captured geminiRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		io.WriteString(w, geminiAnswer(`{"title":"x","suggested_categories":["Planning"]}`))
	})

	page := testPage()
	page.Text = strings.Repeat("word ", 2000) // 10000 chars, past the ceiling

	_, err := client.Classify(context.Background(), page)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, captured.GenerationConfig.Temperature, 1e-9)
	assert.Equal(t, 1000, captured.GenerationConfig.MaxOutputTokens)

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 1)
	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "https://example.com/guide")
	assert.Contains(t, prompt, "Vibe Coding General", "prompt lists the allowed categories")
	// The page text portion is clamped to the content ceiling.
	assert.Less(t, len(prompt), domain.MaxContentLength+1500)
}

func TestGeminiClient_RateLimited(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Classify(context.Background(), testPage())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestGeminiClient_ServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := client.Classify(context.Background(), testPage())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
}

func TestGeminiClient_MalformedAnswer(t *testing.T) {
	cases := map[string]string{
		"not json answer": geminiAnswer("I cannot classify this page."),
		"empty candidate": `{"candidates": []}`,
		"body not json":   "<html>gateway error</html>",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})

			_, err := client.Classify(context.Background(), testPage())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
		})
	}
}

func TestGeminiClient_Misconfigured(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	client := NewGeminiClient(config.Config{}, domain.DefaultTaxonomy(), log)

	_, err := client.Classify(context.Background(), testPage())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAnalysisFailed)
}
