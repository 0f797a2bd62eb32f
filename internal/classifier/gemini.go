package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vibeshelf/internal/config"
	"vibeshelf/internal/domain"
	"vibeshelf/internal/fetcher"
	"vibeshelf/internal/validate"
)

// Generation parameters are fixed by policy, not caller-supplied: a
// low-temperature setting biased toward deterministic extraction and a
// bounded output size keep runs reproducible on the same content.
const (
	temperature     = 0.3
	maxOutputTokens = 1000
)

// GeminiClient implements Classifier against the Gemini generateContent API.
type GeminiClient struct {
	endpoint   string
	model      string
	apiKey     string
	taxonomy   domain.Taxonomy
	httpClient *http.Client
	log        logrus.FieldLogger
}

var _ Classifier = (*GeminiClient)(nil)

// NewGeminiClient builds a client from configuration.
func NewGeminiClient(cfg config.Config, taxonomy domain.Taxonomy, logger logrus.FieldLogger) *GeminiClient {
	return &GeminiClient{
		endpoint: cfg.GeminiEndpoint,
		model:    cfg.GeminiModel,
		apiKey:   cfg.GeminiAPIKey,
		taxonomy: taxonomy,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		log: logger.WithField("component", "classifier"),
	}
}

// Request/response shapes for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify submits page content, clamped to the contract ceiling, and parses
// the model's JSON answer into an untrusted Result.
func (c *GeminiClient) Classify(ctx context.Context, content *fetcher.Content) (*Result, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return nil, fmt.Errorf("%w: gemini client misconfigured", domain.ErrAnalysisFailed)
	}

	prompt := c.buildPrompt(content)
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", domain.ErrAnalysisFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", strings.TrimSuffix(c.endpoint, "/"), c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", domain.ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.log.Warn("Gemini rate limited the request")
		return nil, domain.ErrRateLimited
	}
	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.WithField("status", resp.Status).Error("Gemini request failed")
		return nil, fmt.Errorf("%w: gemini %s: %s", domain.ErrAnalysisFailed, resp.Status, strings.TrimSpace(string(detail)))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrAnalysisFailed, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", domain.ErrAnalysisFailed)
	}

	result, err := parseResult(gr.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	c.log.WithField("suggested_categories", result.SuggestedCategories).Info("Content classified")
	return result, nil
}

// buildPrompt assembles the extraction instruction. Content is clamped to
// MaxContentLength before sending; that ceiling is a hard contract with the
// service, not a heuristic.
func (c *GeminiClient) buildPrompt(content *fetcher.Content) string {
	var b strings.Builder
	b.WriteString("Analyze the following web page and respond with a single JSON object ")
	b.WriteString(`with these keys: "title", "summary" (max 2 sentences), "thumbnail_url", `)
	b.WriteString(`"suggested_categories" (1 to 3 values), "resource_type", "language".`)
	b.WriteString("\nAllowed categories: ")
	b.WriteString(strings.Join(c.taxonomy.Categories, ", "))
	b.WriteString("\nAllowed resource types: ")
	b.WriteString(strings.Join(c.taxonomy.ResourceTypes, ", "))
	b.WriteString("\nAllowed languages: ")
	b.WriteString(strings.Join(c.taxonomy.Languages, ", "))
	b.WriteString("\n\nURL: ")
	b.WriteString(content.URL)
	b.WriteString("\nPage title: ")
	b.WriteString(content.Title)
	b.WriteString("\nPage content:\n")
	b.WriteString(validate.ClampText(content.Text, domain.MaxContentLength))
	return b.String()
}

// parseResult extracts the JSON object from the model's answer text. Models
// routinely wrap JSON in markdown fences, so those are stripped first.
func parseResult(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: response is not valid json: %v", domain.ErrAnalysisFailed, err)
	}
	return &result, nil
}
