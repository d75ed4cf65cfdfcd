// ABOUTME: Gemini vision client that reads health metrics off a screenshot.
// ABOUTME: Calls the generateContent REST endpoint with client-side rate limiting.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/harperreed/checkingin/internal/logging"
	"github.com/harperreed/checkingin/internal/models"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-1.5-pro"
	DefaultMimeType = "image/jpeg"
)

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Extractor reads health metrics from an image.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (*models.ExtractedMetrics, error)
}

const extractionPrompt = `You are a health data extraction expert. Analyze this health/fitness screenshot and extract numerical health metrics.

Look for the following metrics and extract their exact numerical values:
- Sleep hours (total sleep time)
- Recovery percentage (recovery score)
- Strain (daily strain or exertion level)
- HRV (Heart Rate Variability in ms)
- Resting heart rate (BPM)
- Steps (daily step count)
- Calories (calories burned or active calories)

Respond with JSON in this exact format:
{
  "sleepHours": number or null,
  "recoveryPercent": number or null,
  "strain": number or null,
  "hrv": number or null,
  "restingHeartRate": number or null,
  "steps": number or null,
  "calories": number or null
}

Only include values that are clearly visible and readable in the image. Set to null if not found.`

// Options configures a GeminiClient. Zero values fall back to defaults.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	// RequestsPerMinute bounds outgoing calls; 0 means 30.
	RequestsPerMinute int
}

// GeminiClient extracts metrics using the Gemini API. Safe for concurrent use.
type GeminiClient struct {
	client      *http.Client
	rateLimiter *rate.Limiter
	apiKey      string
	model       string
	baseURL     string
}

// Compile-time check that GeminiClient implements Extractor.
var _ Extractor = (*GeminiClient)(nil)

// NewGeminiClient creates a client. It fails only when no API key is given.
func NewGeminiClient(opts Options) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}

	c := &GeminiClient{
		client:      opts.HTTPClient,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 5),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 60 * time.Second}
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return c, nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Extract sends the image to Gemini and decodes the metrics it reports.
// Errors are returned as-is; nothing is retried.
func (c *GeminiClient) Extract(ctx context.Context, image []byte, mimeType string) (*models.ExtractedMetrics, error) {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: extractionPrompt},
			},
		}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	logging.Debug("calling vision model", "model", c.model, "mime", mimeType, "bytes", len(image))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, respBody)
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var text strings.Builder
	for _, cand := range gr.Candidates {
		for _, p := range cand.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	if text.Len() == 0 {
		return nil, errors.New("empty response from vision model")
	}

	logging.Debug("vision model response", "raw", text.String())

	return ParseMetrics(text.String())
}

func statusError(status int, body []byte) error {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error.Message != "" {
		return fmt.Errorf("vision API error (status %d): %s", status, ae.Error.Message)
	}
	excerpt := string(body)
	if len(excerpt) > 200 {
		excerpt = excerpt[:200]
	}
	return fmt.Errorf("vision API error (status %d): %s", status, excerpt)
}

// rawMetrics accepts any JSON number for every field; models often
// return 8432.0 for step counts.
type rawMetrics struct {
	SleepHours       *float64 `json:"sleepHours"`
	RecoveryPercent  *float64 `json:"recoveryPercent"`
	Strain           *float64 `json:"strain"`
	HRV              *float64 `json:"hrv"`
	RestingHeartRate *float64 `json:"restingHeartRate"`
	Steps            *float64 `json:"steps"`
	Calories         *float64 `json:"calories"`
}

// ParseMetrics decodes the model's JSON reply, tolerating a Markdown code fence.
func ParseMetrics(text string) (*models.ExtractedMetrics, error) {
	text = stripCodeFence(text)

	var raw rawMetrics
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode metrics JSON: %w", err)
	}

	return &models.ExtractedMetrics{
		SleepHours:       raw.SleepHours,
		RecoveryPercent:  raw.RecoveryPercent,
		Strain:           raw.Strain,
		HRV:              raw.HRV,
		RestingHeartRate: raw.RestingHeartRate,
		Steps:            roundedInt(raw.Steps),
		Calories:         roundedInt(raw.Calories),
	}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func roundedInt(v *float64) *int {
	if v == nil {
		return nil
	}
	i := int(math.Round(*v))
	return &i
}

// DetectMimeType sniffs the image type from its first bytes, falling back
// to DefaultMimeType for anything that is not an image.
func DetectMimeType(image []byte) string {
	mt := http.DetectContentType(image)
	if strings.HasPrefix(mt, "image/") {
		return mt
	}
	return DefaultMimeType
}
