package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Sentinel errors for the OCR boundary. Unprocessable means the service
// answered but could not read the image; Unavailable means the service
// could not be reached at all.
var (
	ErrOCRUnprocessable = errors.New("ocr could not extract readable text")
	ErrOCRUnavailable   = errors.New("ocr service unavailable")
)

// Upload validation errors, distinguished so the API layer can map file-size
// problems to a different status than file-type problems.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUploadTooLarge      = errors.New("uploaded file too large")
	ErrEmptyUpload         = errors.New("uploaded file is empty")
)

// MaxFlyerSizeBytes is the upload limit (OCR.Space free tier).
const MaxFlyerSizeBytes = 5 * 1024 * 1024

// OCRSpaceClient extracts text from flyer images using the OCR.Space API.
type OCRSpaceClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	language    string
	retryConfig RetryConfig
}

// RetryConfig defines retry behavior for failed requests.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// OCRResult is the cleaned outcome of one OCR call.
type OCRResult struct {
	RawText      string `json:"raw_text"`
	WordCount    int    `json:"word_count"`
	OCREngine    int    `json:"ocr_engine"`
	ProcessingMS int64  `json:"processing_ms"`
}

// ocrSpaceResponse mirrors the OCR.Space JSON payload.
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText   string `json:"ParsedText"`
		ErrorMessage string `json:"ErrorMessage"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// NewOCRSpaceClient creates an OCR.Space client.
func NewOCRSpaceClient(apiKey string) *OCRSpaceClient {
	return &OCRSpaceClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  "https://api.ocr.space/parse/image",
		apiKey:   apiKey,
		language: "eng",
		retryConfig: RetryConfig{
			MaxRetries:    2,
			InitialDelay:  1 * time.Second,
			MaxDelay:      10 * time.Second,
			BackoffFactor: 2.0,
		},
	}
}

// NewOCRSpaceClientWithBaseURL creates a client pointed at a custom endpoint.
func NewOCRSpaceClientWithBaseURL(apiKey, baseURL string) *OCRSpaceClient {
	client := NewOCRSpaceClient(apiKey)
	client.baseURL = baseURL
	return client
}

// allowedContentTypes for uploaded flyer images.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/bmp":       true,
	"image/tiff":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// ValidateUpload checks the flyer's content type and size before any API
// call is made.
func ValidateUpload(contentType string, size int) error {
	if !allowedContentTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, contentType)
	}
	if size == 0 {
		return ErrEmptyUpload
	}
	if size > MaxFlyerSizeBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrUploadTooLarge, size, MaxFlyerSizeBytes)
	}
	return nil
}

// ExtractText sends the flyer image to OCR.Space and returns the extracted
// raw text. Network failures retry with backoff and surface as
// ErrOCRUnavailable; a processing error from the API surfaces as
// ErrOCRUnprocessable and is not retried.
func (o *OCRSpaceClient) ExtractText(ctx context.Context, imageBytes []byte, fileName, contentType string) (*OCRResult, error) {
	startTime := time.Now()

	if o.apiKey == "" {
		return nil, fmt.Errorf("%w: api key not configured", ErrOCRUnavailable)
	}
	if err := ValidateUpload(contentType, len(imageBytes)); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= o.retryConfig.MaxRetries; attempt++ {
		result, err := o.attemptExtraction(ctx, imageBytes, fileName, contentType)
		if err == nil {
			result.ProcessingMS = time.Since(startTime).Milliseconds()
			return result, nil
		}

		lastErr = err

		// Processing errors are deterministic; retrying wastes quota.
		if errors.Is(err, ErrOCRUnprocessable) {
			return nil, err
		}

		if attempt < o.retryConfig.MaxRetries {
			delay := o.calculateDelay(attempt)
			log.Printf("OCR attempt %d failed for %s, retrying in %v: %v", attempt+1, fileName, delay, err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrOCRUnavailable, ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("%w: failed after %d attempts: %v", ErrOCRUnavailable, o.retryConfig.MaxRetries+1, lastErr)
}

func (o *OCRSpaceClient) attemptExtraction(ctx context.Context, imageBytes []byte, fileName, contentType string) (*OCRResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"apikey":            o.apiKey,
		"language":          o.language,
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		// Engine 2 handles the mixed fonts and dense layouts typical of
		// event flyers better than engine 1.
		"OCREngine": "2",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to build form field %s: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageBytes); err != nil {
		return nil, fmt.Errorf("failed to write image bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ocr returned status %d: %s", resp.StatusCode, string(payload))
	}

	var parsed ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode ocr response: %w", err)
	}

	return parseOCRResponse(parsed)
}

func parseOCRResponse(parsed ocrSpaceResponse) (*OCRResult, error) {
	if parsed.IsErroredOnProcessing {
		return nil, fmt.Errorf("%w: %s", ErrOCRUnprocessable, flattenErrorMessage(parsed.ErrorMessage))
	}

	if len(parsed.ParsedResults) == 0 {
		return nil, fmt.Errorf("%w: empty parsed results", ErrOCRUnprocessable)
	}

	var texts []string
	for _, result := range parsed.ParsedResults {
		if strings.TrimSpace(result.ParsedText) != "" {
			texts = append(texts, result.ParsedText)
		}
	}

	rawText := strings.TrimSpace(strings.Join(texts, "\n"))
	if rawText == "" {
		return nil, fmt.Errorf("%w: image may be blank or unreadable", ErrOCRUnprocessable)
	}

	return &OCRResult{
		RawText:   rawText,
		WordCount: len(strings.Fields(rawText)),
		OCREngine: 2,
	}, nil
}

// flattenErrorMessage handles OCR.Space returning ErrorMessage as either a
// string or a list of strings.
func flattenErrorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "unknown ocr processing error"
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, " ")
	}

	return string(raw)
}

func (o *OCRSpaceClient) calculateDelay(attempt int) time.Duration {
	delay := float64(o.retryConfig.InitialDelay)*
		math.Pow(o.retryConfig.BackoffFactor, float64(attempt)) +
		rand.Float64()*0.1*float64(o.retryConfig.InitialDelay)

	if delay > float64(o.retryConfig.MaxDelay) {
		delay = float64(o.retryConfig.MaxDelay)
	}
	return time.Duration(delay)
}
