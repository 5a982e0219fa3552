package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestValidateUpload(t *testing.T) {
	t.Run("AcceptsImageTypes", func(t *testing.T) {
		for _, contentType := range []string{"image/jpeg", "image/png", "application/pdf", "IMAGE/PNG"} {
			if err := ValidateUpload(contentType, 1024); err != nil {
				t.Errorf("Expected %s to validate, got %v", contentType, err)
			}
		}
	})

	t.Run("RejectsUnsupportedType", func(t *testing.T) {
		err := ValidateUpload("text/html", 1024)
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("Expected ErrUnsupportedFileType, got %v", err)
		}
	})

	t.Run("RejectsEmptyFile", func(t *testing.T) {
		if err := ValidateUpload("image/png", 0); !errors.Is(err, ErrEmptyUpload) {
			t.Errorf("Expected ErrEmptyUpload, got %v", err)
		}
	})

	t.Run("RejectsOversizedFile", func(t *testing.T) {
		err := ValidateUpload("image/png", MaxFlyerSizeBytes+1)
		if !errors.Is(err, ErrUploadTooLarge) {
			t.Errorf("Expected ErrUploadTooLarge, got %v", err)
		}
	})
}

func TestExtractText(t *testing.T) {
	imageBytes := []byte("fake image data")

	t.Run("SuccessfulExtraction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				t.Errorf("Expected multipart form: %v", err)
			}
			if r.FormValue("OCREngine") != "2" {
				t.Errorf("Expected OCREngine 2, got %s", r.FormValue("OCREngine"))
			}
			w.Write([]byte(`{
				"ParsedResults": [{"ParsedText": "Spring Jazz Night\nMarch 14, 2025"}],
				"OCRExitCode": 1,
				"IsErroredOnProcessing": false
			}`))
		}))
		defer server.Close()

		client := NewOCRSpaceClientWithBaseURL("test-key", server.URL)
		result, err := client.ExtractText(context.Background(), imageBytes, "flyer.jpg", "image/jpeg")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(result.RawText, "Spring Jazz Night") {
			t.Errorf("Unexpected raw text: %q", result.RawText)
		}
		if result.WordCount != 6 {
			t.Errorf("Expected 6 words, got %d", result.WordCount)
		}
	})

	t.Run("ProcessingErrorDoesNotRetry", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Write([]byte(`{
				"ParsedResults": [],
				"IsErroredOnProcessing": true,
				"ErrorMessage": ["Unable to recognize the file type", "E216"]
			}`))
		}))
		defer server.Close()

		client := NewOCRSpaceClientWithBaseURL("test-key", server.URL)
		client.retryConfig = fastRetryConfig()

		_, err := client.ExtractText(context.Background(), imageBytes, "flyer.jpg", "image/jpeg")
		if !errors.Is(err, ErrOCRUnprocessable) {
			t.Fatalf("Expected ErrOCRUnprocessable, got %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("Expected exactly 1 call for a processing error, got %d", got)
		}
	})

	t.Run("ServerErrorsRetryThenUnavailable", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewOCRSpaceClientWithBaseURL("test-key", server.URL)
		client.retryConfig = fastRetryConfig()

		_, err := client.ExtractText(context.Background(), imageBytes, "flyer.jpg", "image/jpeg")
		if !errors.Is(err, ErrOCRUnavailable) {
			t.Fatalf("Expected ErrOCRUnavailable, got %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 3 {
			t.Errorf("Expected 3 attempts (1 + 2 retries), got %d", got)
		}
	})

	t.Run("BlankTextIsUnprocessable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"ParsedResults": [{"ParsedText": "   "}],
				"IsErroredOnProcessing": false
			}`))
		}))
		defer server.Close()

		client := NewOCRSpaceClientWithBaseURL("test-key", server.URL)
		_, err := client.ExtractText(context.Background(), imageBytes, "flyer.jpg", "image/jpeg")
		if !errors.Is(err, ErrOCRUnprocessable) {
			t.Errorf("Expected ErrOCRUnprocessable for blank text, got %v", err)
		}
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		client := NewOCRSpaceClient("")
		_, err := client.ExtractText(context.Background(), imageBytes, "flyer.jpg", "image/jpeg")
		if !errors.Is(err, ErrOCRUnavailable) {
			t.Errorf("Expected ErrOCRUnavailable, got %v", err)
		}
	})

	t.Run("RejectsInvalidUploadBeforeCalling", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		client := NewOCRSpaceClientWithBaseURL("test-key", server.URL)
		_, err := client.ExtractText(context.Background(), imageBytes, "flyer.html", "text/html")
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("Expected ErrUnsupportedFileType, got %v", err)
		}
		if atomic.LoadInt32(&calls) != 0 {
			t.Error("Expected no API call for an invalid upload")
		}
	})
}

func TestFlattenErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "String", raw: `"bad image"`, want: "bad image"},
		{name: "List", raw: `["bad image", "E216"]`, want: "bad image E216"},
		{name: "Empty", raw: ``, want: "unknown ocr processing error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flattenErrorMessage([]byte(tt.raw)); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
