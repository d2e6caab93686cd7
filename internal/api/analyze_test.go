package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

func sampleMetadata() *ytdlp.Metadata {
	return &ytdlp.Metadata{
		ID:        "dQw4w9WgXcQ",
		Title:     "Test Video",
		Uploader:  "Test Channel",
		Duration:  212,
		Thumbnail: "https://example.com/thumb.jpg",
		Formats: []ytdlp.Format{
			{FormatID: "18", Ext: "mp4", Height: 360, Vcodec: "avc1", Acodec: "mp4a", Filesize: 15 << 20},
			{FormatID: "137", Ext: "mp4", Height: 1080, Vcodec: "avc1", Acodec: "none", Filesize: 80 << 20},
			{FormatID: "140", Ext: "m4a", Vcodec: "none", Acodec: "mp4a", Abr: 129.5, Filesize: 3 << 20},
		},
	}
}

func TestAnalyze_Success(t *testing.T) {
	analyzer := &stubAnalyzer{meta: sampleMetadata()}
	router, _ := newTestRouter(t, &stubFetcher{}, analyzer)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/analyze", `{"url": "`+testURL+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Title != "Test Video" {
		t.Errorf("Expected title Test Video, got %q", resp.Title)
	}
	if resp.Author != "Test Channel" {
		t.Errorf("Expected author Test Channel, got %q", resp.Author)
	}
	if resp.Length != "3:32" {
		t.Errorf("Expected length 3:32, got %q", resp.Length)
	}
	if resp.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("Expected video ID dQw4w9WgXcQ, got %q", resp.VideoID)
	}
	if len(resp.Formats.Progressive) != 1 {
		t.Errorf("Expected 1 progressive format, got %d", len(resp.Formats.Progressive))
	}
	if len(resp.Formats.AutoMerge) != 1 {
		t.Errorf("Expected 1 merge option, got %d", len(resp.Formats.AutoMerge))
	}
}

func TestAnalyze_Validation(t *testing.T) {
	router, _ := newTestRouter(t, &stubFetcher{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{`},
		{"missing url", `{}`},
		{"non-youtube url", `{"url": "https://vimeo.com/123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/analyze", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAnalyze_ExtractionFailure(t *testing.T) {
	analyzer := &stubAnalyzer{err: &ytdlp.OperationError{
		URL:     testURL,
		Message: "video unavailable",
		Err:     ytdlp.ErrVideoUnavailable,
	}}
	router, _ := newTestRouter(t, &stubFetcher{}, analyzer)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/analyze", `{"url": "`+testURL+`"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := errorCode(t, rec); got != "ANALYZE_ERROR" {
		t.Errorf("Expected code ANALYZE_ERROR, got %s", got)
	}
}

func TestAnalyze_Timeout(t *testing.T) {
	analyzer := &stubAnalyzer{err: &ytdlp.OperationError{
		URL:     testURL,
		Message: "analysis timed out",
		Err:     ytdlp.ErrTimeout,
	}}
	router, _ := newTestRouter(t, &stubFetcher{}, analyzer)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/analyze", `{"url": "`+testURL+`"}`)
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("Expected 504, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := errorCode(t, rec); got != "EXTERNAL_TIMEOUT" {
		t.Errorf("Expected code EXTERNAL_TIMEOUT, got %s", got)
	}
}
