package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChecker_BasicHealth(t *testing.T) {
	checker := NewChecker(&CheckerConfig{
		Version: "1.0.0",
	})

	response := checker.Check(context.Background())

	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", response.Version)
	}
}

func TestChecker_DeepCheck_Healthy(t *testing.T) {
	checker := NewChecker(&CheckerConfig{
		// Any binary on PATH stands in for yt-dlp here.
		YtdlpPath:    "go",
		DownloadsDir: t.TempDir(),
		Version:      "1.0.0",
	})

	response := checker.DeepCheck(context.Background())

	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Components["downloads"].Status != StatusHealthy {
		t.Errorf("expected downloads component healthy, got %s", response.Components["downloads"].Status)
	}
}

func TestChecker_DeepCheck_MissingBinary(t *testing.T) {
	checker := NewChecker(&CheckerConfig{
		YtdlpPath:    "definitely-not-a-real-binary",
		DownloadsDir: t.TempDir(),
	})

	response := checker.DeepCheck(context.Background())

	if response.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", response.Status)
	}
	if response.Components["ytdlp"].Status != StatusUnhealthy {
		t.Errorf("expected ytdlp component unhealthy, got %s", response.Components["ytdlp"].Status)
	}
}

func TestChecker_DeepCheck_UnwritableDir(t *testing.T) {
	checker := NewChecker(&CheckerConfig{
		YtdlpPath:    "go",
		DownloadsDir: "/nonexistent/path/that/cannot/exist",
	})

	response := checker.DeepCheck(context.Background())

	if response.Components["downloads"].Status != StatusUnhealthy {
		t.Errorf("expected downloads component unhealthy, got %s", response.Components["downloads"].Status)
	}
}

func TestHandler_LivenessHandler(t *testing.T) {
	checker := NewChecker(&CheckerConfig{Version: "1.0.0"})
	handler := NewHandler(checker)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.LivenessHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
}

func TestHandler_ReadinessHandler_Unhealthy(t *testing.T) {
	checker := NewChecker(&CheckerConfig{
		YtdlpPath:    "definitely-not-a-real-binary",
		DownloadsDir: t.TempDir(),
	})
	handler := NewHandler(checker)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()

	handler.ReadinessHandler(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}
