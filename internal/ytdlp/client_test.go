package ytdlp

import (
	"errors"
	"testing"

	"github.com/tubefetch/tubefetch/internal/job"
)

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantOK bool
		want   job.ProgressEvent
	}{
		{
			name:   "downloading with total",
			line:   "progress downloading 512000 1024000 0",
			wantOK: true,
			want:   job.ProgressEvent{Phase: "downloading", DownloadedBytes: 512000, TotalBytes: 1024000},
		},
		{
			name:   "estimate fallback when total missing",
			line:   "progress downloading 512000 0 2048000",
			wantOK: true,
			want:   job.ProgressEvent{Phase: "downloading", DownloadedBytes: 512000, TotalBytes: 2048000},
		},
		{
			name:   "finished event",
			line:   "progress finished 1024000 1024000 0",
			wantOK: true,
			want:   job.ProgressEvent{Phase: "finished", DownloadedBytes: 1024000, TotalBytes: 1024000},
		},
		{
			name:   "NA counters treated as unknown",
			line:   "progress downloading NA NA NA",
			wantOK: true,
			want:   job.ProgressEvent{Phase: "downloading"},
		},
		{
			name:   "file path line is not progress",
			line:   "/tmp/work/abc/My Video.mp4",
			wantOK: false,
		},
		{
			name:   "truncated progress line",
			line:   "progress downloading",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseProgressLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("parseProgressLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("parseProgressLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1024", 1024},
		{"0", 0},
		{"NA", 0},
		{"-5", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := parseBytes(tt.in); got != tt.want {
			t.Errorf("parseBytes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCategorizeError(t *testing.T) {
	c := &Client{bin: "yt-dlp"}
	base := errors.New("exit status 1")

	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"unavailable", "ERROR: Video unavailable", ErrVideoUnavailable},
		{"private", "ERROR: Private video. Sign in if you've been granted access", ErrVideoPrivate},
		{"age restricted", "ERROR: Sign in to confirm your age", ErrAgeRestricted},
		{"network", "ERROR: unable to download webpage", ErrNetworkError},
		{"generic", "ERROR: something else entirely", ErrDownloadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.categorizeError("https://example.com", base, tt.stderr)
			if !errors.Is(err, tt.want) {
				t.Errorf("categorizeError(%q) = %v, want wrapped %v", tt.stderr, err, tt.want)
			}

			var opErr *OperationError
			if !errors.As(err, &opErr) {
				t.Fatal("Expected an OperationError")
			}
			if opErr.URL != "https://example.com" {
				t.Errorf("Unexpected URL in error: %s", opErr.URL)
			}
		})
	}
}
