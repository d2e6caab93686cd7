package validators

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Result contains the outcome of URL validation
type Result struct {
	Valid     bool   `json:"valid"`
	VideoID   string `json:"video_id,omitempty"`
	URL       string `json:"url"`
	Canonical string `json:"canonical_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// YouTubeValidator validates YouTube URLs before they reach the job manager
type YouTubeValidator struct {
	// videoIDPattern matches YouTube video IDs (11 characters, alphanumeric with - and _)
	videoIDPattern *regexp.Regexp
}

// NewYouTubeValidator creates a new YouTube URL validator
func NewYouTubeValidator() *YouTubeValidator {
	return &YouTubeValidator{
		videoIDPattern: regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`),
	}
}

// CanHandle returns true if the URL appears to be a YouTube URL
func (v *YouTubeValidator) CanHandle(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := normalizeHost(parsed.Host)
	return host == "youtube.com" || host == "youtu.be" || host == "music.youtube.com"
}

// Validate validates a YouTube URL and extracts the video ID
func (v *YouTubeValidator) Validate(rawURL string) Result {
	rawURL = strings.TrimSpace(rawURL)

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Result{URL: rawURL, Error: "invalid URL format"}
	}

	if parsed.Scheme == "" {
		parsed.Scheme = "https"
		rawURL = parsed.String()
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Result{URL: rawURL, Error: "invalid URL scheme"}
	}

	var videoID string
	switch normalizeHost(parsed.Host) {
	case "youtu.be":
		videoID = firstPathSegment(strings.TrimPrefix(parsed.Path, "/"))
	case "youtube.com", "music.youtube.com":
		videoID = extractFromYouTubeCom(parsed)
	default:
		return Result{URL: rawURL, Error: "not a YouTube URL"}
	}

	if videoID == "" {
		return Result{URL: rawURL, Error: "could not extract video ID from URL"}
	}
	if !v.videoIDPattern.MatchString(videoID) {
		return Result{URL: rawURL, VideoID: videoID, Error: "invalid video ID format"}
	}

	return Result{
		Valid:     true,
		VideoID:   videoID,
		URL:       rawURL,
		Canonical: fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
	}
}

// extractFromYouTubeCom extracts the video ID from youtube.com URL shapes
func extractFromYouTubeCom(parsed *url.URL) string {
	path := parsed.Path

	switch {
	case strings.HasPrefix(path, "/watch"):
		return parsed.Query().Get("v")
	case strings.HasPrefix(path, "/shorts/"):
		return firstPathSegment(strings.TrimPrefix(path, "/shorts/"))
	case strings.HasPrefix(path, "/embed/"):
		return firstPathSegment(strings.TrimPrefix(path, "/embed/"))
	case strings.HasPrefix(path, "/v/"):
		return firstPathSegment(strings.TrimPrefix(path, "/v/"))
	case strings.HasPrefix(path, "/live/"):
		return firstPathSegment(strings.TrimPrefix(path, "/live/"))
	}
	return ""
}

func firstPathSegment(s string) string {
	if idx := strings.IndexAny(s, "/?"); idx != -1 {
		return s[:idx]
	}
	return s
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	return host
}
