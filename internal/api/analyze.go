package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/tubefetch/tubefetch/internal/errors"
	"github.com/tubefetch/tubefetch/internal/logger"
	"github.com/tubefetch/tubefetch/internal/media"
	"github.com/tubefetch/tubefetch/internal/metrics"
	"github.com/tubefetch/tubefetch/internal/validators"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// Analyzer extracts metadata for a remote media URL.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*ytdlp.Metadata, error)
}

type AnalyzeHandlers struct {
	analyzer  Analyzer
	validator *validators.YouTubeValidator
	log       *logger.Logger
}

func NewAnalyzeHandlers(analyzer Analyzer) *AnalyzeHandlers {
	return &AnalyzeHandlers{
		analyzer:  analyzer,
		validator: validators.NewYouTubeValidator(),
		log:       logger.Default().WithComponent("api"),
	}
}

// AnalyzeRequest represents the request body for analyzing a URL
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse represents extracted media information plus the
// grouped format listing the download page renders.
type AnalyzeResponse struct {
	VideoID   string        `json:"video_id"`
	URL       string        `json:"url"`
	Title     string        `json:"title"`
	Author    string        `json:"author"`
	Length    string        `json:"length"`
	Thumbnail string        `json:"thumbnail"`
	Formats   media.Listing `json:"formats"`
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandlers) Analyze(w http.ResponseWriter, r *http.Request) error {
	requestID := apperrors.GetRequestID(r.Context())

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if req.URL == "" {
		return apperrors.ValidationError("url is required")
	}

	result := h.validator.Validate(req.URL)
	if !result.Valid {
		return apperrors.ValidationError(result.Error)
	}

	meta, err := h.analyzer.Analyze(r.Context(), result.Canonical)
	if err != nil {
		return mapAnalyzeError(err)
	}

	metrics.Default().IncCounter("analyses_completed")

	apperrors.WriteJSON(w, requestID, http.StatusOK, AnalyzeResponse{
		VideoID:   result.VideoID,
		URL:       result.Canonical,
		Title:     meta.Title,
		Author:    meta.Author(),
		Length:    media.FormatDuration(meta.Duration),
		Thumbnail: meta.BestThumbnail(),
		Formats:   media.BuildListing(meta.Formats),
	})
	return nil
}

func mapAnalyzeError(err error) error {
	switch {
	case errors.Is(err, ytdlp.ErrVideoUnavailable):
		return apperrors.AnalyzeError("video is unavailable")
	case errors.Is(err, ytdlp.ErrVideoPrivate):
		return apperrors.AnalyzeError("video is private")
	case errors.Is(err, ytdlp.ErrAgeRestricted):
		return apperrors.AnalyzeError("video is age restricted")
	case errors.Is(err, ytdlp.ErrTimeout):
		return apperrors.ExternalTimeout("yt-dlp")
	default:
		return apperrors.AnalyzeError("failed to analyze video").WithCause(err)
	}
}
