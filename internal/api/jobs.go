package api

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	apperrors "github.com/tubefetch/tubefetch/internal/errors"
	"github.com/tubefetch/tubefetch/internal/job"
	"github.com/tubefetch/tubefetch/internal/logger"
	"github.com/tubefetch/tubefetch/internal/media"
	"github.com/tubefetch/tubefetch/internal/metrics"
	"github.com/tubefetch/tubefetch/internal/validators"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type JobHandlers struct {
	manager   *job.Manager
	validator *validators.YouTubeValidator
	log       *logger.Logger
}

func NewJobHandlers(manager *job.Manager) *JobHandlers {
	return &JobHandlers{
		manager:   manager,
		validator: validators.NewYouTubeValidator(),
		log:       logger.Default().WithComponent("api"),
	}
}

// StartJobRequest represents the request body for starting a download job
type StartJobRequest struct {
	URL           string `json:"url"`
	Mode          string `json:"mode"`
	FormatID      string `json:"format_id,omitempty"`
	VideoFormatID string `json:"video_format_id,omitempty"`
	AudioFormatID string `json:"audio_format_id,omitempty"`
}

// StartJobResponse represents the response for a started job
type StartJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// JobStatusResponse represents a job status response
type JobStatusResponse struct {
	JobID      string  `json:"job_id"`
	Status     string  `json:"status"`
	Progress   float64 `json:"progress"`
	StatusText string  `json:"status_text"`
	Error      string  `json:"error,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// Index serves the single-page UI
func (h *JobHandlers) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		h.log.Error(r.Context(), "failed to render index page", err)
	}
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) error {
	requestID := apperrors.GetRequestID(r.Context())

	var req StartJobRequest
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
	req.URL = result.Canonical

	spec, err := buildFetchSpec(&req)
	if err != nil {
		return err
	}

	id, err := h.manager.Submit(spec)
	if err != nil {
		if errors.Is(err, job.ErrBusy) {
			return apperrors.DownloadInProgress()
		}
		return apperrors.InternalError("failed to start download").WithCause(err)
	}

	metrics.Default().IncCounter("jobs_started")

	apperrors.WriteJSON(w, requestID, http.StatusCreated, StartJobResponse{
		JobID:  id,
		Status: job.StatusQueued,
	})
	return nil
}

// buildFetchSpec translates the request's mode and format IDs into a
// fetch spec: "single" uses one format, "merge" pairs video and audio.
func buildFetchSpec(req *StartJobRequest) (job.FetchSpec, error) {
	switch req.Mode {
	case "", "single":
		if req.FormatID == "" {
			return job.FetchSpec{}, apperrors.ValidationError("format_id is required for single mode")
		}
		return job.FetchSpec{URL: req.URL, Format: req.FormatID}, nil

	case "merge":
		if req.VideoFormatID == "" || req.AudioFormatID == "" {
			return job.FetchSpec{}, apperrors.ValidationError("video_format_id and audio_format_id are required for merge mode")
		}
		return job.FetchSpec{
			URL:    req.URL,
			Format: fmt.Sprintf("%s+%s", req.VideoFormatID, req.AudioFormatID),
			Merge:  true,
		}, nil

	default:
		return job.FetchSpec{}, apperrors.ValidationError("mode must be \"single\" or \"merge\"")
	}
}

// GetJob handles GET /api/v1/jobs/{job_id}
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) error {
	requestID := apperrors.GetRequestID(r.Context())

	jobID := r.PathValue("job_id")
	if jobID == "" {
		return apperrors.BadRequest("job_id is required")
	}

	j, err := h.manager.Status(jobID)
	if err != nil {
		return apperrors.JobNotFound()
	}

	apperrors.WriteJSON(w, requestID, http.StatusOK, JobStatusResponse{
		JobID:      j.ID,
		Status:     j.Status,
		Progress:   j.Progress,
		StatusText: j.StatusText,
		Error:      j.Error,
		CreatedAt:  j.CreatedAt.UTC().Format(time.RFC3339),
	})
	return nil
}

// GetJobFile handles GET /api/v1/jobs/{job_id}/file. The job's scratch
// state is reclaimed only after the file has been copied to the client.
func (h *JobHandlers) GetJobFile(w http.ResponseWriter, r *http.Request) error {
	jobID := r.PathValue("job_id")
	if jobID == "" {
		return apperrors.BadRequest("job_id is required")
	}

	f, name, cleanup, err := h.manager.OpenResult(jobID)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			return apperrors.JobNotFound()
		case errors.Is(err, job.ErrNotReady):
			return apperrors.JobNotReady()
		default:
			return apperrors.InternalError("failed to open result file").WithCause(err)
		}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return apperrors.InternalError("failed to stat result file").WithCause(err)
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", media.SanitizeFilename(name)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", fi.Size()))

	if _, err := io.Copy(w, f); err != nil {
		// The response is already underway; nothing to send but a log line.
		h.log.Warn(r.Context(), "file delivery interrupted", map[string]interface{}{
			"job_id": jobID,
		})
	}

	// The bytes are on the wire; now the job and its workDir can go.
	cleanup()
	metrics.Default().IncCounter("files_delivered")

	return nil
}
