package ytdlp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tubefetch/tubefetch/internal/job"
)

// progressTemplate makes yt-dlp emit machine-readable byte counters, one
// event per line: "progress <status> <downloaded> <total> <estimate>".
const progressTemplate = "download:progress %(progress.status)s %(progress.downloaded_bytes|0)d %(progress.total_bytes|0)d %(progress.total_bytes_estimate|0)d"

// Client wraps the yt-dlp binary. It implements job.Fetcher.
type Client struct {
	bin string
}

// New creates a yt-dlp client, verifying the binary is reachable.
func New(binPath string) (*Client, error) {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if _, err := exec.LookPath(binPath); err != nil {
		return nil, ErrYtdlpNotFound
	}
	return &Client{bin: binPath}, nil
}

// BinaryPath returns the configured yt-dlp binary path.
func (c *Client) BinaryPath() string {
	return c.bin
}

// Fetch downloads the media described by spec into destDir, streaming
// progress events to onProgress. It blocks until yt-dlp exits.
func (c *Client) Fetch(ctx context.Context, spec job.FetchSpec, destDir string, onProgress func(job.ProgressEvent)) (job.FetchResult, error) {
	args := []string{
		"-f", spec.Format,
		"--output", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--newline",
		"--progress",
		"--progress-template", progressTemplate,
		"--print", "after_move:filepath",
		"--no-warnings",
		"--no-playlist",
	}
	if spec.Merge {
		args = append(args, "--merge-output-format", "mp4")
	}
	args = append(args, spec.URL)

	cmd := exec.CommandContext(ctx, c.bin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return job.FetchResult{}, &OperationError{URL: spec.URL, Message: "failed to create stdout pipe", Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return job.FetchResult{}, &OperationError{URL: spec.URL, Message: "failed to create stderr pipe", Err: err}
	}

	if err := cmd.Start(); err != nil {
		return job.FetchResult{}, c.categorizeError(spec.URL, err, "")
	}

	var stderrOutput strings.Builder
	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			stderrOutput.WriteString(scanner.Text())
			stderrOutput.WriteString("\n")
		}
	}()

	// Progress lines and the final file path share stdout; anything that
	// is not a progress event is the most recent path candidate.
	var outputPath string
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ev, ok := parseProgressLine(line); ok {
			if onProgress != nil {
				onProgress(ev)
			}
			continue
		}
		outputPath = line
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return job.FetchResult{}, &OperationError{URL: spec.URL, Message: "download timed out", Err: ErrTimeout}
		}
		return job.FetchResult{}, c.categorizeError(spec.URL, err, stderrOutput.String())
	}

	return job.FetchResult{OutputPath: outputPath}, nil
}

// Analyze retrieves metadata and available formats without downloading.
func (c *Client) Analyze(ctx context.Context, url string) (*Metadata, error) {
	args := []string{
		"--dump-json",
		"--no-download",
		"--no-warnings",
		"--no-playlist",
		url,
	}

	cmd := exec.CommandContext(ctx, c.bin, args...)
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, &OperationError{URL: url, Message: "analysis timed out", Err: ErrTimeout}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, c.categorizeError(url, err, string(exitErr.Stderr))
		}
		return nil, c.categorizeError(url, err, "")
	}

	var meta Metadata
	if err := json.Unmarshal(output, &meta); err != nil {
		return nil, &OperationError{URL: url, Message: "failed to parse metadata", Err: err}
	}

	return &meta, nil
}

// parseProgressLine decodes one progress-template line into an event.
func parseProgressLine(line string) (job.ProgressEvent, bool) {
	const prefix = "progress "
	if !strings.HasPrefix(line, prefix) {
		return job.ProgressEvent{}, false
	}

	fields := strings.Fields(strings.TrimPrefix(line, prefix))
	if len(fields) < 3 {
		return job.ProgressEvent{}, false
	}

	ev := job.ProgressEvent{
		Phase:           fields[0],
		DownloadedBytes: parseBytes(fields[1]),
		TotalBytes:      parseBytes(fields[2]),
	}
	if ev.TotalBytes <= 0 && len(fields) >= 4 {
		ev.TotalBytes = parseBytes(fields[3])
	}

	return ev, true
}

// parseBytes parses a byte counter, treating "NA" and garbage as unknown.
func parseBytes(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// categorizeError converts yt-dlp stderr output into specific error types
func (c *Client) categorizeError(url string, err error, stderr string) error {
	stderrLower := strings.ToLower(stderr)

	switch {
	case strings.Contains(stderrLower, "video unavailable") ||
		strings.Contains(stderrLower, "this video is unavailable"):
		return &OperationError{URL: url, Message: "video unavailable", Err: ErrVideoUnavailable}

	case strings.Contains(stderrLower, "private video") ||
		strings.Contains(stderrLower, "is private"):
		return &OperationError{URL: url, Message: "video is private", Err: ErrVideoPrivate}

	case strings.Contains(stderrLower, "age-restricted") ||
		strings.Contains(stderrLower, "sign in to confirm your age"):
		return &OperationError{URL: url, Message: "content is age-restricted", Err: ErrAgeRestricted}

	case strings.Contains(stderrLower, "unable to download") ||
		strings.Contains(stderrLower, "connection") ||
		strings.Contains(stderrLower, "network"):
		return &OperationError{URL: url, Message: "network error", Err: ErrNetworkError}

	default:
		return &OperationError{URL: url, Message: "download failed", Err: fmt.Errorf("%w: %s", ErrDownloadFailed, strings.TrimSpace(stderr))}
	}
}
