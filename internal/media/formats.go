package media

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

// Stream is one user-selectable format option.
type Stream struct {
	FormatID   string  `json:"format_id"`
	Resolution string  `json:"resolution"`
	Filesize   string  `json:"filesize"`
	Ext        string  `json:"ext"`
	Vcodec     string  `json:"vcodec"`
	Acodec     string  `json:"acodec"`
	FPS        float64 `json:"fps,omitempty"`

	height int
}

// MergeOption pairs a video-only format with the best audio-only format.
type MergeOption struct {
	Resolution    string  `json:"resolution"`
	FPS           float64 `json:"fps,omitempty"`
	VideoFormatID string  `json:"video_format_id"`
	AudioFormatID string  `json:"audio_format_id"`
	Vcodec        string  `json:"vcodec"`
	Acodec        string  `json:"acodec"`
}

// Listing groups a media item's formats for presentation.
type Listing struct {
	Progressive []Stream      `json:"progressive"`
	VideoOnly   []Stream      `json:"video_only"`
	AudioOnly   []Stream      `json:"audio_only"`
	AutoMerge   []MergeOption `json:"auto_merge"`
}

// BuildListing groups, sorts and annotates raw yt-dlp formats the way the
// download page presents them: progressive and video-only streams by
// resolution descending, plus auto-merge candidates pairing each distinct
// video resolution with the best audio stream.
func BuildListing(formats []ytdlp.Format) Listing {
	var l Listing

	for i := range formats {
		f := &formats[i]
		if f.Ext == "mhtml" {
			// Storyboard pseudo-format, not downloadable media.
			continue
		}

		s := Stream{
			FormatID:   f.FormatID,
			Resolution: resolutionLabel(f.Height),
			Filesize:   FormatBytes(f.Size()),
			Ext:        f.Ext,
			Vcodec:     f.Vcodec,
			Acodec:     f.Acodec,
			FPS:        f.FPS,
			height:     f.Height,
		}

		switch {
		case f.HasVideo() && f.HasAudio():
			l.Progressive = append(l.Progressive, s)
		case f.HasVideo():
			l.VideoOnly = append(l.VideoOnly, s)
		case f.HasAudio():
			l.AudioOnly = append(l.AudioOnly, s)
		}
	}

	sortByHeight(l.Progressive)
	sortByHeight(l.VideoOnly)

	l.AutoMerge = buildMergeOptions(l.VideoOnly, bestAudio(formats))

	return l
}

// bestAudio picks the audio-only format with the highest bitrate.
func bestAudio(formats []ytdlp.Format) *ytdlp.Format {
	var best *ytdlp.Format
	for i := range formats {
		f := &formats[i]
		if f.Ext == "mhtml" || f.HasVideo() || !f.HasAudio() {
			continue
		}
		if best == nil || f.Abr > best.Abr {
			best = f
		}
	}
	return best
}

// buildMergeOptions emits one option per distinct video-only resolution.
func buildMergeOptions(videoOnly []Stream, audio *ytdlp.Format) []MergeOption {
	if audio == nil || len(videoOnly) == 0 {
		return nil
	}

	var options []MergeOption
	seen := make(map[string]bool)
	for _, v := range videoOnly {
		if v.height <= 0 || seen[v.Resolution] {
			continue
		}
		seen[v.Resolution] = true
		options = append(options, MergeOption{
			Resolution:    v.Resolution,
			FPS:           v.FPS,
			VideoFormatID: v.FormatID,
			AudioFormatID: audio.FormatID,
			Vcodec:        v.Vcodec,
			Acodec:        audio.Acodec,
		})
	}
	return options
}

func sortByHeight(streams []Stream) {
	sort.SliceStable(streams, func(i, j int) bool {
		return streams[i].height > streams[j].height
	})
}

func resolutionLabel(height int) string {
	if height > 0 {
		return fmt.Sprintf("%dp", height)
	}
	return "Audio"
}

// FormatBytes renders a byte count for display; zero means unknown.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "Unknown"
	}
	return humanize.Bytes(uint64(n))
}

// FormatDuration renders a duration in seconds as m:ss (or h:mm:ss).
func FormatDuration(seconds float64) string {
	total := int(seconds)
	if total <= 0 {
		return "0:00"
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
