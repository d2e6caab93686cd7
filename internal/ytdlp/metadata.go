package ytdlp

// Metadata contains extracted information about a remote media item
type Metadata struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Uploader  string   `json:"uploader"`
	Channel   string   `json:"channel"`
	Duration  float64  `json:"duration"`
	Thumbnail string   `json:"thumbnail"`
	Formats   []Format `json:"formats"`

	Thumbnails []Thumb `json:"thumbnails"`
}

// Thumb represents a thumbnail entry
type Thumb struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Format represents one downloadable format option
type Format struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Height         int     `json:"height"`
	FPS            float64 `json:"fps"`
	Vcodec         string  `json:"vcodec"`
	Acodec         string  `json:"acodec"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	Abr            float64 `json:"abr"`
}

// Size returns the exact filesize when known, the approximation otherwise.
func (f *Format) Size() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	return f.FilesizeApprox
}

// HasVideo reports whether the format carries a video stream.
func (f *Format) HasVideo() bool {
	return f.Vcodec != "" && f.Vcodec != "none"
}

// HasAudio reports whether the format carries an audio stream.
func (f *Format) HasAudio() bool {
	return f.Acodec != "" && f.Acodec != "none"
}

// BestThumbnail returns the top-level thumbnail, falling back to the last
// (largest) entry in the thumbnails list.
func (m *Metadata) BestThumbnail() string {
	if m.Thumbnail != "" {
		return m.Thumbnail
	}
	if len(m.Thumbnails) > 0 {
		return m.Thumbnails[len(m.Thumbnails)-1].URL
	}
	return ""
}

// Author returns the uploader, falling back to the channel name.
func (m *Metadata) Author() string {
	if m.Uploader != "" {
		return m.Uploader
	}
	return m.Channel
}
