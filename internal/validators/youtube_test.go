package validators

import "testing"

func TestYouTubeValidator_CanHandle(t *testing.T) {
	v := NewYouTubeValidator()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		// Should handle
		{"youtube.com", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtube.com no www", "https://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtu.be", "https://youtu.be/dQw4w9WgXcQ", true},
		{"music.youtube.com", "https://music.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"mobile youtube", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http scheme", "http://youtube.com/watch?v=dQw4w9WgXcQ", true},

		// Should not handle
		{"vimeo", "https://vimeo.com/123456", false},
		{"google", "https://www.google.com", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.CanHandle(tt.url); got != tt.want {
				t.Errorf("CanHandle(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestYouTubeValidator_Validate(t *testing.T) {
	v := NewYouTubeValidator()

	tests := []struct {
		name          string
		url           string
		wantValid     bool
		wantVideoID   string
		wantCanonical string
	}{
		// Standard watch URLs
		{
			name:          "standard watch URL",
			url:           "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantValid:     true,
			wantVideoID:   "dQw4w9WgXcQ",
			wantCanonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:          "watch URL with extra params",
			url:           "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=120&list=PLtest",
			wantValid:     true,
			wantVideoID:   "dQw4w9WgXcQ",
			wantCanonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:          "watch URL no www",
			url:           "https://youtube.com/watch?v=dQw4w9WgXcQ",
			wantValid:     true,
			wantVideoID:   "dQw4w9WgXcQ",
			wantCanonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},

		// Short URLs
		{
			name:          "youtu.be short URL",
			url:           "https://youtu.be/dQw4w9WgXcQ",
			wantValid:     true,
			wantVideoID:   "dQw4w9WgXcQ",
			wantCanonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:          "youtu.be with query",
			url:           "https://youtu.be/dQw4w9WgXcQ?t=30",
			wantValid:     true,
			wantVideoID:   "dQw4w9WgXcQ",
			wantCanonical: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},

		// Other URL shapes
		{
			name:        "shorts URL",
			url:         "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},
		{
			name:        "embed URL",
			url:         "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},
		{
			name:        "live URL",
			url:         "https://www.youtube.com/live/dQw4w9WgXcQ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},
		{
			name:        "mobile URL",
			url:         "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},
		{
			name:        "scheme-less URL",
			url:         "youtube.com/watch?v=dQw4w9WgXcQ",
			wantValid:   false,
		},
		{
			name:        "whitespace around URL",
			url:         "  https://youtu.be/dQw4w9WgXcQ  ",
			wantValid:   true,
			wantVideoID: "dQw4w9WgXcQ",
		},

		// Invalid
		{name: "not youtube", url: "https://vimeo.com/123456", wantValid: false},
		{name: "channel URL", url: "https://www.youtube.com/@somechannel", wantValid: false},
		{name: "watch without v param", url: "https://www.youtube.com/watch", wantValid: false},
		{name: "short video ID", url: "https://youtu.be/short", wantValid: false},
		{name: "ftp scheme", url: "ftp://youtube.com/watch?v=dQw4w9WgXcQ", wantValid: false},
		{name: "empty", url: "", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.url)

			if got.Valid != tt.wantValid {
				t.Fatalf("Validate(%q).Valid = %v, want %v (error: %s)", tt.url, got.Valid, tt.wantValid, got.Error)
			}
			if !tt.wantValid {
				if got.Error == "" {
					t.Error("Expected an error message on invalid result")
				}
				return
			}
			if got.VideoID != tt.wantVideoID {
				t.Errorf("VideoID = %q, want %q", got.VideoID, tt.wantVideoID)
			}
			if tt.wantCanonical != "" && got.Canonical != tt.wantCanonical {
				t.Errorf("Canonical = %q, want %q", got.Canonical, tt.wantCanonical)
			}
		})
	}
}
