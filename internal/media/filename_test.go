package media

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "video.mp4", "video.mp4"},
		{"reserved characters", `my<video>:"name".mp4`, "my_video___name_.mp4"},
		{"path separators", "a/b\\c.mp4", "a_b_c.mp4"},
		{"accents folded", "Café Après-Midi.mp4", "Cafe Apres-Midi.mp4"},
		{"control characters stripped", "bad\x00name\x1f.mp4", "badname.mp4"},
		{"trailing dots and spaces", "  name.mp4. ", "name.mp4"},
		{"empty input", "", "download"},
		{"only junk", `\\//..`, "____"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
