package job

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyOutput_DeclaredPath(t *testing.T) {
	dir := t.TempDir()
	declared := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(declared, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := verifyOutput(dir, declared)
	if err != nil {
		t.Fatalf("verifyOutput failed: %v", err)
	}
	if got != declared {
		t.Errorf("Expected %s, got %s", declared, got)
	}
}

func TestVerifyOutput_StaleDeclaredPath(t *testing.T) {
	dir := t.TempDir()

	// The declared path is stale after remuxing changed the extension;
	// the largest file in the work directory wins.
	if err := os.WriteFile(filepath.Join(dir, "video.mkv"), []byte("full output"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fragment.part"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := verifyOutput(dir, filepath.Join(dir, "video.mp4"))
	if err != nil {
		t.Fatalf("verifyOutput failed: %v", err)
	}
	if filepath.Base(got) != "video.mkv" {
		t.Errorf("Expected fallback to video.mkv, got %s", got)
	}
}

func TestVerifyOutput_EmptyDeclaredFile(t *testing.T) {
	dir := t.TempDir()
	declared := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(declared, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "actual.mp4"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Zero-byte declared output is not a valid result.
	got, err := verifyOutput(dir, declared)
	if err != nil {
		t.Fatalf("verifyOutput failed: %v", err)
	}
	if filepath.Base(got) != "actual.mp4" {
		t.Errorf("Expected actual.mp4, got %s", got)
	}
}

func TestVerifyOutput_NoFiles(t *testing.T) {
	dir := t.TempDir()

	if _, err := verifyOutput(dir, ""); err == nil {
		t.Error("Expected error for empty work directory")
	}
}
