package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestExtractAudioSuccess(t *testing.T) {
	dir := t.TempDir()
	// Stub writes its final argument so the output file exists.
	stub := writeStub(t, dir, "ffmpeg-ok", "#!/bin/sh\nfor out; do :; done\necho audio > \"$out\"\n")

	input := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(input, []byte("video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	extractor := NewExtractor(WithBinary(stub), WithOutputDir(dir))
	out, err := extractor.ExtractAudio(context.Background(), input)
	if err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}
	defer os.Remove(out)

	if !strings.HasSuffix(out, ".mp3") {
		t.Fatalf("output %q does not end in .mp3", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestExtractAudioFailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	stub := writeStub(t, dir, "ffmpeg-fail", "#!/bin/sh\necho 'no such codec' >&2\nexit 1\n")

	input := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(input, []byte("video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	extractor := NewExtractor(WithBinary(stub), WithOutputDir(dir))
	_, err := extractor.ExtractAudio(context.Background(), input)
	var extractErr *ExtractError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *ExtractError, got %v", err)
	}
	if !strings.Contains(extractErr.Stderr, "no such codec") {
		t.Fatalf("stderr not captured: %q", extractErr.Stderr)
	}
}

func TestExtractAudioMissingBinary(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(input, []byte("video"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	extractor := NewExtractor(WithBinary(filepath.Join(dir, "no-such-ffmpeg")), WithOutputDir(dir))
	_, err := extractor.ExtractAudio(context.Background(), input)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestExtractAudioMissingInput(t *testing.T) {
	extractor := NewExtractor()
	if _, err := extractor.ExtractAudio(context.Background(), filepath.Join(t.TempDir(), "absent.mp4")); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestCheckBinaries(t *testing.T) {
	dir := t.TempDir()
	present := writeStub(t, dir, "present", "#!/bin/sh\nexit 0\n")

	results := CheckBinaries([]Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected %q to be available: %+v", present, results[0])
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable: %+v", results[1])
	}
	if results[1].Detail == "" {
		t.Fatal("missing binary should carry a detail message")
	}
}
