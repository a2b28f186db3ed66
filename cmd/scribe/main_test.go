package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/media"
	"scribe/internal/services/assemblyai"
	"scribe/internal/transcribe"
)

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil-adjacent generic", errors.New("boom"), 1},
		{"option error", &transcribe.OptionError{Field: "input", Detail: "missing"}, 2},
		{"wrapped option error", fmt.Errorf("run: %w", &transcribe.OptionError{Field: "format", Detail: "bad"}), 2},
		{"missing input file", fmt.Errorf("input file not found: %w", fs.ErrNotExist), 2},
		{"config error", &config.Error{Detail: "missing key"}, 3},
		{"ffmpeg missing", media.ErrFFmpegNotFound, 4},
		{"extract failure", &media.ExtractError{Input: "a.mp4", Stderr: "bad stream"}, 4},
		{"http failure", &assemblyai.StatusError{StatusCode: 500, Body: "oops"}, 5},
		{"poll timeout", &assemblyai.TimeoutError{JobID: "j1", Timeout: time.Minute}, 5},
		{"job failed", &transcribe.TranscriptError{JobID: "j1", Message: "too short"}, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
