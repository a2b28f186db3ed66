package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const ffmpegBinary = "ffmpeg"

// ErrFFmpegNotFound indicates the ffmpeg binary is not on PATH.
var ErrFFmpegNotFound = errors.New("ffmpeg not found on PATH")

// ExtractError reports an ffmpeg run that exited non-zero, carrying
// the tool's captured diagnostic output.
type ExtractError struct {
	Input  string
	Stderr string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("ffmpeg failed for %s: %s", e.Input, strings.TrimSpace(e.Stderr))
}

// Extractor converts local video files into mono mp3 audio suitable
// for upload.
type Extractor struct {
	binary string
	outDir string
}

// ExtractorOption customizes an extractor.
type ExtractorOption func(*Extractor)

// WithBinary overrides the ffmpeg executable (useful for tests).
func WithBinary(binary string) ExtractorOption {
	return func(e *Extractor) {
		if strings.TrimSpace(binary) != "" {
			e.binary = binary
		}
	}
}

// WithOutputDir overrides the directory temporary audio files are
// written to. Defaults to the system temp directory.
func WithOutputDir(dir string) ExtractorOption {
	return func(e *Extractor) {
		if strings.TrimSpace(dir) != "" {
			e.outDir = dir
		}
	}
}

// NewExtractor constructs an audio extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{binary: ffmpegBinary, outDir: os.TempDir()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractAudio runs ffmpeg over a local video file and returns the
// path of the extracted mp3. The caller owns the returned file and
// removes it when done.
func (e *Extractor) ExtractAudio(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file not found: %w", err)
	}

	outputPath := filepath.Join(e.outDir, fmt.Sprintf("scribe-%s.mp3", uuid.NewString()))

	cmd := exec.CommandContext(ctx, e.binary,
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		outputPath,
	)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(outputPath)
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrFFmpegNotFound
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExtractError{Input: inputPath, Stderr: stderr.String()}
		}
		return "", fmt.Errorf("run ffmpeg: %w", err)
	}

	return outputPath, nil
}
