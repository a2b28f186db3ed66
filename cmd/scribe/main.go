package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"scribe/internal/config"
	"scribe/internal/media"
	"scribe/internal/services/assemblyai"
	"scribe/internal/transcribe"
)

func main() {
	// A .env in the working directory can carry ASSEMBLYAI_API_KEY for
	// local use. Absence is not an error.
	_ = godotenv.Load()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes failure families so scripts can branch on
// them: 2 input validation, 3 configuration or credentials, 4 audio
// extraction, 5 transcription service.
func exitCode(err error) int {
	var optErr *transcribe.OptionError
	var cfgErr *config.Error
	var extractErr *media.ExtractError
	var statusErr *assemblyai.StatusError
	var timeoutErr *assemblyai.TimeoutError
	var jobErr *transcribe.TranscriptError

	switch {
	case errors.As(err, &optErr), errors.Is(err, fs.ErrNotExist):
		return 2
	case errors.As(err, &cfgErr):
		return 3
	case errors.Is(err, media.ErrFFmpegNotFound), errors.As(err, &extractErr):
		return 4
	case errors.As(err, &statusErr), errors.As(err, &timeoutErr), errors.As(err, &jobErr):
		return 5
	default:
		return 1
	}
}
