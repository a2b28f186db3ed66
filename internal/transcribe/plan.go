package transcribe

import (
	"fmt"
	"net/url"
	"strings"

	"scribe/internal/media"
)

// PlanKind names the input handling strategy for a run.
type PlanKind int

const (
	// PlanURL submits the input URL to the service directly.
	PlanURL PlanKind = iota
	// PlanLocalAudio uploads the local file as-is.
	PlanLocalAudio
	// PlanLocalVideo extracts audio with ffmpeg before uploading.
	PlanLocalVideo
)

// Plan describes how the input reaches the transcription service.
type Plan struct {
	Kind PlanKind
	// URL is set for PlanURL inputs.
	URL string
	// Path is the local file for PlanLocalAudio and PlanLocalVideo.
	Path string
}

// BuildPlan classifies the validated input. HTTP(S) inputs must parse
// as URLs; local paths must carry a supported audio or video
// extension.
func BuildPlan(opts Options) (Plan, error) {
	input := opts.Input
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		parsed, err := url.Parse(input)
		if err != nil || parsed.Host == "" {
			return Plan{}, &OptionError{Field: "input", Detail: fmt.Sprintf("invalid URL %q", input)}
		}
		return Plan{Kind: PlanURL, URL: parsed.String()}, nil
	}

	switch media.Classify(input) {
	case media.KindAudio:
		return Plan{Kind: PlanLocalAudio, Path: input}, nil
	case media.KindVideo:
		return Plan{Kind: PlanLocalVideo, Path: input}, nil
	default:
		return Plan{}, &OptionError{Field: "input", Detail: fmt.Sprintf("unsupported extension for local file %q", input)}
	}
}
