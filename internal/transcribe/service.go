package transcribe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"scribe/internal/captions"
	"scribe/internal/media"
	"scribe/internal/services/assemblyai"
)

// TranscriptError reports a job that reached the terminal "error"
// status, carrying the service-provided message. This is a job
// failure, not a transport error, and is never retried.
type TranscriptError struct {
	JobID   string
	Message string
}

func (e *TranscriptError) Error() string {
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

// Service runs the submit, poll, render sequence for one input.
type Service struct {
	client    *assemblyai.Client
	poller    *assemblyai.Poller
	extractor *media.Extractor
	logger    *slog.Logger
	stdout    io.Writer
}

// ServiceOption customizes a service.
type ServiceOption func(*Service)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPoller overrides the default poller.
func WithPoller(poller *assemblyai.Poller) ServiceOption {
	return func(s *Service) {
		if poller != nil {
			s.poller = poller
		}
	}
}

// WithExtractor overrides the default audio extractor.
func WithExtractor(extractor *media.Extractor) ServiceOption {
	return func(s *Service) {
		if extractor != nil {
			s.extractor = extractor
		}
	}
}

// WithStdout overrides where stdout-bound transcripts are written.
func WithStdout(w io.Writer) ServiceOption {
	return func(s *Service) {
		if w != nil {
			s.stdout = w
		}
	}
}

// NewService constructs the transcription orchestrator.
func NewService(client *assemblyai.Client, opts ...ServiceOption) *Service {
	s := &Service{
		client:    client,
		poller:    assemblyai.NewPoller(client),
		extractor: media.NewExtractor(),
		logger:    slog.Default(),
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one transcription end to end and writes the rendered
// transcript to the configured sink.
func (s *Service) Run(ctx context.Context, opts Options) error {
	plan, err := BuildPlan(opts)
	if err != nil {
		return err
	}

	log := s.logger.With("run_id", uuid.NewString())

	audioURL, cleanup, err := s.resolveAudioURL(ctx, plan, log)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info("starting transcription")
	created, err := s.client.CreateTranscript(ctx, audioURL, opts.TranscriptParams())
	if err != nil {
		return err
	}

	log.Info("waiting for completion", "job_id", created.ID, "poll_interval", opts.PollInterval, "timeout", opts.Timeout)
	done, err := s.poller.WaitForCompletion(ctx, created.ID, opts.PollInterval, opts.Timeout)
	if err != nil {
		return err
	}

	if done.Status == assemblyai.StatusErrored {
		message := "unknown transcription error"
		if done.Error != nil && strings.TrimSpace(*done.Error) != "" {
			message = *done.Error
		}
		return &TranscriptError{JobID: done.ID, Message: message}
	}
	log.Info("transcription completed", "job_id", done.ID)

	content, err := s.renderOutput(ctx, done, opts)
	if err != nil {
		return err
	}
	return s.writeOutput(content, opts, log)
}

// resolveAudioURL turns the plan into a remote audio reference,
// uploading (and extracting, for video) as needed. The returned
// cleanup removes any temporary audio file.
func (s *Service) resolveAudioURL(ctx context.Context, plan Plan, log *slog.Logger) (string, func(), error) {
	noop := func() {}

	switch plan.Kind {
	case PlanURL:
		return plan.URL, noop, nil

	case PlanLocalAudio:
		if _, err := os.Stat(plan.Path); err != nil {
			return "", noop, fmt.Errorf("input file not found: %w", err)
		}
		log.Info("uploading", "path", plan.Path)
		uploadURL, err := s.client.Upload(ctx, plan.Path)
		if err != nil {
			return "", noop, err
		}
		return uploadURL, noop, nil

	case PlanLocalVideo:
		if _, err := os.Stat(plan.Path); err != nil {
			return "", noop, fmt.Errorf("input file not found: %w", err)
		}
		log.Info("extracting audio", "path", plan.Path)
		audioPath, err := s.extractor.ExtractAudio(ctx, plan.Path)
		if err != nil {
			return "", noop, err
		}
		cleanup := func() { _ = os.Remove(audioPath) }
		log.Info("uploading", "path", audioPath)
		uploadURL, err := s.client.Upload(ctx, audioPath)
		if err != nil {
			cleanup()
			return "", noop, err
		}
		return uploadURL, cleanup, nil

	default:
		return "", noop, fmt.Errorf("unhandled plan kind %d", plan.Kind)
	}
}

// renderOutput produces the requested document from a completed
// transcript. Diarized rendering is preferred for srt/vtt when speaker
// labels were requested; the server-rendered subtitle endpoint is the
// fallback when diarization yields nothing usable.
func (s *Service) renderOutput(ctx context.Context, done assemblyai.Transcript, opts Options) (string, error) {
	switch opts.Format {
	case FormatText:
		return s.renderText(done, opts), nil
	case FormatSRT:
		if rendered, ok := s.renderDiarized(done, opts); ok {
			return rendered, nil
		}
		return s.client.GetSubtitles(ctx, done.ID, assemblyai.SubtitleSRT, opts.CharsPerCaption)
	case FormatVTT:
		if rendered, ok := s.renderDiarized(done, opts); ok {
			return rendered, nil
		}
		return s.client.GetSubtitles(ctx, done.ID, assemblyai.SubtitleVTT, opts.CharsPerCaption)
	default:
		return "", &OptionError{Field: "format", Detail: fmt.Sprintf("unsupported value %q", opts.Format)}
	}
}

func (s *Service) renderText(done assemblyai.Transcript, opts Options) string {
	if opts.SpeakerLabels {
		merged := captions.MergeUtterances(done.RawUtterances())
		if len(merged) > 0 {
			if rendered := captions.RenderText(merged); strings.TrimSpace(rendered) != "" {
				return rendered
			}
		}
	}
	if done.Text != nil {
		return *done.Text
	}
	return ""
}

func (s *Service) renderDiarized(done assemblyai.Transcript, opts Options) (string, bool) {
	if !opts.SpeakerLabels {
		return "", false
	}
	merged := captions.MergeUtterances(done.RawUtterances())
	if len(merged) == 0 {
		return "", false
	}

	var rendered string
	switch opts.Format {
	case FormatSRT:
		rendered = captions.RenderSRT(merged, opts.CharsPerCaption)
	case FormatVTT:
		rendered = captions.RenderVTT(merged, opts.CharsPerCaption)
	default:
		return "", false
	}

	if strings.TrimSpace(rendered) == "" {
		return "", false
	}
	return rendered, true
}

func (s *Service) writeOutput(content string, opts Options, log *slog.Logger) error {
	if strings.TrimSpace(opts.Output) == "" {
		if _, err := io.WriteString(s.stdout, content); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(opts.Output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write transcript to %s: %w", opts.Output, err)
	}
	log.Info("wrote transcript", "path", opts.Output)
	return nil
}
