package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/services/assemblyai"
	"scribe/internal/transcribe"
)

// transcribeFlags holds raw flag values before they are merged with
// config defaults. A flag only overrides config when it was set on the
// command line.
type transcribeFlags struct {
	format            string
	output            string
	speechModel       string
	languageDetection bool
	language          string
	punctuate         bool
	formatText        bool
	disfluencies      bool
	filterProfanity   bool
	speakerLabels     bool
	multichannel      bool
	speechThreshold   float64
	charsPerCaption   int
	wordBoost         []string
	customSpelling    []string
	pollInterval      int
	timeout           int
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var flags transcribeFlags

	cmd := &cobra.Command{
		Use:   "transcribe INPUT",
		Short: "Transcribe a local audio/video file or a URL",
		Long: "Transcribe a single local file or URL.\n\n" +
			"Audio files upload as-is; video files have their audio extracted\n" +
			"with ffmpeg first. HTTP(S) URLs are submitted directly.",
		Example: `  scribe transcribe ./file.mp3
  scribe transcribe ./video.mp4 --format srt --output ./video.srt
  scribe transcribe ./file.mp3 --speaker-labels
  scribe transcribe https://example.com/audio.wav --format vtt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			params, err := mergeParams(cmd, flags, cfg, args[0])
			if err != nil {
				return err
			}
			opts, err := transcribe.NewOptions(params)
			if err != nil {
				return err
			}

			apiKey, err := cfg.ResolveAPIKey()
			if err != nil {
				return err
			}
			client, err := assemblyai.NewClient(assemblyai.Config{
				APIKey:  apiKey,
				BaseURL: cfg.ResolveBaseURL(),
			})
			if err != nil {
				return err
			}

			svc := transcribe.NewService(client,
				transcribe.WithLogger(logger),
				transcribe.WithStdout(cmd.OutOrStdout()))
			return svc.Run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.format, "format", "f", "", "Output format: text, srt, or vtt")
	f.StringVarP(&flags.output, "output", "o", "", "Write the transcript to this file instead of stdout")
	f.StringVar(&flags.speechModel, "speech-model", "", "Recognition model: best or nano")
	f.BoolVar(&flags.languageDetection, "language-detection", true, "Detect the spoken language automatically")
	f.StringVar(&flags.language, "language", "", "Fixed language code (requires --language-detection=false)")
	f.BoolVar(&flags.punctuate, "punctuate", true, "Add punctuation to the transcript")
	f.BoolVar(&flags.formatText, "format-text", true, "Apply casing and formatting to the transcript")
	f.BoolVar(&flags.disfluencies, "disfluencies", false, "Keep filler words such as um and uh")
	f.BoolVar(&flags.filterProfanity, "filter-profanity", false, "Replace profanity with asterisks")
	f.BoolVar(&flags.speakerLabels, "speaker-labels", false, "Diarize and prefix lines with their speaker")
	f.BoolVar(&flags.multichannel, "multichannel", true, "Transcribe each audio channel separately")
	f.Float64Var(&flags.speechThreshold, "speech-threshold", 0, "Reject audio below this speech confidence (0..1)")
	f.IntVar(&flags.charsPerCaption, "chars-per-caption", 0, "Caption line budget for srt/vtt output")
	f.StringArrayVar(&flags.wordBoost, "word-boost", nil, "Phrase to bias recognition toward (repeatable)")
	f.StringArrayVar(&flags.customSpelling, "custom-spelling", nil, "Spelling replacement as FROM=TO (repeatable)")
	f.IntVar(&flags.pollInterval, "poll-interval", 0, "Seconds between job status checks")
	f.IntVar(&flags.timeout, "timeout", 0, "Seconds to wait for the job before giving up")

	return cmd
}

// mergeParams resolves each option from, in order: the command line,
// the config file, the built-in default (already folded into cfg).
func mergeParams(cmd *cobra.Command, flags transcribeFlags, cfg *config.Config, input string) (transcribe.Params, error) {
	changed := cmd.Flags().Changed
	t := cfg.Transcription

	resolveString := func(name, flagValue, cfgValue string) string {
		if changed(name) {
			return flagValue
		}
		return cfgValue
	}
	resolveBool := func(name string, flagValue, cfgValue bool) bool {
		if changed(name) {
			return flagValue
		}
		return cfgValue
	}

	format, err := transcribe.ParseFormat(resolveString("format", flags.format, t.Format))
	if err != nil {
		return transcribe.Params{}, err
	}
	model, err := transcribe.ParseSpeechModel(resolveString("speech-model", flags.speechModel, t.SpeechModel))
	if err != nil {
		return transcribe.Params{}, err
	}

	var threshold *float64
	switch {
	case changed("speech-threshold"):
		v := flags.speechThreshold
		threshold = &v
	case t.SpeechThreshold != nil:
		v := *t.SpeechThreshold
		threshold = &v
	}

	charsPerCaption := t.CharsPerCaption
	if changed("chars-per-caption") {
		charsPerCaption = flags.charsPerCaption
	}

	wordBoost := t.WordBoost
	if changed("word-boost") {
		wordBoost = flags.wordBoost
	}

	spellings := make([]assemblyai.CustomSpelling, 0, len(t.CustomSpelling))
	if changed("custom-spelling") {
		for _, raw := range flags.customSpelling {
			entry, err := transcribe.ParseCustomSpelling(raw)
			if err != nil {
				return transcribe.Params{}, err
			}
			spellings = append(spellings, entry)
		}
	} else {
		for _, entry := range t.CustomSpelling {
			spellings = append(spellings, assemblyai.CustomSpelling{From: entry.From, To: entry.To})
		}
	}

	pollInterval := cfg.PollInterval()
	if changed("poll-interval") {
		if flags.pollInterval <= 0 {
			return transcribe.Params{}, fmt.Errorf("--poll-interval must be greater than 0")
		}
		pollInterval = time.Duration(flags.pollInterval) * time.Second
	}
	timeout := cfg.Timeout()
	if changed("timeout") {
		if flags.timeout < 0 {
			return transcribe.Params{}, fmt.Errorf("--timeout cannot be negative")
		}
		timeout = time.Duration(flags.timeout) * time.Second
	}

	return transcribe.Params{
		Input:             input,
		Format:            format,
		Output:            flags.output,
		SpeechModel:       model,
		LanguageDetection: resolveBool("language-detection", flags.languageDetection, t.LanguageDetection),
		Language:          resolveString("language", flags.language, t.Language),
		Punctuate:         resolveBool("punctuate", flags.punctuate, t.Punctuate),
		FormatText:        resolveBool("format-text", flags.formatText, t.FormatText),
		Disfluencies:      resolveBool("disfluencies", flags.disfluencies, t.Disfluencies),
		FilterProfanity:   resolveBool("filter-profanity", flags.filterProfanity, t.FilterProfanity),
		SpeakerLabels:     resolveBool("speaker-labels", flags.speakerLabels, t.SpeakerLabels),
		Multichannel:      resolveBool("multichannel", flags.multichannel, t.Multichannel),
		SpeechThreshold:   threshold,
		CharsPerCaption:   charsPerCaption,
		WordBoost:         wordBoost,
		CustomSpelling:    spellings,
		PollInterval:      pollInterval,
		Timeout:           timeout,
	}, nil
}
