package transcribe

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"scribe/internal/services/assemblyai"
)

// Format selects the rendered output.
type Format string

const (
	FormatText Format = "text"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText:
		return FormatText, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	default:
		return "", &OptionError{Field: "format", Detail: fmt.Sprintf("unsupported value %q; expected text, srt, or vtt", value)}
	}
}

// SpeechModel selects the service-side recognition model.
type SpeechModel string

const (
	ModelBest SpeechModel = "best"
	ModelNano SpeechModel = "nano"
)

// ParseSpeechModel validates a speech model name.
func ParseSpeechModel(value string) (SpeechModel, error) {
	switch SpeechModel(strings.ToLower(strings.TrimSpace(value))) {
	case ModelBest:
		return ModelBest, nil
	case ModelNano:
		return ModelNano, nil
	default:
		return "", &OptionError{Field: "speech-model", Detail: fmt.Sprintf("unsupported value %q; expected best or nano", value)}
	}
}

// OptionError reports an invalid option combination, detected before
// any network activity.
type OptionError struct {
	Field  string
	Detail string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// Params carries the raw, pre-validation option values after CLI and
// config merging.
type Params struct {
	Input             string
	Format            Format
	Output            string
	SpeechModel       SpeechModel
	LanguageDetection bool
	Language          string
	Punctuate         bool
	FormatText        bool
	Disfluencies      bool
	FilterProfanity   bool
	SpeakerLabels     bool
	Multichannel      bool
	SpeechThreshold   *float64
	CharsPerCaption   int
	WordBoost         []string
	CustomSpelling    []assemblyai.CustomSpelling
	PollInterval      time.Duration
	Timeout           time.Duration
}

// Options is the validated form of Params.
type Options struct {
	Input             string
	Format            Format
	Output            string // empty means stdout
	SpeechModel       SpeechModel
	LanguageDetection bool
	Language          string // empty unless detection is disabled and a code was given
	Punctuate         bool
	FormatText        bool
	Disfluencies      bool
	FilterProfanity   bool
	SpeakerLabels     bool
	Multichannel      bool
	SpeechThreshold   *float64
	CharsPerCaption   int
	WordBoost         []string
	CustomSpelling    []assemblyai.CustomSpelling
	PollInterval      time.Duration
	Timeout           time.Duration
}

// NewOptions validates the merged parameters. Every violation is an
// *OptionError; nothing network-facing happens here.
func NewOptions(params Params) (Options, error) {
	if strings.TrimSpace(params.Input) == "" {
		return Options{}, &OptionError{Field: "input", Detail: "an input path or URL is required"}
	}

	code := strings.TrimSpace(params.Language)
	if params.LanguageDetection && code != "" {
		return Options{}, &OptionError{Field: "language", Detail: "--language is not allowed when language detection is enabled"}
	}
	if code != "" {
		if _, err := language.Parse(code); err != nil {
			return Options{}, &OptionError{Field: "language", Detail: fmt.Sprintf("unrecognized language code %q", code)}
		}
	}

	if params.SpeechThreshold != nil {
		if v := *params.SpeechThreshold; v < 0 || v > 1 {
			return Options{}, &OptionError{Field: "speech-threshold", Detail: fmt.Sprintf("%v is outside 0..1", v)}
		}
	}

	if params.CharsPerCaption <= 0 {
		return Options{}, &OptionError{Field: "chars-per-caption", Detail: "must be greater than 0"}
	}

	spellings := make([]assemblyai.CustomSpelling, 0, len(params.CustomSpelling))
	for i, entry := range params.CustomSpelling {
		from := strings.TrimSpace(entry.From)
		to := strings.TrimSpace(entry.To)
		if from == "" || to == "" {
			return Options{}, &OptionError{
				Field:  "custom-spelling",
				Detail: fmt.Sprintf("entry %d: 'from' and 'to' must be non-empty", i),
			}
		}
		spellings = append(spellings, assemblyai.CustomSpelling{From: from, To: to})
	}

	return Options{
		Input:             strings.TrimSpace(params.Input),
		Format:            params.Format,
		Output:            params.Output,
		SpeechModel:       params.SpeechModel,
		LanguageDetection: params.LanguageDetection,
		Language:          code,
		Punctuate:         params.Punctuate,
		FormatText:        params.FormatText,
		Disfluencies:      params.Disfluencies,
		FilterProfanity:   params.FilterProfanity,
		SpeakerLabels:     params.SpeakerLabels,
		Multichannel:      params.Multichannel,
		SpeechThreshold:   params.SpeechThreshold,
		CharsPerCaption:   params.CharsPerCaption,
		WordBoost:         params.WordBoost,
		CustomSpelling:    spellings,
		PollInterval:      params.PollInterval,
		Timeout:           params.Timeout,
	}, nil
}

// ParseCustomSpelling parses a FROM=TO flag value.
func ParseCustomSpelling(value string) (assemblyai.CustomSpelling, error) {
	from, to, found := strings.Cut(value, "=")
	if !found {
		return assemblyai.CustomSpelling{}, &OptionError{
			Field:  "custom-spelling",
			Detail: fmt.Sprintf("%q is not of the form FROM=TO", value),
		}
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return assemblyai.CustomSpelling{}, &OptionError{
			Field:  "custom-spelling",
			Detail: fmt.Sprintf("%q has an empty side", value),
		}
	}
	return assemblyai.CustomSpelling{From: from, To: to}, nil
}

// TranscriptParams maps validated options onto the service request
// fields.
func (o Options) TranscriptParams() assemblyai.TranscriptParams {
	return assemblyai.TranscriptParams{
		SpeechModel:       string(o.SpeechModel),
		LanguageDetection: o.LanguageDetection,
		LanguageCode:      o.Language,
		Punctuate:         o.Punctuate,
		FormatText:        o.FormatText,
		Disfluencies:      o.Disfluencies,
		FilterProfanity:   o.FilterProfanity,
		SpeakerLabels:     o.SpeakerLabels,
		Multichannel:      o.Multichannel,
		SpeechThreshold:   o.SpeechThreshold,
		WordBoost:         o.WordBoost,
		CustomSpelling:    o.CustomSpelling,
	}
}
